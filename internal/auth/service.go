package auth

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/usecases"
)

var ErrUnauthorized = result.NewFailure(result.CodeUnauthorized, "Authentication required")

// ProvisionAuditor records first sign-ins. It may be nil.
type ProvisionAuditor interface {
	LogAuth(userID, action, description, ipAddr string)
}

// Service resolves access tokens to local users, creating the local
// account on first sign-in.
type Service struct {
	users     usecases.UserRepository
	roles     usecases.RoleRepository
	verifier  *TokenVerifier
	adminRole string
	auditor   ProvisionAuditor

	// provisionMu serializes account creation so exactly one first user
	// sees a count of one.
	provisionMu sync.Mutex
}

// NewService creates a new authentication service.
func NewService(users usecases.UserRepository, roles usecases.RoleRepository, verifier *TokenVerifier, adminRole string) *Service {
	if adminRole == "" {
		adminRole = entities.AdminRoleName
	}
	return &Service{
		users:     users,
		roles:     roles,
		verifier:  verifier,
		adminRole: adminRole,
	}
}

// SetAuditor sets the auditor for provisioned accounts (optional).
func (s *Service) SetAuditor(auditor ProvisionAuditor) {
	s.auditor = auditor
}

// Authenticate verifies token and returns the local user it belongs to.
// Unknown subjects are provisioned; the very first user becomes admin.
func (s *Service) Authenticate(ctx context.Context, token, ipAddr string) result.Result[*entities.User] {
	claims, err := s.verifier.Verify(token)
	if err != nil {
		return result.Fail[*entities.User](ErrUnauthorized)
	}

	found := s.users.FindByID(ctx, claims.Subject)
	if found.IsFailure() {
		if !errors.Is(found.Failure(), entities.ErrUserNotFound) {
			return found
		}
		found = s.provision(ctx, claims, ipAddr)
		if found.IsFailure() {
			return found
		}
	}

	user := found.Value()
	if user.IsRestricted {
		return result.Fail[*entities.User](entities.ErrAccountRestricted)
	}
	return result.Success(user)
}

func (s *Service) provision(ctx context.Context, claims *Claims, ipAddr string) result.Result[*entities.User] {
	email := claims.Email
	if email == "" {
		email = claims.Subject
	}

	s.provisionMu.Lock()
	defer s.provisionMu.Unlock()

	created := s.users.Create(ctx, entities.NewUser(claims.Subject, email, email, false, nil))
	if created.IsFailure() {
		// A concurrent request may have provisioned the same subject.
		if again := s.users.FindByID(ctx, claims.Subject); again.IsSuccess() {
			return again
		}
		return created
	}
	user := created.Value()
	log.Printf("[AUTH] Provisioned user %s (%s)", user.ID, user.Email)

	count := s.users.Count(ctx)
	if count.IsFailure() {
		return result.Forward[*entities.User](count)
	}
	if count.Value() == 1 {
		if promoted := s.promoteToAdmin(ctx, user); promoted.IsSuccess() {
			user = promoted.Value()
		}
	}

	if s.auditor != nil {
		s.auditor.LogAuth(user.ID, "user_provision", "Provisioned account for "+user.Email, ipAddr)
	}
	return result.Success(user)
}

func (s *Service) promoteToAdmin(ctx context.Context, user *entities.User) result.Result[*entities.User] {
	role := s.roles.FindByName(ctx, s.adminRole)
	if role.IsFailure() {
		log.Printf("[AUTH] Warning: admin role %q not found, first user %s has no role", s.adminRole, user.ID)
		return result.Forward[*entities.User](role)
	}

	user.SetRole(role.Value())
	updated := s.users.Update(ctx, user.ID, user)
	if updated.IsSuccess() {
		log.Printf("[AUTH] First user %s assigned role %q", user.ID, s.adminRole)
	}
	return updated
}
