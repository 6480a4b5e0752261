package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/usecases/mocks"
)

type recordingAuditor struct {
	mu    sync.Mutex
	calls []string
}

func (a *recordingAuditor) LogAuth(userID, action, description, ipAddr string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, userID+":"+action+":"+ipAddr)
}

type serviceFixture struct {
	service  *Service
	users    *mocks.UserRepository
	roles    *mocks.RoleRepository
	verifier *TokenVerifier
	auditor  *recordingAuditor
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		users:    &mocks.UserRepository{},
		roles:    &mocks.RoleRepository{},
		verifier: NewTokenVerifier(testSecret, ""),
		auditor:  &recordingAuditor{},
	}
	f.service = NewService(f.users, f.roles, f.verifier, "")
	f.service.SetAuditor(f.auditor)
	t.Cleanup(func() {
		f.users.AssertExpectations(t)
		f.roles.AssertExpectations(t)
	})
	return f
}

func (f *serviceFixture) token(t *testing.T, subject, email string) string {
	t.Helper()
	token, err := f.verifier.Issue(subject, email, nil, time.Hour)
	require.NoError(t, err)
	return token
}

func echoUser(u *entities.User) result.Result[*entities.User] {
	return result.Success(u)
}

func TestService_Authenticate_InvalidToken(t *testing.T) {
	f := newServiceFixture(t)

	res := f.service.Authenticate(context.Background(), "bogus", "127.0.0.1")

	require.True(t, res.IsFailure())
	assert.Same(t, ErrUnauthorized, res.Failure())
}

func TestService_Authenticate_ExistingUser(t *testing.T) {
	f := newServiceFixture(t)
	existing := entities.NewUser("user-1", "alice", "alice@example.com", false, nil)
	f.users.On("FindByID", mock.Anything, "user-1").Return(result.Success(existing))

	res := f.service.Authenticate(context.Background(), f.token(t, "user-1", "alice@example.com"), "127.0.0.1")

	require.True(t, res.IsSuccess())
	assert.Same(t, existing, res.Value())
	assert.Empty(t, f.auditor.calls)
}

func TestService_Authenticate_RestrictedUser(t *testing.T) {
	f := newServiceFixture(t)
	restricted := entities.NewUser("user-1", "alice", "alice@example.com", true, nil)
	f.users.On("FindByID", mock.Anything, "user-1").Return(result.Success(restricted))

	res := f.service.Authenticate(context.Background(), f.token(t, "user-1", ""), "127.0.0.1")

	require.True(t, res.IsFailure())
	assert.Same(t, entities.ErrAccountRestricted, res.Failure())
}

func TestService_Authenticate_FirstUserBecomesAdmin(t *testing.T) {
	f := newServiceFixture(t)
	admin := entities.NewRole("role-admin", entities.AdminRoleName, entities.AllPermissions)

	f.users.On("FindByID", mock.Anything, "user-1").Return(result.Fail[*entities.User](entities.ErrUserNotFound))
	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return u.ID == "user-1" && u.Email == "alice@example.com" && u.Role == nil
	})).Return(echoUser)
	f.users.On("Count", mock.Anything).Return(result.Success(int64(1)))
	f.roles.On("FindByName", mock.Anything, entities.AdminRoleName).Return(result.Success(admin))
	f.users.On("Update", mock.Anything, "user-1", mock.Anything).Return(echoUser)

	res := f.service.Authenticate(context.Background(), f.token(t, "user-1", "alice@example.com"), "10.1.1.1")

	require.True(t, res.IsSuccess())
	user := res.Value()
	require.NotNil(t, user.Role)
	assert.True(t, user.Role.IsAdmin())
	assert.True(t, user.HasPermission(entities.PermissionManageUsers))
	assert.Equal(t, []string{"user-1:user_provision:10.1.1.1"}, f.auditor.calls)
}

func TestService_Authenticate_LaterUsersHaveNoRole(t *testing.T) {
	f := newServiceFixture(t)

	f.users.On("FindByID", mock.Anything, "user-2").Return(result.Fail[*entities.User](entities.ErrUserNotFound))
	f.users.On("Create", mock.Anything, mock.Anything).Return(echoUser)
	f.users.On("Count", mock.Anything).Return(result.Success(int64(2)))

	res := f.service.Authenticate(context.Background(), f.token(t, "user-2", ""), "")

	require.True(t, res.IsSuccess())
	assert.Nil(t, res.Value().Role)
	assert.Equal(t, "user-2", res.Value().Email, "email falls back to the subject")
}

func TestService_Authenticate_MissingAdminRoleStillProvisions(t *testing.T) {
	f := newServiceFixture(t)

	f.users.On("FindByID", mock.Anything, "user-1").Return(result.Fail[*entities.User](entities.ErrUserNotFound))
	f.users.On("Create", mock.Anything, mock.Anything).Return(echoUser)
	f.users.On("Count", mock.Anything).Return(result.Success(int64(1)))
	f.roles.On("FindByName", mock.Anything, entities.AdminRoleName).Return(result.Fail[*entities.Role](entities.ErrRoleNotFound))

	res := f.service.Authenticate(context.Background(), f.token(t, "user-1", "a@example.com"), "")

	require.True(t, res.IsSuccess())
	assert.Nil(t, res.Value().Role)
}

func TestService_Authenticate_ConcurrentProvisioning(t *testing.T) {
	f := newServiceFixture(t)
	winner := entities.NewUser("user-1", "a@example.com", "a@example.com", false, nil)

	f.users.On("FindByID", mock.Anything, "user-1").Return(result.Fail[*entities.User](entities.ErrUserNotFound)).Once()
	f.users.On("Create", mock.Anything, mock.Anything).Return(result.Fail[*entities.User](result.Unexpected(errors.New("UNIQUE constraint failed"))))
	f.users.On("FindByID", mock.Anything, "user-1").Return(result.Success(winner)).Once()

	res := f.service.Authenticate(context.Background(), f.token(t, "user-1", "a@example.com"), "")

	require.True(t, res.IsSuccess())
	assert.Same(t, winner, res.Value())
}

func TestService_Authenticate_RepositoryFailure(t *testing.T) {
	f := newServiceFixture(t)
	dbErr := result.Unexpected(errors.New("database is locked"))
	f.users.On("FindByID", mock.Anything, "user-1").Return(result.Fail[*entities.User](dbErr))

	res := f.service.Authenticate(context.Background(), f.token(t, "user-1", ""), "")

	require.True(t, res.IsFailure())
	assert.True(t, res.Failure().IsUnexpected())
}

// memoryUsers is an in-memory user store whose writes take a while, so
// unserialized provisioning would interleave.
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*entities.User
}

func (m *memoryUsers) FindAll(ctx context.Context, p result.Pagination) result.Result[result.Page[entities.User]] {
	return result.Success(result.Page[entities.User]{})
}

func (m *memoryUsers) FindByID(ctx context.Context, id string) result.Result[*entities.User] {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return result.Success(u)
	}
	return result.Fail[*entities.User](entities.ErrUserNotFound)
}

func (m *memoryUsers) Create(ctx context.Context, user *entities.User) result.Result[*entities.User] {
	m.mu.Lock()
	m.users[user.ID] = user
	m.mu.Unlock()
	time.Sleep(20 * time.Millisecond)
	return result.Success(user)
}

func (m *memoryUsers) Update(ctx context.Context, id string, user *entities.User) result.Result[*entities.User] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id] = user
	return result.Success(user)
}

func (m *memoryUsers) Count(ctx context.Context) result.Result[int64] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return result.Success(int64(len(m.users)))
}

func (m *memoryUsers) CountByRoleID(ctx context.Context, roleID string) result.Result[int64] {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, u := range m.users {
		if u.Role != nil && u.Role.ID == roleID {
			n++
		}
	}
	return result.Success(n)
}

func TestService_Authenticate_ConcurrentFirstSignInsPromoteOne(t *testing.T) {
	users := &memoryUsers{users: map[string]*entities.User{}}
	roles := &mocks.RoleRepository{}
	admin := entities.NewRole("role-admin", entities.AdminRoleName, entities.AllPermissions)
	roles.On("FindByName", mock.Anything, entities.AdminRoleName).Return(result.Success(admin))

	verifier := NewTokenVerifier(testSecret, "")
	service := NewService(users, roles, verifier, "")

	const signIns = 5
	tokens := make([]string, signIns)
	for i := range tokens {
		token, err := verifier.Issue(fmt.Sprintf("user-%d", i), "", nil, time.Hour)
		require.NoError(t, err)
		tokens[i] = token
	}

	var wg sync.WaitGroup
	for _, token := range tokens {
		wg.Add(1)
		go func(token string) {
			defer wg.Done()
			res := service.Authenticate(context.Background(), token, "")
			assert.True(t, res.IsSuccess())
		}(token)
	}
	wg.Wait()

	assert.Equal(t, int64(1), users.CountByRoleID(context.Background(), admin.ID).Value())
	assert.Equal(t, int64(signIns), users.Count(context.Background()).Value())
}
