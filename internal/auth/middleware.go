package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/http/respond"
	"github.com/homebranch/server/internal/result"
)

// ContextKeyUser holds the authenticated *entities.User.
const ContextKeyUser = "auth_user"

var errTooManyAttempts = result.NewFailure(respond.CodeTooManyRequests, "Too many failed authentication attempts")

// Middleware handles authentication for HTTP requests.
type Middleware struct {
	service    *Service
	limiter    *RateLimiter
	cookieName string
}

// NewMiddleware creates a new authentication middleware. limiter may be nil.
func NewMiddleware(service *Service, limiter *RateLimiter, cookieName string) *Middleware {
	if cookieName == "" {
		cookieName = "access_token"
	}
	return &Middleware{
		service:    service,
		limiter:    limiter,
		cookieName: cookieName,
	}
}

// Handler returns a Gin middleware that rejects unauthenticated requests
// and stores the caller in the context.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if m.limiter != nil {
			if allowed, retryAfter := m.limiter.Allow(ip); !allowed {
				c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
				respond.Failure(c, errTooManyAttempts)
				return
			}
		}

		token := m.extractToken(c)
		if token == "" {
			respond.Failure(c, ErrUnauthorized)
			return
		}

		res := m.service.Authenticate(c.Request.Context(), token, ip)
		if res.IsFailure() {
			if m.limiter != nil && res.Failure().Code() == result.CodeUnauthorized {
				m.limiter.RecordFailure(ip)
			}
			respond.Failure(c, res.Failure())
			return
		}
		if m.limiter != nil {
			m.limiter.RecordSuccess(ip)
		}

		c.Set(ContextKeyUser, res.Value())
		c.Next()
	}
}

// extractToken reads the access token cookie, falling back to a Bearer
// Authorization header.
func (m *Middleware) extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie != "" {
		return cookie
	}
	return bearerToken(c.Request)
}

func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequirePermissions returns a middleware that requires the caller's role
// to grant every permission in perms.
func (m *Middleware) RequirePermissions(perms ...entities.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			respond.Failure(c, ErrUnauthorized)
			return
		}
		for _, p := range perms {
			if !user.HasPermission(p) {
				respond.Failure(c, entities.ErrInsufficientPerms)
				return
			}
		}
		c.Next()
	}
}

// Helper functions to extract auth data from Gin context

// CurrentUser returns the authenticated user, or nil.
func CurrentUser(c *gin.Context) *entities.User {
	if v, exists := c.Get(ContextKeyUser); exists {
		if user, ok := v.(*entities.User); ok {
			return user
		}
	}
	return nil
}

// GetUserID returns the authenticated user's ID, or "".
func GetUserID(c *gin.Context) string {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return ""
}

// GetRoleName returns the name of the authenticated user's role, or "".
func GetRoleName(c *gin.Context) string {
	if user := CurrentUser(c); user != nil && user.Role != nil {
		return user.Role.Name
	}
	return ""
}
