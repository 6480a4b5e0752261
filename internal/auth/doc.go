// Package auth authenticates API requests and enforces permissions.
//
// Identity is issued by an external provider as an HS256-signed JWT access
// token. It is read from the access_token cookie, or from an
// "Authorization: Bearer" header for API clients.
//
// # Configuration
//
//	JWT_ACCESS_SECRET=<shared secret>   # Required
//	JWT_ISSUER=<iss>                    # Optional issuer check
//	AUTH_COOKIE_NAME=access_token
//	AUTH_ADMIN_ROLE=admin               # Role given to the first user
//	CSRF_SECRET=<32 bytes>              # Enables CSRF protection for cookie auth
//
// # Usage
//
//	verifier := auth.NewTokenVerifier(cfg.Auth.JWTAccessSecret, cfg.Auth.JWTIssuer)
//	service := auth.NewService(userRepo, roleRepo, verifier, cfg.Auth.AdminRole)
//	mw := auth.NewMiddleware(service, limiter, cfg.Auth.CookieName)
//	api.Use(mw.Handler())
//	api.GET("/roles", mw.RequirePermissions(entities.PermissionManageRoles), handler)
//
// Extract the caller in handlers:
//
//	user := auth.CurrentUser(c)
package auth
