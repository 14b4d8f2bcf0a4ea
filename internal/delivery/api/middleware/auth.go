package middleware

import (
	"strings"

	"shopkart/internal/delivery/api/response"
	"shopkart/internal/domain/entity"
	"shopkart/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextKeyUserID = "userID"
	contextKeyRole   = "role"

	// AccessTokenCookie is the cookie fallback consulted when no
	// Authorization header is present.
	AccessTokenCookie = "accessToken"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	codec service.TokenCodec
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(codec service.TokenCodec) *AuthMiddleware {
	return &AuthMiddleware{codec: codec}
}

// Authenticate validates the access token from the Authorization header or
// the access token cookie and stores the caller's identity on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Missing access token")
		}

		claims, err := m.codec.VerifyAccessToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid or expired token")
		}

		// Set user info on the context for handlers to use
		c.Set(contextKeyUserID, claims.UserID)
		c.Set(contextKeyRole, claims.Role)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the user has one of the
// given roles. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(allowed ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := GetUserRole(c)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: role information missing")
			}

			for _, want := range allowed {
				if role == want {
					return next(c)
				}
			}

			return response.Forbidden(c, "FORBIDDEN", "Permission denied: insufficient role")
		}
	}
}

// GetUserID returns the authenticated user's ID stored by Authenticate.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(contextKeyUserID).(uuid.UUID)

	return id, ok
}

// GetUserRole returns the authenticated user's role stored by Authenticate.
func GetUserRole(c echo.Context) (entity.Role, bool) {
	role, ok := c.Get(contextKeyRole).(entity.Role)

	return role, ok
}

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString != authHeader {
			return tokenString
		}

		return ""
	}

	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}

	return ""
}
