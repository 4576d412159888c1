package middleware

import (
	"strings"

	"clearpass/internal/delivery/http/response"
	domainerrors "clearpass/internal/domain/errors"
	"clearpass/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyUserID    = "userID"
	ContextKeyIsPremium = "isPremium"
)

// AuthMiddleware provides middleware for JWT authentication and premium gating.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate is the core middleware function that validates the JWT access token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		if claims.UserID == "" {
			return response.Unauthorized(c, "INVALID_TOKEN", "User ID missing from token")
		}

		// Set user info on the context for handlers to use
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyIsPremium, claims.IsPremium)

		return next(c)
	}
}

// RequirePremium rejects requests from non-premium accounts.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequirePremium(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		isPremium, ok := c.Get(ContextKeyIsPremium).(bool)
		if !ok || !isPremium {
			return domainerrors.ErrPremiumRequired
		}

		return next(c)
	}
}
