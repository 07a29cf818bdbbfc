package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lumastory/lumastory/internal/infrastructure/auth"
	"github.com/lumastory/lumastory/internal/shared/constants"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/utils"
)

type tokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	jwtService tokenVerifier
	cookieName string
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService tokenVerifier, cookieName string, logger logger.Interface) *AuthMiddleware {
	if cookieName == "" {
		cookieName = "access_token"
	}
	return &AuthMiddleware{
		jwtService: jwtService,
		cookieName: cookieName,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := m.extractToken(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth sets the user when a valid token is present and otherwise
// lets the request through anonymously.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := m.extractToken(c)
		if ok && token != "" {
			if claims, err := m.jwtService.Verify(token); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// extractToken prefers the session cookie and falls back to the bearer header.
// ok is false when an Authorization header is present but malformed.
func (m *AuthMiddleware) extractToken(c *gin.Context) (token string, ok bool) {
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie != "" {
		return cookie, true
	}

	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		return "", true
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(constants.ContextKeyUserID, claims.UserID)
	c.Set(constants.ContextKeyUserRole, string(claims.Role))
}
