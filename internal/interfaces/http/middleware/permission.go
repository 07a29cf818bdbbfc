package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumastory/lumastory/internal/domain/user"
	"github.com/lumastory/lumastory/internal/shared/constants"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/utils"
)

type permissionEnforcer interface {
	Enforce(role string, resource string, action string) (bool, error)
}

type userLookup interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// PermissionMiddleware authorizes with the stored role, not the token claim,
// so a demotion takes effect once the user cache entry expires or is invalidated.
type PermissionMiddleware struct {
	enforcer permissionEnforcer
	users    userLookup
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer permissionEnforcer, users userLookup, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		users:    users,
		logger:   logger,
	}
}

func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(constants.ContextKeyUserID)
		if userID == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, constants.ErrMsgUnauthorized)
			c.Abort()
			return
		}

		u, err := m.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			m.logger.Errorw("failed to load user for permission check", "error", err, "user_id", userID)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}
		if u == nil {
			m.logger.Warnw("permission denied for unknown user", "user_id", userID, "resource", resource)
			utils.ErrorResponse(c, http.StatusForbidden, constants.ErrMsgForbidden)
			c.Abort()
			return
		}

		role := u.Role().String()
		c.Set(constants.ContextKeyUserRole, role)

		allowed, err := m.enforcer.Enforce(role, resource, action)
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied", "user_id", userID, "role", role, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
