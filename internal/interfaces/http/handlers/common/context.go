// Package common provides shared HTTP handler utilities.
package common

import (
	"github.com/gin-gonic/gin"

	appaudit "github.com/lumastory/lumastory/internal/application/audit"
	"github.com/lumastory/lumastory/internal/shared/constants"
	"github.com/lumastory/lumastory/internal/shared/errors"
)

// CurrentUserID returns the authenticated user id set by the auth middleware.
func CurrentUserID(c *gin.Context) (string, error) {
	userID := c.GetString(constants.ContextKeyUserID)
	if userID == "" {
		return "", errors.NewUnauthorizedError(constants.ErrMsgUnauthorized)
	}
	return userID, nil
}

// OptionalUserID returns the user id or "" for anonymous callers.
func OptionalUserID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUserID)
}

// AdminActor describes the authenticated admin for audit entries.
func AdminActor(c *gin.Context) (appaudit.Actor, error) {
	adminID, err := CurrentUserID(c)
	if err != nil {
		return appaudit.Actor{}, err
	}
	return appaudit.Actor{
		AdminID:   adminID,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}, nil
}

// PathID returns a required path parameter.
func PathID(c *gin.Context, name string) (string, error) {
	id := c.Param(name)
	if id == "" {
		return "", errors.NewValidationError(name + " is required")
	}
	return id, nil
}
