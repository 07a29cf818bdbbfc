package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumastory/lumastory/internal/shared/constants"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/utils"
)

// RequireCronSecret guards internal endpoints called by an external scheduler.
// With no secret configured every request is rejected.
func RequireCronSecret(secret string, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(constants.HeaderCronSecret)
		if secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			log.Warnw("rejected internal cron call", "path", c.Request.URL.Path, "client_ip", c.ClientIP())
			utils.ErrorResponse(c, http.StatusUnauthorized, constants.ErrMsgUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}
