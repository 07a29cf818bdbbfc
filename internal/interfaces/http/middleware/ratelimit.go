package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumastory/lumastory/internal/infrastructure/ratelimit"
	"github.com/lumastory/lumastory/internal/shared/constants"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/utils"
)

// RateLimiter keys requests by user id when authenticated and by client IP
// otherwise. Run it after OptionalAuth.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		logger:  logger,
	}
}

// Limit enforces rule within scope.
func (rl *RateLimiter) Limit(scope string, rule ratelimit.Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":ip:" + c.ClientIP()
		if userID := c.GetString(constants.ContextKeyUserID); userID != "" {
			key = scope + ":user:" + userID
		}

		result, err := rl.limiter.Allow(c.Request.Context(), key, rule)
		if err != nil {
			// an unavailable Redis must not take the endpoint down with it
			rl.logger.Warnw("rate limiter unavailable, allowing request", "scope", scope, "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(result.ResetAfter.Seconds()))))
			rl.logger.Infow("rate limit exceeded", "scope", scope, "key", key)
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
