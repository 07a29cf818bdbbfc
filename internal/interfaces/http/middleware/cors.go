package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lumastory/lumastory/internal/shared/constants"
)

// CORS allows credentialed requests from the configured front-end origins.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", constants.HeaderAuthorization, constants.HeaderXRequestID},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", constants.HeaderXRequestID, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}

// SecurityHeaders sets conservative browser security headers.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
