package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Activity log uses limit/offset rather than pages
	DefaultActivityLimit  = 50
	MaxActivityLimit      = 200
	MaxActivityExportRows = 5000

	// HTTP Headers
	HeaderAuthorization   = "Authorization"
	HeaderXRequestID      = "X-Request-ID"
	HeaderCronSecret      = "X-Cron-Secret"
	HeaderStripeSignature = "Stripe-Signature"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Authentication required"
	ErrMsgForbidden           = "Access forbidden"
)
