package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Content Types
	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// PayPal webhook transmission headers
	HeaderPayPalTransmissionID   = "paypal-transmission-id"
	HeaderPayPalTransmissionTime = "paypal-transmission-time"
	HeaderPayPalTransmissionSig  = "paypal-transmission-sig"
	HeaderPayPalCertURL          = "paypal-cert-url"
	HeaderPayPalAuthAlgo         = "paypal-auth-algo"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgConflict            = "Resource already exists"
)
