package services

// Machine-readable codes for the expected, recoverable failure conditions.
// These are returned as structured results, never as process aborts.
const (
	CodeInvalidInput        = "invalid_input"
	CodeUnauthenticated     = "unauthenticated"
	CodeEmptyCart           = "empty_cart"
	CodeMissingShippingInfo = "missing_shipping_info"
	CodeRateLimitExceeded   = "rate_limit_exceeded"
)

// ServiceError carries an HTTP status, a taxonomy code, and a user-visible
// message from the service layer to the controllers.
type ServiceError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}
