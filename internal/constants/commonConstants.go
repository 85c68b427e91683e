package constants

type APIStatus string

const (
	APIStatusSuccess APIStatus = "success"
	APIStatusError   APIStatus = "error"
)

// Error codes surfaced to clients
const (
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeNoResults  = "NO_RESULTS"
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeRateLimit  = "RATE_LIMITED"
	ErrCodeNotFound   = "NOT_FOUND"
)
