package handlers

// API error codes returned in JSON { "code": "...", "message": "..." } for stable client handling.
const (
	ErrCodeNotFound         = "not_found"
	ErrCodeValidation       = "validation_failed"
	ErrCodeInvalidArgument  = "invalid_argument"
	ErrCodeBusinessRule     = "business_rule_violation"
	ErrCodeInvalidOperation = "invalid_operation"
	ErrCodeConflict         = "conflict"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeInternal         = "internal_error"
)
