// Package handlers defines HTTP-layer error codes used across all API
// endpoints.
//
// These codes give clients a stable, machine-readable taxonomy that
// supplements human-readable messages. Handlers select the most specific
// matching code and pass it to fail() with the corresponding HTTP status.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "validation_error",
//	  "message": "field \"priority\": required field is missing"
//	}
package handlers

const (
	ErrCodeValidation       = "validation_error"
	ErrCodeUnauthorized     = "authentication_error"
	ErrCodeForbidden        = "access_denied"
	ErrCodeNotFound         = "not_found"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
