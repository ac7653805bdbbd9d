package dto

import (
	"net/http"
	"strings"
)

// Transport error codes. Ledger rejections carry their domain code as is.
const (
	ErrCodeInternal             = "INTERNAL_ERROR"
	ErrCodeBadRequest           = "BAD_REQUEST"
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeUnauthenticated      = "UNAUTHENTICATED"
	ErrCodeTokenExpired         = "TOKEN_EXPIRED"
	ErrCodeTokenRevoked         = "TOKEN_REVOKED"
	ErrCodeRateLimited          = "RATE_LIMITED"
	ErrCodeRequestTooLarge      = "REQUEST_TOO_LARGE"
	ErrCodeIdempotencyKeyReused = "IDEMPOTENCY_KEY_REUSED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:             http.StatusInternalServerError,
	ErrCodeBadRequest:           http.StatusBadRequest,
	ErrCodeValidation:           http.StatusBadRequest,
	ErrCodeUnauthenticated:      http.StatusUnauthorized,
	ErrCodeTokenExpired:         http.StatusUnauthorized,
	ErrCodeTokenRevoked:         http.StatusUnauthorized,
	ErrCodeRateLimited:          http.StatusTooManyRequests,
	ErrCodeRequestTooLarge:      http.StatusRequestEntityTooLarge,
	ErrCodeIdempotencyKeyReused: http.StatusConflict,

	// Validation -> 400
	"INVALID_FIELD_LENGTH": http.StatusBadRequest,
	"FIELD_IS_EMPTY":       http.StatusBadRequest,
	"EMOJIS_NOT_ALLOWED":   http.StatusBadRequest,
	"INCORRECT_PRICING":    http.StatusBadRequest,
	"INVALID_FEE":          http.StatusBadRequest,
	"INVALID_AMOUNT":       http.StatusBadRequest,
	"INVALID_AUTHOR":       http.StatusBadRequest,
	"INVALID_VERDICT":      http.StatusBadRequest,
	"INVALID_IDENTITY":     http.StatusBadRequest,
	"INVALID_INPUT":        http.StatusBadRequest,

	// Authorization -> 403
	"UNAUTHORIZED":         http.StatusForbidden,
	"PUBLISHER_CANT_BUY":   http.StatusForbidden,
	"PURCHASE_REQUIRED":    http.StatusForbidden,
	"INVALID_ACHIEVEMENT":  http.StatusForbidden,
	"UNKNOWN_BADGE":        http.StatusForbidden,
	"TOO_MANY_ADMINS":      http.StatusForbidden,
	"ADMIN_ALREADY_EXISTS": http.StatusForbidden,

	// Arithmetic -> 422
	"MATH_OVERFLOW":        http.StatusUnprocessableEntity,
	"INSUFFICIENT_BALANCE": http.StatusUnprocessableEntity,

	// Consistency -> 409, lookups -> 404
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"NOT_FOUND":            http.StatusNotFound,
}

// GetHTTPStatus returns the HTTP status for an error code. Unlisted codes
// ending in _NOT_FOUND are 404, anything else is 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasSuffix(code, "_NOT_FOUND") {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
