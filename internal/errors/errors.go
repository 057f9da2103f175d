package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a lexgate error code.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // 400
	ErrNotFound         ErrorCode = "NOT_FOUND"         // 404
	ErrPayloadTooLarge  ErrorCode = "PAYLOAD_TOO_LARGE" // 413
	ErrUnsupportedMedia ErrorCode = "UNSUPPORTED_MEDIA" // 415
	ErrNotAContract     ErrorCode = "NOT_A_CONTRACT"    // 422
	ErrInternal         ErrorCode = "INTERNAL"          // 500
)

// GateError represents a structured error with code, status, and details.
type GateError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *GateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *GateError {
	return &GateError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing resource.
func NewNotFound(identifier string) *GateError {
	return &GateError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewPayloadTooLarge creates a 413 error when document text exceeds the size limit.
func NewPayloadTooLarge(max, actual int) *GateError {
	return &GateError{
		Code:    ErrPayloadTooLarge,
		Status:  413,
		Message: fmt.Sprintf("document exceeds maximum size: %d chars (max %d)", actual, max),
		Details: map[string]any{"max_chars": max, "actual_chars": actual},
	}
}

// NewUnsupportedMedia creates a 415 error for content the service cannot accept.
func NewUnsupportedMedia(contentType string) *GateError {
	return &GateError{
		Code:    ErrUnsupportedMedia,
		Status:  415,
		Message: fmt.Sprintf("unsupported content type: %s (expected text/plain or application/json)", contentType),
		Details: map[string]any{"content_type": contentType},
	}
}

// NewNotAContract creates a 422 error when the admission gate rejects a document.
// The verdict payload rides along in Details so callers can surface the evidence
// and offer an override.
func NewNotAContract(reason string, verdict any) *GateError {
	return &GateError{
		Code:    ErrNotAContract,
		Status:  422,
		Message: reason,
		Details: map[string]any{
			"verdict": verdict,
			"tip":     "Upload a formal contract (NDA, MSA, SOW, etc.). To override, set allow_non_legal=true.",
		},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
// The message stays generic; the underlying error is kept in Details
// for server-side logging only.
func NewInternal(err error) *GateError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &GateError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
	}
}

// Is checks if an error is (or wraps) a GateError with the given code.
func Is(err error, code ErrorCode) bool {
	var gErr *GateError
	if stderrors.As(err, &gErr) {
		return gErr.Code == code
	}
	return false
}
