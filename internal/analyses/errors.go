package analyses

import (
	"errors"
	"net/http"

	"github.com/claimcheck-io/claimcheck/internal/archive"
)

// Domain errors for analysis operations.
var (
	ErrNotFound     = errors.New("analysis not found")
	ErrDuplicate    = errors.New("analysis already exists")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrInvalidFile  = errors.New("invalid file")
	ErrPolicyType   = errors.New("policy file must be a .docx file")
	ErrArchiveType  = errors.New("invoice file must be a .zip file")
	ErrEmptyPolicy  = errors.New("policy document appears to be empty")
)

// MapHTTPStatus maps analysis domain errors to appropriate HTTP status codes.
// Malformed uploads, including archives with no eligible invoices, are
// client errors; workflow execution failures are server errors.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch {
	case errors.Is(err, ErrInvalidFile),
		errors.Is(err, ErrPolicyType),
		errors.Is(err, ErrArchiveType),
		errors.Is(err, ErrEmptyPolicy),
		errors.Is(err, archive.ErrUnreadable),
		errors.Is(err, archive.ErrNoInvoices):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
