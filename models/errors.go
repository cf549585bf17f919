package models

import "github.com/pkg/errors"

// Error kinds surfaced to API callers. Handlers wrap them with context,
// controllers unwrap with errors.Is to pick the HTTP status and kind tag.
var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrUpstreamFailure   = errors.New("upstream call failed")
	ErrMalformedDocument = errors.New("malformed pdf document")

	ErrSignatureMissing = errors.New("no manager signature found")
	ErrDownloadFailed   = errors.New("failed to download pdf")
	ErrUploadFailed     = errors.New("failed to upload modified pdf")
	ErrUpdateFailed     = errors.New("failed to update validation record")
)

// ErrorKind returns the wire tag for a known error kind, or "Internal".
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrInvalidInput):
		return "InvalidInput"
	case errors.Is(err, ErrPermissionDenied):
		return "PermissionDenied"
	case errors.Is(err, ErrUnauthenticated):
		return "Unauthenticated"
	case errors.Is(err, ErrSignatureMissing):
		return "SignatureMissing"
	case errors.Is(err, ErrDownloadFailed):
		return "DownloadFailed"
	case errors.Is(err, ErrUploadFailed):
		return "UploadFailed"
	case errors.Is(err, ErrUpdateFailed):
		return "UpdateFailed"
	case errors.Is(err, ErrMalformedDocument):
		return "MalformedDocument"
	case errors.Is(err, ErrUpstreamFailure):
		return "UpstreamFailure"
	}
	return "Internal"
}
