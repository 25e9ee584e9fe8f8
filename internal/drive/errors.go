package drive

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// Kind classifies a gateway failure.
type Kind int

const (
	// KindUnexpected covers failures with no more specific classification.
	KindUnexpected Kind = iota

	// KindMissingCredential means no access token was configured.
	KindMissingCredential

	// KindAuthentication means the API rejected the access token (HTTP 401).
	KindAuthentication

	// KindPermission means the caller lacks access to the resource (HTTP 403).
	KindPermission

	// KindNotFound means the file or folder does not exist (HTTP 404).
	KindNotFound

	// KindRateLimited means the API throttled the request (HTTP 429).
	KindRateLimited

	// KindRequestFailed covers other non-2xx API responses.
	KindRequestFailed

	// KindTimeout means the per-call deadline elapsed.
	KindTimeout
)

// Error is a classified gateway failure. Detail carries the upstream
// response body or wrapped error text where the message includes it.
type Error struct {
	Kind   Kind
	Detail string
}

// Message returns the user-facing description of the failure.
func (e *Error) Message() string {
	switch e.Kind {
	case KindMissingCredential:
		return "GOOGLE_DRIVE_ACCESS_TOKEN environment variable not set"
	case KindAuthentication:
		return "Authentication failed. Please check your access token."
	case KindPermission:
		return "Permission denied. Check that you have access to this resource."
	case KindNotFound:
		return "Resource not found. Please verify the file/folder ID."
	case KindRateLimited:
		return "Rate limit exceeded. Please wait before making more requests."
	case KindRequestFailed:
		return fmt.Sprintf("API request failed: %s", e.Detail)
	case KindTimeout:
		return "Request timed out. Please try again."
	default:
		return fmt.Sprintf("Unexpected error: %s", e.Detail)
	}
}

func (e *Error) Error() string {
	return e.Message()
}

// wrapError classifies an error from the Drive API into a gateway Error.
// A nil input returns nil.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Detail: err.Error()}
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401:
			return &Error{Kind: KindAuthentication, Detail: apiErr.Message}
		case 403:
			return &Error{Kind: KindPermission, Detail: apiErr.Message}
		case 404:
			return &Error{Kind: KindNotFound, Detail: apiErr.Message}
		case 429:
			return &Error{Kind: KindRateLimited, Detail: apiErr.Message}
		default:
			detail := apiErr.Message
			if detail == "" {
				detail = apiErr.Error()
			}
			return &Error{Kind: KindRequestFailed, Detail: detail}
		}
	}

	return &Error{Kind: KindUnexpected, Detail: err.Error()}
}
