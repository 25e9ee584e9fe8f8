package drive

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/api/googleapi"
)

func TestWrapErrorNil(t *testing.T) {
	if err := wrapError(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestWrapErrorStatusCodes(t *testing.T) {
	tests := []struct {
		code    int
		kind    Kind
		message string
	}{
		{401, KindAuthentication, "Authentication failed. Please check your access token."},
		{403, KindPermission, "Permission denied. Check that you have access to this resource."},
		{404, KindNotFound, "Resource not found. Please verify the file/folder ID."},
		{429, KindRateLimited, "Rate limit exceeded. Please wait before making more requests."},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.code), func(t *testing.T) {
			err := wrapError(&googleapi.Error{Code: tt.code, Message: "detail"})

			var gerr *Error
			if !errors.As(err, &gerr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if gerr.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", gerr.Kind, tt.kind)
			}
			if gerr.Message() != tt.message {
				t.Errorf("message = %q, want %q", gerr.Message(), tt.message)
			}
		})
	}
}

func TestWrapErrorRequestFailed(t *testing.T) {
	err := wrapError(&googleapi.Error{Code: 500, Message: "backend error"})

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gerr.Kind != KindRequestFailed {
		t.Errorf("kind = %v, want KindRequestFailed", gerr.Kind)
	}
	if gerr.Message() != "API request failed: backend error" {
		t.Errorf("unexpected message: %q", gerr.Message())
	}
}

func TestWrapErrorTimeout(t *testing.T) {
	err := wrapError(fmt.Errorf("Get \"x\": %w", context.DeadlineExceeded))

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gerr.Kind != KindTimeout {
		t.Errorf("kind = %v, want KindTimeout", gerr.Kind)
	}
	if gerr.Message() != "Request timed out. Please try again." {
		t.Errorf("unexpected message: %q", gerr.Message())
	}
}

func TestWrapErrorUnexpected(t *testing.T) {
	err := wrapError(errors.New("connection reset"))

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gerr.Kind != KindUnexpected {
		t.Errorf("kind = %v, want KindUnexpected", gerr.Kind)
	}
	if gerr.Message() != "Unexpected error: connection reset" {
		t.Errorf("unexpected message: %q", gerr.Message())
	}
}

func TestWrapErrorPassesThroughClassified(t *testing.T) {
	orig := &Error{Kind: KindMissingCredential}
	err := wrapError(fmt.Errorf("wrapped: %w", orig))

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gerr.Kind != KindMissingCredential {
		t.Errorf("kind = %v, want KindMissingCredential", gerr.Kind)
	}
}

func TestMissingCredentialMessage(t *testing.T) {
	e := &Error{Kind: KindMissingCredential}
	want := "GOOGLE_DRIVE_ACCESS_TOKEN environment variable not set"
	if e.Message() != want {
		t.Errorf("message = %q, want %q", e.Message(), want)
	}
}
