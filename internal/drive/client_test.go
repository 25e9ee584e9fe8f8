package drive

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), Config{
		AccessToken: "test-token",
		Endpoint:    server.URL + "/",
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestNewClientMissingCredential(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T (%v)", err, err)
	}
	if gerr.Kind != KindMissingCredential {
		t.Errorf("kind = %v, want KindMissingCredential", gerr.Kind)
	}
}

func TestListFilesQueryComposition(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"files": [{"id": "f1", "name": "plan.txt", "mimeType": "text/plain", "size": "10"}], "nextPageToken": "tok2"}`))
	}))

	page, err := client.ListFiles(context.Background(), ListOptions{
		Query:    "name contains 'event'",
		FolderID: "folder9",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "name contains 'event' and 'folder9' in parents and trashed=false"
	if gotQuery != want {
		t.Errorf("query = %q, want %q", gotQuery, want)
	}
	if len(page.Files) != 1 || page.Files[0].ID != "f1" {
		t.Errorf("unexpected files: %+v", page.Files)
	}
	if page.Files[0].Size != "10" {
		t.Errorf("size = %q, want %q", page.Files[0].Size, "10")
	}
	if page.NextPageToken != "tok2" {
		t.Errorf("next page token = %q, want %q", page.NextPageToken, "tok2")
	}
}

func TestListFilesImplicitTrashedFilter(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"files": []}`))
	}))

	if _, err := client.ListFiles(context.Background(), ListOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "trashed=false" {
		t.Errorf("query = %q, want %q", gotQuery, "trashed=false")
	}
}

func TestListFilesLimitValidation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made for invalid limits")
	}))

	for _, limit := range []int64{-1, 101, 1000} {
		if _, err := client.ListFiles(context.Background(), ListOptions{Limit: limit}); err == nil {
			t.Errorf("expected error for limit %d", limit)
		}
	}
}

func TestListFilesDefaultLimit(t *testing.T) {
	var gotPageSize string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPageSize = r.URL.Query().Get("pageSize")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"files": []}`))
	}))

	if _, err := client.ListFiles(context.Background(), ListOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPageSize != "20" {
		t.Errorf("pageSize = %q, want %q", gotPageSize, "20")
	}
}

func TestGetFileDetail(t *testing.T) {
	var gotFields string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/files/abc123") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotFields = r.URL.Query().Get("fields")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "abc123",
			"name": "venue.pdf",
			"mimeType": "application/pdf",
			"size": "1048576",
			"webViewLink": "https://drive.example.com/view/abc123",
			"webContentLink": "https://drive.example.com/download/abc123",
			"description": "venue contract",
			"parents": ["root"],
			"owners": [{"displayName": "Event Team", "emailAddress": "team@example.com"}],
			"permissions": [{"id": "p1", "type": "user", "role": "owner"}]
		}`))
	}))

	info, err := client.GetFile(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotFields, "webContentLink") {
		t.Errorf("requested fields omit webContentLink: %q", gotFields)
	}
	if info.WebContentLink != "https://drive.example.com/download/abc123" {
		t.Errorf("webContentLink = %q", info.WebContentLink)
	}
	if info.Description != "venue contract" {
		t.Errorf("description = %q", info.Description)
	}
	if len(info.Owners) != 1 || info.Owners[0].DisplayName != "Event Team" {
		t.Errorf("unexpected owners: %+v", info.Owners)
	}
	if len(info.Permissions) != 1 || info.Permissions[0].Role != "owner" {
		t.Errorf("unexpected permissions: %+v", info.Permissions)
	}
	if info.Size != "1048576" {
		t.Errorf("size = %q, want %q", info.Size, "1048576")
	}
}

func TestGetFileNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"code": 404, "message": "File not found"}}`))
	}))

	_, err := client.GetFile(context.Background(), "missing")

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T (%v)", err, err)
	}
	if gerr.Kind != KindNotFound {
		t.Errorf("kind = %v, want KindNotFound", gerr.Kind)
	}
}

func TestCreateFolderValidation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made for invalid names")
	}))

	if _, err := client.CreateFolder(context.Background(), "", ""); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := client.CreateFolder(context.Background(), strings.Repeat("x", 256), ""); err == nil {
		t.Error("expected error for name over 255 characters")
	}
}

func TestUploadFileValidation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made for invalid names")
	}))

	if _, err := client.UploadFile(context.Background(), UploadOptions{Content: "body"}); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := client.UploadFile(context.Background(), UploadOptions{
		Name:    strings.Repeat("y", 256),
		Content: "body",
	}); err == nil {
		t.Error("expected error for name over 255 characters")
	}
}

func TestDeleteFile(t *testing.T) {
	var gotMethod string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.DeleteFile(context.Background(), "abc123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method = %q, want DELETE", gotMethod)
	}
}

func TestDeleteFilePermissionDenied(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": 403, "message": "Insufficient permissions"}}`))
	}))

	err := client.DeleteFile(context.Background(), "abc123")

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T (%v)", err, err)
	}
	if gerr.Kind != KindPermission {
		t.Errorf("kind = %v, want KindPermission", gerr.Kind)
	}
}

func TestSearchFilesQueryEscaping(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"files": []}`))
	}))

	if _, err := client.SearchFiles(context.Background(), "bob's list", 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `name contains 'bob\'s list' and trashed=false`
	if gotQuery != want {
		t.Errorf("query = %q, want %q", gotQuery, want)
	}
}

func TestSearchFilesLimitValidation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made for invalid limits")
	}))

	if _, err := client.SearchFiles(context.Background(), "term", 51); err == nil {
		t.Error("expected error for limit over 50")
	}
	if _, err := client.SearchFiles(context.Background(), "", 10); err == nil {
		t.Error("expected error for empty search term")
	}
}
