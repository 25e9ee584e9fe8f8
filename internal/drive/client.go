// Package drive provides a typed gateway to the Google Drive API for
// event-planning documents. Every operation applies a fixed per-call
// timeout and classifies failures into the Kind taxonomy; credentials
// are injected at construction, never read from the environment here.
package drive

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/plannery/eventkit/internal/logging"
)

// requestTimeout bounds every Drive API call.
const requestTimeout = 30 * time.Second

// listFields is the projection requested for listings.
const listFields = "nextPageToken, files(id, name, mimeType, size, createdTime, modifiedTime, webViewLink)"

// detailFields is the projection requested for single-file lookups.
const detailFields = "id, name, mimeType, size, createdTime, modifiedTime, webViewLink, webContentLink, description, parents, owners, permissions"

// searchFields is the projection requested for name searches.
const searchFields = "files(id, name, mimeType, modifiedTime, webViewLink)"

// Config holds the settings for constructing a Client.
type Config struct {
	// AccessToken is the bearer token used for all API calls.
	AccessToken string

	// Endpoint overrides the API base URL. Used by tests; leave empty
	// for the real service.
	Endpoint string
}

// Client wraps the Google Drive service for event document management.
type Client struct {
	service *drive.Service
}

// NewClient creates a Drive client with the given configuration.
// An empty access token fails immediately with a missing-credential
// error, before any network activity.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.AccessToken == "" {
		return nil, &Error{Kind: KindMissingCredential}
	}

	slog.Debug("creating drive client",
		logging.Service("drive"),
		slog.String("token", logging.SanitizeToken(cfg.AccessToken)))

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
	opts := []option.ClientOption{option.WithTokenSource(ts)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{service: service}, nil
}

// ListFiles lists files matching the given options. The caller's query
// and folder filter are AND-combined with an implicit trashed=false.
func (c *Client) ListFiles(ctx context.Context, opts ListOptions) (*ListPage, error) {
	limit := opts.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 1 || limit > MaxListLimit {
		return nil, fmt.Errorf("limit must be between 1 and %d", MaxListLimit)
	}

	var queryParts []string
	if opts.Query != "" {
		queryParts = append(queryParts, opts.Query)
	}
	if opts.FolderID != "" {
		queryParts = append(queryParts, fmt.Sprintf("'%s' in parents", escapeQueryValue(opts.FolderID)))
	}
	queryParts = append(queryParts, "trashed=false")

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	call := c.service.Files.List().
		Context(ctx).
		Q(strings.Join(queryParts, " and ")).
		PageSize(limit).
		Fields(googleapi.Field(listFields))

	if opts.PageToken != "" {
		call = call.PageToken(opts.PageToken)
	}

	result, err := call.Do()
	if err != nil {
		return nil, wrapError(err)
	}

	page := &ListPage{
		Files:         make([]FileInfo, 0, len(result.Files)),
		NextPageToken: result.NextPageToken,
	}
	for _, f := range result.Files {
		page.Files = append(page.Files, convertFileInfo(f))
	}

	return page, nil
}

// GetFile retrieves the full metadata for a single file.
func (c *Client) GetFile(ctx context.Context, fileID string) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("file ID is required")
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	f, err := c.service.Files.Get(fileID).
		Context(ctx).
		Fields(googleapi.Field(detailFields)).
		Do()
	if err != nil {
		return nil, wrapError(err)
	}

	info := convertFileInfo(f)
	info.WebContentLink = f.WebContentLink
	info.Description = f.Description
	info.Parents = f.Parents
	for _, owner := range f.Owners {
		info.Owners = append(info.Owners, Owner{
			DisplayName:  owner.DisplayName,
			EmailAddress: owner.EmailAddress,
		})
	}
	for _, perm := range f.Permissions {
		info.Permissions = append(info.Permissions, Permission{
			ID:           perm.Id,
			Type:         perm.Type,
			Role:         perm.Role,
			EmailAddress: perm.EmailAddress,
		})
	}

	return &info, nil
}

// CreateFolder creates a folder, optionally inside a parent folder.
func (c *Client) CreateFolder(ctx context.Context, name, parentFolderID string) (*FileInfo, error) {
	if err := validateName(name, "folder name"); err != nil {
		return nil, err
	}

	metadata := &drive.File{
		Name:     name,
		MimeType: FolderMimeType,
	}
	if parentFolderID != "" {
		metadata.Parents = []string{parentFolderID}
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	f, err := c.service.Files.Create(metadata).
		Context(ctx).
		Fields("id, name, mimeType, webViewLink").
		Do()
	if err != nil {
		return nil, wrapError(err)
	}

	info := convertFileInfo(f)
	return &info, nil
}

// UploadFile uploads text content as a new file. The client library
// sends metadata and content as a single multipart request to the
// upload endpoint.
func (c *Client) UploadFile(ctx context.Context, opts UploadOptions) (*FileInfo, error) {
	if err := validateName(opts.Name, "file name"); err != nil {
		return nil, err
	}
	mimeType := opts.MimeType
	if mimeType == "" {
		mimeType = "text/plain"
	}

	metadata := &drive.File{
		Name:     opts.Name,
		MimeType: mimeType,
	}
	if opts.ParentFolderID != "" {
		metadata.Parents = []string{opts.ParentFolderID}
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	f, err := c.service.Files.Create(metadata).
		Context(ctx).
		Media(strings.NewReader(opts.Content), googleapi.ContentType(mimeType)).
		Fields("id, name, mimeType, webViewLink").
		Do()
	if err != nil {
		return nil, wrapError(err)
	}

	info := convertFileInfo(f)
	return &info, nil
}

// DeleteFile permanently deletes a file. Success is indicated by the
// API returning no error; the delete call has no response body.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if fileID == "" {
		return fmt.Errorf("file ID is required")
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := c.service.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

// SearchFiles finds files whose names contain the search term,
// excluding trashed files.
func (c *Client) SearchFiles(ctx context.Context, term string, limit int64) ([]FileInfo, error) {
	if term == "" {
		return nil, fmt.Errorf("search term is required")
	}
	if limit == 0 {
		limit = DefaultSearchLimit
	}
	if limit < 1 || limit > MaxSearchLimit {
		return nil, fmt.Errorf("limit must be between 1 and %d", MaxSearchLimit)
	}

	query := fmt.Sprintf("name contains '%s' and trashed=false", escapeQueryValue(term))

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	result, err := c.service.Files.List().
		Context(ctx).
		Q(query).
		PageSize(limit).
		Fields(googleapi.Field(searchFields)).
		Do()
	if err != nil {
		return nil, wrapError(err)
	}

	files := make([]FileInfo, 0, len(result.Files))
	for _, f := range result.Files {
		files = append(files, convertFileInfo(f))
	}

	return files, nil
}

// convertFileInfo converts a Drive API file to the gateway projection.
func convertFileInfo(f *drive.File) FileInfo {
	info := FileInfo{
		ID:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		CreatedTime:  f.CreatedTime,
		ModifiedTime: f.ModifiedTime,
		WebViewLink:  f.WebViewLink,
	}
	// The API omits size for folders and native Google documents
	if f.Size > 0 {
		info.Size = strconv.FormatInt(f.Size, 10)
	}
	return info
}

// validateName checks the 1-255 character bound shared by folder
// creation and upload.
func validateName(name, label string) error {
	if name == "" {
		return fmt.Errorf("%s is required", label)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%s must be at most %d characters", label, MaxNameLength)
	}
	return nil
}

// escapeQueryValue escapes a value for interpolation into a Drive query
// expression. Single quotes delimit string literals in the query syntax,
// so unescaped input could alter the query.
func escapeQueryValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
