package drive

// FolderMimeType is the MIME type Google Drive uses for folders.
const FolderMimeType = "application/vnd.google-apps.folder"

// FileInfo is the projection of a Drive file returned by the gateway.
// Size and the timestamps are kept as the verbatim strings the API
// returned so JSON rendering round-trips the upstream record unmodified.
type FileInfo struct {
	// ID is the unique file identifier
	ID string `json:"id"`

	// Name is the file name
	Name string `json:"name"`

	// MimeType is the MIME type of the file
	MimeType string `json:"mimeType"`

	// Size is the file size in bytes as a decimal string; empty for
	// folders and native Google documents
	Size string `json:"size,omitempty"`

	// CreatedTime is the RFC 3339 creation timestamp
	CreatedTime string `json:"createdTime,omitempty"`

	// ModifiedTime is the RFC 3339 last-modification timestamp
	ModifiedTime string `json:"modifiedTime,omitempty"`

	// WebViewLink is the URL for viewing the file in a browser
	WebViewLink string `json:"webViewLink,omitempty"`

	// WebContentLink is the URL for downloading the file content
	// (detail view only; absent for folders and native Google documents)
	WebContentLink string `json:"webContentLink,omitempty"`

	// Description is the file description (detail view only)
	Description string `json:"description,omitempty"`

	// Parents are the parent folder IDs (detail view only)
	Parents []string `json:"parents,omitempty"`

	// Owners are the file owners (detail view only)
	Owners []Owner `json:"owners,omitempty"`

	// Permissions are the access grants on the file (detail view only)
	Permissions []Permission `json:"permissions,omitempty"`
}

// Owner identifies a file owner.
type Owner struct {
	// DisplayName is the owner's display name
	DisplayName string `json:"displayName,omitempty"`

	// EmailAddress is the owner's email address
	EmailAddress string `json:"emailAddress,omitempty"`
}

// Permission is an access grant on a file.
type Permission struct {
	// ID is the permission identifier
	ID string `json:"id,omitempty"`

	// Type is the grantee type (user, group, domain, anyone)
	Type string `json:"type,omitempty"`

	// Role is the granted role (owner, writer, reader, ...)
	Role string `json:"role,omitempty"`

	// EmailAddress is the grantee email for user and group grants
	EmailAddress string `json:"emailAddress,omitempty"`
}

// ListPage is one page of a file listing.
type ListPage struct {
	// Files are the files on this page
	Files []FileInfo `json:"files"`

	// NextPageToken is the cursor for the next page; empty on the last page
	NextPageToken string `json:"nextPageToken,omitempty"`
}

// ListOptions controls file listing.
type ListOptions struct {
	// Query is an optional Drive query expression; combined with the
	// implicit trashed filter
	Query string

	// FolderID restricts results to children of this folder
	FolderID string

	// Limit is the maximum number of files to return (1-100, default 20)
	Limit int64

	// PageToken is the cursor from a previous page
	PageToken string
}

// UploadOptions describes a file to upload.
type UploadOptions struct {
	// Name is the file name (required, 1-255 characters)
	Name string

	// Content is the file content
	Content string

	// MimeType is the content MIME type (default "text/plain")
	MimeType string

	// ParentFolderID is the optional destination folder
	ParentFolderID string
}

// Validation bounds for listing and searching.
const (
	DefaultListLimit   = 20
	MaxListLimit       = 100
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
	MaxNameLength      = 255
)
