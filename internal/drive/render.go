package drive

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format selects the rendering of gateway results.
type Format string

const (
	// FormatMarkdown renders human-readable markdown (the default).
	FormatMarkdown Format = "markdown"

	// FormatJSON renders the projection as indented JSON.
	FormatJSON Format = "json"
)

// ParseFormat parses a format parameter. An empty value selects
// markdown; anything other than the two known formats is an error.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", string(FormatMarkdown):
		return FormatMarkdown, nil
	case string(FormatJSON):
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be 'markdown' or 'json'", s)
	}
}

// RenderFile renders a single file's metadata in the given format.
func RenderFile(info *FileInfo, format Format) (string, error) {
	if format == FormatJSON {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to render file info: %w", err)
		}
		return string(data), nil
	}

	return fmt.Sprintf(`## %s
**ID**: %s
**Type**: %s
**Size**: %s
**Created**: %s
**Modified**: %s
**Web Link**: %s
`,
		orDefault(info.Name, "Unnamed"),
		info.ID,
		orDefault(info.MimeType, "unknown"),
		humanSize(info.Size),
		orDefault(info.CreatedTime, "Unknown"),
		orDefault(info.ModifiedTime, "Unknown"),
		orDefault(info.WebViewLink, "N/A"),
	), nil
}

// listEnvelope is the JSON shape for file listings.
type listEnvelope struct {
	Files []FileInfo `json:"files"`
	Count int        `json:"count"`
	Total int        `json:"total"`
}

// RenderFileList renders a list of files in the given format. For
// markdown the heading shows the shown count, and the total when it is
// known (non-zero).
func RenderFileList(files []FileInfo, format Format, total int) (string, error) {
	if files == nil {
		files = []FileInfo{}
	}

	if format == FormatJSON {
		data, err := json.MarshalIndent(listEnvelope{
			Files: files,
			Count: len(files),
			Total: total,
		}, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to render file list: %w", err)
		}
		return string(data), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Files (%d shown", len(files))
	if total > 0 {
		fmt.Fprintf(&b, ", %d total", total)
	}
	b.WriteString(")\n\n")

	for _, f := range files {
		fmt.Fprintf(&b, "- **%s** (`%s`)\n", orDefault(f.Name, "Unnamed"), orDefault(f.ID, "N/A"))
		fmt.Fprintf(&b, "  - Type: %s\n", orDefault(f.MimeType, "unknown"))
		fmt.Fprintf(&b, "  - Modified: %s\n\n", orDefault(f.ModifiedTime, "Unknown"))
	}

	return b.String(), nil
}

// PaginationInstruction returns the cursor passthrough appended to
// listings that have another page. Empty when there is no next page.
func PaginationInstruction(nextPageToken string) string {
	if nextPageToken == "" {
		return ""
	}
	return fmt.Sprintf("\n**Next Page Token**: %s\nUse this token in the `page_token` parameter to get the next page of results.\n", nextPageToken)
}

// humanSize converts a digits-as-text byte count to megabytes with two
// decimals. Missing sizes render as N/A; non-numeric values pass
// through unchanged.
func humanSize(size string) string {
	if size == "" {
		return "N/A"
	}
	var bytes int64
	for _, r := range size {
		if r < '0' || r > '9' {
			return size
		}
		bytes = bytes*10 + int64(r-'0')
	}
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
