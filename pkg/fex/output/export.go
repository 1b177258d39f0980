// Package output writes search results to disk as JSON documents.
package output

import (
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rmlane/fex/pkg/fex/explorer"
	"github.com/rmlane/fex/pkg/fex/types"
)

// jsonExport represents the full JSON export structure.
type jsonExport struct {
	Root    string      `json:"root"`
	Query   string      `json:"query"`
	Total   int         `json:"total"`
	Entries []jsonEntry `json:"entries"`
}

// jsonEntry represents one matched entry in the export.
type jsonEntry struct {
	Path   string `json:"path"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Format string `json:"format"`
	Size   string `json:"size"`
}

// WriteSearchResult writes res as an indented JSON document under dir,
// creating dir if needed. The filename carries a timestamp and a short
// random suffix so repeated exports never collide. Returns the path of
// the written file.
func WriteSearchResult(res *explorer.SearchResult, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	name := fmt.Sprintf("fex-results-%s-%s.json",
		time.Now().Format("20060102-150405"),
		uuid.NewString()[:8])
	path := filepath.Join(dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(buildExport(res)); err != nil {
		return "", fmt.Errorf("encoding export: %w", err)
	}
	return path, nil
}

// buildExport converts a search result to the JSON export structure.
func buildExport(res *explorer.SearchResult) jsonExport {
	entries := make([]jsonEntry, 0, res.Len())
	for _, e := range res.Entries() {
		entries = append(entries, jsonEntry{
			Path:   e.Path,
			Name:   e.Base(),
			Type:   entryType(e),
			Format: entryFormat(e),
			Size:   entrySize(e),
		})
	}
	return jsonExport{
		Root:    res.RootDisplayName(),
		Query:   res.Query(),
		Total:   res.Len(),
		Entries: entries,
	}
}

func entryType(e types.Entry) string {
	if e.IsDir {
		return "Directory"
	}
	return "File"
}

// entryFormat derives a MIME type from the file extension; "Unknown"
// when the extension is missing or unregistered.
func entryFormat(e types.Entry) string {
	if e.IsDir {
		return "Directory"
	}
	ext := filepath.Ext(e.Base())
	if ext == "" {
		return "Unknown"
	}
	t := mime.TypeByExtension(ext)
	if t == "" {
		return "Unknown"
	}
	// Strip charset parameters; only the media type matters here.
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return t
}

func entrySize(e types.Entry) string {
	if e.IsDir || e.Metadata == nil {
		return ""
	}
	return types.FormatSize(e.Metadata.Size)
}
