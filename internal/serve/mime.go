package serve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FallbackContentType is served for extensions missing from the table.
const FallbackContentType = "application/octet-stream"

// builtinTypes is the fixed extension→MIME mapping. Lookups are by lowercased
// extension without the dot.
var builtinTypes = map[string]string{
	"html":  "text/html",
	"htm":   "text/html",
	"css":   "text/css",
	"js":    "text/javascript",
	"mjs":   "text/javascript",
	"json":  "application/json",
	"xml":   "application/xml",
	"txt":   "text/plain",
	"md":    "text/markdown",
	"csv":   "text/csv",
	"png":   "image/png",
	"jpg":   "image/jpeg",
	"jpeg":  "image/jpeg",
	"gif":   "image/gif",
	"svg":   "image/svg+xml",
	"webp":  "image/webp",
	"ico":   "image/x-icon",
	"pdf":   "application/pdf",
	"wasm":  "application/wasm",
	"zip":   "application/zip",
	"gz":    "application/gzip",
	"tar":   "application/x-tar",
	"mp3":   "audio/mpeg",
	"ogg":   "audio/ogg",
	"wav":   "audio/wav",
	"mp4":   "video/mp4",
	"webm":  "video/webm",
	"woff":  "font/woff",
	"woff2": "font/woff2",
	"ttf":   "font/ttf",
	"otf":   "font/otf",
}

// MimeTable maps file extensions to content types. It is built once at
// startup and read concurrently without locking afterwards.
type MimeTable struct {
	types map[string]string
}

// NewMimeTable returns a table holding the built-in mapping.
func NewMimeTable() *MimeTable {
	types := make(map[string]string, len(builtinTypes))
	for ext, ct := range builtinTypes {
		types[ext] = ct
	}
	return &MimeTable{types: types}
}

// LoadOverrides merges a YAML extension→type mapping over the built-in
// table. Extensions may be given with or without a leading dot.
func (t *MimeTable) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading mime overrides: %w", err)
	}
	overrides := make(map[string]string)
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("parsing mime overrides %s: %w", path, err)
	}
	for ext, ct := range overrides {
		t.types[strings.ToLower(strings.TrimPrefix(ext, "."))] = ct
	}
	return nil
}

// Lookup returns the content type for a file path based on its extension.
func (t *MimeTable) Lookup(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ct, ok := t.types[ext]; ok {
		return ct
	}
	return FallbackContentType
}
