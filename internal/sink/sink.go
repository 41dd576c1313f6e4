// Package sink delivers exported rasters to their destination.
package sink

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

// Sink accepts a finished raster.
type Sink interface {
	Save(ctx context.Context, img image.Image) error
	// String names the destination for messages.
	String() string
}

// Formats lists the file formats ForPath understands.
var Formats = []string{"png", "jpg", "pdf"}

// FormatOf returns the normalized format implied by path's extension.
func FormatOf(path string) string {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "jpeg":
		return "jpg"
	default:
		return ext
	}
}

// ForPath returns the file sink for path, picked by extension.
func ForPath(path string) (Sink, error) {
	switch f := FormatOf(path); f {
	case "png", "jpg":
		return &File{Path: path}, nil
	case "pdf":
		return &PDF{Path: path}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", f)
	}
}

// DefaultPath names an export of the session id in dir.
func DefaultPath(dir, id, format string) string {
	if format == "" {
		format = "png"
	}
	if len(id) > 8 {
		id = id[:8]
	}
	return filepath.Join(dir, fmt.Sprintf("inkshot-%s.%s", id, format))
}
