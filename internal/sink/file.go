package sink

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// JPEGQuality is used when File.Quality is zero.
const JPEGQuality = 90

// File writes PNG or JPEG, chosen by the extension of Path.
type File struct {
	Path    string
	Quality int
}

func (f *File) String() string { return f.Path }

// Save encodes img into Path, creating parent directories.
func (f *File) Save(ctx context.Context, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeFile(f.Path, func(w io.Writer) error {
		switch FormatOf(f.Path) {
		case "jpg":
			q := f.Quality
			if q == 0 {
				q = JPEGQuality
			}
			return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
		case "png":
			return png.Encode(w, img)
		default:
			return fmt.Errorf("unsupported output format %q", FormatOf(f.Path))
		}
	})
}

// writeFile creates path and streams into it with encode.
func writeFile(path string, encode func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(out); err != nil {
		if cerr := out.Close(); cerr != nil {
			slog.Warn("sink: closing file", "path", path, "err", cerr)
		}
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
