// Package photo loads the source photo an editing session is bound to.
package photo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/example/inkshot/internal/clipboard"
)

// ErrInvalidSource is returned when no usable photo is available.
var ErrInvalidSource = errors.New("invalid source image")

// supported lists the filetype extensions with a registered decoder.
var supported = map[string]bool{
	"png":  true,
	"jpg":  true,
	"gif":  true,
	"webp": true,
	"bmp":  true,
	"tif":  true,
}

// Photo is a decoded source photo.
type Photo struct {
	Image *image.RGBA
	// Format is the detected container, e.g. "png" or "jpg".
	Format string
}

// Decode sniffs and decodes data.
func Decode(data []byte) (*Photo, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no data", ErrInvalidSource)
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	if !filetype.IsImage(data) {
		return nil, fmt.Errorf("%w: not an image (%s)", ErrInvalidSource, kind.MIME.Value)
	}
	if !supported[kind.Extension] {
		return nil, fmt.Errorf("%w: unsupported format %s", ErrInvalidSource, kind.MIME.Value)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidSource, kind.Extension, err)
	}
	return FromImage(img, kind.Extension)
}

// FromImage wraps an already decoded image.
func FromImage(img image.Image, format string) (*Photo, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidSource)
	}
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return &Photo{Image: rgba, Format: format}, nil
}

// Read decodes a photo from r.
func Read(r io.Reader) (*Photo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Open decodes the photo stored at path.
func Open(path string) (*Photo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func(f *os.File) {
		if err := f.Close(); err != nil {
			slog.Warn("close photo", "path", f.Name(), "err", err)
		}
	}(f)
	p, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return p, nil
}

var readClipboard = clipboard.ReadImage

// FromClipboard decodes the image currently on the clipboard.
func FromClipboard() (*Photo, error) {
	img, err := readClipboard()
	if err != nil {
		return nil, fmt.Errorf("read clipboard image: %w", err)
	}
	return FromImage(img, "png")
}
