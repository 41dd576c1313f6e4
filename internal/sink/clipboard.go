package sink

import (
	"context"
	"fmt"
	"image"

	"github.com/example/inkshot/internal/clipboard"
)

var writeClipboard = clipboard.WriteImage

// Clipboard places the raster on the system clipboard as PNG.
type Clipboard struct{}

func (Clipboard) String() string { return "clipboard" }

// Save publishes img to the clipboard.
func (Clipboard) Save(ctx context.Context, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeClipboard(img); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
