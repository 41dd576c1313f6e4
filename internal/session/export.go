package session

import (
	"context"
	"fmt"
	"image"

	"github.com/example/inkshot/internal/drawing"
	"github.com/example/inkshot/internal/render"
)

// Saver accepts a finished raster.
type Saver interface {
	Save(ctx context.Context, img image.Image) error
}

// ExportResult is delivered by ExportAsync.
type ExportResult struct {
	Image *image.RGBA
	Err   error
}

type exportJob struct {
	src     image.Image
	strokes []drawing.Stroke
	canvas  drawing.Size
}

// snapshot captures everything an export reads. Nothing in the job aliases
// live session state.
func (s *Session) snapshot() exportJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return exportJob{src: s.photo.Image, strokes: s.drawing.Snapshot(), canvas: s.canvas}
}

func (j exportJob) run() (*image.RGBA, error) {
	return render.ExportComposite(j.src, j.strokes, j.canvas)
}

// Export flattens the drawing onto the photo at its native resolution. A
// failure leaves the drawing as it was.
func (s *Session) Export() (*image.RGBA, error) {
	job := s.snapshot()
	img, err := job.run()
	if err != nil {
		s.log.Error("export failed", "strokes", len(job.strokes), "err", err)
		return nil, err
	}
	s.log.Info("exported", "strokes", len(job.strokes), "w", img.Bounds().Dx(), "h", img.Bounds().Dy())
	return img, nil
}

// ExportAsync snapshots the drawing now and rasterizes it on another
// goroutine. Edits made after the call do not reach the result. The channel
// receives exactly one value.
func (s *Session) ExportAsync() <-chan ExportResult {
	job := s.snapshot()
	out := make(chan ExportResult, 1)
	go func() {
		img, err := job.run()
		if err != nil {
			s.log.Error("export failed", "strokes", len(job.strokes), "err", err)
		}
		out <- ExportResult{Image: img, Err: err}
	}()
	return out
}

// ExportTo exports and hands the raster to dst.
func (s *Session) ExportTo(ctx context.Context, dst Saver) error {
	img, err := s.Export()
	if err != nil {
		return err
	}
	if err := dst.Save(ctx, img); err != nil {
		return fmt.Errorf("save export: %w", err)
	}
	return nil
}
