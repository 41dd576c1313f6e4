package main

import (
	"context"
	"fmt"
	"os"

	"github.com/example/inkshot/internal/drawing"
	"github.com/example/inkshot/internal/session"
	"github.com/example/inkshot/internal/sink"
)

type previewCmd struct {
	command
	file          string
	fromClipboard bool
	script        string
	output        string
	canvas        string
	zoom          float64
	canvasSize    drawing.Size
}

func parsePreviewCmd(args []string, r *root) (*previewCmd, error) {
	p := &previewCmd{command: newCommand(r, "preview")}
	p.fs.StringVar(&p.file, "file", "", "photo to preview")
	p.fs.BoolVar(&p.fromClipboard, "from-clipboard", false, "preview the image on the clipboard")
	p.fs.StringVar(&p.script, "script", "", "YAML step script to replay first; - reads stdin")
	p.fs.StringVar(&p.output, "output", "", "where to write the preview (.png, .jpg or .pdf)")
	p.fs.StringVar(&p.canvas, "canvas", "", "canvas size WxH; defaults to the script's canvas, then the photo size")
	p.fs.Float64Var(&p.zoom, "zoom", 1, "view zoom applied to the canvas")
	p.fs.Usage = usageFunc(p)
	if err := p.fs.Parse(args); err != nil {
		return nil, err
	}
	if p.fs.NArg() != 0 {
		return nil, &UsageError{of: p}
	}
	if err := checkSource(p, p.file, p.fromClipboard); err != nil {
		return nil, err
	}
	if p.output == "" {
		return nil, &UsageError{of: p, reason: "-output is required"}
	}
	if _, err := sink.ForPath(p.output); err != nil {
		return nil, err
	}
	if p.zoom <= 0 {
		return nil, fmt.Errorf("invalid -zoom %g: must be positive", p.zoom)
	}
	if p.canvas != "" {
		sz, err := parseSize(p.canvas)
		if err != nil {
			return nil, fmt.Errorf("invalid -canvas: %w", err)
		}
		p.canvasSize = sz
	}
	return p, nil
}

// Run writes the on-screen view: the photo scaled to the canvas with the
// strokes in canvas space, magnified by -zoom.
func (p *previewCmd) Run() error {
	ph, err := loadPhoto(p.file, p.fromClipboard)
	if err != nil {
		return err
	}
	sess, err := session.New(ph, session.WithSelection(p.selection()))
	if err != nil {
		return err
	}
	defer sess.Close()
	if p.script != "" {
		sc, err := loadScriptFn(p.script)
		if err != nil {
			return fmt.Errorf("failed to load script: %w", err)
		}
		if err := sc.Replay(sess); err != nil {
			return fmt.Errorf("failed to replay script: %w", err)
		}
	}
	if p.canvasSize.Known() {
		sess.ObserveCanvasSize(p.canvasSize)
	}
	canvas := sess.CanvasSize()
	if !canvas.Known() {
		canvas = sess.NativeSize()
	}
	img, err := sess.PreviewAt(drawing.Size{W: canvas.W * p.zoom, H: canvas.H * p.zoom})
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}
	dst, err := sink.ForPath(p.output)
	if err != nil {
		return err
	}
	if err := dst.Save(context.Background(), img); err != nil {
		return fmt.Errorf("save preview: %w", err)
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", dst)
	return nil
}
