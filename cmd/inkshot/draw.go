package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/example/inkshot/internal/drawing"
	"github.com/example/inkshot/internal/script"
	"github.com/example/inkshot/internal/session"
	"github.com/example/inkshot/internal/sink"
)

var loadScriptFn = script.Load

type drawCmd struct {
	command
	file          string
	fromClipboard bool
	script        string
	output        string
	toClipboard   bool
	canvas        string
	canvasSize    drawing.Size
}

// parseDrawCmd parses both "draw" and "export". They differ only in that
// export reads the script from stdin unless told otherwise.
func parseDrawCmd(name string, args []string, r *root) (*drawCmd, error) {
	d := &drawCmd{command: newCommand(r, name)}
	defScript := ""
	if name == "export" {
		defScript = "-"
	}
	d.fs.StringVar(&d.file, "file", "", "photo to draw on")
	d.fs.BoolVar(&d.fromClipboard, "from-clipboard", false, "draw on the image on the clipboard")
	d.fs.StringVar(&d.script, "script", defScript, "YAML step script; - reads stdin")
	d.fs.StringVar(&d.output, "output", "", "output file (.png, .jpg or .pdf)")
	d.fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	d.fs.StringVar(&d.canvas, "canvas", "", "displayed canvas size WxH the strokes refer to; overrides the script")
	d.fs.Usage = usageFunc(d)
	if err := d.fs.Parse(args); err != nil {
		return nil, err
	}
	if d.fs.NArg() != 0 {
		return nil, &UsageError{of: d}
	}
	if d.script == "" {
		return nil, &UsageError{of: d, reason: "-script is required"}
	}
	if err := checkSource(d, d.file, d.fromClipboard); err != nil {
		return nil, err
	}
	if d.fromClipboard && d.output == "" && !d.toClipboard {
		return nil, fmt.Errorf("output file is required when reading from the clipboard")
	}
	if d.output != "" {
		if _, err := sink.ForPath(d.output); err != nil {
			return nil, err
		}
	}
	if d.canvas != "" {
		sz, err := parseSize(d.canvas)
		if err != nil {
			return nil, fmt.Errorf("invalid -canvas: %w", err)
		}
		d.canvasSize = sz
	}
	return d, nil
}

func parseSize(s string) (drawing.Size, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return drawing.Size{}, fmt.Errorf("%q is not WxH", s)
	}
	w, err := strconv.ParseFloat(ws, 64)
	if err != nil {
		return drawing.Size{}, err
	}
	h, err := strconv.ParseFloat(hs, 64)
	if err != nil {
		return drawing.Size{}, err
	}
	sz := drawing.Size{W: w, H: h}
	if !sz.Known() {
		return drawing.Size{}, fmt.Errorf("%q must be positive", s)
	}
	return sz, nil
}

func (d *drawCmd) Run() error {
	sc, err := loadScriptFn(d.script)
	if err != nil {
		return fmt.Errorf("failed to load script: %w", err)
	}
	p, err := loadPhoto(d.file, d.fromClipboard)
	if err != nil {
		return err
	}
	sess, err := session.New(p, session.WithSelection(d.selection()))
	if err != nil {
		return err
	}
	defer sess.Close()
	if err := sc.Replay(sess); err != nil {
		return fmt.Errorf("failed to replay script: %w", err)
	}
	if d.canvasSize.Known() {
		sess.ObserveCanvasSize(d.canvasSize)
	}

	dst, err := d.sinks(sess.ID)
	if err != nil {
		return err
	}
	if err := sess.ExportTo(context.Background(), dst); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", dst)
	return nil
}

// sinks lists the destinations of the export. Without -output or
// -to-clipboard the image goes to the configured save directory.
func (d *drawCmd) sinks(id string) (sink.Multi, error) {
	var out sink.Multi
	output := d.output
	if output == "" && !d.toClipboard {
		output = d.defaultOutput(id)
	}
	if output != "" {
		s, err := sink.ForPath(output)
		if err != nil {
			return nil, err
		}
		out = append(out, d.notifying(s))
	}
	if d.toClipboard {
		out = append(out, d.notifying(sink.Clipboard{}))
	}
	return out, nil
}
