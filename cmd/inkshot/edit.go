package main

import (
	"fmt"

	"github.com/example/inkshot/internal/editor"
	"github.com/example/inkshot/internal/session"
	"github.com/example/inkshot/internal/sink"
)

var runEditorFn = func(e *editor.Editor) { e.Run() }

type editCmd struct {
	command
	file          string
	fromClipboard bool
	output        string
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	e := &editCmd{command: newCommand(r, "edit")}
	e.fs.StringVar(&e.file, "file", "", "photo to open")
	e.fs.BoolVar(&e.fromClipboard, "from-clipboard", false, "open the image on the clipboard")
	e.fs.StringVar(&e.output, "output", "", "where Ctrl+S saves (.png, .jpg or .pdf); defaults to the configured save directory")
	e.fs.Usage = usageFunc(e)
	if err := e.fs.Parse(args); err != nil {
		return nil, err
	}
	if e.fs.NArg() != 0 {
		return nil, &UsageError{of: e}
	}
	if err := checkSource(e, e.file, e.fromClipboard); err != nil {
		return nil, err
	}
	if e.output != "" {
		if _, err := sink.ForPath(e.output); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *editCmd) Run() error {
	p, err := loadPhoto(e.file, e.fromClipboard)
	if err != nil {
		return err
	}
	sess, err := session.New(p, session.WithSelection(e.selection()))
	if err != nil {
		return err
	}
	output := e.output
	if output == "" {
		output = e.defaultOutput(sess.ID)
	}
	save, err := sink.ForPath(output)
	if err != nil {
		return fmt.Errorf("save destination: %w", err)
	}
	opts := []editor.Option{
		editor.WithSaveSink(e.notifying(save)),
		editor.WithCopySink(e.notifying(sink.Clipboard{})),
	}
	if e.config.CanvasReserved > 0 {
		opts = append(opts, editor.WithReserved(e.config.CanvasReserved))
	}
	runEditorFn(editor.New(sess, opts...))
	return nil
}
