package main

import (
	"flag"
	"fmt"

	"github.com/example/inkshot/internal/photo"
	"github.com/example/inkshot/internal/sink"
)

// command is the state every subcommand shares: its flags and the name it
// is invoked by.
type command struct {
	*root
	fs      *flag.FlagSet
	program string
}

func newCommand(r *root, name string) command {
	program := "inkshot " + name
	if r != nil {
		program = r.subcommand(name)
	}
	return command{root: r, fs: flag.NewFlagSet(name, flag.ExitOnError), program: program}
}

func (c *command) Program() string {
	return c.program
}

func (c *command) FlagSet() *flag.FlagSet {
	return c.fs
}

var (
	openPhotoFn      = photo.Open
	clipboardPhotoFn = photo.FromClipboard
)

// loadPhoto reads the source photo from a file or the clipboard.
func loadPhoto(file string, fromClipboard bool) (*photo.Photo, error) {
	if fromClipboard {
		p, err := clipboardPhotoFn()
		if err != nil {
			return nil, fmt.Errorf("failed to read photo from clipboard: %w", err)
		}
		return p, nil
	}
	p, err := openPhotoFn(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open photo: %w", err)
	}
	return p, nil
}

// checkSource rejects a missing or doubled photo source.
func checkSource(of HelpData, file string, fromClipboard bool) error {
	switch {
	case file == "" && !fromClipboard:
		return &UsageError{of: of, reason: "a photo is required: use -file or -from-clipboard"}
	case file != "" && fromClipboard:
		return &UsageError{of: of, reason: "-file and -from-clipboard cannot be used together"}
	}
	return nil
}

// defaultOutput names an export of session id in the configured save
// directory and format.
func (c *command) defaultOutput(id string) string {
	dir, format := "", ""
	if c.root != nil && c.config != nil {
		dir, format = c.config.SaveDir, c.config.Format
	}
	return sink.DefaultPath(dir, id, format)
}

// notifying wraps s so a successful save raises the enabled notification.
func (c *command) notifying(s sink.Sink) sink.Sink {
	if c.root == nil || c.notifier == nil {
		return s
	}
	return sink.Notifying{Sink: s, Notifier: c.notifier}
}
