package sink

import (
	"context"
	"image"
	"strings"

	"github.com/example/inkshot/internal/notify"
)

// Notifying raises a desktop notification after the wrapped sink succeeds.
type Notifying struct {
	Sink     Sink
	Notifier *notify.Notifier
}

func (n Notifying) String() string { return n.Sink.String() }

// Save delegates to the wrapped sink and notifies on success.
func (n Notifying) Save(ctx context.Context, img image.Image) error {
	if err := n.Sink.Save(ctx, img); err != nil {
		return err
	}
	switch s := n.Sink.(type) {
	case Clipboard, *Clipboard:
		n.Notifier.Copied("", img)
	case *File:
		n.Notifier.Exported(s.Path)
	case *PDF:
		n.Notifier.Exported(s.Path)
	}
	return nil
}

// Multi saves to every sink in order and stops at the first error.
type Multi []Sink

func (m Multi) String() string {
	names := make([]string, len(m))
	for i, s := range m {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}

// Save saves img to each sink.
func (m Multi) Save(ctx context.Context, img image.Image) error {
	for _, s := range m {
		if err := s.Save(ctx, img); err != nil {
			return err
		}
	}
	return nil
}
