// Package notify raises desktop notifications after an export is written or
// copied.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/inkshot/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventExport fires when an export is written to disk.
	EventExport Event = "export"
	// EventCopy fires when an export is placed on the clipboard.
	EventCopy Event = "copy"
)

// Preferences holds the title and per-event body templates. Each template
// takes one %s for the detail.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the built-in wording.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: platform.AppName,
		Templates: map[Event]string{
			EventExport: "Exported %s",
			EventCopy:   "Copied %s to clipboard",
		},
	}
}

// LoadPreferences applies INKSHOT_NOTIFY_* environment overrides to the
// defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("INKSHOT_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for key, ev := range map[string]Event{
		"INKSHOT_NOTIFY_EXPORT_TEXT": EventExport,
		"INKSHOT_NOTIFY_COPY_TEXT":   EventCopy,
	} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[ev] = v
		}
	}
	return prefs
}

var send = platform.Notify

// Notifier sends notifications for the events enabled on it. A nil Notifier
// sends nothing.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New returns a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	templates := make(map[Event]string, len(prefs.Templates))
	for k, v := range prefs.Templates {
		templates[k] = v
	}
	return &Notifier{
		prefs:   Preferences{Title: prefs.Title, Templates: templates},
		enabled: make(map[Event]bool),
	}
}

// Enable toggles ev.
func (n *Notifier) Enable(ev Event, on bool) {
	if n == nil {
		return
	}
	n.enabled[ev] = on
}

// Enabled reports whether ev will notify.
func (n *Notifier) Enabled(ev Event) bool {
	return n != nil && n.enabled[ev]
}

// Exported notifies that path was written. The file itself is offered as the
// notification icon.
func (n *Notifier) Exported(path string) {
	if !n.Enabled(EventExport) {
		return
	}
	opts := platform.Options{}
	detail := strings.TrimSpace(path)
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil && isPNG(abs) {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventExport, detail, opts)
}

// Copied notifies that img is on the clipboard, with img as the icon.
func (n *Notifier) Copied(detail string, img image.Image) {
	if !n.Enabled(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	opts := platform.Options{}
	if img != nil {
		path, cleanup, err := writeIcon(img)
		if err != nil {
			slog.Warn("notify: icon", "err", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventCopy, detail, opts)
}

func (n *Notifier) dispatch(ev Event, detail string, opts platform.Options) {
	tmpl := strings.TrimSpace(n.prefs.Templates[ev])
	if tmpl == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(tmpl, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := send(n.prefs.Title, body, opts); err != nil {
		slog.Warn("notify: send", "event", string(ev), "err", err)
	}
}

func isPNG(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".png")
}

func writeIcon(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "inkshot-icon-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	return path, func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("notify: remove icon", "err", err)
		}
	}, nil
}
