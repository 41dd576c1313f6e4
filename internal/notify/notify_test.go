package notify

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/inkshot/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExists  bool
}

func capture(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	orig := send
	t.Cleanup(func() { send = orig })
	send = func(title, body string, opts platform.Options) error {
		_, err := os.Stat(opts.IconPath)
		got = append(got, sent{title: title, body: body, opts: opts, iconExists: err == nil})
		return nil
	}
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Exported("out.png")
	n.Copied("", nil)

	var nilNotifier *Notifier
	nilNotifier.Enable(EventCopy, true)
	nilNotifier.Copied("x", nil)
	assert.Empty(t, *got)
}

func TestExportedUsesAbsolutePathAndIcon(t *testing.T) {
	got := capture(t)
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o644))

	n := New(DefaultPreferences())
	n.Enable(EventExport, true)
	n.Exported(path)

	require.Len(t, *got, 1)
	assert.Equal(t, platform.AppName, (*got)[0].title)
	assert.Equal(t, "Exported "+path, (*got)[0].body)
	assert.Equal(t, path, (*got)[0].opts.IconPath)
}

func TestCopiedWritesTemporaryIcon(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copied("", image.NewRGBA(image.Rect(0, 0, 2, 2)))

	require.Len(t, *got, 1)
	assert.Equal(t, "Copied image to clipboard", (*got)[0].body)
	assert.True(t, (*got)[0].iconExists, "icon exists while sending")
	_, err := os.Stat((*got)[0].opts.IconPath)
	assert.True(t, os.IsNotExist(err), "icon removed afterwards")
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("INKSHOT_NOTIFY_TITLE", "Marks")
	t.Setenv("INKSHOT_NOTIFY_EXPORT_TEXT", "Wrote %s")
	prefs := LoadPreferences()
	assert.Equal(t, "Marks", prefs.Title)
	assert.Equal(t, "Wrote %s", prefs.Templates[EventExport])
	assert.Equal(t, "Copied %s to clipboard", prefs.Templates[EventCopy])
}

func TestSendErrorIsLogged(t *testing.T) {
	orig := send
	t.Cleanup(func() { send = orig })
	calls := 0
	send = func(string, string, platform.Options) error {
		calls++
		return errors.New("no bus")
	}
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copied("drawing", nil)
	assert.Equal(t, 1, calls)
}
