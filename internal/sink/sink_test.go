package sink

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/inkshot/internal/notify"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	img.Set(2, 2, color.RGBA{R: 255, A: 255})
	return img
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want any
	}{
		{"a.png", &File{}},
		{"a.JPEG", &File{}},
		{"a.jpg", &File{}},
		{"a.pdf", &PDF{}},
	}
	for _, tc := range tests {
		s, err := ForPath(tc.path)
		require.NoError(t, err, tc.path)
		assert.IsType(t, tc.want, s, tc.path)
		assert.Equal(t, tc.path, s.String())
	}
	_, err := ForPath("a.gif")
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "inkshot-0123abcd.png"), DefaultPath("out", "0123abcd-ffff-4444", ""))
	assert.Equal(t, filepath.Join("out", "inkshot-ab.pdf"), DefaultPath("out", "ab", "pdf"))
}

func TestFileWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.png")
	require.NoError(t, (&File{Path: path}).Save(context.Background(), testImage()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 4), img.Bounds())
	r, _, _, _ := img.At(2, 2).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}

func TestFileWritesJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpeg")
	require.NoError(t, (&File{Path: path, Quality: 70}).Save(context.Background(), testImage()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Width)
}

func TestFileRejectsUnknownFormat(t *testing.T) {
	err := (&File{Path: filepath.Join(t.TempDir(), "out.gif")}).Save(context.Background(), testImage())
	assert.Error(t, err)
}

func TestSaveHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := filepath.Join(t.TempDir(), "out.png")
	assert.ErrorIs(t, (&File{Path: path}).Save(ctx, testImage()), context.Canceled)
	assert.ErrorIs(t, (&PDF{Path: path}).Save(ctx, testImage()), context.Canceled)
	assert.ErrorIs(t, Clipboard{}.Save(ctx, testImage()), context.Canceled)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestPDFWritesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	require.NoError(t, (&PDF{Path: path, Title: "markup"}).Save(context.Background(), testImage()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, string(data), "/Image")
}

func TestClipboardSink(t *testing.T) {
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })

	var got image.Image
	writeClipboard = func(img image.Image) error { got = img; return nil }
	require.NoError(t, Clipboard{}.Save(context.Background(), testImage()))
	assert.Equal(t, 6, got.Bounds().Dx())

	sentinel := errors.New("no display")
	writeClipboard = func(image.Image) error { return sentinel }
	assert.ErrorIs(t, Clipboard{}.Save(context.Background(), testImage()), sentinel)
}

type failingSink struct{ err error }

func (f failingSink) Save(context.Context, image.Image) error { return f.err }
func (failingSink) String() string                            { return "failing" }

func TestNotifyingAndMulti(t *testing.T) {
	dir := t.TempDir()
	a := &File{Path: filepath.Join(dir, "a.png")}
	b := &PDF{Path: filepath.Join(dir, "b.pdf")}
	m := Multi{Notifying{Sink: a, Notifier: notify.New(notify.DefaultPreferences())}, Notifying{Sink: b}}
	assert.Equal(t, a.Path+", "+b.Path, m.String())
	require.NoError(t, m.Save(context.Background(), testImage()))
	assert.FileExists(t, a.Path)
	assert.FileExists(t, b.Path)

	sentinel := errors.New("boom")
	c := &File{Path: filepath.Join(dir, "c.png")}
	err := Multi{Notifying{Sink: failingSink{sentinel}}, c}.Save(context.Background(), testImage())
	assert.ErrorIs(t, err, sentinel)
	assert.NoFileExists(t, c.Path)
}
