package sink

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// PDF writes a single-page document whose page is exactly the raster, one
// point per pixel.
type PDF struct {
	Path  string
	Title string
}

func (p *PDF) String() string { return p.Path }

// Save encodes img as a one-page PDF at Path.
func (p *PDF) Save(ctx context.Context, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeFile(p.Path, func(w io.Writer) error { return p.encode(w, img) })
}

func (p *PDF) encode(w io.Writer, img image.Image) error {
	var raw bytes.Buffer
	if err := png.Encode(&raw, img); err != nil {
		return err
	}
	b := img.Bounds()
	wd, ht := float64(b.Dx()), float64(b.Dy())
	orientation := "P"
	if wd > ht {
		orientation = "L"
	}
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCreator("inkshot", true)
	if p.Title != "" {
		doc.SetTitle(p.Title, true)
	}
	doc.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("export", opts, &raw)
	doc.ImageOptions("export", 0, 0, wd, ht, false, opts, 0, "")
	return doc.Output(w)
}
