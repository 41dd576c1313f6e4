package tool

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/colornames"
)

// PaletteColor is a named palette entry.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

var (
	paletteMu sync.RWMutex
	palette   = []PaletteColor{
		{"Black", color.RGBA{0, 0, 0, 255}},
		{"White", color.RGBA{255, 255, 255, 255}},
		{"Red", color.RGBA{255, 0, 0, 255}},
		{"Lime", color.RGBA{0, 255, 0, 255}},
		{"Blue", color.RGBA{0, 0, 255, 255}},
		{"Yellow", color.RGBA{255, 255, 0, 255}},
		{"Cyan", color.RGBA{0, 255, 255, 255}},
		{"Magenta", color.RGBA{255, 0, 255, 255}},
		{"Orange", color.RGBA{255, 149, 0, 255}},
		{"Green", color.RGBA{0, 128, 0, 255}},
		{"Navy", color.RGBA{0, 0, 128, 255}},
		{"Purple", color.RGBA{128, 0, 128, 255}},
		{"Silver", color.RGBA{192, 192, 192, 255}},
		{"Gray", color.RGBA{128, 128, 128, 255}},
	}
)

// Cyan is the default color of every drawing sub-tool.
var Cyan = color.RGBA{0, 255, 255, 255}

// Transparent is the brush color of sub-tools that carry no color.
var Transparent = color.RGBA{}

// Palette returns a copy of the palette entries.
func Palette() []PaletteColor {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	out := make([]PaletteColor, len(palette))
	copy(out, palette)
	return out
}

// EnsurePaletteColor makes sure col is present in the palette and returns its index.
func EnsurePaletteColor(col color.RGBA, name string) int {
	paletteMu.Lock()
	defer paletteMu.Unlock()
	for idx, existing := range palette {
		if existing.Color == col {
			if name != "" && existing.Name == "" {
				palette[idx].Name = name
			}
			return idx
		}
	}
	if name == "" {
		name = HexColor(col)
	}
	palette = append(palette, PaletteColor{Name: name, Color: col})
	return len(palette) - 1
}

// PaletteColorAt returns the palette color at idx, clamped to the palette.
func PaletteColorAt(idx int) color.RGBA {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	if len(palette) == 0 {
		return color.RGBA{}
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(palette) {
		idx = len(palette) - 1
	}
	return palette[idx].Color
}

// ParseColor accepts a CSS color name, a palette name or #RRGGBB[AA].
func ParseColor(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if name == "transparent" {
		return Transparent, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	for _, entry := range Palette() {
		if strings.EqualFold(entry.Name, name) {
			return entry.Color, nil
		}
	}
	if strings.HasPrefix(name, "#") && (len(name) == 7 || len(name) == 9) {
		val, err := strconv.ParseUint(name[1:], 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		if len(name) == 7 {
			return color.RGBA{uint8(val >> 16), uint8(val >> 8), uint8(val), 255}, nil
		}
		return color.RGBA{uint8(val >> 24), uint8(val >> 16), uint8(val >> 8), uint8(val)}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

// HexColor formats col as #RRGGBB, or #RRGGBBAA when not opaque.
func HexColor(col color.RGBA) string {
	if col.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", col.R, col.G, col.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", col.R, col.G, col.B, col.A)
}
