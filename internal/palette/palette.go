// Package palette loads named color presets for the drawing tools. A preset
// file holds one "Key: color" line per tool:
//
//	Name: Highlighter
//	Pen: #FF0000
//	Neon: yellow
package palette

import (
	"fmt"
	"image/color"
	"reflect"
	"strings"

	"github.com/example/inkshot/internal/tool"
)

// Palette is a named ColorSet.
type Palette struct {
	Name string
	tool.ColorSet
}

// Default returns the built-in palette: cyan drawing tools, black text.
func Default() *Palette {
	return &Palette{Name: "Default", ColorSet: tool.DefaultColorSet(tool.Cyan)}
}

// Keys lists the color keys in file order.
func Keys() []string {
	typ := reflect.TypeOf(tool.ColorSet{})
	keys := make([]string, typ.NumField())
	for i := range keys {
		keys[i] = typ.Field(i).Name
	}
	return keys
}

// Set assigns one "Key: value" entry. Keys match case-insensitively; unknown
// keys are ignored so newer files still load.
func (p *Palette) Set(key, value string) error {
	if strings.EqualFold(key, "Name") {
		p.Name = value
		return nil
	}
	val := reflect.ValueOf(&p.ColorSet).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		if !strings.EqualFold(typ.Field(i).Name, key) {
			continue
		}
		col, err := tool.ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		val.Field(i).Set(reflect.ValueOf(col))
		return nil
	}
	return nil
}

// Color returns the color stored under key.
func (p *Palette) Color(key string) (color.RGBA, bool) {
	val := reflect.ValueOf(p.ColorSet)
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		if strings.EqualFold(typ.Field(i).Name, key) {
			return val.Field(i).Interface().(color.RGBA), true
		}
	}
	return color.RGBA{}, false
}

// String renders p in preset file format.
func (p *Palette) String() string {
	var sb strings.Builder
	p.WriteEntries(&sb, ": ")
	return sb.String()
}

// WriteEntries writes one line per key using sep between key and value.
func (p *Palette) WriteEntries(sb *strings.Builder, sep string) {
	if p.Name != "" {
		fmt.Fprintf(sb, "Name%s%s\n", sep, p.Name)
	}
	for _, k := range Keys() {
		col, _ := p.Color(k)
		fmt.Fprintf(sb, "%s%s%s\n", k, sep, tool.HexColor(col))
	}
}
