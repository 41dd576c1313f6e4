// Package config reads and writes the RC configuration file.
package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/inkshot/internal/palette"
	"github.com/example/inkshot/internal/tool"
)

// Notify holds notification toggles.
type Notify struct {
	Export bool
	Copy   bool
}

// ToolSettings overrides the starting color and width slider of one
// sub-tool. Zero fields leave the palette's value in place.
type ToolSettings struct {
	Color    color.RGBA
	HasColor bool
	Slider   float64
}

// Config holds the application configuration.
type Config struct {
	Palette        string
	SaveDir        string
	Format         string
	CanvasReserved float64
	Notify         Notify
	Tools          map[tool.SubTool]ToolSettings
	Palettes       map[string]*palette.Palette
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		Tools:    make(map[tool.SubTool]ToolSettings),
		Palettes: make(map[string]*palette.Palette),
	}
}

// Apply writes the per-tool overrides into sel.
func (c *Config) Apply(sel *tool.Selection) {
	for sub, ts := range c.Tools {
		slot := sel.Colors.Slot(sub)
		if slot == nil {
			continue
		}
		if ts.HasColor {
			*slot = ts.Color
		}
		if ts.Slider != 0 {
			sel.Sliders[sub] = tool.ClampSlider(ts.Slider)
		}
	}
}

// String returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Palette != "" {
		fmt.Fprintf(&sb, "palette = %s\n", c.Palette)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.Format != "" {
		fmt.Fprintf(&sb, "format = %s\n", c.Format)
	}
	if c.CanvasReserved != 0 {
		fmt.Fprintf(&sb, "canvas_reserved = %g\n", c.CanvasReserved)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	for _, sub := range tool.SubTools() {
		ts, ok := c.Tools[sub]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "[tool.%s]\n", sub)
		if ts.HasColor {
			fmt.Fprintf(&sb, "color = %s\n", tool.HexColor(ts.Color))
		}
		if ts.Slider != 0 {
			fmt.Fprintf(&sb, "width = %g\n", ts.Slider)
		}
		sb.WriteString("\n")
	}

	names := make([]string, 0, len(c.Palettes))
	for name := range c.Palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "[palette.%s]\n", name)
		c.Palettes[name].WriteEntries(&sb, " = ")
		sb.WriteString("\n")
	}

	return sb.String()
}
