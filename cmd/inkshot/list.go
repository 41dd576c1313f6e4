package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/example/inkshot/internal/palette"
	"github.com/example/inkshot/internal/tool"
)

type colorsCmd struct {
	command
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	cmd := &colorsCmd{command: newCommand(r, "colors")}
	cmd.fs.Usage = usageFunc(cmd)
	if err := cmd.fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	p := palette.Default()
	if c.root != nil && c.palette != nil {
		p = c.palette
	}
	sel := tool.NewSelection()
	sel.Colors = p.ColorSet
	if c.root != nil && c.config != nil {
		c.config.Apply(&sel)
	}
	fmt.Fprintf(os.Stdout, "tool colors (%s):\n", p.Name)
	for _, sub := range tool.SubTools() {
		slot := sel.Colors.Slot(sub)
		if slot == nil {
			fmt.Fprintf(os.Stdout, "  %-8s transparent\n", sub)
			continue
		}
		fmt.Fprintf(os.Stdout, "  %-8s %s\n", sub, tool.HexColor(*slot))
	}
	fmt.Fprintf(os.Stdout, "  %-8s %s\n", "text", tool.HexColor(sel.Colors.Text))

	fmt.Fprintln(os.Stdout, "named colors:")
	for idx, entry := range tool.Palette() {
		fmt.Fprintf(os.Stdout, "%2d: %-8s %s\n", idx, entry.Name, tool.HexColor(entry.Color))
	}
	return nil
}

type widthsCmd struct {
	command
}

func parseWidthsCmd(args []string, r *root) (*widthsCmd, error) {
	cmd := &widthsCmd{command: newCommand(r, "widths")}
	cmd.fs.Usage = usageFunc(cmd)
	if err := cmd.fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *widthsCmd) Run() error {
	fmt.Fprintf(os.Stdout, "slider %d..%d (default %d), stroke width = slider / 10\n",
		tool.MinSlider, tool.MaxSlider, tool.DefaultSlider)
	for v := tool.MinSlider; v <= tool.MaxSlider; v += 10 {
		marker := " "
		if v == tool.DefaultSlider {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %3d -> %4.1f\n", marker, v, tool.StrokeWidth(float64(v)))
	}
	return nil
}

type palettesCmd struct {
	command
	show bool
}

func parsePalettesCmd(args []string, r *root) (*palettesCmd, error) {
	cmd := &palettesCmd{command: newCommand(r, "palettes")}
	cmd.fs.BoolVar(&cmd.show, "show", false, "print every preset's colors")
	cmd.fs.Usage = usageFunc(cmd)
	if err := cmd.fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *palettesCmd) Run() error {
	loader := palette.NewLoader()
	active := ""
	if c.root != nil {
		loader = c.paletteLoader()
		if c.palette != nil {
			active = c.palette.Name
		}
	}
	names := loader.Names()
	if len(names) == 0 {
		fmt.Fprintln(os.Stdout, "no palettes available")
		return nil
	}
	fmt.Fprintln(os.Stdout, "available palettes (* marks the active palette):")
	for _, name := range names {
		p, err := loader.Load(name)
		if err != nil {
			fmt.Fprintf(os.Stdout, "  %s (unreadable: %v)\n", name, err)
			continue
		}
		marker := " "
		if strings.EqualFold(p.Name, active) {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %s\n", marker, name)
		if c.show {
			var sb strings.Builder
			p.WriteEntries(&sb, ": ")
			for _, line := range strings.Split(strings.TrimSpace(sb.String()), "\n") {
				fmt.Fprintf(os.Stdout, "    %s\n", line)
			}
		}
	}
	return nil
}
