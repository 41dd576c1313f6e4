package config

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/example/inkshot/internal/palette"
	"github.com/example/inkshot/internal/tool"
)

// Parse reads configuration from r. Lines are "key = value" or
// "key: value"; "#" and "//" start comments.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var currentPalette *palette.Palette
	var currentTool tool.SubTool = tool.SubToolNone

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentPalette = nil
			currentTool = tool.SubToolNone
			switch {
			case strings.HasPrefix(section, "palette."):
				name := strings.TrimPrefix(section, "palette.")
				currentPalette = palette.Default()
				currentPalette.Name = name
				cfg.Palettes[name] = currentPalette
			case strings.HasPrefix(section, "tool."):
				sub, err := tool.ParseSubTool(strings.TrimPrefix(section, "tool."))
				if err != nil || !sub.Valid() {
					return nil, fmt.Errorf("line %d: unknown tool section [%s]", lineNo, section)
				}
				currentTool = sub
			}
			continue
		}

		key, value, ok := splitEntry(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case currentPalette != nil:
			err = currentPalette.Set(key, value)
		case currentTool != tool.SubToolNone:
			err = setToolField(cfg, currentTool, key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case section == "":
			err = setRootField(cfg, key, value)
		default:
			slog.Debug("config: ignoring unknown section", "section", section, "key", key)
		}
		if err != nil {
			if section == "" {
				return nil, fmt.Errorf("line %d: root section: %w", lineNo, err)
			}
			return nil, fmt.Errorf("line %d: section [%s]: %w", lineNo, section, err)
		}
	}

	return cfg, scanner.Err()
}

func splitEntry(line string) (string, string, bool) {
	sep := "="
	if !strings.Contains(line, "=") {
		sep = ":"
	}
	key, value, ok := strings.Cut(line, sep)
	if !ok {
		return "", "", false
	}
	value = strings.TrimSpace(value)
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		value = value[1 : len(value)-1]
	}
	return strings.TrimSpace(key), value, true
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "palette":
		cfg.Palette = value
	case "save_dir":
		cfg.SaveDir = value
	case "format":
		f := strings.ToLower(value)
		if f == "jpeg" {
			f = "jpg"
		}
		switch f {
		case "png", "jpg", "pdf":
			cfg.Format = f
		default:
			return fmt.Errorf("unsupported format %q", value)
		}
	case "canvas_reserved":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < 0 {
			return fmt.Errorf("invalid canvas_reserved %q", value)
		}
		cfg.CanvasReserved = v
	default:
		slog.Debug("config: ignoring unknown key", "key", key)
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func setToolField(cfg *Config, sub tool.SubTool, key, value string) error {
	ts := cfg.Tools[sub]
	switch strings.ToLower(key) {
	case "color":
		if !sub.Colored() {
			return fmt.Errorf("%s has no color", sub)
		}
		col, err := tool.ParseColor(value)
		if err != nil {
			return err
		}
		ts.Color, ts.HasColor = col, true
	case "width":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid width %q: %w", value, err)
		}
		if v < tool.MinSlider || v > tool.MaxSlider {
			return fmt.Errorf("width %g outside %d..%d", v, tool.MinSlider, tool.MaxSlider)
		}
		ts.Slider = v
	}
	cfg.Tools[sub] = ts
	return nil
}
