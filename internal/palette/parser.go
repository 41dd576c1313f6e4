package palette

import (
	"bufio"
	"io"
	"strings"
)

// Parse reads a preset. Missing keys keep their Default value.
func Parse(r io.Reader) (*Palette, error) {
	p := Default()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if err := p.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return nil, err
		}
	}
	return p, scanner.Err()
}
