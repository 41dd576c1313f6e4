package palette

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed presets/*.palette
var presets embed.FS

const ext = ".palette"

// Loader finds presets by name or path.
type Loader struct {
	ConfigDir string
	SystemDir string
	// Inline holds presets defined in the configuration file.
	Inline map[string]*Palette
}

// NewLoader returns a Loader using the standard directories.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "inkshot", "palettes"),
		SystemDir: "/usr/share/inkshot/palettes",
	}
}

// Load resolves name, trying in order: an existing file path, presets from
// the configuration, built-in presets, ConfigDir and SystemDir. An empty name
// is the Default palette.
func (l *Loader) Load(name string) (*Palette, error) {
	if name == "" {
		return Default(), nil
	}
	if _, err := os.Stat(name); err == nil {
		return parseFile(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}
	if p, ok := l.Inline[name]; ok {
		cp := *p
		return &cp, nil
	}
	file := strings.ToLower(name)
	if !strings.HasSuffix(file, ext) {
		file += ext
	}
	if p, err := parseFile(presets, "presets/"+file); err == nil {
		return p, nil
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir == "" {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, file)); err == nil {
			return parseFile(os.DirFS(dir), file)
		}
	}
	return nil, fmt.Errorf("palette %q not found", name)
}

// Names lists every preset Load can find by name, sorted.
func (l *Loader) Names() []string {
	seen := map[string]bool{}
	for name := range l.Inline {
		seen[name] = true
	}
	add := func(fsys fs.FS, dir string) {
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			return
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ext) {
				seen[strings.TrimSuffix(e.Name(), ext)] = true
			}
		}
	}
	add(presets, "presets")
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir != "" {
			add(os.DirFS(dir), ".")
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func parseFile(fsys fs.FS, name string) (*Palette, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return p, nil
}
