package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/gg"

	"github.com/example/inkshot/internal/config"
	"github.com/example/inkshot/internal/notify"
	"github.com/example/inkshot/internal/palette"
	"github.com/example/inkshot/internal/tool"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	notifier    *notify.Notifier
	config      *config.Config
	exportAlert bool
	copyAlert   bool
	verbose     bool
	paletteName string
	palette     *palette.Palette
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("inkshot", flag.ExitOnError),
		program:  "inkshot",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.exportAlert, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting an image")
	r.fs.BoolVar(&r.copyAlert, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.verbose, "v", false, "log debug output to stderr")
	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.paletteName, "palette", "", "palette preset name or file")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) setupLogging() {
	level := slog.LevelWarn
	if r.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	gg.SetLogger(logger)
}

// resolvePalette picks the palette named on the command line, in the
// environment or in the config file, in that order.
func (r *root) resolvePalette() *palette.Palette {
	name := r.paletteName
	if name == "" {
		name = os.Getenv("INKSHOT_PALETTE")
	}
	if name == "" && r.config != nil {
		name = r.config.Palette
	}
	loader := r.paletteLoader()
	p, err := loader.Load(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load palette '%s': %v. using default.\n", name, err)
		return palette.Default()
	}
	return p
}

func (r *root) paletteLoader() *palette.Loader {
	loader := palette.NewLoader()
	if r.config != nil {
		loader.Inline = r.config.Palettes
	}
	return loader
}

// selection is the starting tool selection: the active palette with the
// per-tool config overrides applied.
func (r *root) selection() tool.Selection {
	sel := tool.NewSelection()
	if r == nil {
		return sel
	}
	if r.palette != nil {
		sel.Colors = r.palette.ColorSet
	}
	if r.config != nil {
		r.config.Apply(&sel)
	}
	return sel
}

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.setupLogging()
	if r.notifier != nil {
		r.notifier.Enable(notify.EventExport, r.exportAlert)
		r.notifier.Enable(notify.EventCopy, r.copyAlert)
	}
	r.palette = r.resolvePalette()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "draw":
		cmd, err = parseDrawCmd("draw", subArgs, r)
	case "export":
		cmd, err = parseDrawCmd("export", subArgs, r)
	case "preview":
		cmd, err = parsePreviewCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "widths":
		cmd, err = parseWidthsCmd(subArgs, r)
	case "palettes":
		cmd, err = parsePalettesCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
