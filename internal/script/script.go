// Package script replays recorded editing steps against a session without a
// window. Scripts are YAML:
//
//	canvas: {width: 100, height: 50}
//	steps:
//	  - select: pen
//	  - color: "#ff0000"
//	  - width: 80
//	  - stroke: [[10, 25], [40, 25]]
//	  - undo: true
package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/inkshot/internal/drawing"
	"github.com/example/inkshot/internal/session"
	"github.com/example/inkshot/internal/tool"
)

// Canvas is the displayed size the stroke coordinates refer to.
type Canvas struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Step is one action. Exactly one field is set.
type Step struct {
	Select string       `yaml:"select,omitempty"`
	Kind   string       `yaml:"kind,omitempty"`
	Color  string       `yaml:"color,omitempty"`
	Width  float64      `yaml:"width,omitempty"`
	Stroke [][2]float64 `yaml:"stroke,omitempty"`
	Undo   bool         `yaml:"undo,omitempty"`
	Clear  bool         `yaml:"clear,omitempty"`
	Cancel bool         `yaml:"cancel,omitempty"`
}

// Script is a parsed step list.
type Script struct {
	Canvas Canvas `yaml:"canvas"`
	Steps  []Step `yaml:"steps"`
}

// ErrInvalidStep marks a step that names no action or more than one.
var ErrInvalidStep = errors.New("invalid step")

func (st Step) actions() []string {
	var set []string
	if st.Select != "" {
		set = append(set, "select")
	}
	if st.Kind != "" {
		set = append(set, "kind")
	}
	if st.Color != "" {
		set = append(set, "color")
	}
	if st.Width != 0 {
		set = append(set, "width")
	}
	if st.Stroke != nil {
		set = append(set, "stroke")
	}
	if st.Undo {
		set = append(set, "undo")
	}
	if st.Clear {
		set = append(set, "clear")
	}
	if st.Cancel {
		set = append(set, "cancel")
	}
	return set
}

// Read parses a script from r. Unknown keys are rejected.
func Read(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var sc Script
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return &sc, nil
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	for i, st := range sc.Steps {
		if err := st.Validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &sc, nil
}

// Validate checks that st names exactly one action.
func (st Step) Validate() error {
	if set := st.actions(); len(set) != 1 {
		return fmt.Errorf("%w: %d actions (%s)", ErrInvalidStep, len(set), strings.Join(set, ", "))
	}
	return nil
}

// Load reads the script at path; "-" reads stdin.
func Load(path string) (*Script, error) {
	if path == "-" {
		return Read(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Marshal renders sc as YAML.
func (sc *Script) Marshal() ([]byte, error) {
	return yaml.Marshal(sc)
}

// Replay applies every step to s in order. A stroke is fed as one gesture
// that starts at its first point only, so a closed shape stays one stroke.
// Strokes that arrive while no sub-tool is active are dropped like any
// ignored gesture.
func (sc *Script) Replay(s *session.Session) error {
	if sc.Canvas.Width > 0 && sc.Canvas.Height > 0 {
		s.ObserveCanvasSize(drawing.Size{W: sc.Canvas.Width, H: sc.Canvas.Height})
	}
	for i, st := range sc.Steps {
		if err := Apply(s, st); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// Apply performs one step on s.
func Apply(s *session.Session, st Step) error {
	if err := st.Validate(); err != nil {
		return err
	}
	switch {
	case st.Select != "":
		sub, err := tool.ParseSubTool(st.Select)
		if err != nil {
			return err
		}
		s.Select(sub)
	case st.Kind != "":
		switch strings.ToLower(st.Kind) {
		case "draw":
			s.SetKind(tool.KindDraw)
		case "text":
			s.SetKind(tool.KindText)
		default:
			return fmt.Errorf("unknown kind %q", st.Kind)
		}
	case st.Color != "":
		col, err := tool.ParseColor(st.Color)
		if err != nil {
			return err
		}
		if !s.SetColor(col) {
			return fmt.Errorf("current tool %s has no color", s.Selection().SubTool)
		}
	case st.Width != 0:
		if !s.SetSlider(st.Width) {
			return fmt.Errorf("current tool %s has no width", s.Selection().SubTool)
		}
	case st.Stroke != nil:
		if len(st.Stroke) == 0 {
			return fmt.Errorf("%w: empty stroke", ErrInvalidStep)
		}
		for i, p := range st.Stroke {
			s.HandleGesture(drawing.Gesture{Pos: drawing.Point{X: p[0], Y: p[1]}, Start: i == 0})
		}
	case st.Undo:
		s.UndoLast()
	case st.Clear:
		s.ClearAll()
	case st.Cancel:
		s.Cancel()
	}
	return nil
}

// Record converts strokes back into a script that redraws them: each stroke
// is preceded by the tool, color and width it captured.
func Record(strokes []drawing.Stroke, canvas drawing.Size) *Script {
	sc := &Script{Canvas: Canvas{Width: canvas.W, Height: canvas.H}}
	for _, stroke := range strokes {
		if stroke.Empty() {
			continue
		}
		sub := tool.SubTool(stroke.Tool)
		if !sub.Valid() {
			continue
		}
		sc.Steps = append(sc.Steps, Step{Select: sub.String()})
		if sub.Colored() {
			sc.Steps = append(sc.Steps,
				Step{Color: tool.HexColor(stroke.Color)},
				Step{Width: tool.SliderFor(stroke.Width)},
			)
		}
		pts := make([][2]float64, len(stroke.Points))
		for i, p := range stroke.Points {
			pts[i] = [2]float64{p.X, p.Y}
		}
		sc.Steps = append(sc.Steps, Step{Stroke: pts})
	}
	return sc
}
