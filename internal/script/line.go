package script

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseLine reads one step in its single-line form:
//
//	select pen
//	color #ff0000
//	width 80
//	stroke 10,25 40,25 40,40
//	undo
func ParseLine(line string) (Step, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Step{}, fmt.Errorf("%w: empty line", ErrInvalidStep)
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	one := func() (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("%w: %s takes one argument", ErrInvalidStep, name)
		}
		return args[0], nil
	}
	none := func(st Step) (Step, error) {
		if len(args) != 0 {
			return Step{}, fmt.Errorf("%w: %s takes no arguments", ErrInvalidStep, name)
		}
		return st, nil
	}

	switch name {
	case "select":
		v, err := one()
		return Step{Select: v}, err
	case "kind":
		v, err := one()
		return Step{Kind: v}, err
	case "color":
		v, err := one()
		return Step{Color: v}, err
	case "width":
		v, err := one()
		if err != nil {
			return Step{}, err
		}
		w, err := strconv.ParseFloat(v, 64)
		if err != nil || w == 0 {
			return Step{}, fmt.Errorf("%w: bad width %q", ErrInvalidStep, v)
		}
		return Step{Width: w}, nil
	case "stroke":
		if len(args) == 0 {
			return Step{}, fmt.Errorf("%w: stroke needs at least one point", ErrInvalidStep)
		}
		pts := make([][2]float64, len(args))
		for i, a := range args {
			xs, ys, ok := strings.Cut(a, ",")
			x, errX := strconv.ParseFloat(xs, 64)
			y, errY := strconv.ParseFloat(ys, 64)
			if !ok || errX != nil || errY != nil {
				return Step{}, fmt.Errorf("%w: bad point %q, want x,y", ErrInvalidStep, a)
			}
			pts[i] = [2]float64{x, y}
		}
		return Step{Stroke: pts}, nil
	case "undo":
		return none(Step{Undo: true})
	case "clear":
		return none(Step{Clear: true})
	case "cancel":
		return none(Step{Cancel: true})
	default:
		return Step{}, fmt.Errorf("%w: unknown action %q", ErrInvalidStep, fields[0])
	}
}

// Line renders st in the form ParseLine reads.
func (st Step) Line() string {
	switch {
	case st.Select != "":
		return "select " + st.Select
	case st.Kind != "":
		return "kind " + st.Kind
	case st.Color != "":
		return "color " + st.Color
	case st.Width != 0:
		return "width " + strconv.FormatFloat(st.Width, 'g', -1, 64)
	case st.Stroke != nil:
		parts := make([]string, len(st.Stroke))
		for i, p := range st.Stroke {
			parts[i] = strconv.FormatFloat(p[0], 'g', -1, 64) + "," + strconv.FormatFloat(p[1], 'g', -1, 64)
		}
		return "stroke " + strings.Join(parts, " ")
	case st.Undo:
		return "undo"
	case st.Clear:
		return "clear"
	case st.Cancel:
		return "cancel"
	}
	return ""
}
