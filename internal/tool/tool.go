// Package tool describes the editor's tools and the current selection record
// that decides which brush a new stroke captures.
package tool

import (
	"fmt"
	"strings"
)

// Kind is the top-level tool mode.
type Kind int

const (
	KindDraw Kind = iota
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindDraw:
		return "draw"
	case KindText:
		return "text"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// DrawCapable reports whether strokes can be drawn in this mode.
func (k Kind) DrawCapable() bool { return k == KindDraw }

// SubTool selects one of the drawing instruments. The numeric values are the
// indices used by the tool strip.
type SubTool int

const (
	SubToolNone SubTool = iota - 1
	Pen
	Brush
	Neon
	Pencil
	Lasso
	Eraser
)

var subToolNames = []string{"pen", "brush", "neon", "pencil", "lasso", "eraser"}

// SubTools returns every concrete sub-tool in strip order.
func SubTools() []SubTool {
	return []SubTool{Pen, Brush, Neon, Pencil, Lasso, Eraser}
}

func (s SubTool) String() string {
	if s.Valid() {
		return subToolNames[s]
	}
	return "none"
}

// Valid reports whether s names a concrete sub-tool.
func (s SubTool) Valid() bool { return s >= Pen && s <= Eraser }

// Colored reports whether the sub-tool carries its own color and width.
// Lasso and eraser do not.
func (s SubTool) Colored() bool { return s >= Pen && s <= Pencil }

// ParseSubTool resolves a sub-tool by name or strip index.
func ParseSubTool(s string) (SubTool, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for i, name := range subToolNames {
		if v == name || v == fmt.Sprint(i) {
			return SubTool(i), nil
		}
	}
	if v == "none" || v == "" {
		return SubToolNone, nil
	}
	return SubToolNone, fmt.Errorf("unknown tool %q", s)
}

// IsGestureActive reports whether pointer input should reach the drawing.
// Without a concrete sub-tool the canvas is pass-through so gestures such as
// pinch-to-zoom reach the view underneath.
func IsGestureActive(kind Kind, sub SubTool) bool {
	return kind.DrawCapable() && sub.Valid()
}
