package script

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want Step
	}{
		{"select pen", Step{Select: "pen"}},
		{"  KIND text ", Step{Kind: "text"}},
		{"color #ff0000", Step{Color: "#ff0000"}},
		{"width 80", Step{Width: 80}},
		{"stroke 10,25 40.5,25", Step{Stroke: [][2]float64{{10, 25}, {40.5, 25}}}},
		{"undo", Step{Undo: true}},
		{"clear", Step{Clear: true}},
		{"cancel", Step{Cancel: true}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			again, err := ParseLine(got.Line())
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestParseLineErrors(t *testing.T) {
	for _, line := range []string{"", "paint pen", "select", "select pen brush", "width wide", "width 0", "stroke", "stroke 1;2", "undo now"} {
		t.Run(line, func(t *testing.T) {
			_, err := ParseLine(line)
			assert.True(t, errors.Is(err, ErrInvalidStep), "got %v", err)
		})
	}
}

func TestApplyValidates(t *testing.T) {
	err := Apply(newSession(t), Step{Select: "pen", Undo: true})
	assert.True(t, errors.Is(err, ErrInvalidStep))
	assert.True(t, errors.Is(Apply(newSession(t), Step{}), ErrInvalidStep))
}
