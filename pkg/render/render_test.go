package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/montplusa/light-riders-bot/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinterValues(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, false)
	V := map[game.State]float64{
		{Row: 0, Col: 0}: 1.5,
		{Row: 0, Col: 1}: -2.25,
	}
	p.Values(V, 1, 2, game.State{})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "VALUES", lines[0])
	assert.Equal(t, strings.Repeat("-", 16), lines[1])
	assert.Equal(t, "   1.50|  -2.25|", lines[2])
}

func TestPrinterPolicy(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, false)
	policy := game.Policy{{Row: 0, Col: 1}: game.Left}
	p.Policy(policy, 1, 2, game.State{})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "POLICY", lines[0])
	assert.Equal(t, "       | left  |", lines[2])
}

func TestPrinterColors(t *testing.T) {
	var out bytes.Buffer
	NewPrinter(&out, true).Values(map[game.State]float64{}, 1, 1, game.State{})
	assert.Contains(t, out.String(), "\x1b[")
}

func TestWinRates(t *testing.T) {
	results := []game.BattleResult{{Winner: 0}, {Winner: -1}, {Winner: 1}, {Winner: 0}}
	rates := WinRates(results)
	assert.InDeltaSlice(t, []float64{1, 0.5, 1.0 / 3, 0.5}, rates[0], 1e-9)
	assert.InDeltaSlice(t, []float64{0, 0, 1.0 / 3, 0.25}, rates[1], 1e-9)
}

func TestWriteWinChart(t *testing.T) {
	var out bytes.Buffer
	results := []game.BattleResult{
		{Players: [2]string{"territory", "random"}, Winner: 0},
		{Players: [2]string{"territory", "random"}, Winner: 1},
	}
	require.NoError(t, WriteWinChart(&out, "territory vs random", results))
	assert.Contains(t, out.String(), "territory vs random")
	assert.Contains(t, out.String(), "<html")

	assert.Error(t, WriteWinChart(&out, "empty", nil))
}
