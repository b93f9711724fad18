package valueiter

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/montplusa/light-riders-bot/pkg/game"
	"github.com/montplusa/light-riders-bot/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridFrom(t *testing.T, data string, rows, cols int) *game.Grid {
	t.Helper()
	f, err := game.ParseField(data, rows, cols)
	require.NoError(t, err)
	g, err := game.GridFromField(f, "0")
	require.NoError(t, err)
	return g
}

func TestSolveSingleState(t *testing.T) {
	// 非終端は自機のマスだけ。左隣は孤立した空きマス
	g := gridFrom(t, ".,0", 1, 2)
	res := New(DefaultConfig(), rand.New(rand.NewSource(1))).Solve(g)

	require.Len(t, res.Changes, 2)
	assert.InDelta(t, 10.0, res.Changes[0], 1e-9)
	assert.Zero(t, res.Changes[1])
	assert.InDelta(t, -10.0, res.Values[game.State{Row: 0, Col: 1}], 1e-9)

	a, ok := res.Policy.Action(game.State{Row: 0, Col: 1})
	require.True(t, ok)
	assert.Equal(t, game.Left, a)
	_, ok = res.Policy.Action(game.State{Row: 0, Col: 0})
	assert.False(t, ok)
}

func TestSolveRestoresPosition(t *testing.T) {
	g := gridFrom(t, "0,.,.,.,x,.,.,.,.", 3, 3)
	start := g.CurrentState()
	New(DefaultConfig(), rand.New(rand.NewSource(1))).Solve(g)
	assert.Equal(t, start, g.CurrentState())
}

func TestSolveSweepCap(t *testing.T) {
	g := gridFrom(t, "0,.,.,.,.,.,.,.,.,.,.,.,.,.,.,.", 4, 4)
	cfg := DefaultConfig()
	cfg.Threshold = 0
	res := New(cfg, rand.New(rand.NewSource(1))).Solve(g)
	assert.LessOrEqual(t, len(res.Changes), cfg.MaxSweeps)
}

func TestSolvePolicyIsLegal(t *testing.T) {
	g := gridFrom(t, "0,.,.,.,x,.,.,.,.", 3, 3)
	res := New(DefaultConfig(), rand.New(rand.NewSource(4))).Solve(g)

	for s, a := range res.Policy {
		assert.Contains(t, g.LegalActions(s), a)
	}
	assert.Equal(t, len(res.InitialPolicy), len(res.Policy))
}

func TestValueIterationAI(t *testing.T) {
	var out bytes.Buffer
	ai := NewAI(DefaultConfig(), rand.New(rand.NewSource(1)), render.NewPrinter(&out, false))
	assert.Equal(t, "valueiter", ai.Name())

	a, err := ai.SelectMove(game.Turn{FieldData: ".,0", FieldHeight: 1, FieldWidth: 2, MyBotID: "0", OtherBotID: "1", Round: 1})
	require.NoError(t, err)
	assert.Equal(t, game.Left, a)
	assert.Contains(t, out.String(), "VALUES")
	assert.Contains(t, out.String(), "POLICY")

	_, err = ai.SelectMove(game.Turn{FieldData: "x,0", FieldHeight: 1, FieldWidth: 2, MyBotID: "0"})
	assert.ErrorIs(t, err, game.ErrUndecided)
}
