package tabular

import (
	"math/rand"
	"testing"

	"github.com/montplusa/light-riders-bot/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQTableBest(t *testing.T) {
	s := game.State{Row: 1, Col: 2}
	q := QTable{}

	// 全部 0 なら先頭の行動
	a, v := q.Best(s)
	assert.Equal(t, game.Up, a)
	assert.Zero(t, v)

	q.Set(s, game.Left, 3)
	q.Set(s, game.Right, 3)
	a, v = q.Best(s)
	assert.Equal(t, game.Left, a)
	assert.Equal(t, 3.0, v)
	assert.Equal(t, 3.0, q.MaxValue(s))
}

func TestEpsilonGreedy(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := game.State{}
	q := QTable{}
	q.Set(s, game.Down, 1)

	for i := 0; i < 50; i++ {
		assert.Equal(t, game.Down, EpsilonGreedy(q, s, 0, rng))
	}

	seen := map[game.Action]bool{}
	for i := 0; i < 200; i++ {
		seen[EpsilonGreedy(q, s, 1, rng)] = true
	}
	assert.Len(t, seen, game.NumActions)
}

func TestEpsilonSoft(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 50; i++ {
		assert.Equal(t, game.Right, EpsilonSoft(game.Right, 0, rng))
	}
}

func TestPolicies(t *testing.T) {
	v, err := game.NewVersus("0,.,.,.,x,.,.,.,1", 3, 3, "0", "1", rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	random := RandomPolicy(v, rand.New(rand.NewSource(1)))
	for s, a := range random {
		assert.Contains(t, v.LegalActions(s), a)
	}
	_, ok := random.Action(game.State{Row: 1, Col: 1})
	assert.False(t, ok)

	q := NewQTable(v.AllStates())
	q.Set(game.State{}, game.Right, 5)
	greedy := q.GreedyPolicy(v)
	a, ok := greedy.Action(game.State{})
	require.True(t, ok)
	assert.Equal(t, game.Right, a)
	for s := range greedy {
		assert.False(t, v.IsTerminal(s))
	}
}

func TestOutcome(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	v, err := game.NewVersus("0,x,.,.,.,1", 2, 3, "0", "1", rng)
	require.NoError(t, err)
	r, next := v.MoveWith(game.Right, game.Up)
	r, done := Outcome(r, next)
	assert.True(t, done)
	assert.Equal(t, game.LoseReward, r)

	v, err = game.NewVersus("0,.,.,.,.,.,.,.,1", 3, 3, "0", "1", rng)
	require.NoError(t, err)
	r, next = v.MoveWith(game.Right, game.Left)
	r, done = Outcome(r, next)
	assert.False(t, done)
	assert.InDelta(t, v.Reward(v.CurrentState()), r, 1e-9)

	// 相手が自分の元いたマスに入る
	v, err = game.NewVersus("0,.,1,.", 2, 2, "0", "1", rng)
	require.NoError(t, err)
	r, next = v.MoveWith(game.Right, game.Up)
	r, done = Outcome(r, next)
	assert.True(t, done)
	assert.Equal(t, game.WinReward, r)
}
