package montecarlo

import (
	"math/rand"
	"testing"

	"github.com/montplusa/light-riders-bot/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestComputeReturns(t *testing.T) {
	e := New(DefaultConfig(), rand.New(rand.NewSource(1)))
	s0 := game.State{Row: 0, Col: 0}
	s1 := game.State{Row: 0, Col: 1}
	s2 := game.State{Row: 0, Col: 2}
	steps := []Step{
		{State: s0, Action: game.Right},
		{State: s1, Action: game.Right, Reward: -0.3},
		{State: s2, Reward: game.LoseReward, Final: true},
	}

	got := e.ComputeReturns(steps)
	require.Len(t, got, 2)
	assert.Equal(t, s0, got[0].State)
	assert.InDelta(t, -0.3+0.9*game.LoseReward, got[0].G, 1e-9)
	assert.Equal(t, s1, got[1].State)
	assert.InDelta(t, game.LoseReward, got[1].G, 1e-9)
}

func TestPlayGame(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	v, err := game.NewVersus("0,.,.,.,.,.,.,.,.,.,.,.,.,.,.,1", 4, 4, "0", "1", rng)
	require.NoError(t, err)
	e := New(DefaultConfig(), rng)

	steps := e.PlayGame(v, game.Policy{})
	require.GreaterOrEqual(t, len(steps), 2)
	assert.Equal(t, v.CurrentState(), steps[0].State)
	assert.Zero(t, steps[0].Reward)
	last := steps[len(steps)-1]
	assert.True(t, last.Final)
	assert.Contains(t, []float64{game.WinReward, game.LoseReward}, last.Reward)
	for _, st := range steps[:len(steps)-1] {
		assert.False(t, st.Final)
	}
}

func TestLearnAveragesFirstVisitReturns(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	v, err := game.NewVersus("0,.,.,.,.,.,.,.,.,.,.,.,.,.,.,1", 4, 4, "0", "1", rng)
	require.NoError(t, err)

	cfg := DefaultConfig()
	res := New(cfg, rng).Learn(v)

	visited := 0
	for key, returns := range res.Returns {
		if len(returns) == 0 {
			continue
		}
		visited++
		assert.LessOrEqual(t, len(returns), cfg.Episodes)
		mean := floats.Sum(returns) / float64(len(returns))
		assert.InDelta(t, mean, res.Q.Get(key.State, key.Action), 1e-9, "%v", key)
	}
	assert.Positive(t, visited)

	// 開始状態は毎エピソード最初に訪れる
	total := 0
	for _, a := range game.AllActions {
		total += len(res.Returns[StateAction{v.CurrentState(), a}])
	}
	assert.Equal(t, cfg.Episodes, total)

	for s, a := range res.Policy {
		best, _ := res.Q.Best(s)
		assert.Equal(t, best, a)
	}
}

func TestMonteCarloAI(t *testing.T) {
	ai := NewAI(DefaultConfig(), rand.New(rand.NewSource(2)))
	assert.Equal(t, "montecarlo", ai.Name())

	a, err := ai.SelectMove(game.Turn{
		FieldData: "0,.,.,.,.,.,.,.,1", FieldHeight: 3, FieldWidth: 3,
		MyBotID: "0", OtherBotID: "1", Round: 3,
	})
	require.NoError(t, err)
	assert.Contains(t, game.AllActions[:], a)
}
