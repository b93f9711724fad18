package montecarlo

import (
	"math/rand"

	"github.com/montplusa/light-riders-bot/pkg/game"
	"github.com/montplusa/light-riders-bot/pkg/game/debug"
)

// MonteCarloAI は毎ターン初回訪問モンテカルロ制御で方策を作る
type MonteCarloAI struct {
	engine *Engine
	rng    *rand.Rand
}

func NewAI(cfg Config, rng *rand.Rand) *MonteCarloAI {
	return &MonteCarloAI{engine: New(cfg, rng), rng: rng}
}

func (ai *MonteCarloAI) Name() string {
	return "montecarlo"
}

func (ai *MonteCarloAI) SelectMove(turn game.Turn) (game.Action, error) {
	env, err := turn.Versus(ai.rng)
	if err != nil {
		return 0, err
	}
	res := ai.engine.Learn(env)
	s := env.CurrentState()
	debug.Log("montecarlo: Q%v = %v", s, res.Q.Row(s))
	a, ok := res.Policy.Action(s)
	if !ok {
		return 0, game.ErrUndecided
	}
	return a, nil
}
