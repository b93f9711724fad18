package qlearning

import (
	"math/rand"

	"github.com/montplusa/light-riders-bot/pkg/game"
	"github.com/montplusa/light-riders-bot/pkg/game/debug"
)

// QLearningAI は毎ターン Q 学習をやり直す
type QLearningAI struct {
	engine *Engine
	rng    *rand.Rand
}

func NewAI(cfg Config, rng *rand.Rand) *QLearningAI {
	return &QLearningAI{engine: New(cfg, rng), rng: rng}
}

func (ai *QLearningAI) Name() string {
	return "qlearning"
}

func (ai *QLearningAI) SelectMove(turn game.Turn) (game.Action, error) {
	env, err := turn.Versus(ai.rng)
	if err != nil {
		return 0, err
	}
	res := ai.engine.Learn(env, turn.Round)
	debug.Log("qlearning: %d episodes, returns %v", res.Episodes, res.Returns)
	a, ok := res.Policy.Action(env.CurrentState())
	if !ok {
		return 0, game.ErrUndecided
	}
	return a, nil
}
