package deepq

import (
	"fmt"
	"math/rand"

	"github.com/montplusa/light-riders-bot/pkg/game"
	"github.com/montplusa/light-riders-bot/pkg/game/debug"
)

// DeepQAI keeps training one network across turns and matches.
type DeepQAI struct {
	engine *Engine
	name   string
	rng    *rand.Rand
	learn  bool
}

func NewAI(cfg Config, net NetworkConfig, rng *rand.Rand) *DeepQAI {
	return &DeepQAI{engine: New(cfg, net, rng), name: net.Name, rng: rng, learn: true}
}

// NewAIWithEngine shares engine, e.g. a network loaded from disk.
func NewAIWithEngine(engine *Engine, name string, rng *rand.Rand) *DeepQAI {
	return &DeepQAI{engine: engine, name: name, rng: rng, learn: true}
}

// SetLearning turns per-turn training on or off.
func (ai *DeepQAI) SetLearning(on bool) {
	ai.learn = on
}

func (ai *DeepQAI) Engine() *Engine {
	return ai.engine
}

func (ai *DeepQAI) Name() string {
	return fmt.Sprintf("deepq (%s)", ai.name)
}

func (ai *DeepQAI) SelectMove(turn game.Turn) (game.Action, error) {
	env, err := turn.Versus(ai.rng)
	if err != nil {
		return 0, err
	}
	if env.GameOver() {
		return 0, game.ErrUndecided
	}
	if ai.learn {
		res := ai.engine.Learn(env)
		debug.Log("deepq: %d episodes, %d examples, returns %v", res.Episodes, res.Examples, res.Returns)
	}
	return ai.engine.Best(env), nil
}
