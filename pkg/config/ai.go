package config

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/montplusa/light-riders-bot/pkg/ai/deepq"
	"github.com/montplusa/light-riders-bot/pkg/ai/montecarlo"
	"github.com/montplusa/light-riders-bot/pkg/ai/qlearning"
	randomai "github.com/montplusa/light-riders-bot/pkg/ai/random"
	"github.com/montplusa/light-riders-bot/pkg/ai/territory"
	"github.com/montplusa/light-riders-bot/pkg/ai/trivial"
	"github.com/montplusa/light-riders-bot/pkg/ai/valueiter"
	"github.com/montplusa/light-riders-bot/pkg/game"
	"github.com/montplusa/light-riders-bot/pkg/render"
)

// Rand returns the random source described by cfg.Seed.
func (cfg Config) Rand() *rand.Rand {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewAI builds the bot named by cfg.Engine. trace receives the value
// iteration printouts; nil disables them.
func NewAI(cfg Config, rng *rand.Rand, trace io.Writer) (game.AI, error) {
	return NewNamedAI(cfg.Engine, cfg, rng, trace)
}

// NewNamedAI is NewAI for an explicit engine name.
func NewNamedAI(name string, cfg Config, rng *rand.Rand, trace io.Writer) (game.AI, error) {
	switch name {
	case EngineValueIter:
		var printer *render.Printer
		if trace != nil {
			printer = render.NewPrinter(trace, cfg.Color)
		}
		return valueiter.NewAI(cfg.ValueIter, rng, printer), nil
	case EngineQLearning:
		return qlearning.NewAI(cfg.QLearning, rng), nil
	case EngineMonteCarlo:
		return montecarlo.NewAI(cfg.MonteCarlo, rng), nil
	case EngineDeepQ:
		return deepq.NewAI(cfg.DeepQ, deepq.DefaultNetworkConfig(), rng), nil
	case EngineRandom:
		return randomai.New(rng), nil
	case EngineTerritory:
		return territory.New(), nil
	case EngineTrivial:
		return trivial.New(), nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownEngine)
}
