// Package deepq approximates Q(s, ·) with a small go-deep regression network
// instead of a lookup table. Each Learn call plays epsilon-greedy episodes on
// the two-agent environment and fits the network to the discounted returns.
package deepq

import (
	"math/rand"

	"github.com/montplusa/light-riders-bot/pkg/ai/tabular"
	"github.com/montplusa/light-riders-bot/pkg/game"
	"github.com/patrikeh/go-deep"
	"github.com/patrikeh/go-deep/training"
	"gonum.org/v1/gonum/floats"
)

// ReturnScale maps returns into the range the network is trained on.
const ReturnScale = 100.0

type Config struct {
	Gamma        float64
	Epsilon      float64
	Episodes     int // episodes per Learn call
	LearningRate float64
	Momentum     float64
	Iterations   int // trainer passes over the collected examples
}

func DefaultConfig() Config {
	return Config{
		Gamma:        0.9,
		Epsilon:      0.2,
		Episodes:     20,
		LearningRate: 0.01,
		Momentum:     0.5,
		Iterations:   1,
	}
}

// Result summarises one Learn call.
type Result struct {
	Episodes int
	Examples int
	Returns  []float64 // undiscounted total per episode
}

// Engine owns the network; it is kept between Learn calls.
type Engine struct {
	cfg     Config
	network *deep.Neural
	rng     *rand.Rand
}

func New(cfg Config, net NetworkConfig, rng *rand.Rand) *Engine {
	return &Engine{cfg: cfg, network: newNetwork(net), rng: rng}
}

// NewWithNetwork wraps an already trained network.
func NewWithNetwork(cfg Config, network *deep.Neural, rng *rand.Rand) *Engine {
	return &Engine{cfg: cfg, network: network, rng: rng}
}

func (e *Engine) Network() *deep.Neural {
	return e.network
}

// Values predicts Q(s, a) for the current state of env, indexed by game.Action.
func (e *Engine) Values(env *game.Versus) []float64 {
	return e.network.Predict(Features(env))
}

// Best returns the legal action with the highest predicted value. With no
// legal action it falls back to the overall argmax.
func (e *Engine) Best(env *game.Versus) game.Action {
	q := e.Values(env)
	legal := env.LegalActions(env.CurrentState())
	if len(legal) == 0 {
		return game.Action(floats.MaxIdx(q))
	}
	best := legal[0]
	for _, a := range legal[1:] {
		if q[a] > q[best] {
			best = a
		}
	}
	return best
}

type transition struct {
	features []float64
	values   []float64
	action   game.Action
	reward   float64
}

// Learn plays cfg.Episodes episodes from env and trains on them. env itself
// is not modified.
func (e *Engine) Learn(env *game.Versus) Result {
	res := Result{Episodes: e.cfg.Episodes, Returns: make([]float64, 0, e.cfg.Episodes)}
	var examples training.Examples

	for ep := 0; ep < e.cfg.Episodes; ep++ {
		episode, total := e.playEpisode(env)
		res.Returns = append(res.Returns, total)
		examples = append(examples, e.examples(episode)...)
	}
	res.Examples = len(examples)
	if len(examples) == 0 {
		return res
	}

	trainer := training.NewTrainer(training.NewSGD(e.cfg.LearningRate, e.cfg.Momentum, 0, false), 0)
	trainer.Train(e.network, examples, nil, max(1, e.cfg.Iterations))
	return res
}

func (e *Engine) playEpisode(env *game.Versus) ([]transition, float64) {
	var episode []transition
	total := 0.0
	cur := env
	for !cur.GameOver() {
		x := Features(cur)
		q := e.network.Predict(x)
		var a game.Action
		if e.rng.Float64() < 1-e.cfg.Epsilon {
			a = game.Action(floats.MaxIdx(q))
		} else {
			a = tabular.RandomAction(e.rng)
		}
		r, next := cur.Move(a)
		r, _ = tabular.Outcome(r, next)
		total += r
		episode = append(episode, transition{features: x, values: q, action: a, reward: r})
		cur = next
	}
	return episode, total
}

// examples turns an episode into training pairs: the prediction with the
// taken action's entry replaced by its discounted return.
func (e *Engine) examples(episode []transition) training.Examples {
	out := make(training.Examples, len(episode))
	G := 0.0
	for i := len(episode) - 1; i >= 0; i-- {
		tr := episode[i]
		G = tr.reward + e.cfg.Gamma*G
		target := append([]float64{}, tr.values...)
		target[tr.action] = G / ReturnScale
		out[i] = training.Example{Input: tr.features, Response: target}
	}
	return out
}
