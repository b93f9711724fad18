package valueiter

import (
	"math"
	"math/rand"

	"github.com/montplusa/light-riders-bot/pkg/ai/tabular"
	"github.com/montplusa/light-riders-bot/pkg/game"
)

// Config はパラメータ。評価と改善で割引率が異なるのは元の挙動のまま
type Config struct {
	Gamma           float64 // 方策改善の割引率
	EvaluationGamma float64 // 方策評価の割引率
	Threshold       float64 // biggest change がこれ未満なら収束
	MaxSweeps       int     // 方策評価の最大掃引回数
}

func DefaultConfig() Config {
	return Config{
		Gamma:           0.9,
		EvaluationGamma: 1.0,
		Threshold:       0.5,
		MaxSweeps:       5,
	}
}

// Result は Solve の結果
type Result struct {
	InitialPolicy game.Policy
	Policy        game.Policy
	Values        map[game.State]float64
	Changes       []float64 // 掃引ごとの biggest change
}

// Engine は方策評価 + 方策改善
type Engine struct {
	cfg Config
	rng *rand.Rand
}

func New(cfg Config, rng *rand.Rand) *Engine {
	return &Engine{cfg: cfg, rng: rng}
}

// Solve は g の報酬・合法手から方策を求める。
// 先読みのため g の位置を書き換えるが、終了時に元に戻す
func (e *Engine) Solve(g *game.Grid) Result {
	start := g.CurrentState()
	defer g.SetState(start)

	initial := tabular.RandomPolicy(g, e.rng)
	states := g.AllStates()

	// 各合法手を等確率とみなして評価する
	V := make(map[game.State]float64, len(states))
	for _, s := range states {
		V[s] = 0
	}
	var changes []float64
	for runs := 0; runs < e.cfg.MaxSweeps; runs++ {
		biggest := 0.0
		for _, s := range states {
			legal := g.LegalActions(s)
			if len(legal) == 0 {
				continue
			}
			old := V[s]
			p := 1.0 / float64(len(legal))
			v := 0.0
			for _, a := range legal {
				g.SetState(s)
				r := g.Move(a)
				v += p * (r + e.cfg.EvaluationGamma*V[g.CurrentState()])
			}
			V[s] = v
			biggest = math.Max(biggest, math.Abs(old-v))
		}
		changes = append(changes, biggest)
		if biggest < e.cfg.Threshold {
			break
		}
	}

	// 1 手先読みで最良の行動を選ぶ（同値なら先に見つかった方）
	policy := make(game.Policy, len(initial))
	for _, s := range states {
		if _, ok := initial[s]; !ok {
			continue
		}
		best := initial[s]
		bestValue := math.Inf(-1)
		for _, a := range g.LegalActions(s) {
			g.SetState(s)
			r := g.Move(a)
			v := r + e.cfg.Gamma*V[g.CurrentState()]
			if v > bestValue {
				bestValue = v
				best = a
			}
		}
		policy[s] = best
	}

	return Result{
		InitialPolicy: initial,
		Policy:        policy,
		Values:        V,
		Changes:       changes,
	}
}
