package montecarlo

import (
	"math/rand"

	"github.com/montplusa/light-riders-bot/pkg/ai/tabular"
	"github.com/montplusa/light-riders-bot/pkg/game"
	"gonum.org/v1/gonum/stat"
)

// Config は初回訪問モンテカルロ制御のパラメータ
type Config struct {
	Gamma    float64
	Epsilon  float64 // 方策から外れて全行動から一様に選ぶ確率
	Episodes int
}

func DefaultConfig() Config {
	return Config{
		Gamma:    0.9,
		Epsilon:  0.5,
		Episodes: 30,
	}
}

// StateAction は returns のキー
type StateAction struct {
	State  game.State
	Action game.Action
}

// Step はエピソード中の 1 ステップ。Action は State で取った行動、
// Reward は State に着いたときの報酬
type Step struct {
	State  game.State
	Action game.Action
	Reward float64
	Final  bool // 終局のダミー（行動なし）
}

// Return は (s, a, G)
type Return struct {
	State  game.State
	Action game.Action
	G      float64
}

// Result は Learn の結果
type Result struct {
	Q       tabular.QTable
	Returns map[StateAction][]float64
	Policy  game.Policy
}

// Engine はオンポリシーの初回訪問モンテカルロ制御
type Engine struct {
	cfg Config
	rng *rand.Rand
}

func New(cfg Config, rng *rand.Rand) *Engine {
	return &Engine{cfg: cfg, rng: rng}
}

// Learn は env から Episodes 回プレイして方策を改善する
func (e *Engine) Learn(env *game.Versus) Result {
	policy := tabular.RandomPolicy(env, e.rng)
	Q := tabular.QTable{}
	returns := make(map[StateAction][]float64)
	for _, s := range env.AllStates() {
		if env.IsTerminal(s) {
			continue
		}
		Q.Row(s)
		for _, a := range game.AllActions {
			returns[StateAction{s, a}] = []float64{}
		}
	}

	for ep := 0; ep < e.cfg.Episodes; ep++ {
		seen := make(map[StateAction]bool)
		for _, r := range e.ComputeReturns(e.PlayGame(env, policy)) {
			key := StateAction{r.State, r.Action}
			if seen[key] {
				continue
			}
			seen[key] = true
			returns[key] = append(returns[key], r.G)
			Q.Set(r.State, r.Action, stat.Mean(returns[key], nil))
		}
		for s := range policy {
			policy[s], _ = Q.Best(s)
		}
	}

	return Result{Q: Q, Returns: returns, Policy: policy}
}

// PlayGame は policy の周りで epsilon-soft に 1 エピソードを生成する
func (e *Engine) PlayGame(env *game.Versus, policy game.Policy) []Step {
	cur := env
	s := cur.CurrentState()
	a := e.explore(policy, s)
	steps := []Step{{State: s, Action: a}}
	for {
		r, next := cur.Move(a)
		r, done := tabular.Outcome(r, next)
		cur = next
		s = cur.CurrentState()
		if done {
			steps = append(steps, Step{State: s, Reward: r, Final: true})
			return steps
		}
		a = e.explore(policy, s)
		steps = append(steps, Step{State: s, Action: a, Reward: r})
	}
}

func (e *Engine) explore(policy game.Policy, s game.State) game.Action {
	a, ok := policy.Action(s)
	if !ok {
		return tabular.RandomAction(e.rng)
	}
	return tabular.EpsilonSoft(a, e.cfg.Epsilon, e.rng)
}

// ComputeReturns は後ろから G = r + gamma*G を積み上げ、前から順の (s, a, G) を返す。
// 終局のダミーは含めない
func (e *Engine) ComputeReturns(steps []Step) []Return {
	G := 0.0
	out := make([]Return, 0, len(steps))
	for i := len(steps) - 1; i >= 0; i-- {
		st := steps[i]
		if !st.Final {
			out = append(out, Return{State: st.State, Action: st.Action, G: G})
		}
		G = st.Reward + e.cfg.Gamma*G
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
