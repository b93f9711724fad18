package qlearning

import (
	"math/rand"

	"github.com/montplusa/light-riders-bot/pkg/ai/tabular"
	"github.com/montplusa/light-riders-bot/pkg/game"
)

// Config は Q 学習のパラメータ
type Config struct {
	Gamma            float64 // 割引率
	Alpha            float64 // 学習率の分子。alpha = Alpha / count(s,a)
	AlphaDecay       float64 // 更新ごとに count(s,a) に足す量
	EpsilonBase      float64 // epsilon = EpsilonBase / t
	TemperatureEvery int     // t を増やすエピソード間隔
	EpisodeCap       int     // エピソード数の上限 min(round, EpisodeCap)
}

func DefaultConfig() Config {
	return Config{
		Gamma:            0.9,
		Alpha:            0.1,
		AlphaDecay:       0.005,
		EpsilonBase:      0.5,
		TemperatureEvery: 3,
		EpisodeCap:       25,
	}
}

// Result は Learn の結果
type Result struct {
	Q        tabular.QTable
	Policy   game.Policy
	Episodes int
	Returns  []float64 // エピソードごとの報酬合計
}

// Engine はオフポリシーの表形式 Q 学習
type Engine struct {
	cfg Config
	rng *rand.Rand
}

func New(cfg Config, rng *rand.Rand) *Engine {
	if cfg.TemperatureEvery <= 0 {
		cfg.TemperatureEvery = 1
	}
	return &Engine{cfg: cfg, rng: rng}
}

// Budget はターン数から決まるエピソード数
func (e *Engine) Budget(round int) int {
	return max(0, min(round, e.cfg.EpisodeCap))
}

// Learn は env から Budget(round) 回のエピソードを回して貪欲方策を返す。
// env 自体は変更しない
func (e *Engine) Learn(env *game.Versus, round int) Result {
	Q := tabular.NewQTable(env.AllStates())
	l := &learner{cfg: e.cfg, Q: Q, counts: map[game.State][]float64{}}

	budget := e.Budget(round)
	returns := make([]float64, 0, budget)
	t := 1.0
	for it := 0; it < budget; it++ {
		if it > 0 && it%e.cfg.TemperatureEvery == 0 {
			t++
		}
		eps := e.cfg.EpsilonBase / t

		cur := env
		s := cur.CurrentState()
		total := 0.0
		for !cur.GameOver() {
			a := tabular.EpsilonGreedy(Q, s, eps, e.rng)
			r, next := cur.Move(a)
			r, done := tabular.Outcome(r, next)
			total += r

			s2 := next.CurrentState()
			l.update(s, a, r, s2, done)

			cur, s = next, s2
		}
		returns = append(returns, total)
	}

	return Result{
		Q:        Q,
		Policy:   Q.GreedyPolicy(env),
		Episodes: budget,
		Returns:  returns,
	}
}

// learner は Q と更新回数を持つ
type learner struct {
	cfg    Config
	Q      tabular.QTable
	counts map[game.State][]float64 // 初期値 1
}

func (l *learner) count(s game.State) []float64 {
	c, ok := l.counts[s]
	if !ok {
		c = []float64{1, 1, 1, 1}
		l.counts[s] = c
	}
	return c
}

// update は Q(s,a) += alpha * (r + gamma * max_a' Q(s',a') - Q(s,a))。
// 次に実際に取る行動には依存しない
func (l *learner) update(s game.State, a game.Action, r float64, s2 game.State, done bool) {
	c := l.count(s)
	alpha := l.cfg.Alpha / c[a]
	c[a] += l.cfg.AlphaDecay

	// 終局後の状態はマーカー盤面の座標なので価値 0
	target := r
	if !done {
		target += l.cfg.Gamma * l.Q.MaxValue(s2)
	}
	old := l.Q.Get(s, a)
	l.Q.Set(s, a, old+alpha*(target-old))
}
