// Package tabular provides the lookup-table pieces shared by the tabular
// control engines: a Q table, exploration rules and policy extraction.
package tabular

import (
	"math/rand"

	"github.com/montplusa/light-riders-bot/pkg/game"
	"gonum.org/v1/gonum/floats"
)

// QTable maps a state to its four action values, indexed by game.Action.
type QTable map[game.State][]float64

// NewQTable returns a table with a zeroed row for every state.
func NewQTable(states []game.State) QTable {
	q := make(QTable, len(states))
	for _, s := range states {
		q[s] = make([]float64, game.NumActions)
	}
	return q
}

// Row returns the action values of s, creating a zero row if needed.
func (q QTable) Row(s game.State) []float64 {
	row, ok := q[s]
	if !ok {
		row = make([]float64, game.NumActions)
		q[s] = row
	}
	return row
}

func (q QTable) Get(s game.State, a game.Action) float64 {
	return q.Row(s)[a]
}

func (q QTable) Set(s game.State, a game.Action, v float64) {
	q.Row(s)[a] = v
}

// Best returns the argmax action of s and its value. Ties go to the first
// action in game.AllActions order.
func (q QTable) Best(s game.State) (game.Action, float64) {
	row := q.Row(s)
	i := floats.MaxIdx(row)
	return game.Action(i), row[i]
}

// MaxValue is max_a Q(s, a).
func (q QTable) MaxValue(s game.State) float64 {
	_, v := q.Best(s)
	return v
}

// GreedyPolicy returns argmax_a Q(s, a) for every state that has legal
// actions in env.
func (q QTable) GreedyPolicy(env game.Environment) game.Policy {
	policy := game.Policy{}
	for _, s := range env.AllStates() {
		if env.IsTerminal(s) {
			continue
		}
		policy[s], _ = q.Best(s)
	}
	return policy
}

// EpsilonGreedy takes the best action with probability 1-eps, otherwise a
// uniformly random one of all four actions.
func EpsilonGreedy(q QTable, s game.State, eps float64, rng *rand.Rand) game.Action {
	if rng.Float64() < 1-eps {
		a, _ := q.Best(s)
		return a
	}
	return RandomAction(rng)
}

// EpsilonSoft follows a with probability 1-eps, otherwise picks uniformly
// among all four actions.
func EpsilonSoft(a game.Action, eps float64, rng *rand.Rand) game.Action {
	if rng.Float64() < 1-eps {
		return a
	}
	return RandomAction(rng)
}

func RandomAction(rng *rand.Rand) game.Action {
	return game.AllActions[rng.Intn(game.NumActions)]
}

// RandomPolicy picks one legal action uniformly for every non-terminal state.
func RandomPolicy(env game.Environment, rng *rand.Rand) game.Policy {
	policy := game.Policy{}
	for _, s := range env.AllStates() {
		legal := env.LegalActions(s)
		if len(legal) == 0 {
			continue
		}
		policy[s] = legal[rng.Intn(len(legal))]
	}
	return policy
}

// Outcome applies the terminal rule to a step: when next ends the game the
// reward becomes game.LoseReward if we lost, otherwise game.WinReward.
func Outcome(r float64, next *game.Versus) (float64, bool) {
	if !next.GameOver() {
		return r, false
	}
	if next.ILost() {
		return game.LoseReward, true
	}
	return game.WinReward, true
}
