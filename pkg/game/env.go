package game

import (
	"maps"
	"slices"
)

// IsolatedCellReward は合法手のない空きマスの報酬
const IsolatedCellReward = -10.0

// Environment は単体・対戦の両盤面に共通する読み取り操作
type Environment interface {
	LegalActions(s State) []Action
	CurrentState() State
	IsTerminal(s State) bool
	AllStates() []State
}

// buildTables は全マスの報酬と、eligible なマスの合法手を計算する
func buildTables(f *Field, eligible func(token string) bool) (map[State]float64, map[State][]Action) {
	rewards := make(map[State]float64, f.Rows*f.Cols)
	actions := make(map[State][]Action)
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			s := State{Row: r, Col: c}
			rewards[s] = f.cellReward(s)
			valid := f.validActions(s)
			token := f.At(s)
			if len(valid) > 0 && eligible(token) {
				actions[s] = valid
			} else if len(valid) == 0 && token == EmptyToken {
				rewards[s] = IsolatedCellReward
			}
		}
	}
	return rewards, actions
}

// unionStates は報酬と合法手のキーの和集合を行優先で返す。
// 到達不能なマスも含む。
func unionStates(rewards map[State]float64, actions map[State][]Action) []State {
	set := make(map[State]struct{}, len(rewards)+len(actions))
	for s := range rewards {
		set[s] = struct{}{}
	}
	for s := range actions {
		set[s] = struct{}{}
	}
	states := slices.Collect(maps.Keys(set))
	SortStates(states)
	return states
}

// SortStates は行優先で並べる
func SortStates(states []State) {
	slices.SortFunc(states, func(a, b State) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
}
