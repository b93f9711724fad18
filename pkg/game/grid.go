package game

import (
	"errors"
	"slices"
)

var ErrUnknownState = errors.New("state is not part of the grid")

// Grid は単体エージェントの盤面。位置だけを書き換える
type Grid struct {
	Rows    int
	Cols    int
	pos     State
	rewards map[State]float64
	actions map[State][]Action
}

// NewGrid は開始位置だけを持つ Grid を返す。報酬と合法手は Set で設定する
func NewGrid(rows, cols int, start State) *Grid {
	return &Grid{Rows: rows, Cols: cols, pos: start}
}

// GridFromField は盤面から selfID の Grid を組み立てる。
// 合法手は "." と自機のマスにだけ与える
func GridFromField(f *Field, selfID string) (*Grid, error) {
	start, err := f.Find(selfID)
	if err != nil {
		return nil, err
	}
	rewards, actions := buildTables(f, func(token string) bool {
		return token == EmptyToken || token == selfID
	})
	g := NewGrid(f.Rows, f.Cols, start)
	g.Set(rewards, actions)
	return g, nil
}

// Set は報酬と合法手を設定する
func (g *Grid) Set(rewards map[State]float64, actions map[State][]Action) {
	g.rewards = rewards
	g.actions = actions
}

func (g *Grid) SetState(s State) {
	g.pos = s
}

func (g *Grid) CurrentState() State {
	return g.pos
}

// IsTerminal は s に合法手のエントリがないとき true
func (g *Grid) IsTerminal(s State) bool {
	_, ok := g.actions[s]
	return !ok
}

func (g *Grid) GameOver() bool {
	return g.IsTerminal(g.pos)
}

func (g *Grid) LegalActions(s State) []Action {
	return g.actions[s]
}

// Reward は s の報酬。未設定なら 0
func (g *Grid) Reward(s State) float64 {
	return g.rewards[s]
}

// Move は合法なら位置を動かし、移動後（非合法ならそのまま）の位置の報酬を返す
func (g *Grid) Move(a Action) float64 {
	if slices.Contains(g.actions[g.pos], a) {
		g.pos = g.pos.Apply(a)
	}
	return g.Reward(g.pos)
}

// UndoMove は a の逆向きに戻す
func (g *Grid) UndoMove(a Action) error {
	switch a {
	case Up:
		g.pos.Row++
	case Down:
		g.pos.Row--
	case Left:
		g.pos.Col++
	case Right:
		g.pos.Col--
	}
	if !slices.Contains(g.AllStates(), g.pos) {
		return ErrUnknownState
	}
	return nil
}

// AllStates は報酬と合法手のキーの和集合
func (g *Grid) AllStates() []State {
	return unionStates(g.rewards, g.actions)
}
