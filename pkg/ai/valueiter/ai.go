package valueiter

import (
	"math/rand"

	"github.com/montplusa/light-riders-bot/pkg/game"
	"github.com/montplusa/light-riders-bot/pkg/render"
)

// ValueIterationAI は毎ターン盤面から方策を計算し直す
type ValueIterationAI struct {
	engine  *Engine
	printer *render.Printer // nil なら表示しない
}

func NewAI(cfg Config, rng *rand.Rand, printer *render.Printer) *ValueIterationAI {
	return &ValueIterationAI{engine: New(cfg, rng), printer: printer}
}

func (ai *ValueIterationAI) Name() string {
	return "valueiter"
}

// SelectMove は現在位置での方策の行動を返す
func (ai *ValueIterationAI) SelectMove(turn game.Turn) (game.Action, error) {
	g, err := turn.Grid()
	if err != nil {
		return 0, err
	}
	res := ai.engine.Solve(g)
	current := g.CurrentState()
	if ai.printer != nil {
		ai.printer.Policy(res.InitialPolicy, g.Rows, g.Cols, current)
		ai.printer.Values(res.Values, g.Rows, g.Cols, current)
		ai.printer.Policy(res.Policy, g.Rows, g.Cols, current)
	}
	a, ok := res.Policy.Action(current)
	if !ok {
		return 0, game.ErrUndecided
	}
	return a, nil
}
