package random

import (
	"math/rand"

	"github.com/montplusa/light-riders-bot/pkg/game"
)

// RandomAI は合法手からランダムに選ぶ
type RandomAI struct {
	rng *rand.Rand
}

// New は RandomAI を生成する
func New(rng *rand.Rand) *RandomAI { return &RandomAI{rng: rng} }

func (r *RandomAI) Name() string {
	return "random"
}

func (r *RandomAI) SelectMove(turn game.Turn) (game.Action, error) {
	g, err := turn.Grid()
	if err != nil {
		return 0, err
	}
	legal := g.LegalActions(g.CurrentState())
	if len(legal) == 0 {
		return 0, game.ErrUndecided
	}
	return legal[r.rng.Intn(len(legal))], nil
}
