package trivial

import (
	"github.com/montplusa/light-riders-bot/pkg/game"
)

// TrivialAI は 1 手先の報酬だけを見て貪欲に動く
type TrivialAI struct{}

func (ai *TrivialAI) Name() string {
	return "trivial"
}

func New() *TrivialAI {
	return &TrivialAI{}
}

// SelectMove は合法手のうち移動先の報酬が最も高いものを返します
// 同点なら game.AllActions の順で先のもの
func (ai *TrivialAI) SelectMove(turn game.Turn) (game.Action, error) {
	g, err := turn.Grid()
	if err != nil {
		return 0, err
	}
	s := g.CurrentState()
	legal := g.LegalActions(s)
	if len(legal) == 0 {
		return 0, game.ErrUndecided
	}

	best := legal[0]
	bestReward := g.Reward(s.Apply(best))
	for _, a := range legal[1:] {
		if r := g.Reward(s.Apply(a)); r > bestReward {
			best, bestReward = a, r
		}
	}
	return best, nil
}
