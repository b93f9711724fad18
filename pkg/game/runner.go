package game

import (
	"math/rand"
	"strconv"

	"github.com/google/uuid"
	"github.com/montplusa/light-riders-bot/pkg/game/debug"
)

// 試合の打ち切りターン数（盤面が埋まれば必ず終わるので保険）
const maxRounds = DefaultBoardSize * DefaultBoardSize

// JointMove は 1 ターンの両者の手
type JointMove struct {
	Round int
	Moves [2]Action
}

// BattleResult は対戦結果の記録
type BattleResult struct {
	ID           uuid.UUID
	Players      [2]string
	InitialField string      // 開始盤面
	Moves        []JointMove // 手の履歴
	Winner       int         // 0, 1、引き分けは -1
}

// GameRunner は対戦を管理
type GameRunner struct {
	agents [2]AI
	rows   int
	cols   int
	rng    *rand.Rand
}

// NewGameRunner は AI エージェントをセットして返す
func NewGameRunner(a0, a1 AI, rng *rand.Rand) *GameRunner {
	return &GameRunner{
		agents: [2]AI{a0, a1},
		rows:   DefaultBoardSize,
		cols:   DefaultBoardSize,
		rng:    rng,
	}
}

// WithBoard は盤面サイズを変える
func (gr *GameRunner) WithBoard(rows, cols int) *GameRunner {
	gr.rows, gr.cols = rows, cols
	return gr
}

// Run は対戦を実行して BattleResult を返す
func (gr *GameRunner) Run() BattleResult {
	lr := NewLightRiders(gr.rows, gr.cols, gr.rng)
	lr.Reset()

	result := BattleResult{
		ID:           uuid.New(),
		Players:      [2]string{gr.agents[0].Name(), gr.agents[1].Name()},
		InitialField: lr.Tokens(),
		Moves:        make([]JointMove, 0),
		Winner:       -1,
	}

	for round := 1; round <= maxRounds && !lr.Done(); round++ {
		field := lr.Tokens()
		var moves [2]Action
		for p := 0; p < 2; p++ {
			turn := Turn{
				FieldData:   field,
				FieldHeight: lr.Rows,
				FieldWidth:  lr.Cols,
				MyBotID:     strconv.Itoa(p),
				OtherBotID:  strconv.Itoa(1 - p),
				Round:       round,
			}
			a, err := gr.agents[p].SelectMove(turn)
			if err != nil {
				debug.Log("player %d (%s): %v, fallback %s", p, gr.agents[p].Name(), err, Up)
				a = Up
			}
			moves[p] = a
		}
		debug.Log("Round %d: %v -> %s, %v -> %s", round, lr.Pos[0], moves[0], lr.Pos[1], moves[1])
		lr.StepBoth(moves[0], moves[1])
		result.Moves = append(result.Moves, JointMove{Round: round, Moves: moves})
	}

	switch lost0, lost1 := lr.Lost(0), lr.Lost(1); {
	case lost0 && !lost1:
		result.Winner = 1
	case lost1 && !lost0:
		result.Winner = 0
	}
	return result
}
