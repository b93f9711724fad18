package game

import (
	"errors"
	"math/rand"
)

// ErrUndecided は現在位置に方策が定義されていないときに返す
var ErrUndecided = errors.New("no action decided for the current state")

// Turn はゲームエンジンから 1 手ごとに渡される情報
type Turn struct {
	FieldData   string // カンマ区切りの盤面
	FieldHeight int
	FieldWidth  int
	MyBotID     string
	OtherBotID  string
	Round       int // 現在のターン数
}

// Versus は Turn から対戦盤面を作る
func (t Turn) Versus(rng *rand.Rand) (*Versus, error) {
	return NewVersus(t.FieldData, t.FieldHeight, t.FieldWidth, t.MyBotID, t.OtherBotID, rng)
}

// Grid は Turn から自機の単体盤面を作る
func (t Turn) Grid() (*Grid, error) {
	f, err := ParseField(t.FieldData, t.FieldHeight, t.FieldWidth)
	if err != nil {
		return nil, err
	}
	return GridFromField(f, t.MyBotID)
}

// AI はゲーム用エージェントのインターフェース
type AI interface {
	Name() string
	// 現在の盤面に対する自機の一手を返す
	SelectMove(turn Turn) (Action, error)
}
