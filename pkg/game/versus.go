package game

import (
	"math/rand"
	"time"
)

// 終局時の報酬
const (
	WinReward  = 100.0
	LoseReward = -100.0
)

// Outcome は終局マーカー盤面に記録する勝敗
type Outcome int

const (
	Undecided Outcome = iota
	SelfLost
	OpponentLost
)

// Versus は 2 人同時手番の盤面。Move は自身を書き換えず、新しい Versus を返す
type Versus struct {
	field      *Field
	selfID     string
	opponentID string
	self       State
	opponent   State
	rewards    map[State]float64
	actions    map[State][]Action
	outcome    Outcome
	rng        *rand.Rand
}

// NewVersus は盤面文字列から対戦盤面を作る。rng が nil なら時刻で初期化する
func NewVersus(data string, rows, cols int, selfID, opponentID string, rng *rand.Rand) (*Versus, error) {
	f, err := ParseField(data, rows, cols)
	if err != nil {
		return nil, err
	}
	return VersusFromField(f, selfID, opponentID, rng)
}

// VersusFromField は解析済みの盤面から対戦盤面を作る。f はそのまま保持する
func VersusFromField(f *Field, selfID, opponentID string, rng *rand.Rand) (*Versus, error) {
	self, err := f.Find(selfID)
	if err != nil {
		return nil, err
	}
	opponent, err := f.Find(opponentID)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rewards, actions := buildTables(f, func(token string) bool {
		return token == EmptyToken || token == selfID || token == opponentID
	})
	return &Versus{
		field:      f,
		selfID:     selfID,
		opponentID: opponentID,
		self:       self,
		opponent:   opponent,
		rewards:    rewards,
		actions:    actions,
		rng:        rng,
	}, nil
}

// terminalMarker は 1x3 の "self,x,opponent" 盤面。以後のシミュレーションには使わない
func (v *Versus) terminalMarker(outcome Outcome) *Versus {
	f := NewField(1, 3)
	f.Cells[0] = []string{v.selfID, WallToken, v.opponentID}
	m, _ := VersusFromField(f, v.selfID, v.opponentID, v.rng)
	m.outcome = outcome
	return m
}

func (v *Versus) Field() *Field          { return v.field }
func (v *Versus) SelfID() string         { return v.selfID }
func (v *Versus) OpponentID() string     { return v.opponentID }
func (v *Versus) CurrentState() State    { return v.self }
func (v *Versus) OpponentState() State   { return v.opponent }
func (v *Versus) Outcome() Outcome       { return v.outcome }
func (v *Versus) Rand() *rand.Rand       { return v.rng }
func (v *Versus) Reward(s State) float64 { return v.rewards[s] }

func (v *Versus) LegalActions(s State) []Action {
	return v.actions[s]
}

func (v *Versus) IsTerminal(s State) bool {
	_, ok := v.actions[s]
	return !ok
}

func (v *Versus) AllStates() []State {
	return unionStates(v.rewards, v.actions)
}

// ILost は自機が終端（負け）位置にいるとき true
func (v *Versus) ILost() bool {
	if v.outcome != Undecided {
		return v.outcome == SelfLost
	}
	return v.IsTerminal(v.self)
}

// EnemyLost は相手が終端（負け）位置にいるとき true
func (v *Versus) EnemyLost() bool {
	if v.outcome != Undecided {
		return v.outcome == OpponentLost
	}
	return v.IsTerminal(v.opponent)
}

func (v *Versus) GameOver() bool {
	return v.ILost() || v.EnemyLost()
}

// Move は相手の行動を合法手から一様に選んで 1 手進める
func (v *Versus) Move(a Action) (float64, *Versus) {
	if v.GameOver() {
		return v.MoveWith(a, Up)
	}
	legal := v.actions[v.opponent]
	if len(legal) == 0 {
		return v.MoveWith(a, Up)
	}
	return v.MoveWith(a, legal[v.rng.Intn(len(legal))])
}

// MoveWith は自機 a、相手 opp で 1 手進める。
// 自機の合法性は確認しない（非合法手は負けになる）。
// 報酬は移動前の自機位置で評価する。
func (v *Versus) MoveWith(a, opp Action) (float64, *Versus) {
	if v.ILost() {
		return LoseReward, v
	}
	if v.EnemyLost() {
		return WinReward, v
	}

	next := v.self.Apply(a)
	if v.field.IsOutside(next) || v.field.IsWall(next) || next == v.opponent {
		return LoseReward, v.terminalMarker(SelfLost)
	}
	if len(v.actions[v.opponent]) == 0 {
		return WinReward, v.terminalMarker(OpponentLost)
	}

	oppNext := v.opponent.Apply(opp)
	if oppNext == next {
		return LoseReward, v.terminalMarker(SelfLost)
	}
	if v.field.IsOutside(oppNext) || v.field.IsWall(oppNext) || oppNext == v.self {
		return WinReward, v.terminalMarker(OpponentLost)
	}

	f := v.field.Clone()
	f.Set(v.self, WallToken)
	f.Set(v.opponent, WallToken)
	f.Set(next, v.selfID)
	f.Set(oppNext, v.opponentID)
	nv, _ := VersusFromField(f, v.selfID, v.opponentID, v.rng)
	return v.Reward(v.self), nv
}
