package game

import (
	"math/rand"
	"strconv"
)

// 盤面の観測値
const (
	ObsFree  = 0
	ObsWall  = 1
	ObsMe    = 2
	ObsEnemy = 3
)

// 1 ステップの報酬（プレイヤー 0 から見た値を me 側に読み替える）
const (
	DrawReward = -50.0
	StepReward = -0.1
)

// DefaultBoardSize は LightRiders の既定サイズ
const DefaultBoardSize = 16

// LightRiders は reset/step 形式の 2 人対戦環境
type LightRiders struct {
	Rows    int
	Cols    int
	Wall    [][]bool  // 通過済みのマス
	Pos     [2]State  // プレイヤー 0, 1 の位置
	MeFirst bool      // true ならプレイヤー 0 が自分
	rng     *rand.Rand
}

// NewLightRiders は rows×cols の環境を返す。Reset を呼んでから使う
func NewLightRiders(rows, cols int, rng *rand.Rand) *LightRiders {
	lr := &LightRiders{Rows: rows, Cols: cols, rng: rng}
	lr.clearWalls()
	return lr
}

func (lr *LightRiders) clearWalls() {
	lr.Wall = make([][]bool, lr.Rows)
	for r := range lr.Wall {
		lr.Wall[r] = make([]bool, lr.Cols)
	}
}

// Clone はディープコピーを返す
func (lr *LightRiders) Clone() *LightRiders {
	wall := make([][]bool, lr.Rows)
	for r := range wall {
		wall[r] = make([]bool, lr.Cols)
		copy(wall[r], lr.Wall[r])
	}
	return &LightRiders{
		Rows:    lr.Rows,
		Cols:    lr.Cols,
		Wall:    wall,
		Pos:     lr.Pos,
		MeFirst: lr.MeFirst,
		rng:     lr.rng,
	}
}

// Reset は壁を消し、左右対称の開始位置と手番をランダムに決める
func (lr *LightRiders) Reset() {
	lr.clearWalls()
	row := 1 + lr.rng.Intn(max(lr.Rows-2, 1))
	col := 1 + lr.rng.Intn(max(lr.Cols/2-2, 1))
	lr.Pos[0] = State{Row: row, Col: col}
	lr.Pos[1] = State{Row: row, Col: lr.Cols - 1 - col}
	lr.MeFirst = lr.rng.Float64() <= 0.5
}

func (lr *LightRiders) isOutside(s State) bool {
	return s.Row < 0 || s.Row >= lr.Rows || s.Col < 0 || s.Col >= lr.Cols
}

// IsLosing は盤面外か壁なら true
func (lr *LightRiders) IsLosing(s State) bool {
	return lr.isOutside(s) || lr.Wall[s.Row][s.Col]
}

// Lost はプレイヤー p が負け位置にいるとき true
func (lr *LightRiders) Lost(p int) bool {
	if lr.IsLosing(lr.Pos[p]) {
		return true
	}
	return lr.Pos[0] == lr.Pos[1]
}

// Done はどちらかが負けたとき true
func (lr *LightRiders) Done() bool {
	return lr.Lost(0) || lr.Lost(1)
}

// ValidActions はプレイヤー p が負けずに動ける行動
func (lr *LightRiders) ValidActions(p int) []Action {
	var actions []Action
	for _, a := range AllActions {
		if !lr.IsLosing(lr.Pos[p].Apply(a)) {
			actions = append(actions, a)
		}
	}
	return actions
}

// randomAction は合法手から（なければ全行動から）一様に選ぶ
func (lr *LightRiders) randomAction(p int) Action {
	valid := lr.ValidActions(p)
	if len(valid) == 0 {
		return AllActions[lr.rng.Intn(NumActions)]
	}
	return valid[lr.rng.Intn(len(valid))]
}

func (lr *LightRiders) me() int {
	if lr.MeFirst {
		return 0
	}
	return 1
}

// Step は自分の行動 a と相手のランダムな行動で 1 手進める
func (lr *LightRiders) Step(a Action) ([]int, float64, bool) {
	me := lr.me()
	enemy := 1 - me
	// 相手は自分の移動元が壁になった後の盤面で手を選ぶ
	from := lr.Pos[me]
	lr.Wall[from.Row][from.Col] = true
	ea := lr.randomAction(enemy)
	lr.Wall[from.Row][from.Col] = false

	var moves [2]Action
	moves[me] = a
	moves[enemy] = ea
	lr.StepBoth(moves[0], moves[1])
	return lr.Obs(), lr.reward(me), lr.Done()
}

// StepBoth は両プレイヤーの行動を同時に適用する
func (lr *LightRiders) StepBoth(a0, a1 Action) {
	for p, a := range [2]Action{a0, a1} {
		from := lr.Pos[p]
		if !lr.IsLosing(from) {
			lr.Wall[from.Row][from.Col] = true
		}
		lr.Pos[p] = from.Apply(a)
	}
}

// reward は Step の報酬を me から見た値で返す
func (lr *LightRiders) reward(me int) float64 {
	lost0, lost1 := lr.Lost(0), lr.Lost(1)
	switch {
	case lost0 && lost1:
		return DrawReward
	case lr.Lost(me):
		return LoseReward
	case lr.Lost(1 - me):
		return WinReward
	}
	return StepReward
}

// Obs は [手番フラグ, 各マスの観測値...] を返す
func (lr *LightRiders) Obs() []int {
	obs := make([]int, 1, 1+lr.Rows*lr.Cols)
	if !lr.MeFirst {
		obs[0] = 1
	}
	me := lr.me()
	for r := 0; r < lr.Rows; r++ {
		for c := 0; c < lr.Cols; c++ {
			cell := ObsFree
			if lr.Wall[r][c] {
				cell = ObsWall
			}
			obs = append(obs, cell)
		}
	}
	for p := 0; p < 2; p++ {
		pos := lr.Pos[p]
		if lr.IsLosing(pos) {
			continue
		}
		cell := ObsEnemy
		if p == me {
			cell = ObsMe
		}
		obs[1+pos.Row*lr.Cols+pos.Col] = cell
	}
	return obs
}

// Tokens はゲームエンジン形式の盤面文字列を返す。ID はプレイヤー番号
func (lr *LightRiders) Tokens() string {
	f := NewField(lr.Rows, lr.Cols)
	for r := 0; r < lr.Rows; r++ {
		for c := 0; c < lr.Cols; c++ {
			if lr.Wall[r][c] {
				f.Cells[r][c] = WallToken
			}
		}
	}
	for p := 0; p < 2; p++ {
		if !lr.IsLosing(lr.Pos[p]) {
			f.Set(lr.Pos[p], strconv.Itoa(p))
		}
	}
	return f.String()
}
