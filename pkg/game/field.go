package game

import (
	"errors"
	"fmt"
	"strings"
)

// 盤面トークン
const (
	EmptyToken = "."
	WallToken  = "x"
)

var (
	ErrBadDimensions = errors.New("field dimensions must be positive")
	ErrFieldSize     = errors.New("field token count does not match rows*cols")
	ErrAgentNotFound = errors.New("agent id not found in field")
)

// Field は R×C のセル記号（".", "x", エージェント ID）
type Field struct {
	Rows  int
	Cols  int
	Cells [][]string
}

// ParseField はカンマ区切り・行優先の盤面文字列を読み込む
func ParseField(data string, rows, cols int) (*Field, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadDimensions
	}
	tokens := strings.Split(data, ",")
	if len(tokens) != rows*cols {
		return nil, fmt.Errorf("%w: got %d tokens for %dx%d", ErrFieldSize, len(tokens), rows, cols)
	}
	f := NewField(rows, cols)
	for i, tok := range tokens {
		f.Cells[i/cols][i%cols] = strings.TrimSpace(tok)
	}
	return f, nil
}

// NewField は全マス空の盤面を返す
func NewField(rows, cols int) *Field {
	cells := make([][]string, rows)
	for r := range cells {
		cells[r] = make([]string, cols)
		for c := range cells[r] {
			cells[r][c] = EmptyToken
		}
	}
	return &Field{Rows: rows, Cols: cols, Cells: cells}
}

// Clone はディープコピーを返す
func (f *Field) Clone() *Field {
	cells := make([][]string, f.Rows)
	for r := range cells {
		cells[r] = make([]string, f.Cols)
		copy(cells[r], f.Cells[r])
	}
	return &Field{Rows: f.Rows, Cols: f.Cols, Cells: cells}
}

// IsOutside は盤面外かどうか
func (f *Field) IsOutside(s State) bool {
	return s.Row < 0 || s.Row >= f.Rows || s.Col < 0 || s.Col >= f.Cols
}

// IsWall は盤面内の壁かどうか。盤面外は壁ではない
func (f *Field) IsWall(s State) bool {
	if f.IsOutside(s) {
		return false
	}
	return f.Cells[s.Row][s.Col] == WallToken
}

// At は s のトークンを返す。盤面外では空文字列
func (f *Field) At(s State) string {
	if f.IsOutside(s) {
		return ""
	}
	return f.Cells[s.Row][s.Col]
}

// Set は s にトークンを置く
func (f *Field) Set(s State, token string) {
	f.Cells[s.Row][s.Col] = token
}

// Find は id が最初に現れる座標を返す
func (f *Field) Find(id string) (State, error) {
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			if f.Cells[r][c] == id {
				return State{Row: r, Col: c}, nil
			}
		}
	}
	return State{}, fmt.Errorf("%w: %q", ErrAgentNotFound, id)
}

// validActions は隣接する空きマスへの行動を 下, 上, 右, 左 の順で返す
func (f *Field) validActions(s State) []Action {
	var actions []Action
	for _, a := range neighbourOrder {
		if f.At(s.Apply(a)) == EmptyToken {
			actions = append(actions, a)
		}
	}
	return actions
}

// cellReward はマスの報酬（基本 -0.1、壁 -5、盤面外の隣接 -0.1、壁の隣接 -0.5）
func (f *Field) cellReward(s State) float64 {
	reward := -0.1
	if f.IsWall(s) {
		reward -= 5
	}
	for _, a := range neighbourOrder {
		if f.IsOutside(s.Apply(a)) {
			reward -= 0.1
		}
	}
	for _, a := range neighbourOrder {
		if f.IsWall(s.Apply(a)) {
			reward -= 0.5
		}
	}
	return reward
}

// String は ParseField と同じ形式にエンコードする
func (f *Field) String() string {
	tokens := make([]string, 0, f.Rows*f.Cols)
	for _, row := range f.Cells {
		tokens = append(tokens, row...)
	}
	return strings.Join(tokens, ",")
}
