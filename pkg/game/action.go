package game

import "fmt"

// State は盤面上の座標 (行, 列)。0 始まり。
type State struct {
	Row int
	Col int
}

// Apply は行動 a を 1 マス分適用した座標を返す（合法性は見ない）
func (s State) Apply(a Action) State {
	switch a {
	case Up:
		return State{Row: s.Row - 1, Col: s.Col}
	case Down:
		return State{Row: s.Row + 1, Col: s.Col}
	case Left:
		return State{Row: s.Row, Col: s.Col - 1}
	case Right:
		return State{Row: s.Row, Col: s.Col + 1}
	}
	return s
}

func (s State) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

// Action は上下左右の移動
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
)

// NumActions は行動の種類数
const NumActions = 4

// AllActions は全行動。Q テーブルの添字順でもある
var AllActions = [NumActions]Action{Up, Down, Left, Right}

// neighbourOrder は合法手を列挙する順序（下, 上, 右, 左）
var neighbourOrder = [NumActions]Action{Down, Up, Right, Left}

func (a Action) String() string {
	switch a {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction は "up" などの表記を Action に変換する
func ParseAction(s string) (Action, error) {
	for _, a := range AllActions {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// MarshalText は JSON などで "up" 表記にする
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(b []byte) error {
	v, err := ParseAction(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Policy は状態ごとの行動
type Policy map[State]Action

// Action は s での行動を返す。未定義の状態（終端・未決定）では false
func (p Policy) Action(s State) (Action, bool) {
	a, ok := p[s]
	return a, ok
}
