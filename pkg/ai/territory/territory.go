package territory

import (
	"github.com/montplusa/light-riders-bot/pkg/game"
	"github.com/montplusa/light-riders-bot/pkg/game/debug"
)

const INF = 1 << 30

// TerritoryAI は自分のほうが先に届くマスの数が最大になる手を選ぶ
type TerritoryAI struct{}

func New() *TerritoryAI {
	return &TerritoryAI{}
}

func (ai *TerritoryAI) Name() string {
	return "territory"
}

// SelectMove は合法手ごとに支配領域を数え、最大のものを返す
func (ai *TerritoryAI) SelectMove(turn game.Turn) (game.Action, error) {
	f, err := game.ParseField(turn.FieldData, turn.FieldHeight, turn.FieldWidth)
	if err != nil {
		return 0, err
	}
	self, err := f.Find(turn.MyBotID)
	if err != nil {
		return 0, err
	}
	opp, err := f.Find(turn.OtherBotID)
	if err != nil {
		return 0, err
	}

	best, bestArea := game.Up, -1
	for _, a := range game.AllActions {
		next := self.Apply(a)
		if !IsMovable(f, next) {
			continue
		}
		area := ControlledArea(f, next, opp)
		debug.Log("territory: %s -> %d", a, area)
		if area > bestArea {
			best, bestArea = a, area
		}
	}
	if bestArea < 0 {
		return 0, game.ErrUndecided
	}
	return best, nil
}

// ControlledArea は start から相手以上に早く届く空きマスの数
func ControlledArea(f *game.Field, start, opp game.State) int {
	opDist := Distances(f, opp)
	myDist := Distances(f, start)

	area := 0
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			if myDist[r][c] == INF || myDist[r][c] > opDist[r][c] {
				continue
			}
			area++
		}
	}
	return area
}

// IsMovable は盤内の空きマスかどうか
func IsMovable(f *game.Field, s game.State) bool {
	return !f.IsOutside(s) && f.At(s) == game.EmptyToken
}

// Distances は start から空きマスだけを通った BFS 距離。届かないマスは INF。
// start 自体は空きでなくても 0 とする
func Distances(f *game.Field, start game.State) [][]int {
	dist := make([][]int, f.Rows)
	for i := range dist {
		dist[i] = make([]int, f.Cols)
		for j := range dist[i] {
			dist[i][j] = INF
		}
	}
	if f.IsOutside(start) {
		return dist
	}

	dist[start.Row][start.Col] = 0
	queue := []game.State{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, a := range game.AllActions {
			next := cur.Apply(a)
			if !IsMovable(f, next) || dist[next.Row][next.Col] != INF {
				continue
			}
			dist[next.Row][next.Col] = dist[cur.Row][cur.Col] + 1
			queue = append(queue, next)
		}
	}
	return dist
}
