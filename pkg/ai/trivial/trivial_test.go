package trivial

import (
	"testing"

	"github.com/montplusa/light-riders-bot/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectMovePrefersOpenCells(t *testing.T) {
	ai := New()
	assert.Equal(t, "trivial", ai.Name())

	// 右 (0,1) は壁に接して -0.7、下 (1,0) は盤面外 1 つだけで -0.2
	field := "0,.,x,.,.,.,.,.,."
	a, err := ai.SelectMove(game.Turn{FieldData: field, FieldHeight: 3, FieldWidth: 3, MyBotID: "0", OtherBotID: "1"})
	require.NoError(t, err)
	assert.Equal(t, game.Down, a)
}

func TestSelectMoveTrapped(t *testing.T) {
	_, err := New().SelectMove(game.Turn{FieldData: "0,x", FieldHeight: 1, FieldWidth: 2, MyBotID: "0"})
	assert.ErrorIs(t, err, game.ErrUndecided)
}
