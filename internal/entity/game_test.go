package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoardRows(t *testing.T) {
	// Given: a 3x2 grid indexed [x][y]
	grid := [][]Color{
		{Black, Empty},
		{Empty, White},
		{Empty, Empty},
	}

	// When: rendering it into rows
	rows := BoardRows(grid)

	// Then: each row lists the columns left to right
	assert.Equal(t, []string{"B..", ".W."}, rows)
}

func TestGame_At(t *testing.T) {
	// Given: a published board
	game := &Game{Board: []string{"B..", ".W."}, Turn: Black, LocalColor: Black}

	// Then: lookups follow (x, y) and ignore out of range points
	assert.Equal(t, Black, game.At(0, 0))
	assert.Equal(t, White, game.At(1, 1))
	assert.Equal(t, Empty, game.At(2, 1))
	assert.Equal(t, Empty, game.At(5, 5))
	assert.True(t, game.IsLocalTurn())
}
