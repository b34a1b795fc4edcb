package goban

import (
	"testing"

	"github.com/rocketscienceinc/goban-backend/internal/apperror"
	"github.com/rocketscienceinc/goban-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// koPosition sets up a ko on a 4x3 board with black to capture at (2,1):
//
//	. B W .
//	B W . W
//	B B W .
func koPosition(t *testing.T, opts ...Option) *Engine {
	t.Helper()

	engine, err := New(4, 3, entity.Black, opts...)
	require.NoError(t, err)

	moves := []entity.Point{
		pt(1, 0), pt(2, 0),
		pt(0, 1), pt(3, 1),
		pt(1, 2), pt(2, 2),
		pt(0, 2), pt(1, 1),
	}
	for _, move := range moves {
		require.NoError(t, engine.Validate(move.X, move.Y), "move %v", move)
		engine.Play(move.X, move.Y)
	}

	return engine
}

func TestEngine_Validate(t *testing.T) {
	t.Run("Empty point is legal", func(t *testing.T) {
		// Given: black at the center of a 3x3 board
		engine := newTestEngine(t, 3, 3, pt(1, 1))

		// When: white asks about the corner
		err := engine.Validate(0, 0)

		// Then: the move is legal
		assert.NoError(t, err)
	})

	t.Run("Every empty point on a fresh board is legal", func(t *testing.T) {
		// Given: an empty board
		engine := newTestEngine(t, 5, 5)

		// Then: no point is rejected
		for x := range 5 {
			for y := range 5 {
				assert.NoError(t, engine.Validate(x, y))
			}
		}
	})

	t.Run("Occupied point", func(t *testing.T) {
		// Given: black at (0,0)
		engine := newTestEngine(t, 3, 3, pt(0, 0))

		// When: white tries the same point
		err := engine.Validate(0, 0)

		// Then: ErrOccupied is returned
		assert.ErrorIs(t, err, apperror.ErrOccupied)

		// And: the same holds for black's turn
		engine.Pass()
		assert.ErrorIs(t, engine.Validate(0, 0), apperror.ErrOccupied)
	})

	t.Run("Out of bounds", func(t *testing.T) {
		// Given: a 3x3 board
		engine := newTestEngine(t, 3, 3)

		// Then: coordinates outside it are rejected
		assert.ErrorIs(t, engine.Validate(3, 0), apperror.ErrOutOfBounds)
		assert.ErrorIs(t, engine.Validate(0, -1), apperror.ErrOutOfBounds)
	})

	t.Run("Suicide", func(t *testing.T) {
		// Given: black at (1,0) and (0,1), white elsewhere, white to move
		engine := newTestEngine(t, 3, 3, pt(1, 0), pt(2, 2), pt(0, 1))
		grid := engine.Grid()

		// When: white tries the surrounded corner
		err := engine.Validate(0, 0)

		// Then: ErrSuicide is returned and nothing changed
		require.ErrorIs(t, err, apperror.ErrSuicide)
		assert.Equal(t, entity.Empty, engine.Occupant(0, 0))
		assert.Equal(t, grid, engine.Grid())
		assert.Equal(t, entity.White, engine.CurrentPlayer())
	})

	t.Run("Suicide of a multi stone group", func(t *testing.T) {
		// Given: white (0,0) whose last liberty is (0,1), surrounded by black
		//
		//	W B .
		//	. B .
		//	B . W
		engine := newTestEngine(t, 3, 3, pt(1, 0), pt(0, 0), pt(1, 1), pt(2, 2), pt(0, 2))

		// When: white fills its own last liberty
		err := engine.Validate(0, 1)

		// Then: ErrSuicide is returned
		assert.ErrorIs(t, err, apperror.ErrSuicide)
		assert.Equal(t, entity.White, engine.Occupant(0, 0))
	})

	t.Run("Capture makes an otherwise suicidal move legal", func(t *testing.T) {
		// Given: the ko position, black to move
		engine := koPosition(t)

		// When: black plays into (2,1), which has no liberty of its own
		err := engine.Validate(2, 1)

		// Then: the move is legal because it captures (1,1)
		require.NoError(t, err)
		assert.Equal(t, entity.White, engine.Occupant(1, 1))

		// And: playing it removes the white stone
		captured := engine.Play(2, 1)
		assert.Equal(t, []entity.Point{pt(1, 1)}, captured)
		assert.Equal(t, entity.Empty, engine.Occupant(1, 1))
		assert.True(t, engine.IsAlive(engine.GroupAt(2, 1)))
	})

	t.Run("Ko", func(t *testing.T) {
		// Given: black has just taken the ko
		engine := koPosition(t)
		engine.Play(2, 1)
		grid := engine.Grid()

		// When: white retakes immediately
		err := engine.Validate(1, 1)

		// Then: ErrKo is returned and nothing changed
		require.ErrorIs(t, err, apperror.ErrKo)
		assert.Equal(t, grid, engine.Grid())
		assert.Equal(t, entity.White, engine.CurrentPlayer())
	})

	t.Run("Ko outside the window is not detected", func(t *testing.T) {
		// Given: a one-position window and black has just taken the ko
		engine := koPosition(t, WithKoWindow(1))
		engine.Play(2, 1)

		// When: white retakes
		err := engine.Validate(1, 1)

		// Then: the repeated position has already been evicted
		assert.NoError(t, err)
	})

	t.Run("Ko after a pass", func(t *testing.T) {
		// Given: black took the ko and both players passed
		engine := koPosition(t)
		engine.Play(2, 1)
		engine.Pass()
		engine.Pass()

		// When: white retakes
		err := engine.Validate(1, 1)

		// Then: passing did not clear the window
		assert.ErrorIs(t, err, apperror.ErrKo)
	})
}
