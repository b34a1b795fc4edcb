package goban

import (
	"fmt"

	"github.com/rocketscienceinc/goban-backend/internal/apperror"
	"github.com/rocketscienceinc/goban-backend/internal/entity"
)

// Validate checks whether the current player may place a stone at (x, y).
// It returns nil for a legal move, otherwise an error wrapping one of
// apperror.ErrOutOfBounds, ErrOccupied, ErrSuicide or ErrKo.
//
// The move is tried on a scratch copy of the board, so the visible board
// is never touched whatever the outcome.
func (that *Engine) Validate(x, y int) error {
	if !that.InBounds(x, y) {
		return fmt.Errorf("%w: (%d, %d) on %dx%d", apperror.ErrOutOfBounds, x, y, that.width, that.height)
	}

	if that.grid[x][y] != entity.Empty {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrOccupied, x, y)
	}

	board := that.scratch
	board.copyFrom(that.grid)

	played := entity.Point{X: x, Y: y}
	board[x][y] = that.current

	captured := that.removeDead(board, played, that.current.Opponent())
	if len(captured) == 0 && !that.isAliveIn(board, that.groupIn(board, played)) {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrSuicide, x, y)
	}

	if that.history.contains(board) {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrKo, x, y)
	}

	return nil
}
