// Package goban implements the rules of Go on a single in-memory board:
// group discovery, liberties, move validation, captures and a bounded
// history used for repeated-position (ko) detection.
//
// The engine is synchronous and holds no locks. Callers that drive it from
// several goroutines must serialize every call themselves.
package goban

import (
	"fmt"

	"github.com/rocketscienceinc/goban-backend/internal/apperror"
	"github.com/rocketscienceinc/goban-backend/internal/entity"
)

const (
	DefaultKoWindow = 20
	MaxKoWindow     = 1024
)

// grid is indexed [x][y].
type grid [][]entity.Color

func newGrid(width, height int) grid {
	cells := make([]entity.Color, width*height)

	g := make(grid, width)
	for x := range g {
		g[x] = cells[x*height : (x+1)*height : (x+1)*height]
	}

	return g
}

func (that grid) clone() grid {
	if len(that) == 0 {
		return grid{}
	}

	c := newGrid(len(that), len(that[0]))
	c.copyFrom(that)

	return c
}

func (that grid) copyFrom(src grid) {
	for x := range that {
		copy(that[x], src[x])
	}
}

func (that grid) equal(other grid) bool {
	if len(that) != len(other) {
		return false
	}

	for x := range that {
		if len(that[x]) != len(other[x]) {
			return false
		}
		for y := range that[x] {
			if that[x][y] != other[x][y] {
				return false
			}
		}
	}

	return true
}

type Option func(*Engine)

// WithKoWindow - sets how many past positions are kept for ko detection.
// Sizes outside 1..MaxKoWindow are ignored.
func WithKoWindow(size int) Option {
	return func(e *Engine) {
		if size > 0 && size <= MaxKoWindow {
			e.history = newHistory(size)
		}
	}
}

// WithFirstPlayer - sets the color that moves first.
func WithFirstPlayer(color entity.Color) Option {
	return func(e *Engine) {
		if color.IsStone() {
			e.current = color
		}
	}
}

// Engine owns the board and whose turn it is.
type Engine struct {
	width  int
	height int

	grid    grid
	scratch grid

	current entity.Color
	local   entity.Color

	history *history
}

func New(width, height int, local entity.Color, opts ...Option) (*Engine, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", apperror.ErrInvalidDimensions, width, height)
	}

	if !local.IsStone() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidColor, local)
	}

	engine := &Engine{
		width:   width,
		height:  height,
		grid:    newGrid(width, height),
		scratch: newGrid(width, height),
		current: entity.Black,
		local:   local,
		history: newHistory(DefaultKoWindow),
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine, nil
}

func (that *Engine) Width() int {
	return that.width
}

func (that *Engine) Height() int {
	return that.height
}

func (that *Engine) InBounds(x, y int) bool {
	return x >= 0 && x < that.width && y >= 0 && y < that.height
}

// Occupant returns the stone at (x, y), or Empty off the board.
func (that *Engine) Occupant(x, y int) entity.Color {
	if !that.InBounds(x, y) {
		return entity.Empty
	}

	return that.grid[x][y]
}

func (that *Engine) CurrentPlayer() entity.Color {
	return that.current
}

func (that *Engine) LocalIdentity() entity.Color {
	return that.local
}

func (that *Engine) IsLocalTurn() bool {
	return that.current == that.local
}

// Grid returns a copy of the board indexed [x][y].
func (that *Engine) Grid() [][]entity.Color {
	return that.grid.clone()
}

// HistoryLen is the number of retained positions.
func (that *Engine) HistoryLen() int {
	return that.history.len()
}

// Play places the current player's stone at (x, y), toggles the turn and
// removes the opponent groups left without liberties. It returns the
// captured points.
//
// Play does not check legality: Validate must have accepted (x, y) first.
func (that *Engine) Play(x, y int) []entity.Point {
	that.grid[x][y] = that.current
	that.current = that.current.Opponent()

	return that.captureAndRecord(x, y)
}

// Pass gives the turn to the opponent without touching the board or the
// position history.
func (that *Engine) Pass() {
	that.current = that.current.Opponent()
}

func (that *Engine) neighbours(p entity.Point, visit func(entity.Point)) {
	if p.X > 0 {
		visit(entity.Point{X: p.X - 1, Y: p.Y})
	}
	if p.X < that.width-1 {
		visit(entity.Point{X: p.X + 1, Y: p.Y})
	}
	if p.Y > 0 {
		visit(entity.Point{X: p.X, Y: p.Y - 1})
	}
	if p.Y < that.height-1 {
		visit(entity.Point{X: p.X, Y: p.Y + 1})
	}
}
