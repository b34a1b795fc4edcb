package goban

import "github.com/rocketscienceinc/goban-backend/internal/entity"

// history keeps the last size positions, oldest first.
type history struct {
	size    int
	entries []grid
}

func newHistory(size int) *history {
	return &history{
		size:    size,
		entries: make([]grid, 0, size),
	}
}

func (that *history) len() int {
	return len(that.entries)
}

func (that *history) push(g grid) {
	if len(that.entries) < that.size {
		that.entries = append(that.entries, g.clone())
		return
	}

	// reuse the evicted buffer for the newest position
	oldest := that.entries[0]
	copy(that.entries, that.entries[1:])
	oldest.copyFrom(g)
	that.entries[len(that.entries)-1] = oldest
}

// contains scans newest first.
func (that *history) contains(g grid) bool {
	for i := len(that.entries) - 1; i >= 0; i-- {
		if that.entries[i].equal(g) {
			return true
		}
	}

	return false
}

// captureAndRecord runs after the stone is written and the turn toggled, so
// the stones at risk belong to the player now to move.
func (that *Engine) captureAndRecord(x, y int) []entity.Point {
	captured := that.removeDead(that.grid, entity.Point{X: x, Y: y}, that.current)
	that.history.push(that.grid)

	return captured
}

// removeDead clears every victim-colored group next to played that has no
// liberty left. A group reached twice is found empty the second time.
func (that *Engine) removeDead(g grid, played entity.Point, victim entity.Color) []entity.Point {
	var captured []entity.Point

	that.neighbours(played, func(n entity.Point) {
		if g[n.X][n.Y] != victim {
			return
		}

		group := that.groupIn(g, n)
		if that.isAliveIn(g, group) {
			return
		}

		for _, p := range group {
			g[p.X][p.Y] = entity.Empty
		}
		captured = append(captured, group...)
	})

	return captured
}
