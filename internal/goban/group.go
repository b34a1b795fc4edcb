package goban

import "github.com/rocketscienceinc/goban-backend/internal/entity"

// GroupAt returns every stone connected to (x, y) through same-colored
// up/down/left/right neighbours, (x, y) included. It returns nil when
// there is no stone at (x, y).
func (that *Engine) GroupAt(x, y int) []entity.Point {
	if that.Occupant(x, y) == entity.Empty {
		return nil
	}

	return that.groupIn(that.grid, entity.Point{X: x, Y: y})
}

// IsAlive reports whether any stone of group touches an empty point.
func (that *Engine) IsAlive(group []entity.Point) bool {
	return that.isAliveIn(that.grid, group)
}

// groupIn walks g with an explicit stack.
func (that *Engine) groupIn(g grid, origin entity.Point) []entity.Point {
	color := g[origin.X][origin.Y]

	visited := make([]bool, that.width*that.height)
	visited[origin.X*that.height+origin.Y] = true

	stack := []entity.Point{origin}
	var group []entity.Point

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		group = append(group, p)

		that.neighbours(p, func(n entity.Point) {
			idx := n.X*that.height + n.Y
			if visited[idx] || g[n.X][n.Y] != color {
				return
			}
			visited[idx] = true
			stack = append(stack, n)
		})
	}

	return group
}

func (that *Engine) isAliveIn(g grid, group []entity.Point) bool {
	for _, p := range group {
		alive := false
		that.neighbours(p, func(n entity.Point) {
			if g[n.X][n.Y] == entity.Empty {
				alive = true
			}
		})

		if alive {
			return true
		}
	}

	return false
}
