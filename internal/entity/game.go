package entity

// Point is a zero-based board coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Game is the published, read-only view of a running session.
type Game struct {
	ID         string        `json:"id"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Board      []string      `json:"board"`
	Turn       Color         `json:"turn"`
	LocalColor Color         `json:"local_color"`
	MoveNumber int           `json:"move_number"`
	LastMove   *Point        `json:"last_move,omitempty"`
	LastPass   bool          `json:"last_pass,omitempty"`
	Captured   map[Color]int `json:"captured,omitempty"`
}

// IsLocalTurn reports whether the local player is to move.
func (that *Game) IsLocalTurn() bool {
	return that.Turn == that.LocalColor
}

// At returns the color at (x, y), Empty when out of range.
func (that *Game) At(x, y int) Color {
	if y < 0 || y >= len(that.Board) || x < 0 || x >= len(that.Board[y]) {
		return Empty
	}

	switch that.Board[y][x] {
	case 'B':
		return Black
	case 'W':
		return White
	default:
		return Empty
	}
}

// BoardRows renders a column-major grid into one string per row.
func BoardRows(grid [][]Color) []string {
	if len(grid) == 0 {
		return nil
	}

	width, height := len(grid), len(grid[0])
	rows := make([]string, height)

	row := make([]byte, width)
	for y := range height {
		for x := range width {
			row[x] = grid[x][y].Symbol()
		}
		rows[y] = string(row)
	}

	return rows
}
