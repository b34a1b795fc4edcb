package entity

import (
	"errors"
	"fmt"
)

// Color is the content of a board intersection.
type Color uint8

const (
	Empty Color = iota
	Black
	White
)

var ErrUnknownColor = errors.New("unknown color")

// Opponent returns the other stone color. Empty has no opponent.
func (that Color) Opponent() Color {
	switch that {
	case Black:
		return White
	case White:
		return Black
	case Empty:
		return Empty
	}

	return Empty
}

func (that Color) IsStone() bool {
	return that == Black || that == White
}

func (that Color) String() string {
	switch that {
	case Black:
		return "black"
	case White:
		return "white"
	case Empty:
		return ""
	}

	return fmt.Sprintf("color(%d)", uint8(that))
}

// Symbol is the one-letter form used in board rows.
func (that Color) Symbol() byte {
	switch that {
	case Black:
		return 'B'
	case White:
		return 'W'
	case Empty:
		return '.'
	}

	return '?'
}

func (that Color) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Color) UnmarshalText(text []byte) error {
	color, err := ParseColor(string(text))
	if err != nil {
		return err
	}

	*that = color

	return nil
}

// ParseColor - parses "black", "white" or an empty string.
func ParseColor(value string) (Color, error) {
	switch value {
	case "black", "b", "B":
		return Black, nil
	case "white", "w", "W":
		return White, nil
	case "":
		return Empty, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrUnknownColor, value)
	}
}
