// Package protocol encodes moves exchanged between the two peers.
//
// A message is ASCII "<x>,<y>" for a stone or "pass", sent without length
// prefix or delimiter.
package protocol

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// MaxMessageSize is the read buffer used for one message.
const MaxMessageSize = 1024

const passMessage = "pass"

var ErrMalformedMessage = errors.New("malformed move message")

type Move struct {
	X    int
	Y    int
	Pass bool
}

func NewMove(x, y int) Move {
	return Move{X: x, Y: y}
}

func PassMove() Move {
	return Move{Pass: true}
}

func (that Move) String() string {
	return string(Encode(that))
}

// Encode - writes the move in wire format.
func Encode(move Move) []byte {
	if move.Pass {
		return []byte(passMessage)
	}

	buf := make([]byte, 0, 8)
	buf = strconv.AppendInt(buf, int64(move.X), 10)
	buf = append(buf, ',')
	buf = strconv.AppendInt(buf, int64(move.Y), 10)

	return buf
}

// Decode - parses one message. Surrounding whitespace is ignored.
func Decode(msg []byte) (Move, error) {
	msg = bytes.TrimSpace(msg)

	if string(msg) == passMessage {
		return PassMove(), nil
	}

	xs, ys, ok := bytes.Cut(msg, []byte{','})
	if !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformedMessage, msg)
	}

	x, err := parseCoord(xs)
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q: %w", ErrMalformedMessage, msg, err)
	}

	y, err := parseCoord(ys)
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q: %w", ErrMalformedMessage, msg, err)
	}

	return NewMove(x, y), nil
}

// Incomplete reports whether msg could still grow into a valid message,
// such as "1" or "1," cut off by a split read, or a prefix of "pass".
func Incomplete(msg []byte) bool {
	msg = bytes.TrimLeft(msg, " \t\r\n")

	if len(msg) < len(passMessage) && bytes.HasPrefix([]byte(passMessage), msg) {
		return true
	}

	xs, ys, found := bytes.Cut(msg, []byte{','})
	if !isDigits(xs) {
		return false
	}

	return !found || len(ys) == 0
}

func isDigits(raw []byte) bool {
	for _, c := range raw {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}

func parseCoord(raw []byte) (int, error) {
	if !isDigits(raw) {
		return 0, fmt.Errorf("coordinate %q is not a decimal number", raw)
	}

	return strconv.Atoi(string(raw))
}
