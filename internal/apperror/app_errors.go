package apperror

import "errors"

var (
	ErrOccupied    = errors.New("point is already occupied")
	ErrSuicide     = errors.New("move would be suicide")
	ErrKo          = errors.New("move repeats a recent position")
	ErrOutOfBounds = errors.New("point is outside the board")

	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrPeerMoveRejected  = errors.New("peer move rejected")
	ErrGameNotFound      = errors.New("game not found")
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	ErrInvalidColor      = errors.New("invalid player color")
)
