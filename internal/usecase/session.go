package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/rocketscienceinc/goban-backend/internal/apperror"
	"github.com/rocketscienceinc/goban-backend/internal/entity"
	"github.com/rocketscienceinc/goban-backend/internal/goban"
	"github.com/rocketscienceinc/goban-backend/internal/protocol"
)

type peerConn interface {
	Send(move protocol.Move) error
	Receive() (protocol.Move, error)
	Close() error
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
}

// Session drives one game between the local player and the remote peer.
// Every engine call goes through mu, since local input and the network
// loop run on different goroutines.
type Session struct {
	logger   *slog.Logger
	id       string
	peer     peerConn
	gameRepo gameRepo

	mu         sync.Mutex
	engine     *goban.Engine
	moveNumber int
	lastMove   *entity.Point
	lastPass   bool
	captured   map[entity.Color]int

	subsMu      sync.RWMutex
	subscribers map[int]func(*entity.Game)
	nextSubID   int
}

func NewSession(logger *slog.Logger, id string, engine *goban.Engine, peer peerConn, gameRepo gameRepo) *Session {
	return &Session{
		logger:   logger.With("component", "session", "gameID", id),
		id:       id,
		peer:     peer,
		gameRepo: gameRepo,

		engine:   engine,
		captured: make(map[entity.Color]int),

		subscribers: make(map[int]func(*entity.Game)),
	}
}

func (that *Session) ID() string {
	return that.id
}

// State returns the current published view.
func (that *Session) State() *entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot()
}

// Validate - checks a local move without playing it.
func (that *Session) Validate(x, y int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.engine.IsLocalTurn() {
		return apperror.ErrNotYourTurn
	}

	return that.engine.Validate(x, y)
}

// PlayLocal - plays the local player's stone and sends it to the peer.
func (that *Session) PlayLocal(ctx context.Context, x, y int) (*entity.Game, error) {
	game, err := that.applyLocal(protocol.NewMove(x, y))
	if err != nil {
		return nil, err
	}

	that.publish(ctx, game)

	return game, nil
}

// PassLocal - passes the local player's turn and tells the peer.
func (that *Session) PassLocal(ctx context.Context) (*entity.Game, error) {
	game, err := that.applyLocal(protocol.PassMove())
	if err != nil {
		return nil, err
	}

	that.publish(ctx, game)

	return game, nil
}

func (that *Session) applyLocal(move protocol.Move) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.engine.IsLocalTurn() {
		return nil, apperror.ErrNotYourTurn
	}

	if !move.Pass {
		if err := that.engine.Validate(move.X, move.Y); err != nil {
			return nil, fmt.Errorf("invalid move: %w", err)
		}
	}

	// the board only changes once the peer has the move, and the lock keeps
	// moves in the order they were played
	if err := that.peer.Send(move); err != nil {
		return nil, fmt.Errorf("failed to send move: %w", err)
	}

	if err := that.apply(move); err != nil {
		return nil, fmt.Errorf("invalid move: %w", err)
	}

	that.logger.Info("local move played", "move", move.String())

	return that.snapshot(), nil
}

// ApplyRemote - replays a move received from the peer through the same
// validation as local moves.
func (that *Session) ApplyRemote(ctx context.Context, move protocol.Move) (*entity.Game, error) {
	that.mu.Lock()

	if that.engine.IsLocalTurn() {
		that.mu.Unlock()
		return nil, fmt.Errorf("%w: %s: %w", apperror.ErrPeerMoveRejected, move, apperror.ErrNotYourTurn)
	}

	if err := that.apply(move); err != nil {
		that.mu.Unlock()
		return nil, fmt.Errorf("%w: %s: %w", apperror.ErrPeerMoveRejected, move, err)
	}

	game := that.snapshot()
	that.mu.Unlock()

	that.logger.Info("peer move played", "move", move.String())
	that.publish(ctx, game)

	return game, nil
}

// Run - applies peer moves until ctx is done or the session breaks. A
// rejected peer move means the two boards diverged; there is no way to
// recover from that, so the session ends.
func (that *Session) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	stop := context.AfterFunc(ctx, func() {
		if err := that.peer.Close(); err != nil {
			log.Error("failed to close peer", "error", err)
		}
	})
	defer stop()

	for {
		move, err := that.peer.Receive()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("failed to receive move: %w", err)
		}

		if _, err = that.ApplyRemote(ctx, move); err != nil {
			log.Error("peer move rejected, boards are out of sync", "error", err)
			return err
		}
	}
}

// Subscribe registers fn for every state change. The returned func removes it.
func (that *Session) Subscribe(fn func(*entity.Game)) func() {
	that.subsMu.Lock()
	defer that.subsMu.Unlock()

	id := that.nextSubID
	that.nextSubID++
	that.subscribers[id] = fn

	return func() {
		that.subsMu.Lock()
		defer that.subsMu.Unlock()
		delete(that.subscribers, id)
	}
}

// apply must be called with mu held.
func (that *Session) apply(move protocol.Move) error {
	if move.Pass {
		that.engine.Pass()
		that.moveNumber++
		that.lastMove = nil
		that.lastPass = true

		return nil
	}

	if err := that.engine.Validate(move.X, move.Y); err != nil {
		return err
	}

	captured := that.engine.Play(move.X, move.Y)
	if len(captured) > 0 {
		that.captured[that.engine.CurrentPlayer()] += len(captured)
	}

	that.moveNumber++
	that.lastMove = &entity.Point{X: move.X, Y: move.Y}
	that.lastPass = false

	return nil
}

// snapshot must be called with mu held.
func (that *Session) snapshot() *entity.Game {
	game := &entity.Game{
		ID:         that.id,
		Width:      that.engine.Width(),
		Height:     that.engine.Height(),
		Board:      entity.BoardRows(that.engine.Grid()),
		Turn:       that.engine.CurrentPlayer(),
		LocalColor: that.engine.LocalIdentity(),
		MoveNumber: that.moveNumber,
		LastPass:   that.lastPass,
		Captured:   maps.Clone(that.captured),
	}

	if that.lastMove != nil {
		lastMove := *that.lastMove
		game.LastMove = &lastMove
	}

	return game
}

func (that *Session) publish(ctx context.Context, game *entity.Game) {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil && !errors.Is(err, context.Canceled) {
		that.logger.Error("failed to store game", "error", err)
	}

	that.subsMu.RLock()
	defer that.subsMu.RUnlock()

	for _, fn := range that.subscribers {
		fn(game)
	}
}
