package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/goban-backend/internal/config"
	"github.com/rocketscienceinc/goban-backend/internal/goban"
	"github.com/rocketscienceinc/goban-backend/internal/peer"
	"github.com/rocketscienceinc/goban-backend/internal/repository"
	"github.com/rocketscienceinc/goban-backend/internal/repository/storage"
	"github.com/rocketscienceinc/goban-backend/internal/usecase"
	"github.com/rocketscienceinc/goban-backend/transport/rest"
	"github.com/rocketscienceinc/goban-backend/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	gameRepo, closeRepo, err := newGameRepository(ctx, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	log.Info("Waiting for peer", "mode", conf.Peer.Mode, "color", conf.Peer.LocalColor().String())

	conn, err := connectPeer(ctx, logger, conf)
	if err != nil {
		return fmt.Errorf("could not connect to peer: %w", err)
	}

	log.Info("Peer connected", "remote", conn.RemoteAddr().String(), "color", conn.Color().String())

	engine, err := goban.New(conf.Board.Width, conf.Board.Height, conn.Color(), goban.WithKoWindow(conf.Board.KoWindow))
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("could not create board: %w", err)
	}

	session := usecase.NewSession(logger, uuid.NewString(), engine, conn, gameRepo)

	// run game session
	sessionErrCh := make(chan error, 1)
	go func() {
		sessionErr := session.Run(ctx)
		if errors.Is(sessionErr, peer.ErrPeerClosed) {
			log.Info("Peer left the game")
			sessionErr = nil
		}

		if sessionErr != nil {
			log.Error("Game session error", "error", sessionErr)
			sessionErrCh <- sessionErr
			return
		}
		cancel()
	}()

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		handlers := rest.NewHandlers(logger, session, gameRepo)
		if httpErr := rest.Start(ctx, conf.HTTPPort, handlers); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, session)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-sessionErrCh:
		return fmt.Errorf("game session error: %w", err)
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// connectPeer - hosts or joins depending on the configured mode.
func connectPeer(ctx context.Context, logger *slog.Logger, conf *config.Config) (*peer.Conn, error) {
	if conf.Peer.Mode == config.ModeJoin {
		return peer.Dial(ctx, logger, conf.Peer.GetPeerAddr(), conf.Peer.DialTimeout)
	}

	listener, err := peer.Listen(ctx, logger, conf.Peer.GetListenAddr())
	if err != nil {
		return nil, err
	}
	defer listener.Close()

	return listener.Accept(ctx)
}

// newGameRepository - uses Redis when enabled, otherwise keeps views in memory.
func newGameRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, func(), error) {
	if !conf.Redis.Enabled {
		return repository.NewMemoryGameRepository(), func() {}, nil
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeFn := func() {
		_ = redisStorage.Close()
	}

	return repository.NewGameRepository(redisStorage, conf.Redis.TTL), closeFn, nil
}
