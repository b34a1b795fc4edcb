package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/goban-backend/internal/entity"
)

const writeWait = 10 * time.Second

type session interface {
	State() *entity.Game
	Validate(x, y int) error
	PlayLocal(ctx context.Context, x, y int) (*entity.Game, error)
	PassLocal(ctx context.Context) (*entity.Game, error)
	Subscribe(fn func(*entity.Game)) func()
}

// client is one browser tab showing the board.
type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (that *client) send(msg Message) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := that.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// Server renders the session to browsers and turns their clicks into local moves.
type Server struct {
	logger   *slog.Logger
	session  session
	upgrader websocket.Upgrader

	handlers map[string]func(ctx context.Context, c *client, msg *Message) error

	connectionsMutex sync.RWMutex
	connections      map[string]*client
}

func New(logger *slog.Logger, session session) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		session: session,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},

		handlers:    make(map[string]func(context.Context, *client, *Message) error),
		connections: make(map[string]*client),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionTurn] = server.handleTurn
	server.handlers[actionPass] = server.handlePass
	server.handlers[actionValidate] = server.handleValidate

	return server
}

// Handler - returns the /ws handler; session updates are broadcast until ctx is done.
func (that *Server) Handler(ctx context.Context) http.Handler {
	unsubscribe := that.session.Subscribe(that.broadcast)
	context.AfterFunc(ctx, unsubscribe)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	})

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{id: uuid.NewString(), conn: conn}

	that.connectionsMutex.Lock()
	that.connections[c.id] = c
	that.connectionsMutex.Unlock()

	defer func() {
		that.connectionsMutex.Lock()
		delete(that.connections, c.id)
		that.connectionsMutex.Unlock()

		_ = conn.Close()
		log.Info("WebSocket connection closed", "clientID", c.id)
	}()

	log.Info("WebSocket connection established", "clientID", c.id)

	if err = that.handleMessages(ctx, c); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages", "clientID", c.id)

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		if messageType != websocket.TextMessage {
			continue
		}

		message, err := decodeMessage(data)
		if err != nil {
			log.Error("failed to unmarshal message", "error", err)
			if err = that.sendErrorResponse(c, "", "invalid message"); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			if err = that.sendErrorResponse(c, message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		if err = handler(ctx, c, message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) broadcast(game *entity.Game) {
	log := that.logger.With("method", "broadcast")

	msg, err := newMessage(actionUpdate, Payload{Game: game})
	if err != nil {
		log.Error("failed to build update", "error", err)
		return
	}

	that.connectionsMutex.RLock()
	clients := make([]*client, 0, len(that.connections))
	for _, c := range that.connections {
		clients = append(clients, c)
	}
	that.connectionsMutex.RUnlock()

	for _, c := range clients {
		if err = c.send(msg); err != nil {
			log.Error("failed to send game update", "clientID", c.id, "error", err)
		}
	}
}

func (that *Server) sendResponse(c *client, action string, payload Payload) error {
	msg, err := newMessage(action, payload)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	return c.send(msg)
}

func (that *Server) sendErrorResponse(c *client, action, errorMsg string) error {
	if err := that.sendResponse(c, action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
