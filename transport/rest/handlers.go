package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/goban-backend/internal/apperror"
	"github.com/rocketscienceinc/goban-backend/internal/entity"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	CurrentGame(w http.ResponseWriter, _ *http.Request)
	StoredGame(w http.ResponseWriter, r *http.Request)
}

type session interface {
	State() *entity.Game
}

type gameRepo interface {
	GetByID(ctx context.Context, id string) (*entity.Game, error)
}

type handlers struct {
	logger   *slog.Logger
	session  session
	gameRepo gameRepo
}

func NewHandlers(logger *slog.Logger, session session, gameRepo gameRepo) Handlers {
	return &handlers{
		logger:   logger.With("component", "rest"),
		session:  session,
		gameRepo: gameRepo,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// CurrentGame - returns the live view of the running session.
func (that *handlers) CurrentGame(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.session.State())
}

// StoredGame - returns the last view written to the repository.
func (that *handlers) StoredGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "StoredGame")

	game, err := that.gameRepo.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, apperror.ErrGameNotFound) {
			that.writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}

		log.Error("failed to get game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
