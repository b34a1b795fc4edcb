package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/goban-backend/internal/entity"
	"github.com/rocketscienceinc/goban-backend/internal/repository"
)

type stubSession struct {
	game *entity.Game
}

func (that stubSession) State() *entity.Game {
	return that.game
}

func newTestMux(t *testing.T, repo repository.GameRepository) *http.ServeMux {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	session := stubSession{game: &entity.Game{
		ID:         "live",
		Width:      2,
		Height:     2,
		Board:      []string{"B.", ".W"},
		Turn:       entity.Black,
		LocalColor: entity.White,
		MoveNumber: 2,
	}}

	return NewMux(NewHandlers(logger, session, repo))
}

func TestHandlers_Ping(t *testing.T) {
	t.Run("Ping answers pong", func(t *testing.T) {
		// Given
		mux := newTestMux(t, repository.NewMemoryGameRepository())
		rec := httptest.NewRecorder()

		// When
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		// Then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
	})
}

func TestHandlers_CurrentGame(t *testing.T) {
	t.Run("Current game is rendered as JSON", func(t *testing.T) {
		// Given
		mux := newTestMux(t, repository.NewMemoryGameRepository())
		rec := httptest.NewRecorder()

		// When
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/game", nil))

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var game entity.Game
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &game))
		assert.Equal(t, "live", game.ID)
		assert.Equal(t, entity.Black, game.At(0, 0))
		assert.Equal(t, entity.White, game.At(1, 1))
		assert.False(t, game.IsLocalTurn())
	})

	t.Run("Only GET is routed", func(t *testing.T) {
		// Given
		mux := newTestMux(t, repository.NewMemoryGameRepository())
		rec := httptest.NewRecorder()

		// When
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/game", nil))

		// Then
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestHandlers_StoredGame(t *testing.T) {
	t.Run("Stored game is found", func(t *testing.T) {
		// Given
		repo := repository.NewMemoryGameRepository()
		require.NoError(t, repo.CreateOrUpdate(context.Background(), &entity.Game{
			ID:     "stored",
			Width:  1,
			Height: 1,
			Board:  []string{"W"},
			Turn:   entity.Black,
		}))

		mux := newTestMux(t, repo)
		rec := httptest.NewRecorder()

		// When
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games/stored", nil))

		// Then
		require.Equal(t, http.StatusOK, rec.Code)

		var game entity.Game
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &game))
		assert.Equal(t, "stored", game.ID)
		assert.Equal(t, entity.White, game.At(0, 0))
	})

	t.Run("Unknown game is not found", func(t *testing.T) {
		// Given
		mux := newTestMux(t, repository.NewMemoryGameRepository())
		rec := httptest.NewRecorder()

		// When
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games/missing", nil))

		// Then
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "game not found")
	})
}
