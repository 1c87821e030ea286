package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/sosgame/internal/api/handler"
	"github.com/mcoot/sosgame/internal/api/middleware"
	"github.com/mcoot/sosgame/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.Logger)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Game routes
	api.HandleFunc("/game", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/game/reset", gameHandler.Reset).Methods(http.MethodPost)
	api.HandleFunc("/game/symbol", gameHandler.SetSymbol).Methods(http.MethodPut)
	api.HandleFunc("/game/moves", gameHandler.Place).Methods(http.MethodPost)
	api.HandleFunc("/game/moves/last", gameHandler.Undo).Methods(http.MethodDelete)
	api.HandleFunc("/game/hint", gameHandler.Hint).Methods(http.MethodGet)
	api.HandleFunc("/game/sos", gameHandler.Preview).Methods(http.MethodGet)

	// Save slot routes
	api.HandleFunc("/game/save", gameHandler.Save).Methods(http.MethodPost)
	api.HandleFunc("/game/load", gameHandler.Load).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
