package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/mcoot/sosgame/internal/api/apierr"
	"github.com/mcoot/sosgame/internal/api/request"
	"github.com/mcoot/sosgame/internal/api/response"
	"github.com/mcoot/sosgame/internal/model"
	"github.com/mcoot/sosgame/internal/services/game"
)

// GameHandler handles game endpoints. The controller is single-threaded,
// so every call into it is made under mu.
type GameHandler struct {
	mu             sync.Mutex
	gameController *game.Controller
	logger         *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		logger:         logger,
	}
}

// state must be called with mu held
func (h *GameHandler) state() response.GameState {
	winner := h.gameController.CheckWinner()
	return response.GameStateFromSnapshot(h.gameController.Snapshot(), winner)
}

// Get handles GET /api/v1/game
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	response.JSON(w, http.StatusOK, h.state())
}

// Reset handles POST /api/v1/game/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.gameController.Reset()
	response.JSON(w, http.StatusOK, h.state())
}

// SetSymbol handles PUT /api/v1/game/symbol
func (h *GameHandler) SetSymbol(w http.ResponseWriter, r *http.Request) {
	var req request.SetSymbolRequest
	if err := decodeBody(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	sym, err := model.ParseSymbol(req.Symbol)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.gameController.SetSymbol(sym); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, h.state())
}

// Place handles POST /api/v1/game/moves
func (h *GameHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req request.PlaceRequest
	if err := decodeBody(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	sym := model.Empty
	if req.Symbol != "" {
		var err error
		if sym, err = model.ParseSymbol(req.Symbol); err != nil {
			apierr.WriteError(w, err)
			return
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// A rejected move keeps the previously selected symbol
	previous := h.gameController.Symbol()
	if sym != model.Empty {
		if err := h.gameController.SetSymbol(sym); err != nil {
			apierr.WriteError(w, err)
			return
		}
	}

	move, err := h.gameController.PlayMove(model.Position{Col: req.Col, Row: req.Row})
	if err != nil {
		_ = h.gameController.SetSymbol(previous)
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MoveResponse{
		Move: response.MoveFromModel(move),
		Game: h.state(),
	})
}

// Undo handles DELETE /api/v1/game/moves/last
func (h *GameHandler) Undo(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	move, err := h.gameController.UndoMove()
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveResponse{
		Move: response.MoveFromModel(move),
		Game: h.state(),
	})
}

// Hint handles GET /api/v1/game/hint
func (h *GameHandler) Hint(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	response.JSON(w, http.StatusOK, response.HintResponse{
		PossibleSOS: h.gameController.PossibleSOS(),
	})
}

// Preview handles GET /api/v1/game/sos?col=&row=&symbol=
//
// symbol defaults to the currently selected one.
func (h *GameHandler) Preview(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	col, err := strconv.Atoi(query.Get("col"))
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("col must be an integer"))
		return
	}
	row, err := strconv.Atoi(query.Get("row"))
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("row must be an integer"))
		return
	}

	sym := model.Empty
	if raw := query.Get("symbol"); raw != "" {
		if sym, err = model.ParseSymbol(raw); err != nil {
			apierr.WriteError(w, err)
			return
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if sym == model.Empty {
		sym = h.gameController.Symbol()
	}

	pos := model.Position{Col: col, Row: row}
	size := h.gameController.Size()
	if col < 0 || col >= size || row < 0 || row >= size {
		apierr.WriteError(w, model.ErrInvalidPosition)
		return
	}
	if h.gameController.Cell(pos) != model.Empty {
		apierr.WriteError(w, model.ErrCellOccupied)
		return
	}

	response.JSON(w, http.StatusOK, response.PreviewResponse{
		Col:    col,
		Row:    row,
		Symbol: sym.String(),
		Points: h.gameController.CountNewSOS(pos, sym),
	})
}

// Save handles POST /api/v1/game/save
func (h *GameHandler) Save(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	saved, err := h.gameController.SaveGame(r.Context())
	if err != nil {
		h.logger.Error("failed to save game", slog.String("error", err.Error()))
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SaveResponse{Saved: saved})
}

// Load handles POST /api/v1/game/load
func (h *GameHandler) Load(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	loaded, err := h.gameController.LoadGame(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LoadResponse{
		Loaded: loaded,
		Game:   h.state(),
	})
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apierr.NewInvalidRequestError("Request body is required")
		}
		return apierr.NewInvalidRequestError("Invalid request body")
	}
	return nil
}
