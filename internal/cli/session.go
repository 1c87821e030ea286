package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mcoot/sosgame/internal/api/apierr"
	"github.com/mcoot/sosgame/internal/api/request"
	"github.com/mcoot/sosgame/internal/api/response"
	"github.com/mcoot/sosgame/internal/factory"
	"github.com/mcoot/sosgame/internal/model"
)

// errCorruptSave is returned when the save slot cannot be loaded
var errCorruptSave = errors.New("saved game is corrupt, run 'sos new' to start over")

// session is one game opened from the save slot, either in process or on a
// server. Every command loads it, runs one operation and saves it back.
type session interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) (bool, error)
	State(ctx context.Context) (response.GameState, error)
	Reset(ctx context.Context) (response.GameState, error)
	Place(ctx context.Context, col, row int, symbol string) (response.MoveResponse, error)
	Undo(ctx context.Context) (response.MoveResponse, error)
	Hint(ctx context.Context) (bool, error)
	Close() error
}

// openSession returns a remote session when a server is configured and a
// local one otherwise
func openSession(c *Config, app func() (*factory.App, error)) (session, error) {
	if c.Server != "" {
		return &remoteSession{client: NewClient(c.Server)}, nil
	}
	a, err := app()
	if err != nil {
		return nil, err
	}
	return &localSession{app: a}, nil
}

// localSession drives a controller on the configured save slot
type localSession struct {
	app *factory.App
}

var _ session = (*localSession)(nil)

func (s *localSession) Load(ctx context.Context) error {
	if _, err := s.app.GameController.LoadGame(ctx); err != nil {
		if errors.Is(err, model.ErrCorruptSnapshot) {
			return fmt.Errorf("%w: %v", errCorruptSave, err)
		}
		return err
	}
	return nil
}

func (s *localSession) Save(ctx context.Context) (bool, error) {
	return s.app.GameController.SaveGame(ctx)
}

func (s *localSession) state() response.GameState {
	ctrl := s.app.GameController
	return response.GameStateFromSnapshot(ctrl.Snapshot(), ctrl.CheckWinner())
}

func (s *localSession) State(context.Context) (response.GameState, error) {
	return s.state(), nil
}

func (s *localSession) Reset(context.Context) (response.GameState, error) {
	s.app.GameController.Reset()
	return s.state(), nil
}

func (s *localSession) Place(_ context.Context, col, row int, symbol string) (response.MoveResponse, error) {
	ctrl := s.app.GameController
	if symbol != "" {
		sym, err := model.ParseSymbol(symbol)
		if err != nil {
			return response.MoveResponse{}, err
		}
		if err := ctrl.SetSymbol(sym); err != nil {
			return response.MoveResponse{}, err
		}
	}

	move, err := ctrl.PlayMove(model.Position{Col: col, Row: row})
	if err != nil {
		return response.MoveResponse{}, err
	}
	return response.MoveResponse{Move: response.MoveFromModel(move), Game: s.state()}, nil
}

func (s *localSession) Undo(context.Context) (response.MoveResponse, error) {
	move, err := s.app.GameController.UndoMove()
	if err != nil {
		return response.MoveResponse{}, err
	}
	return response.MoveResponse{Move: response.MoveFromModel(move), Game: s.state()}, nil
}

func (s *localSession) Hint(context.Context) (bool, error) {
	return s.app.GameController.PossibleSOS(), nil
}

func (s *localSession) Close() error {
	return s.app.Close()
}

// remoteSession drives the game held by an API server
type remoteSession struct {
	client *Client
}

var _ session = (*remoteSession)(nil)

func (s *remoteSession) Load(ctx context.Context) error {
	err := s.client.Post(ctx, "/api/v1/game/load", nil, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Code == apierr.CodeCorruptSave {
		return fmt.Errorf("%w: %v", errCorruptSave, apiErr)
	}
	return err
}

func (s *remoteSession) Save(ctx context.Context) (bool, error) {
	var result response.SaveResponse
	if err := s.client.Post(ctx, "/api/v1/game/save", nil, &result); err != nil {
		return false, err
	}
	return result.Saved, nil
}

func (s *remoteSession) State(ctx context.Context) (response.GameState, error) {
	var result response.GameState
	err := s.client.Get(ctx, "/api/v1/game", &result)
	return result, err
}

func (s *remoteSession) Reset(ctx context.Context) (response.GameState, error) {
	var result response.GameState
	err := s.client.Post(ctx, "/api/v1/game/reset", nil, &result)
	return result, err
}

func (s *remoteSession) Place(ctx context.Context, col, row int, symbol string) (response.MoveResponse, error) {
	var result response.MoveResponse
	body := request.PlaceRequest{Col: col, Row: row, Symbol: symbol}
	err := s.client.Post(ctx, "/api/v1/game/moves", body, &result)
	return result, err
}

func (s *remoteSession) Undo(ctx context.Context) (response.MoveResponse, error) {
	var result response.MoveResponse
	err := s.client.Delete(ctx, "/api/v1/game/moves/last", &result)
	return result, err
}

func (s *remoteSession) Hint(ctx context.Context) (bool, error) {
	var result response.HintResponse
	if err := s.client.Get(ctx, "/api/v1/game/hint", &result); err != nil {
		return false, err
	}
	return result.PossibleSOS, nil
}

func (s *remoteSession) Close() error {
	return nil
}
