package game

import (
	"log/slog"
	"slices"

	"github.com/mcoot/sosgame/internal/dependencies/random"
	"github.com/mcoot/sosgame/internal/model"
	"github.com/mcoot/sosgame/internal/services/scoring"
	"github.com/mcoot/sosgame/internal/storage"
)

// Controller owns one game of SOS: the board, both scores, whose turn it
// is, the selected symbol and the move history. It is the only thing that
// mutates that state.
//
// A Controller is not safe for concurrent use; callers driving it from
// several goroutines must serialize access themselves.
type Controller struct {
	stream *storage.Stream
	random random.Random
	logger *slog.Logger

	state model.Snapshot
}

// NewController creates a controller with a freshly reset game
func NewController(stream *storage.Stream, random random.Random, logger *slog.Logger) *Controller {
	c := &Controller{
		stream: stream,
		random: random,
		logger: logger,
	}
	c.Reset()
	return c
}

// Reset starts a new game on an empty board whose side is chosen uniformly
// in [model.MinBoardSize, model.MaxBoardSize]. Player 1 moves first with S
// selected.
func (c *Controller) Reset() {
	size := random.Between(c.random, model.MinBoardSize, model.MaxBoardSize)

	c.state = model.Snapshot{
		Board:    model.NewBoard(size),
		P1Turn:   true,
		Symbol:   model.S,
		GameOver: false,
		History:  []model.Move{},
	}

	c.logger.Info("game reset", slog.Int("board_size", size))
}

// SetSymbol selects the symbol placed by the next move
func (c *Controller) SetSymbol(sym model.Cell) error {
	if !sym.IsSymbol() {
		return model.ErrInvalidSymbol
	}
	c.state.Symbol = sym
	return nil
}

// PlayMove places the current symbol at pos for the current player.
//
// Points for every sequence the placement completes go to the mover, who
// keeps the turn if they scored. Nothing changes if the move is rejected.
func (c *Controller) PlayMove(pos model.Position) (model.Move, error) {
	if c.state.GameOver {
		return model.Move{}, model.ErrGameOver
	}
	board := c.state.Board
	if !board.IsValidPosition(pos) {
		return model.Move{}, model.ErrInvalidPosition
	}
	if !board.IsEmpty(pos) {
		return model.Move{}, model.ErrCellOccupied
	}

	// Counted against the board before the symbol goes down
	gained := scoring.CountNewSOS(board, pos, c.state.Symbol)
	if c.state.P1Turn {
		c.state.P1Score += gained
	} else {
		c.state.P2Score += gained
	}
	board.Set(pos, c.state.Symbol)

	move := model.Move{
		Pos:          pos,
		WasP1Turn:    c.state.P1Turn,
		PointsGained: gained,
	}
	c.state.History = append(c.state.History, move)

	// Game over must be settled before the turn is passed on
	if c.CheckWinner() == model.WinnerNone && gained == 0 {
		c.state.P1Turn = !c.state.P1Turn
	}

	return move, nil
}

// UndoMove takes back the most recent move and hands the turn back to
// whoever made it
func (c *Controller) UndoMove() (model.Move, error) {
	if c.state.GameOver {
		return model.Move{}, model.ErrGameOver
	}
	if len(c.state.History) == 0 {
		return model.Move{}, model.ErrNoMovesToUndo
	}

	last := len(c.state.History) - 1
	move := c.state.History[last]
	c.state.History = c.state.History[:last]

	c.state.Board.Set(move.Pos, model.Empty)
	if move.WasP1Turn {
		c.state.P1Score -= move.PointsGained
	} else {
		c.state.P2Score -= move.PointsGained
	}
	c.state.P1Turn = move.WasP1Turn

	return move, nil
}

// CheckWinner reports the result once every cell has been played and marks
// the game over. While the board has empty cells it returns WinnerNone and
// changes nothing.
func (c *Controller) CheckWinner() model.Winner {
	if len(c.state.History) != c.state.Board.CellCount() {
		return model.WinnerNone
	}

	var winner model.Winner
	switch {
	case c.state.P1Score > c.state.P2Score:
		winner = model.WinnerP1
	case c.state.P2Score > c.state.P1Score:
		winner = model.WinnerP2
	default:
		winner = model.WinnerTie
	}

	if !c.state.GameOver {
		c.state.GameOver = true
		c.logger.Info("game over",
			slog.String("winner", winner.String()),
			slog.Int("p1_score", c.state.P1Score),
			slog.Int("p2_score", c.state.P2Score),
		)
	}

	return winner
}

// PossibleSOS reports whether any empty cell could still complete a sequence
func (c *Controller) PossibleSOS() bool {
	return scoring.PossibleSOS(c.state.Board)
}

// CountNewSOS returns how many sequences placing sym at pos would complete
// right now. It does not change the game.
func (c *Controller) CountNewSOS(pos model.Position, sym model.Cell) int {
	return scoring.CountNewSOS(c.state.Board, pos, sym)
}

// Cell returns the contents of the board at pos
func (c *Controller) Cell(pos model.Position) model.Cell {
	return c.state.Board.Get(pos)
}

// Size returns the board's side length
func (c *Controller) Size() int {
	return c.state.Board.Size
}

// IsP1Turn returns true if Player 1 moves next
func (c *Controller) IsP1Turn() bool {
	return c.state.P1Turn
}

// Symbol returns the symbol the next move will place
func (c *Controller) Symbol() model.Cell {
	return c.state.Symbol
}

func (c *Controller) P1Score() int {
	return c.state.P1Score
}

func (c *Controller) P2Score() int {
	return c.state.P2Score
}

// IsOver returns true once the board has been filled
func (c *Controller) IsOver() bool {
	return c.state.GameOver
}

// History returns a copy of the moves played so far, oldest first
func (c *Controller) History() []model.Move {
	return slices.Clone(c.state.History)
}

// Snapshot returns a deep copy of the current game state
func (c *Controller) Snapshot() model.Snapshot {
	return cloneSnapshot(c.state)
}

// Close releases any save slot reader held by the controller
func (c *Controller) Close() error {
	return c.stream.Close()
}

func cloneSnapshot(s model.Snapshot) model.Snapshot {
	clone := s
	clone.Board = s.Board.Clone()
	clone.History = slices.Clone(s.History)
	return clone
}
