package game

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mcoot/sosgame/internal/model"
)

// SaveGame writes the current game to the save slot, replacing whatever was
// there. Finished games are not saved; saved reports whether anything was
// written.
func (c *Controller) SaveGame(ctx context.Context) (saved bool, err error) {
	if c.state.GameOver {
		return false, nil
	}

	if err := c.stream.Write(ctx, encodeSnapshot(c.state)); err != nil {
		return false, fmt.Errorf("save game: %w", err)
	}
	c.stream.Reset(ctx)

	c.logger.Info("game saved",
		slog.Int("board_size", c.state.Board.Size),
		slog.Int("moves", len(c.state.History)),
	)
	return true, nil
}

// LoadGame replaces the current game with the one in the save slot.
//
// An empty or unreadable slot is not an error: loaded is false and the game
// is untouched. A slot whose contents cannot be parsed yields an error
// wrapping model.ErrCorruptSnapshot and also leaves the game untouched.
func (c *Controller) LoadGame(ctx context.Context) (loaded bool, err error) {
	c.stream.Reset(ctx)
	if !c.stream.HasNext() {
		if err := c.stream.Err(); err != nil {
			c.logger.Warn("save slot unreadable, nothing loaded", slog.String("error", err.Error()))
		}
		return false, nil
	}
	defer c.stream.Reset(ctx)

	staged, err := decodeSnapshot(c.stream)
	if err == nil {
		// A read failure ends the stream early and must not pass as the end of the save
		if readErr := c.stream.Err(); readErr != nil {
			err = fmt.Errorf("%w: reading save slot: %v", model.ErrCorruptSnapshot, readErr)
		}
	}
	if err != nil {
		c.logger.Warn("saved game rejected", slog.String("error", err.Error()))
		return false, err
	}

	// A saved game is never a finished one
	staged.GameOver = false
	c.state = staged

	c.logger.Info("game loaded",
		slog.Int("board_size", staged.Board.Size),
		slog.Int("moves", len(staged.History)),
	)
	return true, nil
}

// encodeSnapshot lays a game out one value per line:
//
//	p1 score
//	p2 score
//	true if player 1 is to move
//	symbol code
//	board side n
//	n rows of n comma separated cell codes
//	one "column,row,wasP1Turn,points" line per move, oldest first
func encodeSnapshot(s model.Snapshot) []string {
	lines := make([]string, 0, 5+s.Board.Size+len(s.History))
	lines = append(lines,
		strconv.Itoa(s.P1Score),
		strconv.Itoa(s.P2Score),
		strconv.FormatBool(s.P1Turn),
		strconv.Itoa(int(s.Symbol)),
		strconv.Itoa(s.Board.Size),
	)

	codes := make([]string, s.Board.Size)
	for _, row := range s.Board.Cells {
		for col, cell := range row {
			codes[col] = strconv.Itoa(int(cell))
		}
		lines = append(lines, strings.Join(codes, ","))
	}

	for _, m := range s.History {
		lines = append(lines, fmt.Sprintf("%d,%d,%t,%d", m.Pos.Col, m.Pos.Row, m.WasP1Turn, m.PointsGained))
	}
	return lines
}

// lineSource is the read side of storage.Stream
type lineSource interface {
	HasNext() bool
	Next() (string, error)
}

// snapshotReader pulls typed fields off a lineSource, tracking the line
// number for error messages
type snapshotReader struct {
	src  lineSource
	line int
}

func (r *snapshotReader) fail(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", model.ErrCorruptSnapshot, r.line, fmt.Sprintf(format, args...))
}

func (r *snapshotReader) next(field string) (string, error) {
	if !r.src.HasNext() {
		r.line++
		return "", r.fail("missing %s", field)
	}
	line, err := r.src.Next()
	r.line++
	if err != nil {
		return "", r.fail("reading %s: %v", field, err)
	}
	return line, nil
}

func (r *snapshotReader) count(field string) (int, error) {
	s, err := r.next(field)
	if err != nil {
		return 0, err
	}
	return r.parseCount(field, s)
}

func (r *snapshotReader) parseCount(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, r.fail("%s %q is not an integer", field, s)
	}
	if n < 0 {
		return 0, r.fail("%s %d is negative", field, n)
	}
	return n, nil
}

func (r *snapshotReader) parseBool(field, s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, r.fail("%s %q is not true or false", field, s)
}

// decodeSnapshot parses a complete game into a fresh Snapshot. It reads
// until src is exhausted and never touches live state.
func decodeSnapshot(src lineSource) (model.Snapshot, error) {
	r := &snapshotReader{src: src}
	var s model.Snapshot
	var err error

	if s.P1Score, err = r.count("player 1 score"); err != nil {
		return model.Snapshot{}, err
	}
	if s.P2Score, err = r.count("player 2 score"); err != nil {
		return model.Snapshot{}, err
	}

	turn, err := r.next("turn")
	if err != nil {
		return model.Snapshot{}, err
	}
	if s.P1Turn, err = r.parseBool("turn", turn); err != nil {
		return model.Snapshot{}, err
	}

	symbol, err := r.count("symbol")
	if err != nil {
		return model.Snapshot{}, err
	}
	s.Symbol = model.Cell(symbol)
	if !s.Symbol.IsSymbol() {
		return model.Snapshot{}, r.fail("symbol code %d is not S or O", symbol)
	}

	size, err := r.count("board size")
	if err != nil {
		return model.Snapshot{}, err
	}
	if size < model.MinBoardSize || size > model.MaxBoardSize {
		return model.Snapshot{}, r.fail("board size %d outside [%d, %d]", size, model.MinBoardSize, model.MaxBoardSize)
	}

	s.Board = model.NewBoard(size)
	for row := 0; row < size; row++ {
		line, err := r.next(fmt.Sprintf("board row %d", row))
		if err != nil {
			return model.Snapshot{}, err
		}
		fields := strings.Split(line, ",")
		if len(fields) != size {
			return model.Snapshot{}, r.fail("board row %d has %d cells, want %d", row, len(fields), size)
		}
		for col, f := range fields {
			code, err := r.parseCount("cell", f)
			if err != nil {
				return model.Snapshot{}, err
			}
			if !model.Cell(code).IsValid() {
				return model.Snapshot{}, r.fail("cell code %d is not 0, 1 or 2", code)
			}
			s.Board.Cells[row][col] = model.Cell(code)
		}
	}

	s.History = []model.Move{}
	played := make(map[model.Position]bool)
	for src.HasNext() {
		line, err := r.next("move")
		if err != nil {
			return model.Snapshot{}, err
		}
		move, err := r.parseMove(line)
		if err != nil {
			return model.Snapshot{}, err
		}
		if !s.Board.IsValidPosition(move.Pos) {
			return model.Snapshot{}, r.fail("move (%d,%d) is off the board", move.Pos.Col, move.Pos.Row)
		}
		if s.Board.IsEmpty(move.Pos) {
			return model.Snapshot{}, r.fail("move (%d,%d) is on an empty cell", move.Pos.Col, move.Pos.Row)
		}
		if played[move.Pos] {
			return model.Snapshot{}, r.fail("move (%d,%d) repeats an earlier move", move.Pos.Col, move.Pos.Row)
		}
		played[move.Pos] = true
		s.History = append(s.History, move)
	}

	filled := s.Board.CellCount() - s.Board.EmptyCount()
	if filled != len(s.History) {
		return model.Snapshot{}, r.fail("board has %d filled cells but %d moves", filled, len(s.History))
	}
	// Finished games are never saved
	if len(s.History) == s.Board.CellCount() {
		return model.Snapshot{}, r.fail("saved game is already finished")
	}

	return s, nil
}

func (r *snapshotReader) parseMove(line string) (model.Move, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 4 {
		return model.Move{}, r.fail("move %q has %d fields, want 4", line, len(fields))
	}

	col, err := r.parseCount("move column", fields[0])
	if err != nil {
		return model.Move{}, err
	}
	row, err := r.parseCount("move row", fields[1])
	if err != nil {
		return model.Move{}, err
	}
	p1, err := r.parseBool("move turn", fields[2])
	if err != nil {
		return model.Move{}, err
	}
	points, err := r.parseCount("move points", fields[3])
	if err != nil {
		return model.Move{}, err
	}

	return model.Move{
		Pos:          model.Position{Col: col, Row: row},
		WasP1Turn:    p1,
		PointsGained: points,
	}, nil
}
