package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/sosgame/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.GameState:
		o.printGameState(v)
	case MoveResult:
		o.printMoveResult(v)
	case HintResult:
		o.printHintResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Move actions
const (
	ActionPlaced = "placed"
	ActionUndone = "undone"
)

// MoveResult is the outcome of a place or undo command
type MoveResult struct {
	Action string `json:"action"`
	response.MoveResponse
	Saved bool `json:"saved"`
}

// HintResult is the outcome of a hint command
type HintResult struct {
	PossibleSOS bool `json:"possible_sos"`
}

func (o *Output) printGameState(g response.GameState) {
	o.printBoard(g.Board)

	fmt.Fprintf(o.w, "Scores: player1 %d, player2 %d\n", g.Scores.Player1, g.Scores.Player2)
	if g.GameOver {
		if g.Winner == "tie" {
			fmt.Fprintln(o.w, "Game over: tie")
		} else {
			fmt.Fprintf(o.w, "Game over: %s wins\n", g.Winner)
		}
		return
	}
	fmt.Fprintf(o.w, "Turn: %s (symbol %s)\n", g.Turn, g.Symbol)
}

func (o *Output) printBoard(cells [][]string) {
	size := len(cells)
	if size == 0 {
		return
	}

	// Print column headers
	fmt.Fprint(o.w, "    ")
	for col := 0; col < size; col++ {
		fmt.Fprintf(o.w, "%3d", col)
	}
	fmt.Fprintln(o.w)

	border := "    +" + strings.Repeat("---", size) + "+"

	fmt.Fprintln(o.w, border)
	for row := 0; row < size; row++ {
		fmt.Fprintf(o.w, "%3d |", row)
		for col := 0; col < size; col++ {
			cell := cells[row][col]
			if cell == "" {
				cell = "."
			}
			fmt.Fprintf(o.w, " %s ", cell)
		}
		fmt.Fprintln(o.w, "|")
	}
	fmt.Fprintln(o.w, border)
}

func (o *Output) printMoveResult(m MoveResult) {
	mv := m.Move
	switch m.Action {
	case ActionPlaced:
		fmt.Fprintf(o.w, "%s placed %s at (%d,%d) scoring %d\n",
			mv.Player, m.Game.Board[mv.Row][mv.Col], mv.Col, mv.Row, mv.Points)
	case ActionUndone:
		fmt.Fprintf(o.w, "Took back %s's move at (%d,%d) worth %d\n", mv.Player, mv.Col, mv.Row, mv.Points)
	}

	o.printGameState(m.Game)

	if !m.Saved {
		fmt.Fprintln(o.w, "Finished games are not saved, run 'sos new' to play again")
	}
}

func (o *Output) printHintResult(h HintResult) {
	if h.PossibleSOS {
		fmt.Fprintln(o.w, "An SOS can still be made")
	} else {
		fmt.Fprintln(o.w, "No SOS can be made with a single move")
	}
}
