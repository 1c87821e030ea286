package response

import (
	"github.com/mcoot/sosgame/internal/model"
)

// Player names used in responses
const (
	Player1 = "player1"
	Player2 = "player2"
)

func playerName(p1 bool) string {
	if p1 {
		return Player1
	}
	return Player2
}

// Move represents a played move
type Move struct {
	Col    int    `json:"col"`
	Row    int    `json:"row"`
	Player string `json:"player"`
	Points int    `json:"points"`
}

// MoveFromModel converts model.Move
func MoveFromModel(m model.Move) Move {
	return Move{
		Col:    m.Pos.Col,
		Row:    m.Pos.Row,
		Player: playerName(m.WasP1Turn),
		Points: m.PointsGained,
	}
}

// Scores represents both players' scores
type Scores struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

// GameState represents the full state of the game. Board rows hold "S",
// "O" or "" for an empty cell.
type GameState struct {
	BoardSize int        `json:"board_size"`
	Board     [][]string `json:"board"`
	Scores    Scores     `json:"scores"`
	Turn      string     `json:"turn"`
	Symbol    string     `json:"symbol"`
	GameOver  bool       `json:"game_over"`
	Winner    string     `json:"winner"`
	History   []Move     `json:"history"`
}

// GameStateFromSnapshot converts a snapshot and its win check result
func GameStateFromSnapshot(s model.Snapshot, winner model.Winner) GameState {
	board := make([][]string, s.Board.Size)
	for row := range board {
		cells := s.Board.GetRow(row)
		board[row] = make([]string, len(cells))
		for col, c := range cells {
			board[row][col] = c.String()
		}
	}

	history := make([]Move, len(s.History))
	for i, m := range s.History {
		history[i] = MoveFromModel(m)
	}

	return GameState{
		BoardSize: s.Board.Size,
		Board:     board,
		Scores:    Scores{Player1: s.P1Score, Player2: s.P2Score},
		Turn:      playerName(s.P1Turn),
		Symbol:    s.Symbol.String(),
		GameOver:  s.GameOver,
		Winner:    winner.String(),
		History:   history,
	}
}

// MoveResponse is the response for playing or undoing a move
type MoveResponse struct {
	Move Move      `json:"move"`
	Game GameState `json:"game"`
}

// HintResponse reports whether any empty cell could still score
type HintResponse struct {
	PossibleSOS bool `json:"possible_sos"`
}

// PreviewResponse reports how many sequences a move would complete
type PreviewResponse struct {
	Col    int    `json:"col"`
	Row    int    `json:"row"`
	Symbol string `json:"symbol"`
	Points int    `json:"points"`
}

// SaveResponse reports whether the game was written to the save slot
type SaveResponse struct {
	Saved bool `json:"saved"`
}

// LoadResponse reports whether a saved game replaced the current one
type LoadResponse struct {
	Loaded bool      `json:"loaded"`
	Game   GameState `json:"game"`
}
