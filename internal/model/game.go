package model

// Winner is the result reported by a win check
type Winner int

const (
	WinnerNone Winner = iota // Board not yet full
	WinnerP1
	WinnerP2
	WinnerTie
)

func (w Winner) String() string {
	switch w {
	case WinnerP1:
		return "player1"
	case WinnerP2:
		return "player2"
	case WinnerTie:
		return "tie"
	default:
		return "none"
	}
}

// Snapshot is a complete copy of a game's state. It is what gets saved,
// what a load is staged into, and what callers render from.
type Snapshot struct {
	Board    *Board
	P1Score  int
	P2Score  int
	P1Turn   bool
	Symbol   Cell
	GameOver bool
	History  []Move
}

// Score returns the score of the player whose turn flag is p1
func (s *Snapshot) Score(p1 bool) int {
	if p1 {
		return s.P1Score
	}
	return s.P2Score
}
