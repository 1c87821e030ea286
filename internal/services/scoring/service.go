package scoring

import (
	"github.com/mcoot/sosgame/internal/model"
)

// direction is a unit step along the board
type direction struct {
	dCol int
	dRow int
}

func (d direction) from(pos model.Position, steps int) model.Position {
	return model.Position{Col: pos.Col + d.dCol*steps, Row: pos.Row + d.dRow*steps}
}

func (d direction) reverse() direction {
	return direction{dCol: -d.dCol, dRow: -d.dRow}
}

// lines are the four undirected lines through a cell: horizontal,
// vertical, and the two diagonals
var lines = [4]direction{
	{dCol: 1, dRow: 0},
	{dCol: 0, dRow: 1},
	{dCol: 1, dRow: 1},
	{dCol: 1, dRow: -1},
}

// CountNewSOS returns how many S-O-S sequences would be completed by placing
// symbol at pos on the board as it currently stands. The board is not modified.
//
// An O is always the middle of its sequence, so each line through pos counts
// at most once. An S is an endpoint, so both directions of every line are
// checked separately.
func CountNewSOS(board *model.Board, pos model.Position, symbol model.Cell) int {
	count := 0

	switch symbol {
	case model.O:
		for _, d := range lines {
			if board.Holds(d.from(pos, -1), model.S) && board.Holds(d.from(pos, 1), model.S) {
				count++
			}
		}
	case model.S:
		for _, line := range lines {
			for _, d := range [2]direction{line, line.reverse()} {
				if board.Holds(d.from(pos, 1), model.O) && board.Holds(d.from(pos, 2), model.S) {
					count++
				}
			}
		}
	}

	return count
}

// PossibleSOS reports whether any single placement on an empty cell would
// complete at least one sequence
func PossibleSOS(board *model.Board) bool {
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			pos := model.Position{Col: col, Row: row}
			if !board.IsEmpty(pos) {
				continue
			}
			if CountNewSOS(board, pos, model.O) > 0 || CountNewSOS(board, pos, model.S) > 0 {
				return true
			}
		}
	}
	return false
}
