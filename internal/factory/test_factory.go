package factory

import (
	"github.com/mcoot/sosgame/internal/dependencies/mocks"
	"github.com/mcoot/sosgame/internal/model"
	"github.com/mcoot/sosgame/internal/storage/memory"
	"github.com/mcoot/sosgame/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockRandom *mocks.MockRandom
	MemorySlot *memory.Slot
}

// NewTestApp creates an App on an in-memory slot whose first game is
// played on a board of the given side
func NewTestApp(boardSize int) *TestApp {
	slot := memory.New()
	mockRandom := mocks.NewMockRandom()
	mockRandom.QueueBoardSize(boardSize)

	app := newWithDependencies(slot, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockRandom: mockRandom,
		MemorySlot: slot,
	}
}

// PlayMoves selects each symbol and plays it at the matching position,
// stopping at the first rejected move
func (t *TestApp) PlayMoves(moves ...PlannedMove) error {
	for _, m := range moves {
		if err := t.GameController.SetSymbol(m.Symbol); err != nil {
			return err
		}
		if _, err := t.GameController.PlayMove(m.Pos); err != nil {
			return err
		}
	}
	return nil
}

// PlannedMove is a move for PlayMoves
type PlannedMove struct {
	Pos    model.Position
	Symbol model.Cell
}

// At is shorthand for building a PlannedMove
func At(col, row int, sym model.Cell) PlannedMove {
	return PlannedMove{Pos: model.Position{Col: col, Row: row}, Symbol: sym}
}
