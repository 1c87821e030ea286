package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoardIsEmptyAndSquare(t *testing.T) {
	b := NewBoard(4)

	require.Len(t, b.Cells, 4)
	for _, row := range b.Cells {
		assert.Len(t, row, 4)
	}
	assert.Equal(t, 16, b.EmptyCount())
	assert.Equal(t, 16, b.CellCount())
}

func TestBoardGetOutOfBounds(t *testing.T) {
	b := NewBoard(3)
	b.Set(Position{Col: 3, Row: 0}, S)

	assert.Equal(t, Empty, b.Get(Position{Col: -1, Row: 0}))
	assert.Equal(t, Empty, b.Get(Position{Col: 0, Row: 3}))
	assert.Equal(t, 9, b.EmptyCount())
}

func TestBoardHolds(t *testing.T) {
	b := NewBoard(3)
	b.Set(Position{Col: 2, Row: 1}, O)

	assert.True(t, b.Holds(Position{Col: 2, Row: 1}, O))
	assert.False(t, b.Holds(Position{Col: 2, Row: 1}, S))
	assert.False(t, b.Holds(Position{Col: 3, Row: 1}, Empty))
}

func TestBoardCloneIsIndependent(t *testing.T) {
	b := NewBoard(3)
	b.Set(Position{Col: 0, Row: 0}, S)

	clone := b.Clone()
	clone.Set(Position{Col: 1, Row: 1}, O)

	assert.Equal(t, S, clone.Get(Position{Col: 0, Row: 0}))
	assert.True(t, b.IsEmpty(Position{Col: 1, Row: 1}))
}

func TestParseSymbol(t *testing.T) {
	sym, err := ParseSymbol("s")
	require.NoError(t, err)
	assert.Equal(t, S, sym)

	sym, err = ParseSymbol(" O ")
	require.NoError(t, err)
	assert.Equal(t, O, sym)

	_, err = ParseSymbol("X")
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}

func TestCellCodes(t *testing.T) {
	// Saved games store these codes
	assert.Equal(t, 0, int(Empty))
	assert.Equal(t, 1, int(O))
	assert.Equal(t, 2, int(S))

	assert.False(t, Empty.IsSymbol())
	assert.True(t, Empty.IsValid())
	assert.False(t, Cell(3).IsValid())
}
