package model

// Board side limits; a new game picks a side uniformly in [MinBoardSize, MaxBoardSize]
const (
	MinBoardSize = 3
	MaxBoardSize = 15
)

// Position identifies a cell on the board
type Position struct {
	Col int // 0-indexed from left
	Row int // 0-indexed from top
}

// Board is the square SOS grid
type Board struct {
	Size  int
	Cells [][]Cell // Row-major: Cells[row][col]
}

// NewBoard creates an all-empty board of the given size
func NewBoard(size int) *Board {
	cells := make([][]Cell, size)
	for i := range cells {
		cells[i] = make([]Cell, size)
	}
	return &Board{
		Size:  size,
		Cells: cells,
	}
}

// Get returns the cell at the given position, or Empty if out of bounds
func (b *Board) Get(pos Position) Cell {
	if !b.IsValidPosition(pos) {
		return Empty
	}
	return b.Cells[pos.Row][pos.Col]
}

// Set places a value at the given position
func (b *Board) Set(pos Position, c Cell) {
	if b.IsValidPosition(pos) {
		b.Cells[pos.Row][pos.Col] = c
	}
}

// IsEmpty returns true if the cell at the given position is empty
func (b *Board) IsEmpty(pos Position) bool {
	return b.Get(pos) == Empty
}

// Holds reports whether pos is on the board and contains c
func (b *Board) Holds(pos Position, c Cell) bool {
	return b.IsValidPosition(pos) && b.Cells[pos.Row][pos.Col] == c
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.Size && pos.Col >= 0 && pos.Col < b.Size
}

// CellCount is the number of squares on the board
func (b *Board) CellCount() int {
	return b.Size * b.Size
}

// EmptyCount returns the number of empty cells
func (b *Board) EmptyCount() int {
	count := 0
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if b.Cells[row][col] == Empty {
				count++
			}
		}
	}
	return count
}

// GetRow returns a copy of the given row
func (b *Board) GetRow(row int) []Cell {
	if row < 0 || row >= b.Size {
		return nil
	}
	result := make([]Cell, b.Size)
	copy(result, b.Cells[row])
	return result
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	clone := NewBoard(b.Size)
	for row := range b.Cells {
		copy(clone.Cells[row], b.Cells[row])
	}
	return clone
}
