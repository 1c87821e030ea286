package model

import (
	"fmt"
	"strings"
)

// Cell is the content of a board square. The integer values are the
// codes written to saved games and must not change.
type Cell int

const (
	Empty Cell = 0
	O     Cell = 1
	S     Cell = 2
)

// IsSymbol reports whether the cell value is a placeable symbol (O or S)
func (c Cell) IsSymbol() bool {
	return c == O || c == S
}

// IsValid reports whether the value is one of the three known cell codes
func (c Cell) IsValid() bool {
	return c == Empty || c.IsSymbol()
}

func (c Cell) String() string {
	switch c {
	case O:
		return "O"
	case S:
		return "S"
	case Empty:
		return ""
	}
	return fmt.Sprintf("Cell(%d)", int(c))
}

// ParseSymbol converts "S" or "O" (any case) to a Cell
func ParseSymbol(s string) (Cell, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "S":
		return S, nil
	case "O":
		return O, nil
	}
	return Empty, fmt.Errorf("%w: %q", ErrInvalidSymbol, s)
}
