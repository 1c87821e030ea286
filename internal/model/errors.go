package model

import "errors"

// Common errors used across the application
var (
	// Move errors
	ErrInvalidPosition = errors.New("invalid board position")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrInvalidSymbol   = errors.New("symbol must be S or O")
	ErrGameOver        = errors.New("game is over")
	ErrNoMovesToUndo   = errors.New("no moves to undo")

	// Persistence errors
	ErrSlotEmpty       = errors.New("save slot is empty")
	ErrStreamExhausted = errors.New("no more lines in save slot")
	ErrCorruptSnapshot = errors.New("saved game is corrupt")
)
