package entity

import (
	"errors"
	"fmt"
)

const BoardSize = 6

var ErrOutOfBounds = errors.New("coordinates out of bounds")

type Color string

const (
	Red   Color = "red"
	White Color = "white"

	// None marks an empty cell or an absent winner.
	None Color = ""
)

// Opponent returns the other player's color.
func (that Color) Opponent() Color {
	if that == Red {
		return White
	}
	return Red
}

func (that Color) IsValid() bool {
	return that == Red || that == White
}

// Position is a zero-based (row, col) board coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is the 6x6 grid in row-major order. It is an array, so assigning a
// Board copies every cell.
type Board [BoardSize][BoardSize]Color

func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

func (that *Board) Get(row, col int) (Color, error) {
	if !InBounds(row, col) {
		return None, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, row, col)
	}

	return that[row][col], nil
}

func (that *Board) Set(row, col int, cell Color) error {
	if !InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, row, col)
	}

	that[row][col] = cell

	return nil
}

// IsEmpty reports whether an in-bounds cell holds no piece.
func (that *Board) IsEmpty(row, col int) bool {
	return InBounds(row, col) && that[row][col] == None
}

// Count returns how many pieces of the color are on the board.
func (that *Board) Count(color Color) int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if cell == color {
				count++
			}
		}
	}

	return count
}
