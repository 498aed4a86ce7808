package entity

import (
	"errors"
	"fmt"
)

// PiecesPerPlayer is the size of each player's starting reserve.
const PiecesPerPlayer = 8

var ErrReserveExhausted = errors.New("reserve is exhausted")

// Reserve tracks the pieces each player still holds off the board.
type Reserve struct {
	Red   int `json:"red"`
	White int `json:"white"`
}

func NewReserve() Reserve {
	return Reserve{Red: PiecesPerPlayer, White: PiecesPerPlayer}
}

func (that *Reserve) Count(color Color) int {
	switch color {
	case Red:
		return that.Red
	case White:
		return that.White
	default:
		return 0
	}
}

// Decrement takes one piece out of the reserve. Callers check Count first;
// an error here means a caller skipped that check.
func (that *Reserve) Decrement(color Color) error {
	slot := that.slot(color)
	if slot == nil {
		return fmt.Errorf("%w: unknown color %q", ErrReserveExhausted, color)
	}

	if *slot == 0 {
		return fmt.Errorf("%w: %s", ErrReserveExhausted, color)
	}

	*slot--

	return nil
}

// Increment returns a piece that left the board to its owner.
func (that *Reserve) Increment(color Color) {
	if slot := that.slot(color); slot != nil {
		*slot++
	}
}

func (that *Reserve) slot(color Color) *int {
	switch color {
	case Red:
		return &that.Red
	case White:
		return &that.White
	default:
		return nil
	}
}
