package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/berserker-backend/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is the whole state of one Berserker game. It holds only values, so a
// plain assignment gives an independent copy.
type Game struct {
	ID      string  `json:"id"`
	Board   Board   `json:"board"`
	Reserve Reserve `json:"reserve"`
	Turn    Color   `json:"player_turn"`
	Winner  Color   `json:"winner"`
	Status  string  `json:"status"`
}

// NewGame returns the start configuration: empty board, full reserves, red to move.
func NewGame(id string) *Game {
	return &Game{
		ID:      id,
		Reserve: NewReserve(),
		Turn:    Red,
		Winner:  None,
		Status:  StatusOngoing,
	}
}

// Reset replaces the state with the start configuration, keeping the ID.
func (that *Game) Reset() {
	*that = *NewGame(that.ID)
}

// Finish records the winner. The winner is terminal and never overwritten.
func (that *Game) Finish(winner Color) {
	if that.IsFinished() {
		return
	}

	that.Winner = winner
	that.Status = StatusFinished
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// PiecesInPlay returns board pieces plus reserve for the color. It is always
// PiecesPerPlayer for a consistent game.
func (that *Game) PiecesInPlay(color Color) int {
	return that.Board.Count(color) + that.Reserve.Count(color)
}
