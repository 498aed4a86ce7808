package berserker

import (
	"fmt"

	"github.com/rocketscienceinc/berserker-backend/internal/apperror"
	"github.com/rocketscienceinc/berserker-backend/internal/entity"
)

// Placement describes one accepted placement and everything it caused.
type Placement struct {
	GameID    string          `json:"game_id"`
	Player    entity.Color    `json:"player"`
	Position  entity.Position `json:"position"`
	Shifts    []Shift         `json:"shifts,omitempty"`
	Ejections []Ejection      `json:"ejections,omitempty"`
	Winner    entity.Color    `json:"winner,omitempty"`
}

// MakeTurn places a piece of the active player at (row, col). The move is
// built on a copy of the game and written back only when it succeeds, so a
// rejected placement leaves the game untouched.
func MakeTurn(game *entity.Game, row, col int) (*Placement, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	if err := validateMove(game, row, col); err != nil {
		return nil, fmt.Errorf("invalid turn: %w", err)
	}

	next := *game
	player := next.Turn

	if err := next.Reserve.Decrement(player); err != nil {
		return nil, fmt.Errorf("failed to take piece from reserve: %w", err)
	}

	next.Board[row][col] = player
	pushes := resolvePushes(&next.Board, &next.Reserve, row, col)
	updateGameStatus(&next, player)

	*game = next

	return &Placement{
		GameID:    game.ID,
		Player:    player,
		Position:  entity.Position{Row: row, Col: col},
		Shifts:    pushes.shifts,
		Ejections: pushes.ejections,
		Winner:    game.Winner,
	}, nil
}

// validateMove - checks if the target cell can take a piece.
func validateMove(game *entity.Game, row, col int) error {
	if !entity.InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d)", apperror.ErrTargetOutOfBounds, row, col)
	}

	if game.Board[row][col] != entity.None {
		return fmt.Errorf("%w: (%d,%d)", apperror.ErrCellOccupied, row, col)
	}

	if game.Reserve.Count(game.Turn) <= 0 {
		return fmt.Errorf("%w: %s", apperror.ErrReserveEmpty, game.Turn)
	}

	return nil
}

// updateGameStatus - decides the terminal state after a placement.
func updateGameStatus(game *entity.Game, player entity.Color) {
	if winner := Evaluate(&game.Board); winner != entity.None {
		game.Finish(winner)
		return
	}

	// placing your last piece wins the game
	if game.Reserve.Count(player) == 0 {
		game.Finish(player)
		return
	}

	game.Turn = player.Opponent()
}
