package apperror

import (
	"errors"
	"fmt"
)

// ErrInvalidTarget covers every rejected placement. The specific reasons
// below wrap it, so errors.Is(err, ErrInvalidTarget) holds for all of them.
var ErrInvalidTarget = errors.New("invalid target")

var (
	ErrCellOccupied      = fmt.Errorf("%w: cell is already occupied", ErrInvalidTarget)
	ErrTargetOutOfBounds = fmt.Errorf("%w: cell is outside the board", ErrInvalidTarget)
	ErrReserveEmpty      = fmt.Errorf("%w: no pieces left in reserve", ErrInvalidTarget)
	ErrGameFinished      = fmt.Errorf("%w: game is already finished", ErrInvalidTarget)
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrNoActiveGame   = errors.New("no active game")
)
