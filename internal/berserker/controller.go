package berserker

import (
	"sync"

	"github.com/rocketscienceinc/berserker-backend/internal/entity"
)

// Listener is told about every accepted placement after it is committed.
type Listener func(placement Placement)

// Controller owns one in-memory game and serializes access to it.
type Controller struct {
	mu        sync.Mutex
	game      entity.Game
	listeners []Listener
}

func NewController() *Controller {
	return &Controller{game: *entity.NewGame("")}
}

// OnPlacement registers a listener. Listeners run on the caller's goroutine
// once the placement is committed, never for a rejected one.
func (that *Controller) OnPlacement(listener Listener) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.listeners = append(that.listeners, listener)
}

// Place puts a piece of the active player at (row, col) and returns the new state.
func (that *Controller) Place(row, col int) (entity.Game, error) {
	that.mu.Lock()

	placement, err := MakeTurn(&that.game, row, col)
	state := that.game
	listeners := append([]Listener(nil), that.listeners...)

	that.mu.Unlock()

	if err != nil {
		return state, err
	}

	for _, listener := range listeners {
		listener(*placement)
	}

	return state, nil
}

func (that *Controller) Reset() entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.game.Reset()

	return that.game
}

func (that *Controller) State() entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game
}

func (that *Controller) CurrentPlayer() entity.Color {
	return that.State().Turn
}

func (that *Controller) Winner() entity.Color {
	return that.State().Winner
}

func (that *Controller) ReserveCount(color entity.Color) int {
	state := that.State()
	return state.Reserve.Count(color)
}

func (that *Controller) CellAt(row, col int) (entity.Color, error) {
	state := that.State()
	return state.Board.Get(row, col)
}
