package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/berserker-backend/internal/apperror"
	"github.com/rocketscienceinc/berserker-backend/internal/entity"
)

// memoryGames stores copies of games, like the redis repository does with JSON.
type memoryGames struct {
	mu    sync.Mutex
	games map[string]entity.Game
	delay time.Duration
}

func newMemoryGames(delay time.Duration) *memoryGames {
	return &memoryGames{games: make(map[string]entity.Game), delay: delay}
}

func (that *memoryGames) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = *game

	return nil
}

func (that *memoryGames) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	game, ok := that.games[id]
	that.mu.Unlock()

	// widen the window between load and save
	time.Sleep(that.delay)

	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return &game, nil
}

func (that *memoryGames) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return apperror.ErrGameNotFound
	}
	delete(that.games, id)

	return nil
}

type memoryPlayers struct {
	mu      sync.Mutex
	players map[string]entity.Player
}

func newMemoryPlayers() *memoryPlayers {
	return &memoryPlayers{players: make(map[string]entity.Player)}
}

func (that *memoryPlayers) CreateOrUpdate(_ context.Context, player *entity.Player) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.players[player.ID] = *player

	return nil
}

func (that *memoryPlayers) GetByID(_ context.Context, id string) (*entity.Player, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	player, ok := that.players[id]
	if !ok {
		return nil, apperror.ErrPlayerNotFound
	}

	return &player, nil
}
