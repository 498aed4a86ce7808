package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/berserker-backend/internal/apperror"
	"github.com/rocketscienceinc/berserker-backend/internal/berserker"
	"github.com/rocketscienceinc/berserker-backend/internal/entity"
)

var ErrEmptyPlayerID = errors.New("player id is required")

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// PlacementListener is called once for every placement that was stored.
type PlacementListener func(ctx context.Context, playerID string, placement berserker.Placement)

type GameManager struct {
	logger     *slog.Logger
	playerRepo playerRepo
	gameRepo   gameRepo

	locks *gameLocks

	listenersMutex sync.RWMutex
	listeners      []PlacementListener
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger: logger,

		playerRepo: playerRepo,
		gameRepo:   gameRepo,

		locks: newGameLocks(),
	}
}

// Subscribe registers a listener for accepted placements.
func (that *GameManager) Subscribe(listener PlacementListener) {
	that.listenersMutex.Lock()
	defer that.listenersMutex.Unlock()

	that.listeners = append(that.listeners, listener)
}

// GetOrCreatePlayer returns the session for id, creating it when id is empty
// or unknown (an expired session keeps its id).
func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		return that.createPlayer(ctx, uuid.NewString())
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrPlayerNotFound) {
		return that.createPlayer(ctx, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *GameManager) createPlayer(ctx context.Context, id string) (*entity.Player, error) {
	player := &entity.Player{ID: id}
	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

// GetOrCreateGame returns the player's game, starting a new one if the player
// has none or it has expired.
func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID != "" {
		game, err := that.gameRepo.GetByID(ctx, player.GameID)
		if err == nil {
			return game, nil
		}

		if !errors.Is(err, apperror.ErrGameNotFound) {
			return nil, fmt.Errorf("failed to get game: %w", err)
		}
	}

	game, err := that.createGame(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

// GetGameByPlayerID returns the player's current game without creating one.
func (that *GameManager) GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGame
	}

	return that.GetGame(ctx, player.GameID)
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// NewGame resets the player's game to the start configuration.
func (that *GameManager) NewGame(ctx context.Context, playerID string) (*entity.Game, error) {
	log := that.logger.With("method", "NewGame", "playerID", playerID)

	game, err := that.GetOrCreateGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	unlock := that.locks.lock(game.ID)
	defer unlock()

	game.Reset()

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	log.Info("game reset", "gameID", game.ID)

	return game, nil
}

// MakeTurn places a piece for the active color of the player's game. Moves on
// one game are applied strictly one at a time; listeners run after the new
// state is stored.
func (that *GameManager) MakeTurn(ctx context.Context, playerID string, row, col int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "playerID", playerID)

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGame
	}

	unlock := that.locks.lock(player.GameID)

	game, err := that.GetGame(ctx, player.GameID)
	if err != nil {
		unlock()
		return nil, err
	}

	placement, err := berserker.MakeTurn(game, row, col)
	if err != nil {
		unlock()
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		unlock()
		return nil, err
	}

	unlock()

	log.Debug("placement accepted", "gameID", game.ID, "row", row, "col", col, "color", placement.Player)

	if game.IsFinished() {
		log.Info("game finished", "gameID", game.ID, "winner", game.Winner)
	}

	that.notify(ctx, playerID, *placement)

	return game, nil
}

// LeaveGame drops the player's game. The next GetOrCreateGame starts a fresh one.
func (that *GameManager) LeaveGame(ctx context.Context, playerID string) error {
	log := that.logger.With("method", "LeaveGame", "playerID", playerID)

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return err
	}

	if player.GameID == "" {
		return apperror.ErrNoActiveGame
	}

	gameID := player.GameID

	unlock := that.locks.lock(gameID)
	defer unlock()

	if err = that.gameRepo.DeleteByID(ctx, gameID); err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	player.GameID = ""
	if err = that.updatePlayer(ctx, player); err != nil {
		return err
	}

	log.Info("game deleted", "gameID", gameID)

	return nil
}

func (that *GameManager) notify(ctx context.Context, playerID string, placement berserker.Placement) {
	that.listenersMutex.RLock()
	listeners := append([]PlacementListener(nil), that.listeners...)
	that.listenersMutex.RUnlock()

	for _, listener := range listeners {
		listener(ctx, playerID, placement)
	}
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	game := entity.NewGame(uuid.NewString())

	if err := that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	player.GameID = game.ID
	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed update player: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "playerID", player.ID)

	return game, nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		return nil, ErrEmptyPlayerID
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
