package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/berserker-backend/internal/apperror"
	"github.com/rocketscienceinc/berserker-backend/internal/berserker"
	"github.com/rocketscienceinc/berserker-backend/internal/entity"
	"github.com/rocketscienceinc/berserker-backend/internal/usecase"
)

// clientErrors are reported to the peer verbatim; anything else is hidden
// behind a generic message.
var clientErrors = []error{
	apperror.ErrCellOccupied,
	apperror.ErrTargetOutOfBounds,
	apperror.ErrReserveEmpty,
	apperror.ErrGameFinished,
	apperror.ErrNoActiveGame,
	apperror.ErrGameNotFound,
	usecase.ErrEmptyPlayerID,
}

func (that *Server) handleConnect(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := msg.decodePayload()
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "malformed payload")
	}

	playerID := conn.sessionID
	if payloadReq.Player != nil && payloadReq.Player.ID != "" {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new player")
	}

	that.bind(player.ID, conn)

	payloadResp := Payload{Player: player}

	if player.GameID != "" {
		game, err := that.gameUseCase.GetGameByPlayerID(ctx, player.ID)
		switch {
		case err == nil:
			payloadResp.Game = game
		case errors.Is(err, apperror.ErrGameNotFound):
			log.Info("stored game expired", "gameID", player.GameID)
		default:
			log.Error("failed to get game", "gameID", player.GameID, "error", err)
			return that.sendErrorResponse(conn, msg.Action, "failed to get the game")
		}
	}

	if err = conn.send(msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleNewGame")

	player, ok, err := that.requirePlayer(msg, conn)
	if !ok {
		return err
	}

	game, err := that.gameUseCase.NewGame(ctx, player.ID)
	if err != nil {
		log.Error("failed to start a new game", "playerID", player.ID, "error", err)
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	return conn.send(msg.Action, Payload{Game: game})
}

func (that *Server) handlePlace(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handlePlace")

	payloadReq, err := msg.decodePayload()
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "malformed payload")
	}

	if payloadReq.Player == nil || payloadReq.Player.ID == "" {
		return that.sendErrorResponse(conn, msg.Action, "player is required")
	}

	if payloadReq.Row == nil || payloadReq.Col == nil {
		return that.sendErrorResponse(conn, msg.Action, "row and col are required")
	}

	that.bind(payloadReq.Player.ID, conn)

	log = log.With("playerID", payloadReq.Player.ID)

	game, err := that.gameUseCase.MakeTurn(ctx, payloadReq.Player.ID, *payloadReq.Row, *payloadReq.Col)
	if err != nil {
		if errors.Is(err, apperror.ErrInvalidTarget) {
			log.Debug("placement rejected", "error", err)
		} else {
			log.Error("failed to make turn", "error", err)
		}

		return that.sendUseCaseError(conn, msg.Action, err)
	}

	return conn.send(msg.Action, Payload{Game: game})
}

func (that *Server) handleState(ctx context.Context, msg *Message, conn *connection) error {
	player, ok, err := that.requirePlayer(msg, conn)
	if !ok {
		return err
	}

	game, err := that.gameUseCase.GetGameByPlayerID(ctx, player.ID)
	if err != nil {
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	return conn.send(msg.Action, Payload{Game: game})
}

func (that *Server) handleLeave(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleLeave")

	player, ok, err := that.requirePlayer(msg, conn)
	if !ok {
		return err
	}

	if err = that.gameUseCase.LeaveGame(ctx, player.ID); err != nil {
		log.Error("failed to leave game", "playerID", player.ID, "error", err)
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	log.Info("player left the game", "playerID", player.ID)

	return conn.send(msg.Action, Payload{Player: &entity.Player{ID: player.ID}})
}

// NotifyPlacement pushes an accepted placement to the player's connection.
// It is subscribed to the game use case and runs after the state is stored.
func (that *Server) NotifyPlacement(_ context.Context, playerID string, placement berserker.Placement) {
	log := that.logger.With("method", "NotifyPlacement", "playerID", playerID)

	conn, ok := that.connectionFor(playerID)
	if !ok {
		log.Debug("no connection for player")
		return
	}

	if err := conn.send(actionGamePlaced, Payload{Placement: &placement}); err != nil {
		log.Error("failed to send placement", "error", err)
	}
}

// requirePlayer decodes the payload and binds the connection to its player.
// When ok is false the peer has already been answered and err is the send result.
func (that *Server) requirePlayer(msg *Message, conn *connection) (*entity.Player, bool, error) {
	payloadReq, err := msg.decodePayload()
	if err != nil {
		return nil, false, that.sendErrorResponse(conn, msg.Action, "malformed payload")
	}

	if payloadReq.Player == nil || payloadReq.Player.ID == "" {
		return nil, false, that.sendErrorResponse(conn, msg.Action, "player is required")
	}

	that.bind(payloadReq.Player.ID, conn)

	return payloadReq.Player, true, nil
}

func (that *Server) sendUseCaseError(conn *connection, action string, err error) error {
	for _, known := range clientErrors {
		if errors.Is(err, known) {
			return that.sendErrorResponse(conn, action, known.Error())
		}
	}

	return that.sendErrorResponse(conn, action, "internal error")
}

func (that *Server) sendErrorResponse(conn *connection, action, errorMsg string) error {
	if err := conn.send(action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
