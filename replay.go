package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/rocketscienceinc/berserker-backend/internal/berserker"
	"github.com/rocketscienceinc/berserker-backend/internal/entity"
)

var ErrMalformedMove = errors.New("move must be row,col")

func replay(_ context.Context, cmd *cli.Command) error {
	moves, err := parseMoves(cmd.StringSlice("move"))
	if err != nil {
		return err
	}

	logger := initLogger(errWriter(cmd), cmd.String("log-level"))

	controller := berserker.NewController()
	controller.OnPlacement(func(placement berserker.Placement) {
		logger.Info("placement",
			"player", placement.Player,
			"row", placement.Position.Row,
			"col", placement.Position.Col,
			"shifts", len(placement.Shifts),
			"ejections", len(placement.Ejections),
			"winner", placement.Winner,
		)
	})

	for i, move := range moves {
		if _, err = controller.Place(move.Row, move.Col); err != nil {
			return fmt.Errorf("move %d (%d,%d): %w", i+1, move.Row, move.Col, err)
		}
	}

	encoder := json.NewEncoder(outWriter(cmd))
	encoder.SetIndent("", "  ")

	if err = encoder.Encode(controller.State()); err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	return nil
}

// parseMoves reads "row,col" pairs. Values the flag parser already split on
// commas are paired back up in order.
func parseMoves(values []string) ([]entity.Position, error) {
	var numbers []int

	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			number, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrMalformedMove, value)
			}

			numbers = append(numbers, number)
		}
	}

	if len(numbers)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of coordinates", ErrMalformedMove)
	}

	moves := make([]entity.Position, 0, len(numbers)/2)
	for i := 0; i < len(numbers); i += 2 {
		moves = append(moves, entity.Position{Row: numbers[i], Col: numbers[i+1]})
	}

	return moves, nil
}

func outWriter(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root.Writer != nil {
		return root.Writer
	}

	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root.ErrWriter != nil {
		return root.ErrWriter
	}

	return os.Stderr
}
