package berserker

import (
	"testing"

	"github.com/rocketscienceinc/berserker-backend/internal/entity"
)

// boardFrom builds a board from six rows of 'R', 'W' and '.' characters.
func boardFrom(t *testing.T, rows ...string) entity.Board {
	t.Helper()

	var board entity.Board
	if len(rows) != entity.BoardSize {
		t.Fatalf("expected %d rows, got %d", entity.BoardSize, len(rows))
	}

	for r, row := range rows {
		if len(row) != entity.BoardSize {
			t.Fatalf("row %d: expected %d cells, got %q", r, entity.BoardSize, row)
		}

		for c, ch := range row {
			switch ch {
			case 'R':
				board[r][c] = entity.Red
			case 'W':
				board[r][c] = entity.White
			case '.':
			default:
				t.Fatalf("row %d: unexpected cell %q", r, ch)
			}
		}
	}

	return board
}

// gameFrom builds an ongoing game whose reserves keep the piece count at eight per color.
func gameFrom(t *testing.T, turn entity.Color, rows ...string) *entity.Game {
	t.Helper()

	game := entity.NewGame("test")
	game.Board = boardFrom(t, rows...)
	game.Reserve = entity.Reserve{
		Red:   entity.PiecesPerPlayer - game.Board.Count(entity.Red),
		White: entity.PiecesPerPlayer - game.Board.Count(entity.White),
	}
	game.Turn = turn

	return game
}
