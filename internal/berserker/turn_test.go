package berserker

import (
	"math/rand"
	"testing"

	"github.com/rocketscienceinc/berserker-backend/internal/apperror"
	"github.com/rocketscienceinc/berserker-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeTurn(t *testing.T) {
	t.Run("First placement on an empty board", func(t *testing.T) {
		// Given: a new game
		game := entity.NewGame("123")

		// When: red places at (2,2)
		placement, err := MakeTurn(game, 2, 2)
		require.NoError(t, err)

		// Then: the piece is on the board, red's reserve shrank and white is to move
		assert.Equal(t, entity.Red, game.Board[2][2])
		assert.Equal(t, 7, game.Reserve.Count(entity.Red))
		assert.Equal(t, entity.White, game.Turn)
		assert.Equal(t, entity.None, game.Winner)
		assert.True(t, game.IsOngoing())

		assert.Equal(t, &Placement{
			GameID:   "123",
			Player:   entity.Red,
			Position: entity.Position{Row: 2, Col: 2},
		}, placement)
	})

	t.Run("Lone corner piece is pushed off and returned to its owner", func(t *testing.T) {
		// Given: a white piece alone at (0,0) and red to move
		game := gameFrom(t, entity.Red,
			"W.....",
			"......",
			"......",
			"......",
			"......",
			"......",
		)

		// When: red places diagonally next to it
		placement, err := MakeTurn(game, 1, 1)
		require.NoError(t, err)

		// Then: (0,0) is empty and white's reserve went up by one
		assert.Equal(t, entity.None, game.Board[0][0])
		assert.Equal(t, entity.PiecesPerPlayer, game.Reserve.Count(entity.White))
		assert.Len(t, placement.Ejections, 1)
	})

	t.Run("Completing three in a row wins immediately", func(t *testing.T) {
		// Given: red holds (0,0) and (0,1)
		game := gameFrom(t, entity.Red,
			"RR....",
			"......",
			"......",
			"......",
			"......",
			"......",
		)

		// When: red places the third piece at (0,2)
		placement, err := MakeTurn(game, 0, 2)
		require.NoError(t, err)

		// Then: red wins and the game is finished
		assert.Equal(t, entity.Red, game.Winner)
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.Red, placement.Winner)
		assert.Equal(t, entity.Red, game.Turn)
	})

	t.Run("Placing the last reserve piece wins for the mover", func(t *testing.T) {
		// Given: red has seven pieces on the board and one in reserve
		game := gameFrom(t, entity.Red,
			"RR.RR.",
			"......",
			"......",
			"......",
			"......",
			"RR.R..",
		)
		require.Equal(t, 1, game.Reserve.Count(entity.Red))

		// When: red places the last piece where nothing can push it back
		_, err := MakeTurn(game, 2, 2)
		require.NoError(t, err)

		// Then: red wins by exhausting its reserve
		assert.Equal(t, 0, game.Reserve.Count(entity.Red))
		assert.Equal(t, entity.Red, game.Winner)
		assert.True(t, game.IsFinished())
	})

	t.Run("Last piece does not win when an own piece is pushed back", func(t *testing.T) {
		// Given: white has one piece in reserve and a lone piece in the corner
		game := gameFrom(t, entity.White,
			"W.....",
			"......",
			"......",
			".....W",
			".....W",
			"WW.WW.",
		)
		require.Equal(t, 1, game.Reserve.Count(entity.White))

		// When: white places its last piece next to its own corner piece
		_, err := MakeTurn(game, 1, 1)
		require.NoError(t, err)

		// Then: the corner piece returned to the reserve and the game goes on
		assert.Equal(t, 1, game.Reserve.Count(entity.White))
		assert.True(t, game.IsOngoing())
		assert.Equal(t, entity.Red, game.Turn)
	})

	t.Run("Three in a row beats reserve exhaustion", func(t *testing.T) {
		// Given: white's last reserve piece completes a line for white
		game := gameFrom(t, entity.White,
			"WW....",
			"......",
			"......",
			"......",
			"W.W.W.",
			"W.W...",
		)
		require.Equal(t, 1, game.Reserve.Count(entity.White))

		// When: white completes the top row
		_, err := MakeTurn(game, 0, 2)
		require.NoError(t, err)

		// Then: white is the winner either way
		assert.Equal(t, entity.White, game.Winner)
	})
}

func TestMakeTurn_Rejections(t *testing.T) {
	cases := []struct {
		name     string
		game     func(t *testing.T) *entity.Game
		row, col int
		wantErr  error
	}{
		{
			name: "occupied cell",
			game: func(t *testing.T) *entity.Game {
				return gameFrom(t, entity.White, "......", "......", "..R...", "......", "......", "......")
			},
			row: 2, col: 2,
			wantErr: apperror.ErrCellOccupied,
		},
		{
			name: "row out of bounds",
			game: func(*testing.T) *entity.Game {
				return entity.NewGame("1")
			},
			row: 6, col: 0,
			wantErr: apperror.ErrTargetOutOfBounds,
		},
		{
			name: "negative column",
			game: func(*testing.T) *entity.Game {
				return entity.NewGame("1")
			},
			row: 0, col: -1,
			wantErr: apperror.ErrTargetOutOfBounds,
		},
		{
			name: "empty reserve",
			game: func(*testing.T) *entity.Game {
				game := entity.NewGame("1")
				game.Reserve.Red = 0
				return game
			},
			row: 3, col: 3,
			wantErr: apperror.ErrReserveEmpty,
		},
		{
			name: "finished game",
			game: func(t *testing.T) *entity.Game {
				game := gameFrom(t, entity.White, "RRR...", "......", "......", "......", "......", "......")
				game.Finish(entity.Red)
				return game
			},
			row: 4, col: 4,
			wantErr: apperror.ErrGameFinished,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Given: a game and a snapshot of it
			game := tc.game(t)
			before := *game

			// When: an invalid placement is attempted
			placement, err := MakeTurn(game, tc.row, tc.col)

			// Then: it is rejected as an invalid target and nothing changed
			require.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, apperror.ErrInvalidTarget)
			assert.Nil(t, placement)
			assert.Equal(t, before, *game)
		})
	}
}

func TestMakeTurn_IsDeterministic(t *testing.T) {
	// Given: two copies of the same mid-game position
	first := gameFrom(t, entity.White,
		"R.....",
		".W.R..",
		"..R...",
		"...W..",
		"......",
		".....R",
	)
	second := *first

	// When: the same placement is made on both
	_, errFirst := MakeTurn(first, 2, 3)
	_, errSecond := MakeTurn(&second, 2, 3)

	// Then: both end up identical
	require.NoError(t, errFirst)
	require.NoError(t, errSecond)
	assert.Equal(t, *first, second)
}

func TestMakeTurn_ConservesPieces(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 20; round++ {
		game := entity.NewGame("conservation")

		for attempt := 0; attempt < 200 && game.IsOngoing(); attempt++ {
			before := *game
			row, col := rng.Intn(entity.BoardSize+1), rng.Intn(entity.BoardSize+1)

			if _, err := MakeTurn(game, row, col); err != nil {
				require.ErrorIs(t, err, apperror.ErrInvalidTarget)
				require.Equal(t, before, *game)
			}

			require.Equal(t, entity.PiecesPerPlayer, game.PiecesInPlay(entity.Red))
			require.Equal(t, entity.PiecesPerPlayer, game.PiecesInPlay(entity.White))
		}

		if game.IsFinished() {
			_, err := MakeTurn(game, 0, 0)
			require.ErrorIs(t, err, apperror.ErrGameFinished)
		}
	}
}
