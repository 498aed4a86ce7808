package berserker

import "github.com/rocketscienceinc/berserker-backend/internal/entity"

// WinLength is the number of same-colored cells in a line that wins.
const WinLength = 3

// lineOrientations are checked forward only: horizontal, vertical, diagonal, anti-diagonal.
var lineOrientations = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// Evaluate returns the color of the first three-in-a-row found in raster
// order, or entity.None when there is none.
func Evaluate(board *entity.Board) entity.Color {
	for r := 0; r < entity.BoardSize; r++ {
		for c := 0; c < entity.BoardSize; c++ {
			color := board[r][c]
			if color == entity.None {
				continue
			}

			for _, orientation := range lineOrientations {
				if hasLine(board, r, c, orientation[0], orientation[1], color) {
					return color
				}
			}
		}
	}

	return entity.None
}

func hasLine(board *entity.Board, row, col, dr, dc int, color entity.Color) bool {
	for i := 0; i < WinLength; i++ {
		r, c := row+dr*i, col+dc*i
		if !entity.InBounds(r, c) || board[r][c] != color {
			return false
		}
	}

	return true
}
