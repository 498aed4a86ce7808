package berserker

import "github.com/rocketscienceinc/berserker-backend/internal/entity"

// Directions in resolution order: up, down, left, right, then the diagonals.
var Directions = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// Shift is one piece moved a single step by a push.
type Shift struct {
	From  entity.Position `json:"from"`
	To    entity.Position `json:"to"`
	Color entity.Color    `json:"color"`
}

// Ejection is a piece pushed off the board and returned to its owner's reserve.
type Ejection struct {
	From  entity.Position `json:"from"`
	Color entity.Color    `json:"color"`
}

type pushResult struct {
	shifts    []Shift
	ejections []Ejection
}

// resolvePushes applies the pushes caused by a piece placed at (row, col).
// Directions are resolved one after another against the progressively
// updated board; nothing cascades beyond one run per direction.
func resolvePushes(board *entity.Board, reserve *entity.Reserve, row, col int) pushResult {
	var result pushResult

	for _, dir := range Directions {
		dr, dc := dir[0], dir[1]
		startRow, startCol := row+dr, col+dc

		if !entity.InBounds(startRow, startCol) || board[startRow][startCol] == entity.None {
			continue
		}

		run, blocked := collectRun(board, startRow, startCol, dr, dc)
		if !blocked {
			// far end first so no piece is overwritten before it moves
			for i := len(run) - 1; i >= 0; i-- {
				from := run[i]
				to := entity.Position{Row: from.Row + dr, Col: from.Col + dc}
				color := board[from.Row][from.Col]

				board[to.Row][to.Col] = color
				board[from.Row][from.Col] = entity.None

				result.shifts = append(result.shifts, Shift{From: from, To: to, Color: color})
			}
			continue
		}

		// Only a lone edge piece leaves the board; longer runs against the edge hold.
		if !entity.InBounds(startRow+dr, startCol+dc) {
			color := board[startRow][startCol]
			board[startRow][startCol] = entity.None
			reserve.Increment(color)

			result.ejections = append(result.ejections, Ejection{
				From:  entity.Position{Row: startRow, Col: startCol},
				Color: color,
			})
		}
	}

	return result
}

// collectRun walks from (row, col) along (dr, dc) gathering occupied cells.
// blocked is true when the run reaches the edge instead of an empty cell.
func collectRun(board *entity.Board, row, col, dr, dc int) ([]entity.Position, bool) {
	var run []entity.Position

	for entity.InBounds(row, col) && board[row][col] != entity.None {
		run = append(run, entity.Position{Row: row, Col: col})
		row += dr
		col += dc
	}

	return run, !entity.InBounds(row, col)
}
