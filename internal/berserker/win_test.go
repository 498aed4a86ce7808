package berserker

import (
	"testing"

	"github.com/rocketscienceinc/berserker-backend/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name string
		rows []string
		want entity.Color
	}{
		{
			name: "empty board has no winner",
			rows: []string{"......", "......", "......", "......", "......", "......"},
			want: entity.None,
		},
		{
			name: "horizontal line",
			rows: []string{"......", "......", "...RRR", "......", "......", "......"},
			want: entity.Red,
		},
		{
			name: "vertical line",
			rows: []string{"......", "W.....", "W.....", "W.....", "......", "......"},
			want: entity.White,
		},
		{
			name: "diagonal line",
			rows: []string{"......", "......", "......", "R.....", ".R....", "..R..."},
			want: entity.Red,
		},
		{
			name: "anti-diagonal line",
			rows: []string{".....W", "....W.", "...W..", "......", "......", "......"},
			want: entity.White,
		},
		{
			name: "two in a row is not a win",
			rows: []string{"RR.RR.", "......", "WW....", "......", "......", "......"},
			want: entity.None,
		},
		{
			name: "four in a row still wins",
			rows: []string{"......", "......", "......", "......", "......", ".WWWW."},
			want: entity.White,
		},
		{
			name: "lines do not wrap around rows",
			rows: []string{"....RR", "R.....", "......", "......", "......", "......"},
			want: entity.None,
		},
		{
			name: "mixed colors break a line",
			rows: []string{"......", "..RWR.", "......", "......", "......", "......"},
			want: entity.None,
		},
		{
			name: "the first line in raster order decides",
			rows: []string{"WWW...", "......", "......", "RRR...", "......", "......"},
			want: entity.White,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Given: a board
			board := boardFrom(t, tc.rows...)

			// When: the board is evaluated
			winner := Evaluate(&board)

			// Then: the expected color is reported
			assert.Equal(t, tc.want, winner)
		})
	}
}
