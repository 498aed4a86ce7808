// Package berserker implements the Berserker rules on top of entity.Game.
//
// A placement puts a piece of the active player on an empty cell, then pushes
// the adjacent run of pieces in each of the eight compass directions one step
// away. A lone piece sitting on the edge is pushed off the board and goes back
// to its owner's reserve. Three in a row wins; so does placing your last
// reserve piece.
//
// MakeTurn is the pure transition used by the service layer. Controller wraps
// one game in memory for callers that hold the state themselves.
package berserker
