package entity

// Player is a hot-seat session owner. One session drives one game.
type Player struct {
	ID     string `json:"id"`
	GameID string `json:"game_id,omitempty"`
}
