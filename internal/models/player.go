package models

// Player represents a participant in a room
type Player struct {
	// ID is the connection-scoped identity of the player
	ID string `json:"id"`

	// Name is the display name of the player
	Name string `json:"name"`

	// Avatar is an opaque avatar reference chosen by the client
	Avatar string `json:"avatar"`

	// Score only grows during a game
	Score int `json:"score"`

	// IsDrawer is true for the single player drawing this round
	IsDrawer bool `json:"isDrawer"`

	// HasGuessed is true once the player guessed the word this round
	HasGuessed bool `json:"hasGuessed"`
}

// Clone returns a copy of the player
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
