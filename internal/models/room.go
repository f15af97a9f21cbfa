package models

import (
	"time"
)

// Room represents one isolated game session
type Room struct {
	// ID is the short room code players type to join
	ID string `json:"id"`

	// Name is the display name given by the creator
	Name string `json:"name"`

	// HostID is the player allowed to start the first round
	HostID string `json:"hostId"`

	// Players in join order. The order defines drawer rotation.
	Players []*Player `json:"players"`

	// Round counts rounds actually started, starting at 0
	Round int `json:"round"`

	// MaxRounds is the number of rounds in a game
	MaxRounds int `json:"maxRounds"`

	// MaxPlayers caps the number of players in the room
	MaxPlayers int `json:"maxPlayers"`

	// CurrentWord is the word being drawn in the active round
	CurrentWord string `json:"-"`

	// RoundEndsAt is the deadline of the active round, zero outside a round
	RoundEndsAt time.Time `json:"roundEndsAt"`

	// GuessedPlayers holds the ids that guessed correctly this round
	GuessedPlayers map[string]bool `json:"-"`

	// CreatedAt is when the room was created
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy of the room so callers can't mutate store state
func (r *Room) Clone() *Room {
	if r == nil {
		return nil
	}
	c := *r
	c.Players = ClonePlayers(r.Players)
	c.GuessedPlayers = make(map[string]bool, len(r.GuessedPlayers))
	for id, ok := range r.GuessedPlayers {
		c.GuessedPlayers[id] = ok
	}
	return &c
}

// Player returns the player with the given id or nil
func (r *Room) Player(playerID string) *Player {
	for _, p := range r.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// Drawer returns the current drawer or nil
func (r *Room) Drawer() *Player {
	for _, p := range r.Players {
		if p.IsDrawer {
			return p
		}
	}
	return nil
}

// IsFinished reports whether every configured round has been played
func (r *Room) IsFinished() bool {
	return r.Round >= r.MaxRounds
}

// ClonePlayers copies a player list
func ClonePlayers(players []*Player) []*Player {
	out := make([]*Player, 0, len(players))
	for _, p := range players {
		out = append(out, p.Clone())
	}
	return out
}
