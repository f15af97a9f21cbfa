package session

import (
	"time"

	"github.com/KirkDiggler/sketchquest/internal/models"
)

// CreateRoomInput contains parameters for creating a room
type CreateRoomInput struct {
	RoomID     string
	HostID     string
	Name       string
	MaxRounds  int
	MaxPlayers int
	CreatedAt  time.Time
}

// GetRoomInput contains parameters for retrieving a room
type GetRoomInput struct {
	RoomID string
}

// AddPlayerInput contains parameters for adding a player to a room
type AddPlayerInput struct {
	RoomID string
	Player *models.Player
}

// AddPlayerOutput contains the result of adding a player
type AddPlayerOutput struct {
	// Added is false when the player was already in the room
	Added bool

	Room *models.Room
}

// RemovePlayerInput contains parameters for removing a player from a room
type RemovePlayerInput struct {
	RoomID   string
	PlayerID string
}

// RemovePlayerOutput contains the result of removing a player
type RemovePlayerOutput struct {
	// Removed is false when the player was not in the room
	Removed bool

	// WasDrawer is true when the removed player held the drawer flag
	WasDrawer bool

	// RoomDeleted is true when the room became empty and was dropped
	RoomDeleted bool

	// Room is the remaining room, nil when deleted
	Room *models.Room
}

// ListRoomsForPlayerInput contains parameters for finding a player's rooms
type ListRoomsForPlayerInput struct {
	PlayerID string
}

// SelectDrawerInput contains parameters for previewing the drawer
type SelectDrawerInput struct {
	RoomID string
}

// AdvanceRoundInput contains parameters for starting a round
type AdvanceRoundInput struct {
	RoomID string

	// DrawerID pins the drawer that was offered the words. Empty falls back
	// to rotation.
	DrawerID string

	Word     string
	Duration time.Duration
	Now      time.Time
}

// EndRoundInput contains parameters for closing a round
type EndRoundInput struct {
	RoomID string
}

// EndRoundOutput describes the round that just ended
type EndRoundOutput struct {
	Round int
	Word  string
	Room  *models.Room
}

// AwardPointsInput contains parameters for crediting a guesser
type AwardPointsInput struct {
	RoomID   string
	PlayerID string
	Points   int
}

// AwardPointsOutput contains the result of crediting a guesser
type AwardPointsOutput struct {
	// Awarded is false when the player was already credited this round
	Awarded bool

	Player *models.Player
}

// AwardDrawerBonusInput contains parameters for crediting the drawer
type AwardDrawerBonusInput struct {
	RoomID string
	Points int
}

// AllNonDrawersGuessedInput contains parameters for the all-guessed check
type AllNonDrawersGuessedInput struct {
	RoomID string
}

// IsHostInput contains parameters for the host check
type IsHostInput struct {
	RoomID   string
	PlayerID string
}
