package session

import (
	"github.com/KirkDiggler/sketchquest/internal/models"
)

// Repository is the authoritative registry of rooms and their players.
// Operations are synchronous and do no I/O. Every returned room or player is
// a copy; mutating it does not change the stored state.
type Repository interface {
	// CreateRoom registers a new room with an empty player list
	CreateRoom(input *CreateRoomInput) (*models.Room, error)

	// GetRoom retrieves a room by ID
	GetRoom(input *GetRoomInput) (*models.Room, error)

	// AddPlayer appends a player to a room
	AddPlayer(input *AddPlayerInput) (*AddPlayerOutput, error)

	// RemovePlayer removes a player and deletes the room once it is empty
	RemovePlayer(input *RemovePlayerInput) (*RemovePlayerOutput, error)

	// ListRoomsForPlayer returns the IDs of every room the player is in
	ListRoomsForPlayer(input *ListRoomsForPlayerInput) []string

	// SelectDrawer marks the drawer for the current round value without advancing it
	SelectDrawer(input *SelectDrawerInput) (*models.Player, error)

	// AdvanceRound starts the next round with the chosen word
	AdvanceRound(input *AdvanceRoundInput) (*models.Room, error)

	// EndRound clears the per-round state once a round is over
	EndRound(input *EndRoundInput) (*EndRoundOutput, error)

	// AwardPoints credits a guesser at most once per round
	AwardPoints(input *AwardPointsInput) (*AwardPointsOutput, error)

	// AwardDrawerBonus credits the current drawer without the once-per-round guard
	AwardDrawerBonus(input *AwardDrawerBonusInput) (*models.Player, error)

	// AllNonDrawersGuessed reports whether every non-drawer has guessed
	AllNonDrawersGuessed(input *AllNonDrawersGuessedInput) (bool, error)

	// IsHost reports whether the player is the room host
	IsHost(input *IsHostInput) bool
}
