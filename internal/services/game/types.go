package game

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/sketchquest/internal/common/clock"
	"github.com/KirkDiggler/sketchquest/internal/common/roomcode"
	"github.com/KirkDiggler/sketchquest/internal/models"
	"github.com/KirkDiggler/sketchquest/internal/random"
	"github.com/KirkDiggler/sketchquest/internal/repositories/session"
	"github.com/KirkDiggler/sketchquest/internal/repositories/word"
)

// Phase is where a room sits in its round lifecycle
type Phase string

const (
	// PhaseLobby waits for the host to start a round
	PhaseLobby Phase = "lobby"

	// PhaseWordOffer waits for the previewed drawer to pick a word
	PhaseWordOffer Phase = "word_offer"

	// PhaseRoundActive accepts guesses until the deadline
	PhaseRoundActive Phase = "round_active"

	// PhaseRoundEnd is the grace interval before the next offer
	PhaseRoundEnd Phase = "round_end"

	// PhaseGameOver is terminal
	PhaseGameOver Phase = "game_over"
)

// Default round policy
const (
	DefaultRoundDuration       = 60 * time.Second
	DefaultNextRoundDelay      = 3 * time.Second
	DefaultWordOptions         = 3
	DefaultGuessPoints         = 10
	DefaultDrawerPoints        = 5
	DefaultMaxRounds           = 3
	DefaultMaxPlayers          = 5
	DefaultWordFetchTimeout    = 5 * time.Second
	DefaultMaxRoomCodeAttempts = 10
)

// Config holds configuration and dependencies for the game service
type Config struct {
	// SessionRepo owns all room and player state
	SessionRepo session.Repository

	// WordRepo supplies word candidates
	WordRepo word.Repository

	// Broadcaster delivers events to connected players
	Broadcaster Broadcaster

	// Clock provides time and timers
	Clock clock.Clock

	// RoomCodes generates room codes
	RoomCodes roomcode.Generator

	// Random samples word options
	Random random.Source

	// Logger is optional, nothing is logged when nil
	Logger *zerolog.Logger

	RoundDuration  time.Duration
	NextRoundDelay time.Duration
	WordOptions    int
	GuessPoints    int
	DrawerPoints   int

	// DefaultMaxRounds applies when CreateRoom asks for none
	DefaultMaxRounds int

	// DefaultMaxPlayers applies when CreateRoom asks for none
	DefaultMaxPlayers int

	// AutoCreateOnJoin creates a missing room on join with the joiner as host
	AutoCreateOnJoin bool

	WordFetchTimeout    time.Duration
	MaxRoomCodeAttempts int
}

// Broadcaster fans events out to connected players
type Broadcaster interface {
	// JoinRoom subscribes the player's connection to room broadcasts
	JoinRoom(roomID, playerID string)

	// LeaveRoom unsubscribes the player's connection from room broadcasts
	LeaveRoom(roomID, playerID string)

	// Broadcast sends to everyone in the room except the excluded players
	Broadcast(roomID string, event *Event, exclude ...string)

	// Send delivers to a single player
	Send(playerID string, event *Event)
}

// CreateRoomInput contains parameters for creating a room
type CreateRoomInput struct {
	PlayerID   string
	Name       string
	Avatar     string
	MaxPlayers int
	NumRounds  int
}

// CreateRoomOutput contains the result of creating a room
type CreateRoomOutput struct {
	RoomID string
	Room   *models.Room
}

// JoinRoomInput contains parameters for joining a room
type JoinRoomInput struct {
	RoomID   string
	PlayerID string
	Name     string
	Avatar   string
}

// JoinRoomOutput contains the result of joining a room
type JoinRoomOutput struct {
	RoomID string
	HostID string

	// Created is true when the join created the room
	Created bool

	Room *models.Room
}

// LeaveRoomInput contains parameters for leaving a room
type LeaveRoomInput struct {
	RoomID   string
	PlayerID string
}

// LeaveRoomOutput contains the result of leaving a room
type LeaveRoomOutput struct {
	RoomDeleted bool
}

// DisconnectInput contains parameters for dropping a connection
type DisconnectInput struct {
	PlayerID string
}

// DisconnectOutput lists the rooms the player was removed from
type DisconnectOutput struct {
	RoomIDs []string
}

// StartRoundInput contains parameters for starting a round
type StartRoundInput struct {
	RoomID   string
	PlayerID string
}

// StartRoundOutput contains the result of starting a round
type StartRoundOutput struct {
	DrawerID string
}

// ChooseWordInput contains parameters for picking the round word
type ChooseWordInput struct {
	RoomID   string
	PlayerID string
	Word     string
}

// ChooseWordOutput contains the started round
type ChooseWordOutput struct {
	Round       int
	RoundEndsAt time.Time
}

// GuessInput contains parameters for a guess
type GuessInput struct {
	RoomID   string
	PlayerID string
	Text     string
}

// GuessOutput contains the result of a guess
type GuessOutput struct {
	Correct bool
}

// RelayDrawingInput contains a drawing update from the drawer
type RelayDrawingInput struct {
	RoomID   string
	PlayerID string
	Data     json.RawMessage
}

// RelayDrawingOutput is empty, the relay is fire and forget
type RelayDrawingOutput struct{}

// GetRoomInput contains parameters for reading a room
type GetRoomInput struct {
	RoomID string
}

// GetRoomOutput contains a room snapshot
type GetRoomOutput struct {
	Room  *models.Room
	Phase Phase
}
