package ws

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/KirkDiggler/sketchquest/internal/models"
	"github.com/KirkDiggler/sketchquest/internal/services/game"
)

// Intent names an inbound client message
type Intent string

const (
	IntentCreateRoom  Intent = "create_room"
	IntentJoinRoom    Intent = "join_room"
	IntentLeaveRoom   Intent = "leave_room"
	IntentStartRound  Intent = "start_round"
	IntentChooseWord  Intent = "choose_word"
	IntentGuess       Intent = "guess"
	IntentDrawingData Intent = "drawing_data"
)

// Transport level events, the game events live in the game package
const (
	EventConnected game.EventType = "connected"
	EventError     game.EventType = "error"
	EventAck       game.EventType = "ack"
)

// Request is an inbound message. ID is echoed on the ack when set.
type Request struct {
	Type    Intent          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

// Ack answers a request carrying an ID
type Ack struct {
	Type    game.EventType `json:"type"`
	ID      string         `json:"id"`
	Payload any            `json:"payload"`
}

// ConnectedPayload tells a new connection its player ID
type ConnectedPayload struct {
	ID string `json:"id"`
}

// ErrorPayload reports a message that could not be handled
type ErrorPayload struct {
	Error string `json:"error"`
}

// CreateRoomRequest is the create_room payload
type CreateRoomRequest struct {
	Name       string `json:"name"`
	MaxPlayers int    `json:"maxPlayers"`
	NumRounds  int    `json:"numRounds"`
	Avatar     string `json:"avatar"`
}

// CreateRoomAck answers create_room
type CreateRoomAck struct {
	Room  string `json:"room,omitempty"`
	Error string `json:"error,omitempty"`
}

// JoinRoomRequest is the join_room payload
type JoinRoomRequest struct {
	Room   string `json:"room"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// JoinRoomAck answers join_room
type JoinRoomAck struct {
	OK     bool   `json:"ok"`
	Room   string `json:"room,omitempty"`
	HostID string `json:"hostId,omitempty"`
	Error  string `json:"error,omitempty"`
}

// RoomRequest is the payload of intents that only name a room
type RoomRequest struct {
	Room string `json:"room"`
}

// ChooseWordRequest is the choose_word payload
type ChooseWordRequest struct {
	Room string `json:"room"`
	Word string `json:"word"`
}

// GuessRequest is the guess payload
type GuessRequest struct {
	Room string `json:"room"`
	Text string `json:"text"`
}

// GuessAck answers guess
type GuessAck struct {
	Correct bool   `json:"correct"`
	Error   string `json:"error,omitempty"`
}

// DrawingRequest is the drawing_data payload
type DrawingRequest struct {
	Room string          `json:"room"`
	Data json.RawMessage `json:"data"`
}

// OKAck answers intents with no result
type OKAck struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// RoomView is the public shape of a room over HTTP
type RoomView struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	HostID      string           `json:"hostId"`
	Phase       game.Phase       `json:"phase"`
	Round       int              `json:"round"`
	MaxRounds   int              `json:"maxRounds"`
	MaxPlayers  int              `json:"maxPlayers"`
	RoundEndsAt int64            `json:"roundEndsAt,omitempty"`
	Players     []*models.Player `json:"players"`
}

func newRoomView(room *models.Room, phase game.Phase) *RoomView {
	view := &RoomView{
		ID:         room.ID,
		Name:       room.Name,
		HostID:     room.HostID,
		Phase:      phase,
		Round:      room.Round,
		MaxRounds:  room.MaxRounds,
		MaxPlayers: room.MaxPlayers,
		Players:    room.Players,
	}
	if !room.RoundEndsAt.IsZero() {
		view.RoundEndsAt = room.RoundEndsAt.UnixMilli()
	}
	return view
}

// errorMessage turns a service error into text safe to show a player
func errorMessage(err error) string {
	var gameErr game.GameError
	if errors.As(err, &gameErr) {
		msg := gameErr.Error()
		if msg == "" {
			return msg
		}
		return strings.ToUpper(msg[:1]) + msg[1:]
	}
	return "Something went wrong"
}
