package game

import (
	"encoding/json"

	"github.com/KirkDiggler/sketchquest/internal/models"
)

// EventType names an outbound event
type EventType string

const (
	EventPlayers           EventType = "players"
	EventChooseWord        EventType = "choose_word"
	EventRoundStarted      EventType = "round_started"
	EventDrawerWord        EventType = "drawer_word"
	EventCorrectGuess      EventType = "correct_guess"
	EventChatMessage       EventType = "chat_message"
	EventRoundEnd          EventType = "round_end"
	EventNextRoundStarting EventType = "next_round_starting"
	EventGameOver          EventType = "game_over"
	EventDrawingData       EventType = "drawing_data"
)

// Event is a message pushed to players
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload"`
}

// PlayersPayload is the full roster
type PlayersPayload struct {
	Players []*models.Player `json:"players"`
}

// ChooseWordPayload is the private word offer
type ChooseWordPayload struct {
	Options []string `json:"options"`
}

// RoundStartedPayload announces a round. RoundEndsAt is unix milliseconds.
type RoundStartedPayload struct {
	Round       int    `json:"round"`
	RoundEndsAt int64  `json:"roundEndsAt"`
	DrawerID    string `json:"drawerId"`
}

// DrawerWordPayload is the secret word, sent to the drawer only
type DrawerWordPayload struct {
	Word string `json:"word"`
}

// CorrectGuessPayload announces a correct guess
type CorrectGuessPayload struct {
	Name string `json:"name"`
	Word string `json:"word"`
}

// ChatMessagePayload is a missed guess shown as chat
type ChatMessagePayload struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// RoundEndPayload reveals the word of the finished round
type RoundEndPayload struct {
	Round int    `json:"round"`
	Word  string `json:"word"`
}

// NextRoundStartingPayload announces the grace interval
type NextRoundStartingPayload struct {
	NextRound int `json:"nextRound"`
}

// GameOverPayload carries the final standings
type GameOverPayload struct {
	Players []*models.Player `json:"players"`
	Winner  *models.Player   `json:"winner"`
}

// DrawingDataPayload is opaque drawer input
type DrawingDataPayload struct {
	Data json.RawMessage `json:"data"`
}

func newEvent(eventType EventType, payload any) *Event {
	return &Event{Type: eventType, Payload: payload}
}
