package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/KirkDiggler/sketchquest/internal/common/uuid"
	"github.com/KirkDiggler/sketchquest/internal/services/game"
)

// intentFunc handles one intent and returns the ack payload
type intentFunc func(ctx context.Context, client *Client, payload json.RawMessage) any

// Handler upgrades HTTP requests to game connections
type Handler struct {
	gameService game.Service
	hub         *Hub
	uuid        uuid.UUID
	logger      zerolog.Logger
	upgrader    websocket.Upgrader
	intents     map[Intent]intentFunc

	messagesPerSecond float64
	messageBurst      int
}

// Config holds the configuration for the websocket handler
type Config struct {
	GameService game.Service
	Hub         *Hub

	// UUID generates connection IDs
	UUID uuid.UUID

	Logger *zerolog.Logger

	// AllowedOrigins restricts browser origins, empty allows any
	AllowedOrigins []string

	// MessagesPerSecond and MessageBurst rate limit each connection
	MessagesPerSecond float64
	MessageBurst      int
}

// New creates a new websocket handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}
	if cfg.Hub == nil {
		return nil, errors.New("hub cannot be nil")
	}
	if cfg.UUID == nil {
		return nil, errors.New("uuid generator cannot be nil")
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "ws").Logger()
	}

	h := &Handler{
		gameService:       cfg.GameService,
		hub:               cfg.Hub,
		uuid:              cfg.UUID,
		logger:            logger,
		messagesPerSecond: cfg.MessagesPerSecond,
		messageBurst:      cfg.MessageBurst,
	}
	if h.messagesPerSecond <= 0 {
		h.messagesPerSecond = 10
	}
	if h.messageBurst < 1 {
		h.messageBurst = 20
	}

	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin(cfg.AllowedOrigins),
	}

	h.intents = map[Intent]intentFunc{
		IntentCreateRoom:  h.createRoom,
		IntentJoinRoom:    h.joinRoom,
		IntentLeaveRoom:   h.leaveRoom,
		IntentStartRound:  h.startRound,
		IntentChooseWord:  h.chooseWord,
		IntentGuess:       h.guess,
		IntentDrawingData: h.drawingData,
	}

	return h, nil
}

// ServeWS upgrades the request and serves the connection until it closes
func (h *Handler) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Str("remote", c.ClientIP()).Msg("websocket upgrade failed")
		return
	}

	client := newClient(h.uuid.NewUUID(), conn, rate.NewLimiter(rate.Limit(h.messagesPerSecond), h.messageBurst))
	h.hub.Register(client)
	go client.writePump()

	log := h.logger.With().Str("player_id", client.id).Logger()
	log.Info().Str("remote", c.ClientIP()).Msg("client connected")

	h.hub.Send(client.id, &game.Event{
		Type:    EventConnected,
		Payload: &ConnectedPayload{ID: client.id},
	})

	ctx := c.Request.Context()
	err = client.readPump(ctx, h.dispatch)
	if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		log.Warn().Err(err).Msg("connection closed unexpectedly")
	}

	h.hub.Unregister(client)
	// the request context is done once the handler returns
	out, err := h.gameService.Disconnect(context.WithoutCancel(ctx), &game.DisconnectInput{PlayerID: client.id})
	if err != nil {
		log.Error().Err(err).Msg("failed to disconnect player")
		return
	}
	log.Info().Strs("rooms", out.RoomIDs).Msg("client disconnected")
}

// dispatch decodes one message, runs its intent and acks when asked to
func (h *Handler) dispatch(ctx context.Context, client *Client, data []byte) {
	if !client.limiter.Allow() {
		h.sendError(client, "Slow down")
		return
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		h.sendError(client, "Invalid message")
		return
	}

	intent, ok := h.intents[req.Type]
	if !ok {
		h.sendError(client, "Unknown message type")
		return
	}

	ack := intent(ctx, client, req.Payload)
	if req.ID == "" || ack == nil {
		return
	}

	encoded, err := json.Marshal(&Ack{Type: EventAck, ID: req.ID, Payload: ack})
	if err != nil {
		h.logger.Error().Err(err).Str("intent", string(req.Type)).Msg("failed to encode ack")
		return
	}
	h.hub.sendRaw(client.id, encoded)
}

func (h *Handler) sendError(client *Client, message string) {
	h.hub.Send(client.id, &game.Event{
		Type:    EventError,
		Payload: &ErrorPayload{Error: message},
	})
}

// failed logs unexpected errors and returns the text for the player
func (h *Handler) failed(client *Client, intent Intent, err error) string {
	var gameErr game.GameError
	if !errors.As(err, &gameErr) {
		h.logger.Error().Err(err).Str("player_id", client.id).Str("intent", string(intent)).Msg("intent failed")
	}
	return errorMessage(err)
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		// non-browser clients send no origin
		return origin == "" || contains(allowed, origin)
	}
}
