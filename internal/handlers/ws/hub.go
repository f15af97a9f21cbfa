package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/sketchquest/internal/services/game"
)

// Hub tracks live connections and which rooms they listen to. It implements
// game.Broadcaster.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	rooms   map[string]map[string]*Client
	logger  zerolog.Logger
}

// NewHub creates an empty hub
func NewHub(logger *zerolog.Logger) *Hub {
	l := zerolog.Nop()
	if logger != nil {
		l = logger.With().Str("component", "hub").Logger()
	}
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
		logger:  l,
	}
}

// Register makes a connection addressable by its player ID
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.id] = client
	h.logger.Debug().Str("player_id", client.id).Msg("client registered")
}

// Unregister drops a connection from every room and closes its send queue
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.id] == client {
		delete(h.clients, client.id)
	}
	for roomID, members := range h.rooms {
		if members[client.id] == client {
			delete(members, client.id)
			if len(members) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}

	if !client.closed {
		client.closed = true
		close(client.send)
	}
	h.logger.Debug().Str("player_id", client.id).Msg("client unregistered")
}

// JoinRoom subscribes a connected player to a room
func (h *Hub) JoinRoom(roomID, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[playerID]
	if !ok {
		return
	}
	if _, exists := h.rooms[roomID]; !exists {
		h.rooms[roomID] = make(map[string]*Client)
	}
	h.rooms[roomID][playerID] = client
}

// LeaveRoom unsubscribes a player from a room
func (h *Hub) LeaveRoom(roomID, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[roomID]
	if !ok {
		return
	}
	delete(members, playerID)
	if len(members) == 0 {
		delete(h.rooms, roomID)
	}
}

// Broadcast sends an event to every room member not excluded
func (h *Hub) Broadcast(roomID string, event *game.Event, exclude ...string) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("event", string(event.Type)).Msg("failed to encode event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for playerID, client := range h.rooms[roomID] {
		if contains(exclude, playerID) {
			continue
		}
		h.enqueue(client, data)
	}
}

// Send delivers an event to one player
func (h *Hub) Send(playerID string, event *game.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("event", string(event.Type)).Msg("failed to encode event")
		return
	}
	h.sendRaw(playerID, data)
}

// sendRaw delivers an encoded message to one player
func (h *Hub) sendRaw(playerID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if client, ok := h.clients[playerID]; ok {
		h.enqueue(client, data)
	}
}

// roomMembers returns the player IDs subscribed to a room
func (h *Hub) roomMembers(roomID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.rooms[roomID]))
	for id := range h.rooms[roomID] {
		ids = append(ids, id)
	}
	return ids
}

// enqueue never blocks. A client whose queue is full is disconnected and
// cleaned up by its read pump. Must hold h.mu.
func (h *Hub) enqueue(client *Client, data []byte) {
	if client.closed {
		return
	}
	select {
	case client.send <- data:
	default:
		h.logger.Warn().Str("player_id", client.id).Msg("send queue full, dropping client")
		client.disconnect()
	}
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
