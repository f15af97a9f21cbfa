package session

import (
	"errors"
	"sync"
	"time"

	"github.com/KirkDiggler/sketchquest/internal/models"
)

var (
	// ErrRoomNotFound is returned when a room is not found
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomExists is returned when creating a room whose ID is taken
	ErrRoomExists = errors.New("room already exists")

	// ErrRoomFull is returned when a room is at maximum capacity
	ErrRoomFull = errors.New("room full")

	// ErrNoPlayers is returned when a room has nobody to draw
	ErrNoPlayers = errors.New("no players in room")

	// ErrPlayerNotFound is returned when a player is not in the room
	ErrPlayerNotFound = errors.New("player not found")

	// ErrNoDrawer is returned when the round has no drawer
	ErrNoDrawer = errors.New("no drawer")
)

// memoryRepository implements the Repository interface in process memory
type memoryRepository struct {
	mu    sync.RWMutex
	rooms map[string]*models.Room
}

// NewMemory creates a new in-memory session repository
func NewMemory() *memoryRepository {
	return &memoryRepository{
		rooms: make(map[string]*models.Room),
	}
}

// CreateRoom registers a new room. It never overwrites an existing one.
func (r *memoryRepository) CreateRoom(input *CreateRoomInput) (*models.Room, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[input.RoomID]; exists {
		return nil, ErrRoomExists
	}

	room := &models.Room{
		ID:             input.RoomID,
		Name:           input.Name,
		HostID:         input.HostID,
		Players:        []*models.Player{},
		MaxRounds:      input.MaxRounds,
		MaxPlayers:     input.MaxPlayers,
		GuessedPlayers: map[string]bool{},
		CreatedAt:      input.CreatedAt,
	}
	r.rooms[room.ID] = room

	return room.Clone(), nil
}

// GetRoom retrieves a copy of a room
func (r *memoryRepository) GetRoom(input *GetRoomInput) (*models.Room, error) {
	if input == nil {
		return nil, ErrRoomNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[input.RoomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room.Clone(), nil
}

// AddPlayer appends a player, ignoring players already present
func (r *memoryRepository) AddPlayer(input *AddPlayerInput) (*AddPlayerOutput, error) {
	if input == nil || input.Player == nil || input.Player.ID == "" {
		return nil, errors.New("input and player cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[input.RoomID]
	if !ok {
		return nil, ErrRoomNotFound
	}

	if room.Player(input.Player.ID) != nil {
		return &AddPlayerOutput{Added: false, Room: room.Clone()}, nil
	}

	if len(room.Players) >= room.MaxPlayers {
		return nil, ErrRoomFull
	}

	player := input.Player.Clone()
	player.IsDrawer = false
	player.HasGuessed = false
	room.Players = append(room.Players, player)

	// Bootstrap fallback only, a live host is never replaced
	if room.HostID == "" {
		room.HostID = player.ID
	}

	return &AddPlayerOutput{Added: true, Room: room.Clone()}, nil
}

// RemovePlayer removes a player and drops the room when it becomes empty
func (r *memoryRepository) RemovePlayer(input *RemovePlayerInput) (*RemovePlayerOutput, error) {
	if input == nil {
		return nil, ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[input.RoomID]
	if !ok {
		return nil, ErrRoomNotFound
	}

	output := &RemovePlayerOutput{}
	remaining := make([]*models.Player, 0, len(room.Players))
	for _, p := range room.Players {
		if p.ID == input.PlayerID {
			output.Removed = true
			output.WasDrawer = p.IsDrawer
			continue
		}
		remaining = append(remaining, p)
	}
	room.Players = remaining
	delete(room.GuessedPlayers, input.PlayerID)

	if len(room.Players) == 0 {
		delete(r.rooms, room.ID)
		output.RoomDeleted = true
		return output, nil
	}

	output.Room = room.Clone()
	return output, nil
}

// ListRoomsForPlayer returns the IDs of every room containing the player
func (r *memoryRepository) ListRoomsForPlayer(input *ListRoomsForPlayerInput) []string {
	if input == nil || input.PlayerID == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var roomIDs []string
	for id, room := range r.rooms {
		if room.Player(input.PlayerID) != nil {
			roomIDs = append(roomIDs, id)
		}
	}
	return roomIDs
}

// SelectDrawer picks players[round mod n] as drawer and clears guesses.
// Repeated calls with the same round value pick the same player.
func (r *memoryRepository) SelectDrawer(input *SelectDrawerInput) (*models.Player, error) {
	if input == nil {
		return nil, ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[input.RoomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if len(room.Players) == 0 {
		return nil, ErrNoPlayers
	}

	drawer := markDrawer(room, room.Round%len(room.Players))
	return drawer.Clone(), nil
}

// AdvanceRound increments the round and arms its word and deadline
func (r *memoryRepository) AdvanceRound(input *AdvanceRoundInput) (*models.Room, error) {
	if input == nil {
		return nil, ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[input.RoomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if len(room.Players) == 0 {
		return nil, ErrNoPlayers
	}

	// Same index SelectDrawer previewed before the increment, unless the
	// roster changed since and the previewed drawer is named
	index := room.Round % len(room.Players)
	if input.DrawerID != "" {
		index = playerIndex(room, input.DrawerID)
		if index < 0 {
			return nil, ErrPlayerNotFound
		}
	}

	room.Round++
	room.CurrentWord = input.Word
	room.RoundEndsAt = input.Now.Add(input.Duration)
	room.GuessedPlayers = map[string]bool{}
	markDrawer(room, index)

	return room.Clone(), nil
}

// EndRound clears the drawer, word and deadline of the finished round
func (r *memoryRepository) EndRound(input *EndRoundInput) (*EndRoundOutput, error) {
	if input == nil {
		return nil, ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[input.RoomID]
	if !ok {
		return nil, ErrRoomNotFound
	}

	output := &EndRoundOutput{
		Round: room.Round,
		Word:  room.CurrentWord,
	}

	for _, p := range room.Players {
		p.IsDrawer = false
	}
	room.CurrentWord = ""
	room.RoundEndsAt = time.Time{}

	output.Room = room.Clone()
	return output, nil
}

// AwardPoints credits a non-drawer once per round
func (r *memoryRepository) AwardPoints(input *AwardPointsInput) (*AwardPointsOutput, error) {
	if input == nil {
		return nil, ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[input.RoomID]
	if !ok {
		return nil, ErrRoomNotFound
	}

	player := room.Player(input.PlayerID)
	if player == nil {
		return nil, ErrPlayerNotFound
	}

	if player.IsDrawer || player.HasGuessed {
		return &AwardPointsOutput{Awarded: false, Player: player.Clone()}, nil
	}

	player.Score += input.Points
	player.HasGuessed = true
	room.GuessedPlayers[player.ID] = true

	return &AwardPointsOutput{Awarded: true, Player: player.Clone()}, nil
}

// AwardDrawerBonus credits the drawer. The caller grants it once per credited guesser.
func (r *memoryRepository) AwardDrawerBonus(input *AwardDrawerBonusInput) (*models.Player, error) {
	if input == nil {
		return nil, ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[input.RoomID]
	if !ok {
		return nil, ErrRoomNotFound
	}

	drawer := room.Drawer()
	if drawer == nil {
		return nil, ErrNoDrawer
	}
	drawer.Score += input.Points

	return drawer.Clone(), nil
}

// AllNonDrawersGuessed is vacuously true when there are no non-drawers
func (r *memoryRepository) AllNonDrawersGuessed(input *AllNonDrawersGuessedInput) (bool, error) {
	if input == nil {
		return false, ErrRoomNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[input.RoomID]
	if !ok {
		return false, ErrRoomNotFound
	}

	for _, p := range room.Players {
		if !p.IsDrawer && !p.HasGuessed {
			return false, nil
		}
	}
	return true, nil
}

// IsHost reports whether the player hosts the room
func (r *memoryRepository) IsHost(input *IsHostInput) bool {
	if input == nil {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[input.RoomID]
	if !ok {
		return false
	}
	return room.HostID != "" && room.HostID == input.PlayerID
}

func markDrawer(room *models.Room, index int) *models.Player {
	for i, p := range room.Players {
		p.IsDrawer = i == index
		p.HasGuessed = false
	}
	return room.Players[index]
}

func playerIndex(room *models.Room, playerID string) int {
	for i, p := range room.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}
