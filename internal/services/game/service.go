package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/sketchquest/internal/common/clock"
	"github.com/KirkDiggler/sketchquest/internal/common/roomcode"
	"github.com/KirkDiggler/sketchquest/internal/models"
	"github.com/KirkDiggler/sketchquest/internal/random"
	"github.com/KirkDiggler/sketchquest/internal/repositories/session"
	"github.com/KirkDiggler/sketchquest/internal/repositories/word"
)

// service implements the Service interface
type service struct {
	sessionRepo session.Repository
	wordRepo    word.Repository
	broadcaster Broadcaster
	clock       clock.Clock
	roomCodes   roomcode.Generator
	random      random.Source
	logger      zerolog.Logger

	roundDuration       time.Duration
	nextRoundDelay      time.Duration
	wordOptions         int
	guessPoints         int
	drawerPoints        int
	defaultMaxRounds    int
	defaultMaxPlayers   int
	autoCreateOnJoin    bool
	wordFetchTimeout    time.Duration
	maxRoomCodeAttempts int

	statesMu sync.Mutex
	states   map[string]*roomState
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.WordRepo == nil {
		return nil, ErrNilWordRepo
	}
	if cfg.Broadcaster == nil {
		return nil, ErrNilBroadcaster
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.RoomCodes == nil {
		return nil, ErrNilRoomCodes
	}
	if cfg.Random == nil {
		return nil, ErrNilRandom
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "game").Logger()
	}

	s := &service{
		sessionRepo:         cfg.SessionRepo,
		wordRepo:            cfg.WordRepo,
		broadcaster:         cfg.Broadcaster,
		clock:               cfg.Clock,
		roomCodes:           cfg.RoomCodes,
		random:              cfg.Random,
		logger:              logger,
		roundDuration:       orDuration(cfg.RoundDuration, DefaultRoundDuration),
		nextRoundDelay:      cfg.NextRoundDelay,
		wordOptions:         orInt(cfg.WordOptions, DefaultWordOptions),
		guessPoints:         orInt(cfg.GuessPoints, DefaultGuessPoints),
		drawerPoints:        orInt(cfg.DrawerPoints, DefaultDrawerPoints),
		defaultMaxRounds:    orInt(cfg.DefaultMaxRounds, DefaultMaxRounds),
		defaultMaxPlayers:   orInt(cfg.DefaultMaxPlayers, DefaultMaxPlayers),
		autoCreateOnJoin:    cfg.AutoCreateOnJoin,
		wordFetchTimeout:    orDuration(cfg.WordFetchTimeout, DefaultWordFetchTimeout),
		maxRoomCodeAttempts: orInt(cfg.MaxRoomCodeAttempts, DefaultMaxRoomCodeAttempts),
		states:              make(map[string]*roomState),
	}
	if s.nextRoundDelay < 0 {
		s.nextRoundDelay = DefaultNextRoundDelay
	}

	return s, nil
}

// CreateRoom allocates a fresh room code and joins the creator as host
func (s *service) CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	maxPlayers := orInt(input.MaxPlayers, s.defaultMaxPlayers)
	maxRounds := orInt(input.NumRounds, s.defaultMaxRounds)

	var roomID string
	for attempt := 0; attempt < s.maxRoomCodeAttempts; attempt++ {
		code := s.roomCodes.NewCode()
		_, err := s.sessionRepo.CreateRoom(&session.CreateRoomInput{
			RoomID:     code,
			HostID:     input.PlayerID,
			Name:       input.Name,
			MaxRounds:  maxRounds,
			MaxPlayers: maxPlayers,
			CreatedAt:  s.clock.Now(),
		})
		if errors.Is(err, session.ErrRoomExists) {
			s.logger.Debug().Str("room_id", code).Msg("room code collision")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create room: %w", err)
		}
		roomID = code
		break
	}
	if roomID == "" {
		return nil, ErrRoomCodeExhausted
	}

	st := s.lockRoom(roomID)
	defer st.mu.Unlock()

	room, err := s.addPlayer(roomID, input.PlayerID, input.Name, input.Avatar)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("room_id", roomID).
		Str("host_id", input.PlayerID).
		Int("max_players", maxPlayers).
		Int("max_rounds", maxRounds).
		Msg("room created")

	return &CreateRoomOutput{
		RoomID: roomID,
		Room:   room,
	}, nil
}

// JoinRoom adds a player to an existing room. Missing rooms are created with
// the joiner as host when auto-create is enabled.
func (s *service) JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}
	roomID := NormalizeRoomID(input.RoomID)
	if roomID == "" {
		return nil, ErrGameNotFound
	}

	created := false
	st, _, err := s.lockExisting(roomID)
	if errors.Is(err, ErrGameNotFound) && s.autoCreateOnJoin {
		st, err = s.createOnJoin(roomID, input)
		created = err == nil
	}
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()

	room, err := s.addPlayer(roomID, input.PlayerID, input.Name, input.Avatar)
	if err != nil {
		if created {
			// nobody made it in, don't leave an empty room behind
			s.sessionRepo.RemovePlayer(&session.RemovePlayerInput{RoomID: roomID, PlayerID: input.PlayerID})
			s.discard(roomID, st)
		}
		return nil, err
	}

	s.logger.Info().
		Str("room_id", roomID).
		Str("player_id", input.PlayerID).
		Bool("created", created).
		Int("players", len(room.Players)).
		Msg("player joined")

	return &JoinRoomOutput{
		RoomID:  roomID,
		HostID:  room.HostID,
		Created: created,
		Room:    room,
	}, nil
}

func (s *service) createOnJoin(roomID string, input *JoinRoomInput) (*roomState, error) {
	_, err := s.sessionRepo.CreateRoom(&session.CreateRoomInput{
		RoomID:     roomID,
		HostID:     input.PlayerID,
		Name:       input.Name,
		MaxRounds:  s.defaultMaxRounds,
		MaxPlayers: s.defaultMaxPlayers,
		CreatedAt:  s.clock.Now(),
	})
	if err != nil && !errors.Is(err, session.ErrRoomExists) {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	// a concurrent join may have created it first, either way it exists now
	st, _, err := s.lockExisting(roomID)
	return st, err
}

// addPlayer joins a player to a room and announces the roster. Must hold the room lock.
func (s *service) addPlayer(roomID, playerID, name, avatar string) (*models.Room, error) {
	out, err := s.sessionRepo.AddPlayer(&session.AddPlayerInput{
		RoomID: roomID,
		Player: &models.Player{
			ID:     playerID,
			Name:   name,
			Avatar: avatar,
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, session.ErrRoomFull):
			return nil, ErrRoomFull
		case errors.Is(err, session.ErrRoomNotFound):
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to add player: %w", err)
	}

	s.broadcaster.JoinRoom(roomID, playerID)
	s.broadcastPlayers(roomID, out.Room.Players)

	return out.Room, nil
}

// LeaveRoom removes a player from a single room
func (s *service) LeaveRoom(ctx context.Context, input *LeaveRoomInput) (*LeaveRoomOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	deleted, err := s.removePlayer(NormalizeRoomID(input.RoomID), input.PlayerID)
	if err != nil {
		return nil, err
	}

	return &LeaveRoomOutput{RoomDeleted: deleted}, nil
}

// Disconnect removes a player from every room. Rooms that vanished meanwhile
// are skipped.
func (s *service) Disconnect(ctx context.Context, input *DisconnectInput) (*DisconnectOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	roomIDs := s.sessionRepo.ListRoomsForPlayer(&session.ListRoomsForPlayerInput{
		PlayerID: input.PlayerID,
	})

	left := make([]string, 0, len(roomIDs))
	for _, roomID := range roomIDs {
		_, err := s.removePlayer(roomID, input.PlayerID)
		if err != nil {
			s.logger.Debug().
				Err(err).
				Str("room_id", roomID).
				Str("player_id", input.PlayerID).
				Msg("skipping room on disconnect")
			continue
		}
		left = append(left, roomID)
	}

	return &DisconnectOutput{RoomIDs: left}, nil
}

// removePlayer takes a player out of a room and repairs the round around the
// gap. It reports whether the room was deleted.
func (s *service) removePlayer(roomID, playerID string) (bool, error) {
	st, _, err := s.lockExisting(roomID)
	if err != nil {
		return false, err
	}
	defer st.mu.Unlock()

	out, err := s.sessionRepo.RemovePlayer(&session.RemovePlayerInput{
		RoomID:   roomID,
		PlayerID: playerID,
	})
	if err != nil {
		if errors.Is(err, session.ErrRoomNotFound) {
			s.discard(roomID, st)
			return false, ErrGameNotFound
		}
		return false, fmt.Errorf("failed to remove player: %w", err)
	}
	if !out.Removed {
		return false, ErrPlayerNotInRoom
	}

	s.broadcaster.LeaveRoom(roomID, playerID)

	if out.RoomDeleted {
		s.discard(roomID, st)
		s.logger.Info().Str("room_id", roomID).Msg("room emptied and deleted")
		return true, nil
	}

	s.logger.Info().
		Str("room_id", roomID).
		Str("player_id", playerID).
		Str("phase", string(st.phase)).
		Msg("player left")

	s.broadcastPlayers(roomID, out.Room.Players)

	switch st.phase {
	case PhaseRoundActive:
		if out.WasDrawer {
			s.endRound(st, roomID)
			break
		}
		// the leaver may have been the last one still guessing
		if len(out.Room.GuessedPlayers) > 0 && s.allGuessed(roomID) {
			s.endRound(st, roomID)
		}
	case PhaseWordOffer:
		if st.offer != nil && st.offer.drawerID == playerID {
			// offer again to whoever now sits at the rotation index
			st.advance()
			st.offer = nil
			st.phase = PhaseRoundEnd
			s.schedule(st, roomID, 0, s.onNextRound)
		}
	}

	return false, nil
}

// GetRoom returns a snapshot of a room
func (s *service) GetRoom(ctx context.Context, input *GetRoomInput) (*GetRoomOutput, error) {
	if input == nil {
		return nil, ErrGameNotFound
	}

	st, room, err := s.lockExisting(NormalizeRoomID(input.RoomID))
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()

	return &GetRoomOutput{
		Room:  room,
		Phase: st.phase,
	}, nil
}

// Shutdown cancels every pending timer. Rooms stay readable.
func (s *service) Shutdown() {
	s.statesMu.Lock()
	states := make([]*roomState, 0, len(s.states))
	for _, st := range s.states {
		states = append(states, st)
	}
	s.statesMu.Unlock()

	for _, st := range states {
		st.mu.Lock()
		st.advance()
		st.mu.Unlock()
	}
}

// lockExisting locks a room's state after confirming the room exists
func (s *service) lockExisting(roomID string) (*roomState, *models.Room, error) {
	st := s.lockRoom(roomID)

	room, err := s.sessionRepo.GetRoom(&session.GetRoomInput{RoomID: roomID})
	if err != nil {
		if errors.Is(err, session.ErrRoomNotFound) {
			s.discard(roomID, st)
			st.mu.Unlock()
			return nil, nil, ErrGameNotFound
		}
		st.mu.Unlock()
		return nil, nil, fmt.Errorf("failed to get room: %w", err)
	}

	return st, room, nil
}

func (s *service) broadcastPlayers(roomID string, players []*models.Player) {
	s.broadcaster.Broadcast(roomID, newEvent(EventPlayers, &PlayersPayload{
		Players: players,
	}))
}

// NormalizeRoomID canonicalizes a typed room code
func NormalizeRoomID(roomID string) string {
	return strings.ToUpper(strings.TrimSpace(roomID))
}

func orInt(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func orDuration(v, fallback time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return fallback
}
