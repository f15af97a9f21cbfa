package game

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/KirkDiggler/sketchquest/internal/models"
	"github.com/KirkDiggler/sketchquest/internal/random"
	"github.com/KirkDiggler/sketchquest/internal/repositories/session"
)

// StartRound fetches word candidates and offers them to the next drawer
func (s *service) StartRound(ctx context.Context, input *StartRoundInput) (*StartRoundOutput, error) {
	if input == nil {
		return nil, ErrGameNotFound
	}
	roomID := NormalizeRoomID(input.RoomID)

	st, room, err := s.lockExisting(roomID)
	if err != nil {
		return nil, err
	}
	err = s.checkCanStart(st, room, input.PlayerID)
	st.mu.Unlock()
	if err != nil {
		return nil, err
	}

	// no room lock held across the fetch
	words, err := s.fetchWords(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("room_id", roomID).Msg("failed to fetch words")
		return nil, err
	}

	st, room, err = s.lockExisting(roomID)
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()

	// the room may have moved on while we were fetching
	if err := s.checkCanStart(st, room, input.PlayerID); err != nil {
		return nil, err
	}

	drawer, err := s.offerWords(st, roomID, words)
	if err != nil {
		return nil, err
	}

	return &StartRoundOutput{DrawerID: drawer.ID}, nil
}

func (s *service) checkCanStart(st *roomState, room *models.Room, playerID string) error {
	if !s.sessionRepo.IsHost(&session.IsHostInput{RoomID: room.ID, PlayerID: playerID}) {
		return ErrNotHost
	}
	if room.IsFinished() || st.phase == PhaseGameOver {
		return ErrGameFinished
	}
	switch st.phase {
	case PhaseRoundActive, PhaseRoundEnd:
		return ErrRoundInProgress
	}
	return nil
}

// offerWords previews the drawer and privately sends them the options.
// Must hold st.mu.
func (s *service) offerWords(st *roomState, roomID string, words []string) (*models.Player, error) {
	drawer, err := s.sessionRepo.SelectDrawer(&session.SelectDrawerInput{RoomID: roomID})
	if err != nil {
		if errors.Is(err, session.ErrRoomNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to select drawer: %w", err)
	}

	st.advance()
	st.phase = PhaseWordOffer
	st.offer = &wordOffer{
		drawerID: drawer.ID,
		options:  random.SampleDistinct(s.random, words, s.wordOptions),
	}

	room, err := s.sessionRepo.GetRoom(&session.GetRoomInput{RoomID: roomID})
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	s.broadcastPlayers(roomID, room.Players)
	s.broadcaster.Send(drawer.ID, newEvent(EventChooseWord, &ChooseWordPayload{
		Options: st.offer.options,
	}))

	s.logger.Info().
		Str("room_id", roomID).
		Str("drawer_id", drawer.ID).
		Int("next_round", room.Round+1).
		Msg("words offered")

	return drawer, nil
}

// ChooseWord starts the round once the previewed drawer picks an offered word
func (s *service) ChooseWord(ctx context.Context, input *ChooseWordInput) (*ChooseWordOutput, error) {
	if input == nil {
		return nil, ErrGameNotFound
	}
	roomID := NormalizeRoomID(input.RoomID)

	st, _, err := s.lockExisting(roomID)
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()

	if st.phase != PhaseWordOffer || st.offer == nil {
		return nil, ErrNoWordOffer
	}
	if st.offer.drawerID != input.PlayerID {
		return nil, ErrNotDrawer
	}
	if !st.offer.has(input.Word) {
		return nil, ErrWordNotOffered
	}

	now := s.clock.Now()
	// joins and leaves during the offer shift the rotation index, the
	// player who saw the options still draws
	room, err := s.sessionRepo.AdvanceRound(&session.AdvanceRoundInput{
		RoomID:   roomID,
		DrawerID: st.offer.drawerID,
		Word:     input.Word,
		Duration: s.roundDuration,
		Now:      now,
	})
	if err != nil {
		if errors.Is(err, session.ErrPlayerNotFound) {
			return nil, ErrNotDrawer
		}
		return nil, fmt.Errorf("failed to advance round: %w", err)
	}

	st.advance()
	st.phase = PhaseRoundActive
	st.offer = nil

	drawer := room.Drawer()
	drawerID := ""
	if drawer != nil {
		drawerID = drawer.ID
	}

	s.broadcaster.Broadcast(roomID, newEvent(EventRoundStarted, &RoundStartedPayload{
		Round:       room.Round,
		RoundEndsAt: room.RoundEndsAt.UnixMilli(),
		DrawerID:    drawerID,
	}))
	s.broadcastPlayers(roomID, room.Players)
	if drawerID != "" {
		s.broadcaster.Send(drawerID, newEvent(EventDrawerWord, &DrawerWordPayload{
			Word: room.CurrentWord,
		}))
	}

	s.schedule(st, roomID, room.RoundEndsAt.Sub(s.clock.Now()), s.onDeadline)

	s.logger.Info().
		Str("room_id", roomID).
		Str("drawer_id", drawerID).
		Int("round", room.Round).
		Time("ends_at", room.RoundEndsAt).
		Msg("round started")

	return &ChooseWordOutput{
		Round:       room.Round,
		RoundEndsAt: room.RoundEndsAt,
	}, nil
}

// Guess credits a correct guess or relays a miss as chat
func (s *service) Guess(ctx context.Context, input *GuessInput) (*GuessOutput, error) {
	if input == nil {
		return nil, ErrGameNotFound
	}
	roomID := NormalizeRoomID(input.RoomID)
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrEmptyMessage
	}

	st, room, err := s.lockExisting(roomID)
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()

	player := room.Player(input.PlayerID)
	if player == nil {
		return nil, ErrPlayerNotInRoom
	}

	if st.phase == PhaseRoundActive && matchesWord(input.Text, room.CurrentWord) {
		if player.IsDrawer {
			// the drawer typing the answer must not leak it
			return &GuessOutput{Correct: false}, nil
		}
		return s.creditGuess(st, roomID, room, player)
	}

	s.broadcaster.Broadcast(roomID, newEvent(EventChatMessage, &ChatMessagePayload{
		Name: player.Name,
		Text: input.Text,
	}))

	return &GuessOutput{Correct: false}, nil
}

// creditGuess awards a correct guess and ends the round once everyone got it.
// Must hold st.mu.
func (s *service) creditGuess(st *roomState, roomID string, room *models.Room, player *models.Player) (*GuessOutput, error) {
	award, err := s.sessionRepo.AwardPoints(&session.AwardPointsInput{
		RoomID:   roomID,
		PlayerID: player.ID,
		Points:   s.guessPoints,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to award points: %w", err)
	}
	if !award.Awarded {
		// already credited this round
		return &GuessOutput{Correct: true}, nil
	}

	_, err = s.sessionRepo.AwardDrawerBonus(&session.AwardDrawerBonusInput{
		RoomID: roomID,
		Points: s.drawerPoints,
	})
	if err != nil && !errors.Is(err, session.ErrNoDrawer) {
		return nil, fmt.Errorf("failed to award drawer bonus: %w", err)
	}

	s.broadcaster.Broadcast(roomID, newEvent(EventCorrectGuess, &CorrectGuessPayload{
		Name: player.Name,
		Word: room.CurrentWord,
	}))

	updated, err := s.sessionRepo.GetRoom(&session.GetRoomInput{RoomID: roomID})
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	s.broadcastPlayers(roomID, updated.Players)

	s.logger.Debug().
		Str("room_id", roomID).
		Str("player_id", player.ID).
		Int("score", award.Player.Score).
		Msg("correct guess")

	if s.allGuessed(roomID) {
		s.endRound(st, roomID)
	}

	return &GuessOutput{Correct: true}, nil
}

// RelayDrawing forwards drawer input to everyone else in the room
func (s *service) RelayDrawing(ctx context.Context, input *RelayDrawingInput) (*RelayDrawingOutput, error) {
	if input == nil {
		return nil, ErrGameNotFound
	}
	roomID := NormalizeRoomID(input.RoomID)

	st, room, err := s.lockExisting(roomID)
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()

	player := room.Player(input.PlayerID)
	if player == nil {
		return nil, ErrPlayerNotInRoom
	}
	if st.phase != PhaseRoundActive || !player.IsDrawer {
		return nil, ErrNotDrawer
	}

	s.broadcaster.Broadcast(roomID, newEvent(EventDrawingData, &DrawingDataPayload{
		Data: input.Data,
	}), player.ID)

	return &RelayDrawingOutput{}, nil
}

func (s *service) allGuessed(roomID string) bool {
	all, err := s.sessionRepo.AllNonDrawersGuessed(&session.AllNonDrawersGuessedInput{
		RoomID: roomID,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("room_id", roomID).Msg("failed to check guesses")
		return false
	}
	return all
}

// endRound closes the active round and either finishes the game or arms the
// grace timer. Must hold st.mu.
func (s *service) endRound(st *roomState, roomID string) {
	st.advance()

	out, err := s.sessionRepo.EndRound(&session.EndRoundInput{RoomID: roomID})
	if err != nil {
		s.logger.Error().Err(err).Str("room_id", roomID).Msg("failed to end round")
		st.phase = PhaseLobby
		return
	}

	s.broadcaster.Broadcast(roomID, newEvent(EventRoundEnd, &RoundEndPayload{
		Round: out.Round,
		Word:  out.Word,
	}))

	if out.Room.IsFinished() {
		st.phase = PhaseGameOver
		standings := Standings(out.Room.Players)
		payload := &GameOverPayload{Players: standings}
		if len(standings) > 0 {
			payload.Winner = standings[0]
		}
		s.broadcaster.Broadcast(roomID, newEvent(EventGameOver, payload))

		winnerID := ""
		if payload.Winner != nil {
			winnerID = payload.Winner.ID
		}
		s.logger.Info().
			Str("room_id", roomID).
			Str("winner_id", winnerID).
			Int("rounds", out.Round).
			Msg("game over")
		return
	}

	st.phase = PhaseRoundEnd
	s.broadcaster.Broadcast(roomID, newEvent(EventNextRoundStarting, &NextRoundStartingPayload{
		NextRound: out.Round + 1,
	}))
	s.schedule(st, roomID, s.nextRoundDelay, s.onNextRound)

	s.logger.Info().
		Str("room_id", roomID).
		Int("round", out.Round).
		Msg("round ended")
}

// onDeadline fires when the round timer runs out
func (s *service) onDeadline(roomID string, gen uint64) {
	st := s.current(roomID, gen)
	if st == nil {
		s.logger.Debug().Str("room_id", roomID).Msg("stale round timer ignored")
		return
	}
	defer st.mu.Unlock()

	if st.phase != PhaseRoundActive {
		return
	}

	room, err := s.sessionRepo.GetRoom(&session.GetRoomInput{RoomID: roomID})
	if err != nil {
		s.discard(roomID, st)
		return
	}

	// fired early, wait out the rest
	if remaining := room.RoundEndsAt.Sub(s.clock.Now()); remaining > 0 {
		s.schedule(st, roomID, remaining, s.onDeadline)
		return
	}

	s.endRound(st, roomID)
}

// onNextRound fires after the grace interval and makes the next offer
func (s *service) onNextRound(roomID string, gen uint64) {
	st := s.current(roomID, gen)
	if st == nil {
		return
	}
	if st.phase != PhaseRoundEnd {
		st.mu.Unlock()
		return
	}
	st.mu.Unlock()

	words, fetchErr := s.fetchWords(context.Background())

	st = s.current(roomID, gen)
	if st == nil {
		return
	}
	defer st.mu.Unlock()

	if st.phase != PhaseRoundEnd {
		return
	}
	if fetchErr != nil {
		// back to the lobby so the host can retry
		s.logger.Warn().Err(fetchErr).Str("room_id", roomID).Msg("next round has no words")
		st.advance()
		st.phase = PhaseLobby
		return
	}

	if _, err := s.offerWords(st, roomID, words); err != nil {
		s.logger.Error().Err(err).Str("room_id", roomID).Msg("failed to offer words")
		st.phase = PhaseLobby
	}
}

func (s *service) fetchWords(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.wordFetchTimeout)
	defer cancel()

	words, err := s.wordRepo.ListWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoWords, err)
	}
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	return words, nil
}

// Standings orders players by descending score, keeping join order on ties
func Standings(players []*models.Player) []*models.Player {
	ranked := models.ClonePlayers(players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
