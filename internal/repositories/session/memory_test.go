package session

import (
	"testing"
	"time"

	"github.com/KirkDiggler/sketchquest/internal/models"
	"github.com/stretchr/testify/suite"
)

type MemoryRepositoryTestSuite struct {
	suite.Suite
	repo    Repository
	testNow time.Time
}

func (s *MemoryRepositoryTestSuite) SetupTest() {
	s.repo = NewMemory()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func TestMemoryRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryRepositoryTestSuite))
}

func (s *MemoryRepositoryTestSuite) createRoom(id string, maxRounds, maxPlayers int, playerIDs ...string) {
	_, err := s.repo.CreateRoom(&CreateRoomInput{
		RoomID:     id,
		HostID:     "",
		Name:       "test room",
		MaxRounds:  maxRounds,
		MaxPlayers: maxPlayers,
		CreatedAt:  s.testNow,
	})
	s.Require().NoError(err)

	for _, pid := range playerIDs {
		_, err := s.repo.AddPlayer(&AddPlayerInput{
			RoomID: id,
			Player: &models.Player{ID: pid, Name: "name-" + pid},
		})
		s.Require().NoError(err)
	}
}

func (s *MemoryRepositoryTestSuite) TestCreateAndGetRoom() {
	room, err := s.repo.CreateRoom(&CreateRoomInput{
		RoomID:     "ABCDE",
		HostID:     "host",
		Name:       "Friday",
		MaxRounds:  3,
		MaxPlayers: 5,
		CreatedAt:  s.testNow,
	})
	s.Require().NoError(err)
	s.Equal("ABCDE", room.ID)
	s.Equal("host", room.HostID)
	s.Empty(room.Players)
	s.Equal(0, room.Round)

	got, err := s.repo.GetRoom(&GetRoomInput{RoomID: "ABCDE"})
	s.Require().NoError(err)
	s.Equal("Friday", got.Name)
	s.Equal(3, got.MaxRounds)
	s.Equal(5, got.MaxPlayers)
	s.Equal(s.testNow, got.CreatedAt)
}

func (s *MemoryRepositoryTestSuite) TestCreateRoomNeverOverwrites() {
	s.createRoom("ABCDE", 3, 5, "a")

	_, err := s.repo.CreateRoom(&CreateRoomInput{RoomID: "ABCDE", HostID: "other", MaxRounds: 1, MaxPlayers: 2})
	s.ErrorIs(err, ErrRoomExists)

	room, err := s.repo.GetRoom(&GetRoomInput{RoomID: "ABCDE"})
	s.Require().NoError(err)
	s.Len(room.Players, 1)
	s.Equal(3, room.MaxRounds)
}

func (s *MemoryRepositoryTestSuite) TestGetRoomNotFound() {
	_, err := s.repo.GetRoom(&GetRoomInput{RoomID: "NOPE1"})
	s.ErrorIs(err, ErrRoomNotFound)
}

func (s *MemoryRepositoryTestSuite) TestReturnedRoomIsACopy() {
	s.createRoom("ABCDE", 3, 5, "a")

	room, err := s.repo.GetRoom(&GetRoomInput{RoomID: "ABCDE"})
	s.Require().NoError(err)
	room.Players[0].Score = 100
	room.Players = nil

	again, err := s.repo.GetRoom(&GetRoomInput{RoomID: "ABCDE"})
	s.Require().NoError(err)
	s.Require().Len(again.Players, 1)
	s.Equal(0, again.Players[0].Score)
}

func (s *MemoryRepositoryTestSuite) TestAddPlayerIsIdempotent() {
	s.createRoom("ABCDE", 3, 5, "a")

	out, err := s.repo.AddPlayer(&AddPlayerInput{RoomID: "ABCDE", Player: &models.Player{ID: "a", Name: "again"}})
	s.Require().NoError(err)
	s.False(out.Added)
	s.Len(out.Room.Players, 1)
	s.Equal("name-a", out.Room.Players[0].Name)
}

func (s *MemoryRepositoryTestSuite) TestAddPlayerBootstrapsHost() {
	s.createRoom("ABCDE", 3, 5, "first", "second")

	s.True(s.repo.IsHost(&IsHostInput{RoomID: "ABCDE", PlayerID: "first"}))
	s.False(s.repo.IsHost(&IsHostInput{RoomID: "ABCDE", PlayerID: "second"}))
	s.False(s.repo.IsHost(&IsHostInput{RoomID: "MISSING", PlayerID: "first"}))
}

func (s *MemoryRepositoryTestSuite) TestAddPlayerKeepsExistingHost() {
	_, err := s.repo.CreateRoom(&CreateRoomInput{RoomID: "ABCDE", HostID: "creator", MaxRounds: 3, MaxPlayers: 5})
	s.Require().NoError(err)

	_, err = s.repo.AddPlayer(&AddPlayerInput{RoomID: "ABCDE", Player: &models.Player{ID: "joiner"}})
	s.Require().NoError(err)

	s.True(s.repo.IsHost(&IsHostInput{RoomID: "ABCDE", PlayerID: "creator"}))
	s.False(s.repo.IsHost(&IsHostInput{RoomID: "ABCDE", PlayerID: "joiner"}))
}

func (s *MemoryRepositoryTestSuite) TestAddPlayerNeverExceedsMaxPlayers() {
	s.createRoom("ABCDE", 3, 2)

	for _, id := range []string{"a", "b", "c", "d"} {
		_, err := s.repo.AddPlayer(&AddPlayerInput{RoomID: "ABCDE", Player: &models.Player{ID: id}})
		if id == "c" || id == "d" {
			s.ErrorIs(err, ErrRoomFull)
		} else {
			s.NoError(err)
		}

		room, err := s.repo.GetRoom(&GetRoomInput{RoomID: "ABCDE"})
		s.Require().NoError(err)
		s.LessOrEqual(len(room.Players), room.MaxPlayers)
	}
}

func (s *MemoryRepositoryTestSuite) TestAddPlayerRoomNotFound() {
	_, err := s.repo.AddPlayer(&AddPlayerInput{RoomID: "NOPE1", Player: &models.Player{ID: "a"}})
	s.ErrorIs(err, ErrRoomNotFound)
}

func (s *MemoryRepositoryTestSuite) TestRemovePlayer() {
	s.createRoom("ABCDE", 3, 5, "a", "b")

	out, err := s.repo.RemovePlayer(&RemovePlayerInput{RoomID: "ABCDE", PlayerID: "a"})
	s.Require().NoError(err)
	s.True(out.Removed)
	s.False(out.RoomDeleted)
	s.Require().Len(out.Room.Players, 1)
	s.Equal("b", out.Room.Players[0].ID)
}

func (s *MemoryRepositoryTestSuite) TestRemoveLastPlayerDeletesRoom() {
	s.createRoom("ABCDE", 3, 5, "a")

	out, err := s.repo.RemovePlayer(&RemovePlayerInput{RoomID: "ABCDE", PlayerID: "a"})
	s.Require().NoError(err)
	s.True(out.RoomDeleted)
	s.Nil(out.Room)

	_, err = s.repo.GetRoom(&GetRoomInput{RoomID: "ABCDE"})
	s.ErrorIs(err, ErrRoomNotFound)

	_, err = s.repo.RemovePlayer(&RemovePlayerInput{RoomID: "ABCDE", PlayerID: "a"})
	s.ErrorIs(err, ErrRoomNotFound)
}

func (s *MemoryRepositoryTestSuite) TestRemovePlayerReportsDrawer() {
	s.createRoom("ABCDE", 3, 5, "a", "b")
	_, err := s.repo.SelectDrawer(&SelectDrawerInput{RoomID: "ABCDE"})
	s.Require().NoError(err)

	out, err := s.repo.RemovePlayer(&RemovePlayerInput{RoomID: "ABCDE", PlayerID: "a"})
	s.Require().NoError(err)
	s.True(out.WasDrawer)
}

func (s *MemoryRepositoryTestSuite) TestListRoomsForPlayer() {
	s.createRoom("ROOM1", 3, 5, "a", "b")
	s.createRoom("ROOM2", 3, 5, "a")
	s.createRoom("ROOM3", 3, 5, "c")

	s.ElementsMatch([]string{"ROOM1", "ROOM2"}, s.repo.ListRoomsForPlayer(&ListRoomsForPlayerInput{PlayerID: "a"}))
	s.ElementsMatch([]string{"ROOM3"}, s.repo.ListRoomsForPlayer(&ListRoomsForPlayerInput{PlayerID: "c"}))
	s.Empty(s.repo.ListRoomsForPlayer(&ListRoomsForPlayerInput{PlayerID: "z"}))
}

func (s *MemoryRepositoryTestSuite) TestSelectDrawerIsIdempotent() {
	s.createRoom("ABCDE", 3, 5, "a", "b", "c")

	first, err := s.repo.SelectDrawer(&SelectDrawerInput{RoomID: "ABCDE"})
	s.Require().NoError(err)
	second, err := s.repo.SelectDrawer(&SelectDrawerInput{RoomID: "ABCDE"})
	s.Require().NoError(err)

	s.Equal("a", first.ID)
	s.Equal(first.ID, second.ID)

	room, err := s.repo.GetRoom(&GetRoomInput{RoomID: "ABCDE"})
	s.Require().NoError(err)
	s.Equal(0, room.Round)
	s.Equal("a", room.Drawer().ID)
}

func (s *MemoryRepositoryTestSuite) TestSelectDrawerErrors() {
	_, err := s.repo.SelectDrawer(&SelectDrawerInput{RoomID: "NOPE1"})
	s.ErrorIs(err, ErrRoomNotFound)

	s.createRoom("EMPTY", 3, 5)
	_, err = s.repo.SelectDrawer(&SelectDrawerInput{RoomID: "EMPTY"})
	s.ErrorIs(err, ErrNoPlayers)
}

func (s *MemoryRepositoryTestSuite) TestDrawerRotationFollowsRoundOrder() {
	players := []string{"a", "b", "c"}
	s.createRoom("ABCDE", 7, 5, players...)

	for r := 1; r <= 7; r++ {
		preview, err := s.repo.SelectDrawer(&SelectDrawerInput{RoomID: "ABCDE"})
		s.Require().NoError(err)

		room, err := s.repo.AdvanceRound(&AdvanceRoundInput{
			RoomID:   "ABCDE",
			Word:     "cat",
			Duration: 60 * time.Second,
			Now:      s.testNow,
		})
		s.Require().NoError(err)

		expected := players[(r-1)%len(players)]
		s.Equal(r, room.Round)
		s.Equal(expected, preview.ID)
		s.Equal(expected, room.Drawer().ID)

		_, err = s.repo.EndRound(&EndRoundInput{RoomID: "ABCDE"})
		s.Require().NoError(err)
	}
}

func (s *MemoryRepositoryTestSuite) TestDrawerRotationIgnoresScore() {
	s.createRoom("ABCDE", 3, 5, "a", "b")

	_, err := s.repo.AdvanceRound(&AdvanceRoundInput{RoomID: "ABCDE", Word: "cat", Duration: time.Minute, Now: s.testNow})
	s.Require().NoError(err)
	_, err = s.repo.AwardPoints(&AwardPointsInput{RoomID: "ABCDE", PlayerID: "b", Points: 50})
	s.Require().NoError(err)
	_, err = s.repo.EndRound(&EndRoundInput{RoomID: "ABCDE"})
	s.Require().NoError(err)

	drawer, err := s.repo.SelectDrawer(&SelectDrawerInput{RoomID: "ABCDE"})
	s.Require().NoError(err)
	s.Equal("b", drawer.ID)
}

func (s *MemoryRepositoryTestSuite) TestAdvanceRound() {
	s.createRoom("ABCDE", 3, 5, "a", "b")

	room, err := s.repo.AdvanceRound(&AdvanceRoundInput{
		RoomID:   "ABCDE",
		Word:     "cat",
		Duration: 60 * time.Second,
		Now:      s.testNow,
	})
	s.Require().NoError(err)
	s.Equal(1, room.Round)
	s.Equal("cat", room.CurrentWord)
	s.Equal(s.testNow.Add(60*time.Second), room.RoundEndsAt)
	s.Empty(room.GuessedPlayers)
	for _, p := range room.Players {
		s.False(p.HasGuessed)
	}
}

func (s *MemoryRepositoryTestSuite) TestAdvanceRoundKeepsPinnedDrawerAfterRosterChange() {
	s.createRoom("ABCDE", 3, 5, "a", "b", "c")

	_, err := s.repo.AdvanceRound(&AdvanceRoundInput{RoomID: "ABCDE", Word: "cat", Duration: time.Minute, Now: s.testNow})
	s.Require().NoError(err)
	_, err = s.repo.EndRound(&EndRoundInput{RoomID: "ABCDE"})
	s.Require().NoError(err)

	previewed, err := s.repo.SelectDrawer(&SelectDrawerInput{RoomID: "ABCDE"})
	s.Require().NoError(err)
	s.Equal("b", previewed.ID)

	// rotation alone would now land on c
	_, err = s.repo.RemovePlayer(&RemovePlayerInput{RoomID: "ABCDE", PlayerID: "a"})
	s.Require().NoError(err)

	room, err := s.repo.AdvanceRound(&AdvanceRoundInput{
		RoomID:   "ABCDE",
		DrawerID: previewed.ID,
		Word:     "dog",
		Duration: time.Minute,
		Now:      s.testNow,
	})
	s.Require().NoError(err)
	s.Equal(2, room.Round)
	s.Equal("b", room.Drawer().ID)
	s.False(room.Player("c").IsDrawer)
}

func (s *MemoryRepositoryTestSuite) TestAdvanceRoundUnknownDrawer() {
	s.createRoom("ABCDE", 3, 5, "a", "b")

	_, err := s.repo.AdvanceRound(&AdvanceRoundInput{RoomID: "ABCDE", DrawerID: "z", Word: "cat", Duration: time.Minute, Now: s.testNow})
	s.ErrorIs(err, ErrPlayerNotFound)

	room, err := s.repo.GetRoom(&GetRoomInput{RoomID: "ABCDE"})
	s.Require().NoError(err)
	s.Equal(0, room.Round)
}

func (s *MemoryRepositoryTestSuite) TestAdvanceRoundResetsGuesses() {
	s.createRoom("ABCDE", 3, 5, "a", "b", "c")

	_, err := s.repo.AdvanceRound(&AdvanceRoundInput{RoomID: "ABCDE", Word: "cat", Duration: time.Minute, Now: s.testNow})
	s.Require().NoError(err)
	_, err = s.repo.AwardPoints(&AwardPointsInput{RoomID: "ABCDE", PlayerID: "b", Points: 10})
	s.Require().NoError(err)
	_, err = s.repo.EndRound(&EndRoundInput{RoomID: "ABCDE"})
	s.Require().NoError(err)

	room, err := s.repo.AdvanceRound(&AdvanceRoundInput{RoomID: "ABCDE", Word: "dog", Duration: time.Minute, Now: s.testNow})
	s.Require().NoError(err)
	s.Empty(room.GuessedPlayers)
	for _, p := range room.Players {
		s.False(p.HasGuessed, p.ID)
	}
	s.Equal(10, room.Player("b").Score)
}

func (s *MemoryRepositoryTestSuite) TestEndRound() {
	s.createRoom("ABCDE", 3, 5, "a", "b")
	_, err := s.repo.AdvanceRound(&AdvanceRoundInput{RoomID: "ABCDE", Word: "cat", Duration: time.Minute, Now: s.testNow})
	s.Require().NoError(err)

	out, err := s.repo.EndRound(&EndRoundInput{RoomID: "ABCDE"})
	s.Require().NoError(err)
	s.Equal(1, out.Round)
	s.Equal("cat", out.Word)
	s.Nil(out.Room.Drawer())
	s.Empty(out.Room.CurrentWord)
	s.True(out.Room.RoundEndsAt.IsZero())
}

func (s *MemoryRepositoryTestSuite) TestAwardPointsOncePerRound() {
	s.createRoom("ABCDE", 3, 5, "a", "b")
	_, err := s.repo.AdvanceRound(&AdvanceRoundInput{RoomID: "ABCDE", Word: "cat", Duration: time.Minute, Now: s.testNow})
	s.Require().NoError(err)

	out, err := s.repo.AwardPoints(&AwardPointsInput{RoomID: "ABCDE", PlayerID: "b", Points: 10})
	s.Require().NoError(err)
	s.True(out.Awarded)
	s.Equal(10, out.Player.Score)
	s.True(out.Player.HasGuessed)

	out, err = s.repo.AwardPoints(&AwardPointsInput{RoomID: "ABCDE", PlayerID: "b", Points: 10})
	s.Require().NoError(err)
	s.False(out.Awarded)
	s.Equal(10, out.Player.Score)

	room, err := s.repo.GetRoom(&GetRoomInput{RoomID: "ABCDE"})
	s.Require().NoError(err)
	s.True(room.GuessedPlayers["b"])
}

func (s *MemoryRepositoryTestSuite) TestAwardPointsSkipsDrawer() {
	s.createRoom("ABCDE", 3, 5, "a", "b")
	_, err := s.repo.AdvanceRound(&AdvanceRoundInput{RoomID: "ABCDE", Word: "cat", Duration: time.Minute, Now: s.testNow})
	s.Require().NoError(err)

	out, err := s.repo.AwardPoints(&AwardPointsInput{RoomID: "ABCDE", PlayerID: "a", Points: 10})
	s.Require().NoError(err)
	s.False(out.Awarded)
	s.Equal(0, out.Player.Score)
}

func (s *MemoryRepositoryTestSuite) TestAwardPointsUnknownPlayer() {
	s.createRoom("ABCDE", 3, 5, "a")
	_, err := s.repo.AwardPoints(&AwardPointsInput{RoomID: "ABCDE", PlayerID: "ghost", Points: 10})
	s.ErrorIs(err, ErrPlayerNotFound)
}

func (s *MemoryRepositoryTestSuite) TestAwardDrawerBonusAccumulates() {
	s.createRoom("ABCDE", 3, 5, "a", "b", "c")
	_, err := s.repo.AdvanceRound(&AdvanceRoundInput{RoomID: "ABCDE", Word: "cat", Duration: time.Minute, Now: s.testNow})
	s.Require().NoError(err)

	_, err = s.repo.AwardDrawerBonus(&AwardDrawerBonusInput{RoomID: "ABCDE", Points: 5})
	s.Require().NoError(err)
	drawer, err := s.repo.AwardDrawerBonus(&AwardDrawerBonusInput{RoomID: "ABCDE", Points: 5})
	s.Require().NoError(err)

	s.Equal("a", drawer.ID)
	s.Equal(10, drawer.Score)
	s.False(drawer.HasGuessed)
}

func (s *MemoryRepositoryTestSuite) TestAwardDrawerBonusWithoutDrawer() {
	s.createRoom("ABCDE", 3, 5, "a")
	_, err := s.repo.AwardDrawerBonus(&AwardDrawerBonusInput{RoomID: "ABCDE", Points: 5})
	s.ErrorIs(err, ErrNoDrawer)
}

func (s *MemoryRepositoryTestSuite) TestAllNonDrawersGuessed() {
	s.createRoom("ABCDE", 3, 5, "a", "b", "c")
	_, err := s.repo.AdvanceRound(&AdvanceRoundInput{RoomID: "ABCDE", Word: "cat", Duration: time.Minute, Now: s.testNow})
	s.Require().NoError(err)

	all, err := s.repo.AllNonDrawersGuessed(&AllNonDrawersGuessedInput{RoomID: "ABCDE"})
	s.Require().NoError(err)
	s.False(all)

	_, err = s.repo.AwardPoints(&AwardPointsInput{RoomID: "ABCDE", PlayerID: "b", Points: 10})
	s.Require().NoError(err)
	all, err = s.repo.AllNonDrawersGuessed(&AllNonDrawersGuessedInput{RoomID: "ABCDE"})
	s.Require().NoError(err)
	s.False(all)

	_, err = s.repo.AwardPoints(&AwardPointsInput{RoomID: "ABCDE", PlayerID: "c", Points: 10})
	s.Require().NoError(err)
	all, err = s.repo.AllNonDrawersGuessed(&AllNonDrawersGuessedInput{RoomID: "ABCDE"})
	s.Require().NoError(err)
	s.True(all)
}

func (s *MemoryRepositoryTestSuite) TestAllNonDrawersGuessedVacuous() {
	s.createRoom("ABCDE", 3, 5, "solo")
	_, err := s.repo.AdvanceRound(&AdvanceRoundInput{RoomID: "ABCDE", Word: "cat", Duration: time.Minute, Now: s.testNow})
	s.Require().NoError(err)

	all, err := s.repo.AllNonDrawersGuessed(&AllNonDrawersGuessedInput{RoomID: "ABCDE"})
	s.Require().NoError(err)
	s.True(all)

	_, err = s.repo.AllNonDrawersGuessed(&AllNonDrawersGuessedInput{RoomID: "NOPE1"})
	s.ErrorIs(err, ErrRoomNotFound)
}
