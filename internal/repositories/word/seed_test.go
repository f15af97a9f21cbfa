package word_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/sketchquest/internal/repositories/word"
	"github.com/KirkDiggler/sketchquest/internal/repositories/word/mocks"
)

type SeedTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	mockRepo *mocks.MockRepository
	ctx      context.Context
}

func (s *SeedTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = mocks.NewMockRepository(s.mockCtrl)
	s.ctx = context.Background()
}

func (s *SeedTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSeedTestSuite(t *testing.T) {
	suite.Run(t, new(SeedTestSuite))
}

func (s *SeedTestSuite) TestSeedsEmptyStore() {
	s.mockRepo.EXPECT().ListWords(s.ctx).Return(nil, nil)
	s.mockRepo.EXPECT().AddWords(s.ctx, &word.AddWordsInput{Words: word.DefaultWords}).Return(&word.AddWordsOutput{Added: 20}, nil)

	added, err := word.SeedIfEmpty(s.ctx, s.mockRepo, word.DefaultWords)
	s.Require().NoError(err)
	s.Equal(20, added)
}

func (s *SeedTestSuite) TestLeavesExistingListAlone() {
	s.mockRepo.EXPECT().ListWords(s.ctx).Return([]string{"otter"}, nil)

	added, err := word.SeedIfEmpty(s.ctx, s.mockRepo, word.DefaultWords)
	s.Require().NoError(err)
	s.Equal(0, added)
}

func (s *SeedTestSuite) TestListError() {
	s.mockRepo.EXPECT().ListWords(s.ctx).Return(nil, errors.New("connection refused"))

	_, err := word.SeedIfEmpty(s.ctx, s.mockRepo, word.DefaultWords)
	s.Error(err)
}
