package word

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/sketchquest/internal/repositories/word Repository

import (
	"context"
)

// Repository supplies the candidate words for a round
type Repository interface {
	// ListWords returns every distinct word in the store
	ListWords(ctx context.Context) ([]string, error)

	// AddWords stores words, ignoring ones already present
	AddWords(ctx context.Context, input *AddWordsInput) (*AddWordsOutput, error)
}
