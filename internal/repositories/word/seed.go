package word

import (
	"context"
	"fmt"
)

// SeedIfEmpty stores words only when the repository has none yet, so an
// operator's own list is never extended with the defaults. It returns how
// many words were added.
func SeedIfEmpty(ctx context.Context, repo Repository, words []string) (int, error) {
	existing, err := repo.ListWords(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list words: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	out, err := repo.AddWords(ctx, &AddWordsInput{Words: words})
	if err != nil {
		return 0, fmt.Errorf("failed to seed words: %w", err)
	}
	return out.Added, nil
}
