package word

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

// DefaultWordsKey is the Redis set holding the word list
const DefaultWordsKey = "words"

// Config holds configuration for the Redis word repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Key of the set holding the words
	WordsKey string
}

// redisRepository implements the Repository interface using a Redis set
type redisRepository struct {
	client   *redis.Client
	wordsKey string
}

// NewRedis creates a new Redis-backed word repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	key := cfg.WordsKey
	if key == "" {
		key = DefaultWordsKey
	}

	return &redisRepository{
		client:   cfg.RedisClient,
		wordsKey: key,
	}, nil
}

// ListWords returns the members of the words set in a stable order
func (r *redisRepository) ListWords(ctx context.Context) ([]string, error) {
	words, err := r.client.SMembers(ctx, r.wordsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}

	sort.Strings(words)
	return words, nil
}

// AddWords adds trimmed, non-empty words to the set
func (r *redisRepository) AddWords(ctx context.Context, input *AddWordsInput) (*AddWordsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	members := make([]interface{}, 0, len(input.Words))
	for _, w := range input.Words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		members = append(members, w)
	}

	if len(members) == 0 {
		return &AddWordsOutput{}, nil
	}

	added, err := r.client.SAdd(ctx, r.wordsKey, members...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to add words: %w", err)
	}

	return &AddWordsOutput{Added: int(added)}, nil
}
