package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the randomness the game needs
type Source interface {
	// Intn returns a value in [0, n)
	Intn(n int) int
}

// Generator provides seedable, goroutine-safe random numbers
type Generator struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the generator
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new generator
func New(cfg *Config) *Generator {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &Generator{
		random: random,
	}
}

// Intn returns a random value in [0, n). n below 1 yields 0.
func (g *Generator) Intn(n int) int {
	if n < 1 {
		return 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.random.Intn(n)
}

// SampleDistinct draws values at random until n distinct ones are collected
// or the candidates are exhausted. Duplicates in candidates count once.
func SampleDistinct(src Source, candidates []string, n int) []string {
	pool := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if !seen[c] {
			seen[c] = true
			pool = append(pool, c)
		}
	}

	picked := make([]string, 0, n)
	for len(picked) < n && len(pool) > 0 {
		i := src.Intn(len(pool))
		picked = append(picked, pool[i])
		pool[i] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}
	return picked
}
