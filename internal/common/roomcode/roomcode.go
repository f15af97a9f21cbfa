package roomcode

import (
	"strings"

	"github.com/KirkDiggler/sketchquest/internal/random"
)

const (
	// Alphabet holds the characters a room code is made of
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// DefaultLength is the number of characters in a room code
	DefaultLength = 5
)

//go:generate mockgen -package=mocks -destination=mocks/mock_generator.go github.com/KirkDiggler/sketchquest/internal/common/roomcode Generator
type Generator interface {
	NewCode() string
}

// DefaultGenerator builds short codes from Alphabet. Codes are not checked
// for collisions here; callers check them against live rooms.
type DefaultGenerator struct {
	source random.Source
	length int
}

// New creates a generator producing codes of the given length
func New(source random.Source, length int) *DefaultGenerator {
	if length < 1 {
		length = DefaultLength
	}
	return &DefaultGenerator{
		source: source,
		length: length,
	}
}

// NewCode returns a fresh random code
func (g *DefaultGenerator) NewCode() string {
	var builder strings.Builder
	builder.Grow(g.length)

	for range g.length {
		builder.WriteByte(Alphabet[g.source.Intn(len(Alphabet))])
	}

	return builder.String()
}
