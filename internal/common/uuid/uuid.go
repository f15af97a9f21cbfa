package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/sketchquest/internal/common/uuid UUID

// UUID issues connection IDs. A connection ID is also the player ID for
// every room the connection joins.
type UUID interface {
	NewUUID() string
}

// Generator issues random version 4 IDs
type Generator struct{}

func New() *Generator {
	return &Generator{}
}

// NewUUID returns a new player ID
func (g *Generator) NewUUID() string {
	return uuid.NewString()
}
