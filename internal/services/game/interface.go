package game

import "context"

// Service defines the round coordinator. Operations on one room are
// serialized; rooms never block each other.
type Service interface {
	// CreateRoom allocates a room code and joins the creator as host
	CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error)

	// JoinRoom adds a player to a room, creating it when auto-create is on
	JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error)

	// LeaveRoom removes a player from one room
	LeaveRoom(ctx context.Context, input *LeaveRoomInput) (*LeaveRoomOutput, error)

	// Disconnect removes a player from every room they are in
	Disconnect(ctx context.Context, input *DisconnectInput) (*DisconnectOutput, error)

	// StartRound offers words to the next drawer. Host only.
	StartRound(ctx context.Context, input *StartRoundInput) (*StartRoundOutput, error)

	// ChooseWord starts the round with one of the offered words
	ChooseWord(ctx context.Context, input *ChooseWordInput) (*ChooseWordOutput, error)

	// Guess checks a guess, broadcasting it as chat when it misses
	Guess(ctx context.Context, input *GuessInput) (*GuessOutput, error)

	// RelayDrawing forwards the drawer's strokes to the rest of the room
	RelayDrawing(ctx context.Context, input *RelayDrawingInput) (*RelayDrawingOutput, error)

	// GetRoom returns a snapshot of a room and its phase
	GetRoom(ctx context.Context, input *GetRoomInput) (*GetRoomOutput, error)

	// Shutdown cancels every pending timer
	Shutdown()
}
