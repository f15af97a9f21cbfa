package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrGameNotFound      GameError = "no game"
	ErrNotHost           GameError = "only the host can start a round"
	ErrNoWords           GameError = "no words available"
	ErrGameFinished      GameError = "game already finished"
	ErrRoomFull          GameError = "room full"
	ErrRoundInProgress   GameError = "round already in progress"
	ErrNoWordOffer       GameError = "no word choice pending"
	ErrNotDrawer         GameError = "player is not the drawer"
	ErrWordNotOffered    GameError = "word was not offered"
	ErrPlayerNotInRoom   GameError = "player not in room"
	ErrEmptyMessage      GameError = "message cannot be empty"
	ErrRoomCodeExhausted GameError = "could not allocate a room code"
	ErrNilConfig         GameError = "config cannot be nil"
	ErrNilSessionRepo    GameError = "session repository cannot be nil"
	ErrNilWordRepo       GameError = "word repository cannot be nil"
	ErrNilBroadcaster    GameError = "broadcaster cannot be nil"
	ErrNilClock          GameError = "clock cannot be nil"
	ErrNilRoomCodes      GameError = "room code generator cannot be nil"
	ErrNilRandom         GameError = "random source cannot be nil"
)
