package protocol

// Error codes.
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001

	ErrCodeRoomNotFound = 2001
	ErrCodeRoomFull     = 2002
	ErrCodeNotInRoom    = 2003

	ErrCodeGameNotStarted      = 3001
	ErrCodeOutOfTurn           = 3002
	ErrCodeIllegalCard         = 3003
	ErrCodeInvalidDeclaration  = 3004
	ErrCodeGameAlreadyFinished = 3005
)

// ErrorMessages maps error codes to user-visible text.
var ErrorMessages = map[int]string{
	ErrCodeUnknown:             "unknown error",
	ErrCodeInvalidMsg:          "invalid message format",
	ErrCodeRoomNotFound:        "room not found",
	ErrCodeRoomFull:            "room is full",
	ErrCodeNotInRoom:           "you are not in a room",
	ErrCodeGameNotStarted:      "the game has not started",
	ErrCodeOutOfTurn:           "it is not your turn",
	ErrCodeIllegalCard:         "that card cannot be played",
	ErrCodeInvalidDeclaration:  "invalid trump declaration",
	ErrCodeGameAlreadyFinished: "the game is already finished",
}
