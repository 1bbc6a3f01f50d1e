package apperrors

import (
	"github.com/vpenkov/belot-server/internal/protocol"
)

// GameError is a rejected command. It carries the protocol error code the
// handler layer sends back to the offending client.
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// Predefined errors.
var (
	ErrRoomNotFound        = &GameError{Code: protocol.ErrCodeRoomNotFound, Message: "room not found"}
	ErrRoomFull            = &GameError{Code: protocol.ErrCodeRoomFull, Message: "room is full"}
	ErrNotInRoom           = &GameError{Code: protocol.ErrCodeNotInRoom, Message: "you are not in a room"}
	ErrGameNotStarted      = &GameError{Code: protocol.ErrCodeGameNotStarted, Message: "the game has not started"}
	ErrOutOfTurn           = &GameError{Code: protocol.ErrCodeOutOfTurn, Message: "it is not your turn"}
	ErrIllegalCard         = &GameError{Code: protocol.ErrCodeIllegalCard, Message: "that card cannot be played"}
	ErrInvalidDeclaration  = &GameError{Code: protocol.ErrCodeInvalidDeclaration, Message: "invalid trump declaration"}
	ErrGameAlreadyFinished = &GameError{Code: protocol.ErrCodeGameAlreadyFinished, Message: "the game is already finished"}
)
