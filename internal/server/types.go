package server

import (
	"github.com/vpenkov/belot-server/internal/protocol"
)

// ClientConn is the connection surface the room layer needs. *Client
// implements it over a WebSocket; tests substitute an in-memory mock.
type ClientConn interface {
	GetID() string
	GetName() string
	GetRoom() string
	SetRoom(roomCode string)
	SendMessage(msg *protocol.Message)
	Close()
}

// RoomState is the lifecycle state of a room.
type RoomState int

const (
	RoomStateWaiting   RoomState = iota // waiting for players
	RoomStateDeclaring                  // trump declaration in progress
	RoomStatePlaying                    // trick play in progress
	RoomStateFinished                   // game over or voided
)
