package server

import "github.com/vpenkov/belot-server/internal/protocol"

type MockClient struct {
	ID       string
	Name     string
	RoomCode string
	Messages []*protocol.Message
}

func (m *MockClient) GetID() string {
	return m.ID
}

func (m *MockClient) GetName() string {
	return m.Name
}

func (m *MockClient) GetRoom() string {
	return m.RoomCode
}

func (m *MockClient) SetRoom(roomCode string) {
	m.RoomCode = roomCode
}

func (m *MockClient) SendMessage(msg *protocol.Message) {
	m.Messages = append(m.Messages, msg)
}

func (m *MockClient) Close() {
	// No-op for mock
}

// lastOfType returns the most recent message of the given type, or nil.
func (m *MockClient) lastOfType(t protocol.MessageType) *protocol.Message {
	for i := len(m.Messages) - 1; i >= 0; i-- {
		if m.Messages[i].Type == t {
			return m.Messages[i]
		}
	}
	return nil
}

// countOfType returns how many messages of the given type were received.
func (m *MockClient) countOfType(t protocol.MessageType) int {
	n := 0
	for _, msg := range m.Messages {
		if msg.Type == t {
			n++
		}
	}
	return n
}
