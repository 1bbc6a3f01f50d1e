package server

import (
	"log"
	"sync"
	"time"

	"github.com/vpenkov/belot-server/internal/apperrors"
	"github.com/vpenkov/belot-server/internal/config"
	"github.com/vpenkov/belot-server/internal/game/belot"
	"github.com/vpenkov/belot-server/internal/protocol"
)

// Seat is one occupied position in a room.
type Seat struct {
	Client ClientConn
	Name   string
}

// Room is one isolated game: four fixed seats and the game state they play
// on. All state behind mu; every command is one atomic mutation.
type Room struct {
	Code      string
	CreatedAt time.Time

	mu      sync.Mutex
	state   RoomState
	removed bool // dropped from the registry, rejects joins
	seats   [belot.NumSeats]*Seat
	game    *belot.Game

	turnTimer *time.Timer
	paceTimer *time.Timer

	manager *RoomManager
}

// RoomManager owns the room registry. Rooms are created on first join and
// destroyed when the last seat empties.
type RoomManager struct {
	cfg         *config.Config
	leaderboard resultRecorder
	rooms       map[string]*Room
	mu          sync.RWMutex
}

// NewRoomManager creates the registry and starts the idle-room sweeper.
func NewRoomManager(cfg *config.Config, leaderboard resultRecorder) *RoomManager {
	rm := &RoomManager{
		cfg:         cfg,
		leaderboard: leaderboard,
		rooms:       make(map[string]*Room),
	}
	go rm.cleanupLoop()
	return rm
}

// JoinRoom seats a client in the room with the given code, creating the
// room on first join. The fourth join starts the game.
func (rm *RoomManager) JoinRoom(client ClientConn, code, name string) error {
	if name == "" {
		name = client.GetName()
	}

	rm.mu.Lock()
	room, exists := rm.rooms[code]
	if !exists {
		room = &Room{
			Code:      code,
			CreatedAt: time.Now(),
			state:     RoomStateWaiting,
			manager:   rm,
		}
		rm.rooms[code] = room
		log.Printf("room %s created", code)
	}
	rm.mu.Unlock()

	return room.join(client, name)
}

// GetRoom returns a room by code, or nil.
func (rm *RoomManager) GetRoom(code string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[code]
}

// LeaveRoom vacates the client's seat in its current room.
func (rm *RoomManager) LeaveRoom(client ClientConn) {
	room := rm.GetRoom(client.GetRoom())
	if room == nil {
		return
	}
	room.leave(client)
}

// removeRoom drops an emptied room from the registry.
func (rm *RoomManager) removeRoom(code string) {
	rm.mu.Lock()
	delete(rm.rooms, code)
	rm.mu.Unlock()
	log.Printf("room %s destroyed", code)
}

// RoomCount returns the number of live rooms.
func (rm *RoomManager) RoomCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}

// cleanupLoop periodically sweeps rooms that sat waiting past the timeout.
func (rm *RoomManager) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rm.sweepIdleRooms(rm.cfg.Game.RoomTimeoutDuration())
	}
}

// sweepIdleRooms removes waiting rooms older than the timeout. Staleness is
// re-checked and the tombstone set under the room lock, so a join serialized
// after the sweep is rejected instead of seating into a removed room.
func (rm *RoomManager) sweepIdleRooms(timeout time.Duration) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	for code, room := range rm.rooms {
		room.mu.Lock()
		if room.removed || room.state != RoomStateWaiting || time.Since(room.CreatedAt) <= timeout {
			room.mu.Unlock()
			continue
		}
		room.removed = true
		for _, seat := range room.seats {
			if seat != nil {
				seat.Client.SetRoom("")
			}
		}
		room.mu.Unlock()

		delete(rm.rooms, code)
		log.Printf("room %s destroyed", code)
	}
}

// join takes the next free seat. The fourth seat starts a fresh game.
func (r *Room) join(client ClientConn, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.removed {
		return apperrors.ErrRoomNotFound
	}
	if r.state != RoomStateWaiting {
		return apperrors.ErrRoomFull
	}

	seat := -1
	for i, s := range r.seats {
		if s == nil && seat == -1 {
			seat = i
		}
		if s != nil && s.Client.GetID() == client.GetID() {
			return apperrors.ErrRoomFull
		}
	}
	if seat == -1 {
		return apperrors.ErrRoomFull
	}

	r.seats[seat] = &Seat{Client: client, Name: name}
	client.SetRoom(r.Code)
	log.Printf("player %s (%s) took seat %d in room %s", name, client.GetID(), seat, r.Code)

	r.broadcast(protocol.MustNewMessage(protocol.MsgPlayersUpdate, protocol.PlayersUpdatePayload{
		Players: r.playerInfos(),
	}))

	if r.seatedCount() == belot.NumSeats {
		r.startGame()
	}
	return nil
}

// leave vacates the client's seat without pausing the round.
func (r *Room) leave(client ClientConn) {
	r.mu.Lock()

	seat := r.seatOf(client)
	if seat == -1 {
		r.mu.Unlock()
		return
	}

	name := r.seats[seat].Name
	r.seats[seat] = nil
	client.SetRoom("")
	log.Printf("player %s left seat %d in room %s", name, seat, r.Code)

	empty := r.seatedCount() == 0
	if empty {
		r.removed = true
		r.stopTimers()
	} else {
		r.broadcast(protocol.MustNewMessage(protocol.MsgPlayersUpdate, protocol.PlayersUpdatePayload{
			Players: r.playerInfos(),
		}))
	}
	r.mu.Unlock()

	if empty {
		r.manager.removeRoom(r.Code)
	}
}

// --- helpers, caller holds r.mu ---

func (r *Room) seatOf(client ClientConn) int {
	for i, s := range r.seats {
		if s != nil && s.Client.GetID() == client.GetID() {
			return i
		}
	}
	return -1
}

func (r *Room) seatedCount() int {
	n := 0
	for _, s := range r.seats {
		if s != nil {
			n++
		}
	}
	return n
}

func (r *Room) playerInfos() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, 0, belot.NumSeats)
	for i, s := range r.seats {
		if s == nil {
			continue
		}
		infos = append(infos, protocol.PlayerInfo{
			ID:   s.Client.GetID(),
			Name: s.Name,
			Seat: i,
			Team: belot.Team(i),
		})
	}
	return infos
}

// broadcast sends a message to every occupied seat.
func (r *Room) broadcast(msg *protocol.Message) {
	for _, s := range r.seats {
		if s != nil {
			s.Client.SendMessage(msg)
		}
	}
}

// sendToSeat unicasts to one seat, if occupied.
func (r *Room) sendToSeat(seat int, msg *protocol.Message) {
	if seat >= 0 && seat < belot.NumSeats && r.seats[seat] != nil {
		r.seats[seat].Client.SendMessage(msg)
	}
}
