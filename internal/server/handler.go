package server

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/vpenkov/belot-server/internal/apperrors"
	"github.com/vpenkov/belot-server/internal/protocol"
	"github.com/vpenkov/belot-server/internal/server/storage"
)

// Handler routes decoded messages to their command handlers.
type Handler struct {
	roomManager *RoomManager
	leaderboard *storage.LeaderboardManager // nil when stats are disabled
	handlers    map[protocol.MessageType]handlerFunc
}

type handlerFunc func(client ClientConn, msg *protocol.Message)

// NewHandler wires the command table.
func NewHandler(roomManager *RoomManager, leaderboard *storage.LeaderboardManager) *Handler {
	h := &Handler{
		roomManager: roomManager,
		leaderboard: leaderboard,
	}
	h.handlers = map[protocol.MessageType]handlerFunc{
		protocol.MsgPing: h.handlePing,

		protocol.MsgJoinRoom:  h.handleJoinRoom,
		protocol.MsgLeaveRoom: func(c ClientConn, _ *protocol.Message) { h.handleLeaveRoom(c) },

		protocol.MsgChooseTrump: h.handleChooseTrump,
		protocol.MsgPlayCard:    h.handlePlayCard,
		protocol.MsgRestartGame: h.handleRestartGame,

		protocol.MsgGetStats:       func(c ClientConn, _ *protocol.Message) { h.handleGetStats(c) },
		protocol.MsgGetLeaderboard: h.handleGetLeaderboard,
	}
	return h
}

// Handle dispatches one message. Unknown types get an error unicast.
func (h *Handler) Handle(client ClientConn, msg *protocol.Message) {
	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	log.Printf("unknown message type %q from %s", msg.Type, client.GetID())
	client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
}

// sendGameError maps engine errors onto wire error codes.
func sendGameError(client ClientConn, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(protocol.NewErrorMessage(gameErr.Code))
		return
	}
	client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
}

func (h *Handler) handlePing(client ClientConn, msg *protocol.Message) {
	// The payload is optional; a bare ping echoes a zero client timestamp.
	var clientTS int64
	if payload, err := protocol.ParsePayload[protocol.PingPayload](msg); err == nil {
		clientTS = payload.Timestamp
	}
	client.SendMessage(protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: clientTS,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

func (h *Handler) handleJoinRoom(client ClientConn, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil || payload.RoomCode == "" {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if client.GetRoom() != "" {
		h.roomManager.LeaveRoom(client)
	}

	if err := h.roomManager.JoinRoom(client, payload.RoomCode, payload.PlayerName); err != nil {
		sendGameError(client, err)
	}
}

func (h *Handler) handleLeaveRoom(client ClientConn) {
	h.roomManager.LeaveRoom(client)
}

func (h *Handler) handleChooseTrump(client ClientConn, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ChooseTrumpPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	room, code := h.roomForClient(client, payload.RoomCode)
	if room == nil {
		client.SendMessage(protocol.NewErrorMessage(code))
		return
	}

	if err := room.ChooseTrump(client, payload.Trump); err != nil {
		sendGameError(client, err)
	}
}

func (h *Handler) handlePlayCard(client ClientConn, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PlayCardPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	room, code := h.roomForClient(client, payload.RoomCode)
	if room == nil {
		client.SendMessage(protocol.NewErrorMessage(code))
		return
	}

	if err := room.PlayCard(client, payload.Card); err != nil {
		sendGameError(client, err)
	}
}

func (h *Handler) handleRestartGame(client ClientConn, msg *protocol.Message) {
	// The room code is optional; absent, the command targets the sender's
	// current room.
	code := client.GetRoom()
	if payload, err := protocol.ParsePayload[protocol.RestartGamePayload](msg); err == nil && payload.RoomCode != "" {
		code = payload.RoomCode
	}
	if code == "" {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNotInRoom))
		return
	}

	room, errCode := h.roomForClient(client, code)
	if room == nil {
		client.SendMessage(protocol.NewErrorMessage(errCode))
		return
	}

	if err := room.Restart(client); err != nil {
		sendGameError(client, err)
	}
}

// roomForClient resolves the room a command targets, requiring the client
// to actually be seated there. On failure the error code distinguishes a
// missing room from a room the client is not part of.
func (h *Handler) roomForClient(client ClientConn, code string) (*Room, int) {
	room := h.roomManager.GetRoom(code)
	if room == nil {
		return nil, protocol.ErrCodeRoomNotFound
	}
	if client.GetRoom() != code {
		return nil, protocol.ErrCodeNotInRoom
	}
	return room, 0
}

func (h *Handler) handleGetStats(client ClientConn) {
	if h.leaderboard == nil {
		client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, "stats are not enabled"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats, err := h.leaderboard.GetPlayerStats(ctx, client.GetID())
	if err != nil {
		log.Printf("failed to load stats for %s: %v", client.GetID(), err)
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
		return
	}
	if stats == nil {
		stats = &storage.PlayerStats{PlayerID: client.GetID(), PlayerName: client.GetName()}
	}

	rank, err := h.leaderboard.GetRank(ctx, client.GetID())
	if err != nil {
		log.Printf("failed to load rank for %s: %v", client.GetID(), err)
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgStatsResult, protocol.StatsResultPayload{
		PlayerID:   stats.PlayerID,
		PlayerName: stats.PlayerName,
		TotalGames: stats.TotalGames,
		Wins:       stats.Wins,
		Losses:     stats.Losses,
		WinRate:    stats.WinRate(),
		Rank:       rank,
	}))
}

func (h *Handler) handleGetLeaderboard(client ClientConn, msg *protocol.Message) {
	if h.leaderboard == nil {
		client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, "stats are not enabled"))
		return
	}

	payload, err := protocol.ParsePayload[protocol.GetLeaderboardPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entries, err := h.leaderboard.GetLeaderboard(ctx, payload.Offset, payload.Limit)
	if err != nil {
		log.Printf("failed to load leaderboard: %v", err)
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
		return
	}

	result := make([]protocol.LeaderboardEntry, len(entries))
	for i, e := range entries {
		result[i] = protocol.LeaderboardEntry{
			Rank:       e.Rank,
			PlayerID:   e.PlayerID,
			PlayerName: e.PlayerName,
			Wins:       e.Wins,
			Games:      e.Games,
		}
	}
	client.SendMessage(protocol.MustNewMessage(protocol.MsgLeaderboardResult, protocol.LeaderboardResultPayload{
		Entries: result,
	}))
}
