package protocol

import "encoding/json"

// Message is the wire envelope for every command and event.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType identifies a command or event.
type MessageType string

// Client -> server commands.
const (
	MsgPing MessageType = "ping"

	MsgJoinRoom    MessageType = "join_room"
	MsgLeaveRoom   MessageType = "leave_room"
	MsgChooseTrump MessageType = "choose_trump"
	MsgPlayCard    MessageType = "play_card"
	MsgRestartGame MessageType = "restart_game"

	MsgGetStats       MessageType = "get_stats"
	MsgGetLeaderboard MessageType = "get_leaderboard"
)

// Server -> client events.
const (
	MsgConnected MessageType = "connected"
	MsgPong      MessageType = "pong"

	MsgPlayersUpdate  MessageType = "players_update"
	MsgStartGame      MessageType = "start_game"
	MsgYourHand       MessageType = "your_hand"
	MsgPlayersHands   MessageType = "players_hands"
	MsgChooseTrumpAsk MessageType = "choose_trump_ask"
	MsgTrumpChosen    MessageType = "trump_chosen"
	MsgYourTurn       MessageType = "your_turn"
	MsgCardPlayed     MessageType = "card_played"
	MsgTrickWon       MessageType = "trick_won"
	MsgRoundOver      MessageType = "round_over"
	MsgGameOver       MessageType = "game_over"

	MsgStatsResult       MessageType = "stats_result"
	MsgLeaderboardResult MessageType = "leaderboard_result"

	MsgError MessageType = "error"
)
