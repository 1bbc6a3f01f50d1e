package protocol

// --- Client request payloads ---

// PingPayload is a heartbeat request.
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // client clock, milliseconds
}

// JoinRoomPayload asks to take a seat in a room, creating it on first join.
type JoinRoomPayload struct {
	RoomCode   string `json:"room_code"`
	PlayerName string `json:"player_name"`
}

// ChooseTrumpPayload declares a contract or passes. An empty Trump is a pass.
type ChooseTrumpPayload struct {
	RoomCode string `json:"room_code"`
	Trump    string `json:"trump,omitempty"` // suit name, "no-trump" or "all-trump"
}

// PlayCardPayload plays one card from the sender's hand.
type PlayCardPayload struct {
	RoomCode string   `json:"room_code"`
	Card     CardInfo `json:"card"`
}

// RestartGamePayload restarts a finished game with the same seats.
type RestartGamePayload struct {
	RoomCode string `json:"room_code"`
}

// GetLeaderboardPayload requests a slice of the leaderboard.
type GetLeaderboardPayload struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// --- Server event payloads ---

// ConnectedPayload confirms the connection and assigns identity.
type ConnectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PongPayload is the heartbeat response.
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
	ServerTimestamp int64 `json:"server_timestamp"`
}

// PlayersUpdatePayload lists the seated players after a join or leave.
type PlayersUpdatePayload struct {
	Players []PlayerInfo `json:"players"`
}

// YourHandPayload carries the receiving seat's cards, and only that seat's.
type YourHandPayload struct {
	Cards []CardInfo `json:"cards"`
}

// PlayersHandsPayload carries hand-size metadata. Card identities of other
// seats are never included.
type PlayersHandsPayload struct {
	SeatIndex    int   `json:"seat_index"` // the receiver's own seat
	TotalPlayers int   `json:"total_players"`
	CardCounts   []int `json:"card_counts"` // indexed by seat
}

// ChooseTrumpAskPayload prompts the asked seat to declare.
type ChooseTrumpAskPayload struct {
	Seat    int `json:"seat"`
	Timeout int `json:"timeout"` // seconds, 0 when disabled
}

// TrumpChosenPayload announces the committed contract.
type TrumpChosenPayload struct {
	Trump string `json:"trump"`
	Seat  int    `json:"seat"` // the declarer
}

// YourTurnPayload prompts the receiving seat to play.
type YourTurnPayload struct {
	Timeout int `json:"timeout"` // seconds, 0 when disabled
}

// CardPlayedPayload announces an accepted play.
type CardPlayedPayload struct {
	Card      CardInfo `json:"card"`
	Seat      int      `json:"seat"`
	CardsLeft int      `json:"cards_left"`
}

// TrickWonPayload announces a resolved trick.
type TrickWonPayload struct {
	WinnerSeat int    `json:"winner_seat"`
	Team       int    `json:"team"`
	Points     int    `json:"points"`      // this trick
	TeamPoints [2]int `json:"team_points"` // round running totals
}

// RoundOverPayload announces a fully played round.
type RoundOverPayload struct {
	RoundPoints [2]int `json:"round_points"`
	TotalPoints [2]int `json:"total_points"`
}

// GameOverPayload ends a game, either with a winner or voided after four
// passes on the trump declaration.
type GameOverPayload struct {
	Voided      bool   `json:"voided,omitempty"`
	WinnerTeam  int    `json:"winner_team"` // -1 when voided
	TotalPoints [2]int `json:"total_points"`
}

// ErrorPayload is the negative acknowledgment sent only to the offender.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StatsResultPayload is a player's own record.
type StatsResultPayload struct {
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	TotalGames int     `json:"total_games"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	WinRate    float64 `json:"win_rate"`
	Rank       int     `json:"rank"`
}

// LeaderboardResultPayload is a slice of the win leaderboard.
type LeaderboardResultPayload struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardEntry is one leaderboard row.
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Wins       int    `json:"wins"`
	Games      int    `json:"games"`
}

// --- Common data structures ---

// PlayerInfo describes one seated player.
type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Seat int    `json:"seat"`
	Team int    `json:"team"`
}

// CardInfo is the wire form of a card.
type CardInfo struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}
