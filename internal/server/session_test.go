package server

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpenkov/belot-server/internal/apperrors"
	"github.com/vpenkov/belot-server/internal/game/belot"
	"github.com/vpenkov/belot-server/internal/game/card"
	"github.com/vpenkov/belot-server/internal/protocol"
)

type fakeRecorder struct {
	mu      sync.Mutex
	results map[string]bool
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{results: make(map[string]bool)}
}

func (f *fakeRecorder) RecordGameResult(_ context.Context, playerID, _ string, won bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[playerID] = won
	return nil
}

func (f *fakeRecorder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.results)
}

func TestChooseTrump_OutOfTurn(t *testing.T) {
	rm := NewRoomManager(testConfig(), nil)
	room, clients := fillRoom(t, rm, "ABCD")

	// Seat 0 declares first in the opening round.
	err := room.ChooseTrump(clients[1], "hearts")
	assert.ErrorIs(t, err, apperrors.ErrInvalidDeclaration)

	err = room.ChooseTrump(clients[0], "submarines")
	assert.ErrorIs(t, err, apperrors.ErrInvalidDeclaration)
}

func TestChooseTrump_NotSeated(t *testing.T) {
	rm := NewRoomManager(testConfig(), nil)
	room, _ := fillRoom(t, rm, "ABCD")

	stranger := &MockClient{ID: "px", Name: "Stranger"}
	assert.ErrorIs(t, room.ChooseTrump(stranger, "hearts"), apperrors.ErrNotInRoom)
}

func TestChooseTrump_PassRotates(t *testing.T) {
	rm := NewRoomManager(testConfig(), nil)
	room, clients := fillRoom(t, rm, "ABCD")

	require.NoError(t, room.ChooseTrump(clients[0], ""))

	// The ask moved one seat clockwise.
	assert.Equal(t, 1, clients[1].countOfType(protocol.MsgChooseTrumpAsk))
	room.mu.Lock()
	assert.Equal(t, 1, room.game.AskingSeat())
	room.mu.Unlock()
}

func TestChooseTrump_CommitStartsPlay(t *testing.T) {
	rm := NewRoomManager(testConfig(), nil)
	room, clients := fillRoom(t, rm, "ABCD")

	require.NoError(t, room.ChooseTrump(clients[0], ""))
	require.NoError(t, room.ChooseTrump(clients[1], "hearts"))

	for _, c := range clients {
		msg := c.lastOfType(protocol.MsgTrumpChosen)
		require.NotNil(t, msg)
		payload, err := protocol.ParsePayload[protocol.TrumpChosenPayload](msg)
		require.NoError(t, err)
		assert.Equal(t, "hearts", payload.Trump)
		assert.Equal(t, 1, payload.Seat)

		// Everyone was topped up to a full hand.
		hand := c.lastOfType(protocol.MsgYourHand)
		require.NotNil(t, hand)
		handPayload, err := protocol.ParsePayload[protocol.YourHandPayload](hand)
		require.NoError(t, err)
		assert.Len(t, handPayload.Cards, 8)
	}

	// The seat left of the dealer leads, regardless of who declared.
	assert.Equal(t, 1, clients[0].countOfType(protocol.MsgYourTurn))
	assert.Equal(t, 0, clients[1].countOfType(protocol.MsgYourTurn))

	room.mu.Lock()
	assert.Equal(t, RoomStatePlaying, room.state)
	room.mu.Unlock()
}

func TestChooseTrump_FourPassesVoidsGame(t *testing.T) {
	rm := NewRoomManager(testConfig(), nil)
	room, clients := fillRoom(t, rm, "ABCD")

	for seat := range 4 {
		require.NoError(t, room.ChooseTrump(clients[seat], ""))
	}

	for _, c := range clients {
		msg := c.lastOfType(protocol.MsgGameOver)
		require.NotNil(t, msg)
		payload, err := protocol.ParsePayload[protocol.GameOverPayload](msg)
		require.NoError(t, err)
		assert.True(t, payload.Voided)
		assert.Equal(t, -1, payload.WinnerTeam)
		assert.Equal(t, [2]int{0, 0}, payload.TotalPoints)
	}

	assert.ErrorIs(t, room.ChooseTrump(clients[0], "hearts"), apperrors.ErrGameAlreadyFinished)
}

func TestPlayCard_BeforeDeclaration(t *testing.T) {
	rm := NewRoomManager(testConfig(), nil)
	room, clients := fillRoom(t, rm, "ABCD")

	err := room.PlayCard(clients[0], protocol.CardInfo{Suit: "spades", Rank: "A"})
	assert.ErrorIs(t, err, apperrors.ErrGameNotStarted)
}

func TestPlayCard_EmitsCardPlayed(t *testing.T) {
	rm := NewRoomManager(testConfig(), nil)
	room, clients := fillRoom(t, rm, "ABCD")

	require.NoError(t, room.ChooseTrump(clients[0], "spades"))

	room.mu.Lock()
	lead := room.game.CurrentTurn()
	c := room.game.LegalPlays(lead)[0]
	room.mu.Unlock()

	require.NoError(t, room.PlayCard(clients[lead], cardToInfo(c)))

	for _, cl := range clients {
		msg := cl.lastOfType(protocol.MsgCardPlayed)
		require.NotNil(t, msg)
		payload, err := protocol.ParsePayload[protocol.CardPlayedPayload](msg)
		require.NoError(t, err)
		assert.Equal(t, lead, payload.Seat)
		assert.Equal(t, cardToInfo(c), payload.Card)
		assert.Equal(t, 7, payload.CardsLeft)
	}
}

// driveGame plays rooms to completion by always declaring the given trump
// and playing the first legal card. Returns when the room is finished.
func driveGame(t *testing.T, room *Room, clients []*MockClient, trump string) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)

	for {
		require.False(t, time.Now().After(deadline), "game did not finish in time")

		room.mu.Lock()
		state := room.state
		action := 0
		seat := -1
		var play card.Card
		switch {
		case state == RoomStateDeclaring:
			action = 1
			seat = room.game.AskingSeat()
		case state == RoomStatePlaying && room.game.Phase() == belot.PhasePlaying:
			action = 2
			seat = room.game.CurrentTurn()
			play = room.game.LegalPlays(seat)[0]
		}
		room.mu.Unlock()

		switch action {
		case 1:
			require.NoError(t, room.ChooseTrump(clients[seat], trump))
		case 2:
			require.NoError(t, room.PlayCard(clients[seat], cardToInfo(play)))
		default:
			if state == RoomStateFinished {
				return
			}
			// Waiting out the pacing pause between rounds.
			time.Sleep(time.Millisecond)
		}
	}
}

func TestFullGame(t *testing.T) {
	recorder := newFakeRecorder()
	rm := NewRoomManager(testConfig(), recorder)
	room, clients := fillRoom(t, rm, "ABCD")

	driveGame(t, room, clients, "spades")

	msg := clients[0].lastOfType(protocol.MsgGameOver)
	require.NotNil(t, msg)
	payload, err := protocol.ParsePayload[protocol.GameOverPayload](msg)
	require.NoError(t, err)

	assert.False(t, payload.Voided)
	require.Contains(t, []int{0, 1}, payload.WinnerTeam)
	assert.GreaterOrEqual(t, payload.TotalPoints[payload.WinnerTeam], belot.DefaultWinThreshold)
	assert.Greater(t, payload.TotalPoints[payload.WinnerTeam], payload.TotalPoints[1-payload.WinnerTeam])

	// Every full round hands out 162 points.
	rounds := clients[0].countOfType(protocol.MsgRoundOver)
	assert.Equal(t, rounds*162, payload.TotalPoints[0]+payload.TotalPoints[1])

	// Eight tricks per round, all broadcast.
	assert.Equal(t, rounds*belot.TricksPerRound, clients[0].countOfType(protocol.MsgTrickWon))

	// Results reach the leaderboard, winners and losers alike.
	require.Eventually(t, func() bool { return recorder.count() == 4 }, time.Second, 5*time.Millisecond)
	for seat, c := range clients {
		recorder.mu.Lock()
		won := recorder.results[c.ID]
		recorder.mu.Unlock()
		assert.Equal(t, belot.Team(seat) == payload.WinnerTeam, won, "seat %d", seat)
	}

	assert.ErrorIs(t, room.PlayCard(clients[0], protocol.CardInfo{Suit: "spades", Rank: "7"}),
		apperrors.ErrGameAlreadyFinished)
}

func TestFullGame_AllTrumps(t *testing.T) {
	rm := NewRoomManager(testConfig(), nil)
	room, clients := fillRoom(t, rm, "ABCD")

	driveGame(t, room, clients, "all-trump")

	payload, err := protocol.ParsePayload[protocol.GameOverPayload](clients[0].lastOfType(protocol.MsgGameOver))
	require.NoError(t, err)
	rounds := clients[0].countOfType(protocol.MsgRoundOver)
	assert.Equal(t, rounds*258, payload.TotalPoints[0]+payload.TotalPoints[1])
}

func TestAutoDeclare_PassesForSilentSeat(t *testing.T) {
	rm := NewRoomManager(testConfig(), nil)
	room, clients := fillRoom(t, rm, "ABCD")

	room.autoDeclare(0)

	assert.Equal(t, 1, clients[1].countOfType(protocol.MsgChooseTrumpAsk))

	// A stale timer for a seat no longer asked must do nothing.
	room.autoDeclare(0)
	assert.Equal(t, 1, clients[1].countOfType(protocol.MsgChooseTrumpAsk))
	room.mu.Lock()
	assert.Equal(t, 1, room.game.AskingSeat())
	room.mu.Unlock()
}

func TestAutoPlay_PlaysWeakestLegalCard(t *testing.T) {
	rm := NewRoomManager(testConfig(), nil)
	room, clients := fillRoom(t, rm, "ABCD")
	require.NoError(t, room.ChooseTrump(clients[0], "spades"))

	room.mu.Lock()
	lead := room.game.CurrentTurn()
	legal := room.game.LegalPlays(lead)
	contract := room.game.Contract()
	room.mu.Unlock()

	room.autoPlay(lead)

	msg := clients[0].lastOfType(protocol.MsgCardPlayed)
	require.NotNil(t, msg)
	payload, err := protocol.ParsePayload[protocol.CardPlayedPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, lead, payload.Seat)

	played, err := infoToCard(payload.Card)
	require.NoError(t, err)
	for _, c := range legal {
		assert.LessOrEqual(t, belot.CardPoints(played, contract), belot.CardPoints(c, contract))
	}

	// Stale timer after the turn moved on.
	before := clients[0].countOfType(protocol.MsgCardPlayed)
	room.autoPlay(lead)
	assert.Equal(t, before, clients[0].countOfType(protocol.MsgCardPlayed))
}

func TestRestart(t *testing.T) {
	rm := NewRoomManager(testConfig(), nil)
	room, clients := fillRoom(t, rm, "ABCD")

	stranger := &MockClient{ID: "px", Name: "Stranger"}
	assert.ErrorIs(t, room.Restart(stranger), apperrors.ErrNotInRoom)

	require.NoError(t, room.ChooseTrump(clients[0], "clubs"))
	require.NoError(t, room.Restart(clients[2]))

	room.mu.Lock()
	assert.Equal(t, RoomStateDeclaring, room.state)
	assert.Equal(t, [2]int{0, 0}, room.game.Scores())
	room.mu.Unlock()

	assert.Equal(t, 2, clients[0].countOfType(protocol.MsgStartGame))

	// Fresh deal back to five cards.
	hand := clients[0].lastOfType(protocol.MsgYourHand)
	payload, err := protocol.ParsePayload[protocol.YourHandPayload](hand)
	require.NoError(t, err)
	assert.Len(t, payload.Cards, 5)
}

func TestRestart_AfterVoidedGame(t *testing.T) {
	rm := NewRoomManager(testConfig(), nil)
	room, clients := fillRoom(t, rm, "ABCD")

	for seat := range 4 {
		require.NoError(t, room.ChooseTrump(clients[seat], ""))
	}
	require.NoError(t, room.Restart(clients[0]))

	room.mu.Lock()
	assert.Equal(t, RoomStateDeclaring, room.state)
	room.mu.Unlock()
}
