package server

import (
	"context"
	"log"
	"time"

	"github.com/vpenkov/belot-server/internal/apperrors"
	"github.com/vpenkov/belot-server/internal/game/belot"
	"github.com/vpenkov/belot-server/internal/game/card"
	"github.com/vpenkov/belot-server/internal/protocol"
)

// resultRecorder receives finished-game results. Nil disables recording.
type resultRecorder interface {
	RecordGameResult(ctx context.Context, playerID, playerName string, won bool) error
}

// startGame deals a fresh game for the four seated players. Caller holds
// r.mu.
func (r *Room) startGame() {
	r.game = belot.NewGame(r.manager.cfg.Game.WinThreshold)
	r.broadcast(protocol.MustNewMessage(protocol.MsgStartGame, nil))
	r.dealRound()
	log.Printf("room %s: game started", r.Code)
}

// dealRound shuffles, deals and opens the declaration rotation. Caller
// holds r.mu.
func (r *Room) dealRound() {
	deck := card.NewDeck()
	deck.Shuffle()
	if err := r.game.Deal(deck); err != nil {
		// Only reachable through a programming error; the deck is fresh.
		log.Printf("room %s: deal failed: %v", r.Code, err)
		return
	}

	r.state = RoomStateDeclaring
	r.sendHands()
	r.promptDeclaration()
}

// sendHands unicasts each seat its own cards plus hand-size metadata. Card
// identities of other seats are never sent anywhere.
func (r *Room) sendHands() {
	counts := r.game.CardCounts()
	for seat := range r.seats {
		r.sendToSeat(seat, protocol.MustNewMessage(protocol.MsgYourHand, protocol.YourHandPayload{
			Cards: cardsToInfos(r.game.Hand(seat)),
		}))
		r.sendToSeat(seat, protocol.MustNewMessage(protocol.MsgPlayersHands, protocol.PlayersHandsPayload{
			SeatIndex:    seat,
			TotalPlayers: belot.NumSeats,
			CardCounts:   counts[:],
		}))
	}
}

// promptDeclaration asks the current seat to declare and arms the
// auto-pass timer. Caller holds r.mu.
func (r *Room) promptDeclaration() {
	asking := r.game.AskingSeat()
	timeout := r.manager.cfg.Game.DeclareTimeout

	r.sendToSeat(asking, protocol.MustNewMessage(protocol.MsgChooseTrumpAsk, protocol.ChooseTrumpAskPayload{
		Seat:    asking,
		Timeout: timeout,
	}))

	if timeout > 0 {
		r.turnTimer = time.AfterFunc(r.manager.cfg.Game.DeclareTimeoutDuration(), func() {
			r.autoDeclare(asking)
		})
	}
}

// ChooseTrump applies a declaration command. An empty trump is a pass.
func (r *Room) ChooseTrump(client ClientConn, trump string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat := r.seatOf(client)
	if seat == -1 {
		return apperrors.ErrNotInRoom
	}
	return r.declare(seat, trump)
}

// declare advances the declaration state machine. Caller holds r.mu.
func (r *Room) declare(seat int, trump string) error {
	if r.state == RoomStateFinished {
		return apperrors.ErrGameAlreadyFinished
	}
	if r.state != RoomStateDeclaring {
		return apperrors.ErrGameNotStarted
	}

	var contract belot.Contract
	pass := trump == ""
	if !pass {
		var err error
		contract, err = belot.ParseContract(trump)
		if err != nil {
			return apperrors.ErrInvalidDeclaration
		}
	}

	res, err := r.game.Declare(seat, contract, pass)
	if err != nil {
		return err
	}
	r.stopTimers()

	switch {
	case res.Committed:
		log.Printf("room %s: seat %d declared %s", r.Code, seat, res.Contract)
		r.broadcast(protocol.MustNewMessage(protocol.MsgTrumpChosen, protocol.TrumpChosenPayload{
			Trump: res.Contract.String(),
			Seat:  res.Declarer,
		}))
		r.state = RoomStatePlaying
		r.sendHands() // supplemental cards
		r.promptTurn(res.LeadSeat)

	case res.Voided:
		log.Printf("room %s: all seats passed, round voided", r.Code)
		r.state = RoomStateFinished
		r.broadcast(protocol.MustNewMessage(protocol.MsgGameOver, protocol.GameOverPayload{
			Voided:      true,
			WinnerTeam:  -1,
			TotalPoints: r.game.Scores(),
		}))

	default:
		r.promptDeclaration()
	}
	return nil
}

// autoDeclare passes on behalf of a seat that let the timer expire.
func (r *Room) autoDeclare(seat int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != RoomStateDeclaring || r.game.AskingSeat() != seat {
		return
	}
	log.Printf("room %s: seat %d declaration timed out, auto-pass", r.Code, seat)
	_ = r.declare(seat, "")
}

// promptTurn tells a seat it is on lead and arms the auto-play timer.
// Caller holds r.mu.
func (r *Room) promptTurn(seat int) {
	timeout := r.manager.cfg.Game.TurnTimeout
	r.sendToSeat(seat, protocol.MustNewMessage(protocol.MsgYourTurn, protocol.YourTurnPayload{
		Timeout: timeout,
	}))

	if timeout > 0 {
		r.turnTimer = time.AfterFunc(r.manager.cfg.Game.TurnTimeoutDuration(), func() {
			r.autoPlay(seat)
		})
	}
}

// PlayCard applies a play command.
func (r *Room) PlayCard(client ClientConn, info protocol.CardInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat := r.seatOf(client)
	if seat == -1 {
		return apperrors.ErrNotInRoom
	}

	c, err := infoToCard(info)
	if err != nil {
		return apperrors.ErrIllegalCard
	}
	return r.play(seat, c)
}

// play runs one card through the engine and emits the resulting events.
// Caller holds r.mu.
func (r *Room) play(seat int, c card.Card) error {
	if r.state == RoomStateFinished {
		return apperrors.ErrGameAlreadyFinished
	}
	if r.state != RoomStatePlaying {
		return apperrors.ErrGameNotStarted
	}

	res, err := r.game.Play(seat, c)
	if err != nil {
		return err
	}
	r.stopTimers()

	r.broadcast(protocol.MustNewMessage(protocol.MsgCardPlayed, protocol.CardPlayedPayload{
		Card:      cardToInfo(res.Card),
		Seat:      res.Seat,
		CardsLeft: res.CardsLeft,
	}))

	if !res.TrickComplete {
		r.promptTurn(res.NextTurn)
		return nil
	}

	r.broadcast(protocol.MustNewMessage(protocol.MsgTrickWon, protocol.TrickWonPayload{
		WinnerSeat: res.WinnerSeat,
		Team:       res.WinnerTeam,
		Points:     res.TrickPoints,
		TeamPoints: res.TeamPoints,
	}))

	if !res.RoundComplete {
		// Brief pause before the next prompt so clients can render the
		// played trick. Presentation only; the state is already final.
		winner := res.WinnerSeat
		delay := r.manager.cfg.Game.TrickDelayDuration()
		r.paceTimer = time.AfterFunc(delay, func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if r.state == RoomStatePlaying && r.game.CurrentTurn() == winner {
				r.promptTurn(winner)
			}
		})
		return nil
	}

	r.broadcast(protocol.MustNewMessage(protocol.MsgRoundOver, protocol.RoundOverPayload{
		RoundPoints: res.RoundPoints,
		TotalPoints: res.TotalPoints,
	}))
	log.Printf("room %s: round over %d:%d (total %d:%d)", r.Code,
		res.RoundPoints[0], res.RoundPoints[1], res.TotalPoints[0], res.TotalPoints[1])

	if res.GameOver {
		r.state = RoomStateFinished
		r.broadcast(protocol.MustNewMessage(protocol.MsgGameOver, protocol.GameOverPayload{
			WinnerTeam:  res.GameWinner,
			TotalPoints: res.TotalPoints,
		}))
		log.Printf("room %s: game over, team %d wins", r.Code, res.GameWinner)
		r.recordResults(res.GameWinner)
		return nil
	}

	// Next round after the pacing pause.
	delay := r.manager.cfg.Game.TrickDelayDuration()
	r.paceTimer = time.AfterFunc(delay, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.state == RoomStatePlaying && r.game.Phase() == belot.PhaseIdle {
			r.dealRound()
		}
	})
	return nil
}

// autoPlay plays the weakest legal card for a seat that let the timer
// expire, so an abandoned seat cannot stall the room.
func (r *Room) autoPlay(seat int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != RoomStatePlaying || r.game.CurrentTurn() != seat {
		return
	}

	legal := r.game.LegalPlays(seat)
	if len(legal) == 0 {
		return
	}
	contract := r.game.Contract()
	lowest := legal[0]
	for _, c := range legal[1:] {
		if belot.CardPoints(c, contract) < belot.CardPoints(lowest, contract) {
			lowest = c
		}
	}

	log.Printf("room %s: seat %d turn timed out, auto-playing %s", r.Code, seat, lowest)
	_ = r.play(seat, lowest)
}

// Restart re-seeds a fresh game for the same seated players, resetting
// cumulative scores to zero.
func (r *Room) Restart(client ClientConn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seatOf(client) == -1 {
		return apperrors.ErrNotInRoom
	}
	if r.seatedCount() != belot.NumSeats {
		return apperrors.ErrGameNotStarted
	}

	r.stopTimers()
	log.Printf("room %s: restart requested by %s", r.Code, client.GetID())
	r.startGame()
	return nil
}

// recordResults pushes the finished game to the leaderboard. Failures only
// log; play is never affected by the stats store.
func (r *Room) recordResults(winnerTeam int) {
	recorder := r.manager.leaderboard
	if recorder == nil {
		return
	}

	type result struct {
		id, name string
		won      bool
	}
	results := make([]result, 0, belot.NumSeats)
	for seat, s := range r.seats {
		if s != nil {
			results = append(results, result{
				id:   s.Client.GetID(),
				name: s.Name,
				won:  belot.Team(seat) == winnerTeam,
			})
		}
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, res := range results {
			if err := recorder.RecordGameResult(ctx, res.id, res.name, res.won); err != nil {
				log.Printf("failed to record game result for %s: %v", res.id, err)
			}
		}
	}()
}

// stopTimers cancels the turn and pacing timers. Caller holds r.mu.
func (r *Room) stopTimers() {
	if r.turnTimer != nil {
		r.turnTimer.Stop()
		r.turnTimer = nil
	}
	if r.paceTimer != nil {
		r.paceTimer.Stop()
		r.paceTimer = nil
	}
}
