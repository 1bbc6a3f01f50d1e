package belot

import (
	"github.com/vpenkov/belot-server/internal/apperrors"
	"github.com/vpenkov/belot-server/internal/game/card"
)

// PlayResult reports everything one accepted play caused.
type PlayResult struct {
	Seat      int
	Card      card.Card
	CardsLeft int

	TrickComplete bool
	WinnerSeat    int // -1 while the trick is open
	WinnerTeam    int
	TrickPoints   int
	TeamPoints    [NumTeams]int // round running totals

	RoundComplete bool
	RoundPoints   [NumTeams]int
	TotalPoints   [NumTeams]int

	GameOver   bool
	GameWinner int // -1 while the game is live

	NextTurn int // seat to prompt next, -1 when the round or game ended
}

// Play validates and applies one card from a seat. Rejections mutate
// nothing. When the fourth card lands the trick is resolved and scored; when
// the eighth trick resolves the round is closed, cumulative scores updated,
// the game-end threshold checked, and the dealer rotated for the next deal.
func (g *Game) Play(seat int, c card.Card) (PlayResult, error) {
	if g.phase == PhaseFinished {
		return PlayResult{}, apperrors.ErrGameAlreadyFinished
	}
	if g.phase != PhasePlaying {
		return PlayResult{}, apperrors.ErrGameNotStarted
	}
	r := g.round
	if seat != r.turn {
		return PlayResult{}, apperrors.ErrOutOfTurn
	}
	if !card.Contains(r.hands[seat], c) {
		return PlayResult{}, apperrors.ErrIllegalCard
	}
	if !g.isLegalPlay(seat, c) {
		return PlayResult{}, apperrors.ErrIllegalCard
	}

	if len(r.trick) == 0 {
		r.leadSuit = c.Suit
	}
	r.hands[seat], _ = card.Remove(r.hands[seat], c)
	r.trick = append(r.trick, PlayedCard{Card: c, Seat: seat})

	res := PlayResult{
		Seat:       seat,
		Card:       c,
		CardsLeft:  len(r.hands[seat]),
		WinnerSeat: -1,
		GameWinner: -1,
		NextTurn:   -1,
	}

	if len(r.trick) < NumSeats {
		r.turn = (r.turn + 1) % NumSeats
		res.NextTurn = r.turn
		return res, nil
	}

	// Trick complete: resolve the winner and score it.
	winner := trickWinner(r.trick, r.leadSuit, r.contract)
	points := trickPoints(r.trick, r.contract)
	r.tricksPlayed++
	if r.tricksPlayed == TricksPerRound {
		points += LastTrickBonus
	}
	r.points[Team(winner)] += points
	r.lastWinner = winner
	r.trick = nil
	r.turn = winner

	res.TrickComplete = true
	res.WinnerSeat = winner
	res.WinnerTeam = Team(winner)
	res.TrickPoints = points
	res.TeamPoints = r.points

	if r.tricksPlayed < TricksPerRound {
		res.NextTurn = winner
		return res, nil
	}

	// Round complete: accumulate and check the threshold. The game never
	// ends mid-round.
	res.RoundComplete = true
	res.RoundPoints = r.points
	for team := range g.scores {
		g.scores[team] += r.points[team]
	}
	res.TotalPoints = g.scores

	g.dealer = (g.dealer + 1) % NumSeats
	g.round = nil

	if winnerTeam := g.leadingTeamAtThreshold(); winnerTeam >= 0 {
		g.phase = PhaseFinished
		g.winner = winnerTeam
		res.GameOver = true
		res.GameWinner = winnerTeam
	} else {
		g.phase = PhaseIdle
	}

	return res, nil
}

// isLegalPlay enforces must-follow-suit: once a suit is led, a hand holding
// that suit may only play it. A hand void in the led suit may play anything;
// no forced overtrump is modeled.
func (g *Game) isLegalPlay(seat int, c card.Card) bool {
	r := g.round
	if len(r.trick) == 0 {
		return true
	}
	if c.Suit == r.leadSuit {
		return true
	}
	return !card.HasSuit(r.hands[seat], r.leadSuit)
}

// LegalPlays returns the cards a seat may legally play right now.
func (g *Game) LegalPlays(seat int) []card.Card {
	if g.phase != PhasePlaying || seat != g.round.turn {
		return nil
	}
	var legal []card.Card
	for _, c := range g.round.hands[seat] {
		if g.isLegalPlay(seat, c) {
			legal = append(legal, c)
		}
	}
	return legal
}

// trickWinner resolves a full trick. Trump beats everything regardless of
// the suit led; otherwise the highest card of the led suit wins. Cards that
// neither rank as trump nor follow the led suit can never win. Ties are
// impossible with a duplicate-free deck.
func trickWinner(trick []PlayedCard, leadSuit card.Suit, contract Contract) int {
	best := -1
	bestTrump := false
	bestOrder := -1

	for _, pc := range trick {
		isTrump := contract.isTrump(pc.Card.Suit)
		// Under all-trumps every suit ranks as trump, but off-suit cards
		// still lose to the led suit, so only led-suit cards compete.
		if contract.Mode == ModeAllTrumps && pc.Card.Suit != leadSuit {
			continue
		}
		if !isTrump && (bestTrump || pc.Card.Suit != leadSuit) {
			continue
		}
		order := contract.order(pc.Card)
		switch {
		case best == -1, isTrump && !bestTrump:
			best, bestTrump, bestOrder = pc.Seat, isTrump, order
		case isTrump == bestTrump && order > bestOrder:
			best, bestOrder = pc.Seat, order
		}
	}
	return best
}

// leadingTeamAtThreshold returns the winning team once a team has reached
// the threshold, or -1. When both teams cross in the same round the higher
// total wins; equal totals at the threshold keep the game alive for another
// round.
func (g *Game) leadingTeamAtThreshold() int {
	best := -1
	bestScore := -1
	for team, score := range g.scores {
		switch {
		case score < g.threshold:
		case score > bestScore:
			best, bestScore = team, score
		case score == bestScore:
			best = -1
		}
	}
	return best
}
