package belot

import (
	"fmt"

	"github.com/vpenkov/belot-server/internal/game/card"
)

const (
	// NumSeats is fixed: Belot is a four-player game.
	NumSeats = 4
	// NumTeams pairs the even and odd seats.
	NumTeams = 2
	// TricksPerRound plays out the whole 32-card deck.
	TricksPerRound = 8

	initialDealCards = 5
	supplementCards  = 3

	// LastTrickBonus goes to the team winning the eighth trick.
	LastTrickBonus = 10

	// DefaultWinThreshold ends the game once a team reaches it.
	DefaultWinThreshold = 151
)

// Phase is the lifecycle state of the active round.
type Phase int

const (
	PhaseIdle      Phase = iota // no round dealt
	PhaseDeclaring              // rotating trump declaration
	PhasePlaying                // trick play
	PhaseVoided                 // all four seats passed
	PhaseFinished               // a team reached the threshold
)

// Team returns the team of a seat: seats 0,2 are team 0, seats 1,3 team 1.
func Team(seat int) int {
	return seat % 2
}

// PlayedCard is one card on the table, tagged with the seat that played it.
type PlayedCard struct {
	Card card.Card
	Seat int
}

// round is the state of one deal played to eight tricks.
type round struct {
	contract Contract
	declarer int

	asking int // seat currently asked to declare
	passes int

	hands [NumSeats][]card.Card
	stock []card.Card

	turn         int
	trick        []PlayedCard
	leadSuit     card.Suit
	tricksPlayed int
	lastWinner   int

	points [NumTeams]int
}

// Game is the per-room game state: the active round plus cumulative team
// scores. It is a pure state machine; callers serialize access.
type Game struct {
	threshold int
	dealer    int
	scores    [NumTeams]int
	phase     Phase
	winner    int
	round     *round
}

// NewGame creates a fresh game. The dealer starts at the last seat so the
// first round's declaration begins at seat 0, and rotates every round.
func NewGame(threshold int) *Game {
	if threshold <= 0 {
		threshold = DefaultWinThreshold
	}
	return &Game{
		threshold: threshold,
		dealer:    NumSeats - 1,
		phase:     PhaseIdle,
		winner:    -1,
	}
}

// Deal starts a new round from a full shuffled deck: five cards per seat
// round-robin starting left of the dealer, twelve in the stock, and the
// declaration rotation opened at the same seat.
func (g *Game) Deal(deck card.Deck) error {
	if g.phase == PhaseFinished {
		return fmt.Errorf("game is finished")
	}
	if g.phase == PhaseDeclaring || g.phase == PhasePlaying {
		return fmt.Errorf("a round is already in progress")
	}
	if err := validateDeck(deck); err != nil {
		return err
	}

	first := (g.dealer + 1) % NumSeats
	r := &round{
		declarer: -1,
		asking:   first,
		turn:     first,
	}
	for i, c := range deck[:NumSeats*initialDealCards] {
		seat := (first + i) % NumSeats
		r.hands[seat] = append(r.hands[seat], c)
	}
	r.stock = append([]card.Card(nil), deck[NumSeats*initialDealCards:]...)

	g.round = r
	g.phase = PhaseDeclaring
	return nil
}

// validateDeck rejects anything but the 32 distinct cards.
func validateDeck(deck card.Deck) error {
	if len(deck) != 32 {
		return fmt.Errorf("expected 32 cards, got %d", len(deck))
	}
	seen := make(map[card.Card]bool, 32)
	for _, c := range deck {
		if seen[c] {
			return fmt.Errorf("duplicate card in deck: %s", c)
		}
		seen[c] = true
	}
	return nil
}

// dealSupplement hands out the twelve stock cards, three per seat, after a
// committed declaration.
func (g *Game) dealSupplement() {
	r := g.round
	first := (g.dealer + 1) % NumSeats
	// Round-robin one at a time, same order as the initial deal.
	for i, c := range r.stock {
		seat := (first + i) % NumSeats
		r.hands[seat] = append(r.hands[seat], c)
	}
	r.stock = nil
}

// --- accessors ---

// Phase returns the lifecycle state of the active round.
func (g *Game) Phase() Phase { return g.phase }

// Dealer returns the current dealer seat.
func (g *Game) Dealer() int { return g.dealer }

// Scores returns the cumulative team scores.
func (g *Game) Scores() [NumTeams]int { return g.scores }

// WinnerTeam returns the winning team, or -1 while the game is live.
func (g *Game) WinnerTeam() int { return g.winner }

// AskingSeat returns the seat currently asked to declare, or -1.
func (g *Game) AskingSeat() int {
	if g.phase != PhaseDeclaring {
		return -1
	}
	return g.round.asking
}

// CurrentTurn returns the seat on turn during play, or -1.
func (g *Game) CurrentTurn() int {
	if g.phase != PhasePlaying {
		return -1
	}
	return g.round.turn
}

// Contract returns the committed contract of the active round.
func (g *Game) Contract() Contract {
	if g.round == nil {
		return Contract{}
	}
	return g.round.contract
}

// Hand returns a copy of a seat's cards.
func (g *Game) Hand(seat int) []card.Card {
	if g.round == nil || seat < 0 || seat >= NumSeats {
		return nil
	}
	return append([]card.Card(nil), g.round.hands[seat]...)
}

// CardCounts returns the hand sizes by seat.
func (g *Game) CardCounts() [NumSeats]int {
	var counts [NumSeats]int
	if g.round == nil {
		return counts
	}
	for i := range counts {
		counts[i] = len(g.round.hands[i])
	}
	return counts
}

// RoundPoints returns the running team totals of the active round.
func (g *Game) RoundPoints() [NumTeams]int {
	if g.round == nil {
		return [NumTeams]int{}
	}
	return g.round.points
}

// Trick returns a copy of the in-progress trick.
func (g *Game) Trick() []PlayedCard {
	if g.round == nil {
		return nil
	}
	return append([]PlayedCard(nil), g.round.trick...)
}
