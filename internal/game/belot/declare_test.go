package belot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpenkov/belot-server/internal/apperrors"
	"github.com/vpenkov/belot-server/internal/game/card"
)

func dealtGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame(DefaultWinThreshold)
	require.NoError(t, g.Deal(card.NewDeck()))
	return g
}

func TestDealSplitsDeck(t *testing.T) {
	g := dealtGame(t)

	assert.Equal(t, PhaseDeclaring, g.Phase())
	assert.Equal(t, 0, g.AskingSeat(), "round 1 declaration starts at seat 0")

	counts := g.CardCounts()
	for seat, n := range counts {
		assert.Equal(t, 5, n, "seat %d initial hand", seat)
	}

	// The four hands are pairwise disjoint
	seen := make(map[card.Card]int)
	for seat := 0; seat < NumSeats; seat++ {
		for _, c := range g.Hand(seat) {
			seen[c]++
		}
	}
	assert.Len(t, seen, 20)
	for c, n := range seen {
		assert.Equal(t, 1, n, "card %s dealt twice", c)
	}
}

func TestDealRejectsBadDecks(t *testing.T) {
	g := NewGame(DefaultWinThreshold)

	assert.Error(t, g.Deal(card.NewDeck()[:31]))

	deck := card.NewDeck()
	deck[1] = deck[0] // duplicate
	assert.Error(t, g.Deal(deck))
}

func TestDeclareRotation(t *testing.T) {
	g := dealtGame(t)

	res, err := g.Declare(0, Contract{}, true)
	require.NoError(t, err)
	assert.False(t, res.Committed)
	assert.Equal(t, 1, res.NextAsk)
	assert.Equal(t, 1, g.AskingSeat())

	// Only the asked seat may declare
	_, err = g.Declare(3, Contract{Mode: ModeSuit, Trump: card.Hearts}, false)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDeclaration)
	assert.Equal(t, 1, g.AskingSeat(), "rejected declaration must not advance the rotation")
}

func TestDeclareCommitDealsSupplement(t *testing.T) {
	g := dealtGame(t)

	_, err := g.Declare(0, Contract{}, true)
	require.NoError(t, err)

	res, err := g.Declare(1, Contract{Mode: ModeSuit, Trump: card.Spades}, false)
	require.NoError(t, err)
	assert.True(t, res.Committed)
	assert.Equal(t, 1, res.Declarer)
	assert.Equal(t, card.Spades, res.Contract.Trump)

	assert.Equal(t, PhasePlaying, g.Phase())
	for seat, n := range g.CardCounts() {
		assert.Equal(t, 8, n, "seat %d hand after supplement", seat)
	}

	// The seat left of the dealer leads, not the declarer
	assert.Equal(t, 0, res.LeadSeat)
	assert.Equal(t, 0, g.CurrentTurn())
}

func TestFourPassesVoidRound(t *testing.T) {
	g := dealtGame(t)

	for seat := 0; seat < 3; seat++ {
		res, err := g.Declare(seat, Contract{}, true)
		require.NoError(t, err)
		assert.False(t, res.Voided)
	}

	res, err := g.Declare(3, Contract{}, true)
	require.NoError(t, err)
	assert.True(t, res.Voided)
	assert.Equal(t, PhaseVoided, g.Phase())
	assert.Equal(t, [NumTeams]int{0, 0}, g.Scores(), "voided round changes no score")
}

func TestParseContract(t *testing.T) {
	tests := []struct {
		name string
		want Contract
		ok   bool
	}{
		{"spades", Contract{Mode: ModeSuit, Trump: card.Spades}, true},
		{"clubs", Contract{Mode: ModeSuit, Trump: card.Clubs}, true},
		{"no-trump", Contract{Mode: ModeNoTrump}, true},
		{"all-trump", Contract{Mode: ModeAllTrumps}, true},
		{"jokers", Contract{}, false},
		{"", Contract{}, false},
	}
	for _, tt := range tests {
		got, err := ParseContract(tt.name)
		if tt.ok {
			assert.NoError(t, err, tt.name)
			assert.Equal(t, tt.want, got, tt.name)
			assert.Equal(t, tt.name, got.String())
		} else {
			assert.Error(t, err, tt.name)
		}
	}
}
