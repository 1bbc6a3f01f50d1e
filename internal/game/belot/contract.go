package belot

import (
	"fmt"

	"github.com/vpenkov/belot-server/internal/game/card"
)

// Mode is the trump mode of a round.
type Mode int

const (
	ModeNone Mode = iota // nothing declared yet
	ModeSuit             // one suit is trump
	ModeNoTrump          // no suit is trump
	ModeAllTrumps        // every suit ranks and scores as trump
)

// Contract is a committed trump declaration.
type Contract struct {
	Mode  Mode
	Trump card.Suit // valid only when Mode == ModeSuit
}

const (
	noTrumpName  = "no-trump"
	allTrumpName = "all-trump"
)

// ParseContract parses a wire declaration. The empty string is not a
// contract; callers treat it as a pass before calling this.
func ParseContract(name string) (Contract, error) {
	switch name {
	case noTrumpName:
		return Contract{Mode: ModeNoTrump}, nil
	case allTrumpName:
		return Contract{Mode: ModeAllTrumps}, nil
	}
	suit, err := card.SuitFromName(name)
	if err != nil {
		return Contract{}, fmt.Errorf("invalid declaration: %q", name)
	}
	return Contract{Mode: ModeSuit, Trump: suit}, nil
}

func (c Contract) String() string {
	switch c.Mode {
	case ModeSuit:
		return c.Trump.String()
	case ModeNoTrump:
		return noTrumpName
	case ModeAllTrumps:
		return allTrumpName
	default:
		return "none"
	}
}

// isTrump reports whether a suit ranks as trump under the contract.
func (c Contract) isTrump(s card.Suit) bool {
	switch c.Mode {
	case ModeSuit:
		return s == c.Trump
	case ModeAllTrumps:
		return true
	default:
		return false
	}
}

// order returns the in-suit strength of a card under the contract.
func (c Contract) order(cd card.Card) int {
	if c.isTrump(cd.Suit) {
		return card.TrumpOrder(cd.Rank)
	}
	return card.PlainOrder(cd.Rank)
}
