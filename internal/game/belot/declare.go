package belot

import (
	"github.com/vpenkov/belot-server/internal/apperrors"
)

// DeclareResult reports the outcome of one declaration step.
type DeclareResult struct {
	Committed bool
	Contract  Contract
	Declarer  int
	NextAsk   int // next seat asked when nobody committed, -1 otherwise
	Voided    bool
	LeadSeat  int // seat on lead once committed, -1 otherwise
}

// Declare processes a declaration from a seat. An empty contract (pass is
// true) passes the question to the next seat; after all four seats pass the
// round is voided with no score change. A declaration from any seat other
// than the one currently asked is rejected without state change.
func (g *Game) Declare(seat int, contract Contract, pass bool) (DeclareResult, error) {
	if g.phase == PhaseFinished {
		return DeclareResult{}, apperrors.ErrGameAlreadyFinished
	}
	if g.phase != PhaseDeclaring {
		return DeclareResult{}, apperrors.ErrGameNotStarted
	}
	r := g.round
	if seat != r.asking {
		return DeclareResult{}, apperrors.ErrInvalidDeclaration
	}

	if pass {
		r.passes++
		if r.passes >= NumSeats {
			g.phase = PhaseVoided
			return DeclareResult{Voided: true, NextAsk: -1, LeadSeat: -1}, nil
		}
		r.asking = (r.asking + 1) % NumSeats
		return DeclareResult{NextAsk: r.asking, LeadSeat: -1}, nil
	}

	if contract.Mode == ModeNone {
		return DeclareResult{}, apperrors.ErrInvalidDeclaration
	}

	r.contract = contract
	r.declarer = seat
	g.dealSupplement()

	// The seat left of the dealer leads the first trick, the same seat that
	// opened the declaration rotation. The declarer gets no positional
	// advantage from committing.
	r.turn = (g.dealer + 1) % NumSeats
	r.lastWinner = r.turn
	g.phase = PhasePlaying

	return DeclareResult{
		Committed: true,
		Contract:  contract,
		Declarer:  seat,
		NextAsk:   -1,
		LeadSeat:  r.turn,
	}, nil
}
