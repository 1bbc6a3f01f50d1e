package belot

import (
	"github.com/vpenkov/belot-server/internal/game/card"
)

// trumpPoints values cards of a trump suit.
var trumpPoints = map[card.Rank]int{
	card.Rank7:  0,
	card.Rank8:  0,
	card.Rank9:  14,
	card.RankJ:  20,
	card.RankQ:  3,
	card.RankK:  4,
	card.Rank10: 10,
	card.RankA:  11,
}

// plainPoints values non-trump cards in a suit contract.
var plainPoints = map[card.Rank]int{
	card.Rank7:  0,
	card.Rank8:  0,
	card.Rank9:  0,
	card.RankJ:  2,
	card.RankQ:  3,
	card.RankK:  4,
	card.Rank10: 10,
	card.RankA:  11,
}

// noTrumpPoints values every card in a no-trump contract. The ace is worth
// more so the round still totals 152 before the last-trick bonus.
var noTrumpPoints = map[card.Rank]int{
	card.Rank7:  0,
	card.Rank8:  0,
	card.Rank9:  0,
	card.RankJ:  2,
	card.RankQ:  3,
	card.RankK:  4,
	card.Rank10: 10,
	card.RankA:  19,
}

// CardPoints returns the point value of a card under a contract.
func CardPoints(c card.Card, contract Contract) int {
	switch contract.Mode {
	case ModeNoTrump:
		return noTrumpPoints[c.Rank]
	case ModeAllTrumps:
		return trumpPoints[c.Rank]
	default:
		if contract.isTrump(c.Suit) {
			return trumpPoints[c.Rank]
		}
		return plainPoints[c.Rank]
	}
}

// trickPoints sums the point values of a resolved trick.
func trickPoints(trick []PlayedCard, contract Contract) int {
	sum := 0
	for _, pc := range trick {
		sum += CardPoints(pc.Card, contract)
	}
	return sum
}

// RoundTotal returns the point total of a full round under a contract,
// including the last-trick bonus: 162 for suit and no-trump contracts, 258
// for all-trumps.
func RoundTotal(contract Contract) int {
	sum := LastTrickBonus
	for _, c := range card.NewDeck() {
		sum += CardPoints(c, contract)
	}
	return sum
}
