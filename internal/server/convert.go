package server

import (
	"fmt"

	"github.com/vpenkov/belot-server/internal/game/card"
	"github.com/vpenkov/belot-server/internal/protocol"
)

// cardToInfo converts a card to its wire form.
func cardToInfo(c card.Card) protocol.CardInfo {
	return protocol.CardInfo{
		Suit: c.Suit.String(),
		Rank: c.Rank.String(),
	}
}

// cardsToInfos converts a hand to its wire form.
func cardsToInfos(cards []card.Card) []protocol.CardInfo {
	infos := make([]protocol.CardInfo, len(cards))
	for i, c := range cards {
		infos[i] = cardToInfo(c)
	}
	return infos
}

// infoToCard parses a wire card.
func infoToCard(info protocol.CardInfo) (card.Card, error) {
	suit, err := card.SuitFromName(info.Suit)
	if err != nil {
		return card.Card{}, fmt.Errorf("bad card: %w", err)
	}
	rank, err := card.RankFromName(info.Rank)
	if err != nil {
		return card.Card{}, fmt.Errorf("bad card: %w", err)
	}
	return card.Card{Suit: suit, Rank: rank}, nil
}
