package card

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// Suit is a card suit.
type Suit int

// Rank is a card rank.
type Rank int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// suitNames is the wire and display representation of each suit.
var suitNames = map[Suit]string{
	Spades:   "spades",
	Hearts:   "hearts",
	Diamonds: "diamonds",
	Clubs:    "clubs",
}

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return "suit(" + strconv.Itoa(int(s)) + ")"
}

// SuitFromName parses a wire suit name.
func SuitFromName(name string) (Suit, error) {
	for s, n := range suitNames {
		if n == name {
			return s, nil
		}
	}
	return -1, fmt.Errorf("unknown suit: %q", name)
}

const (
	Rank7 Rank = iota + 7
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
	RankA
)

// rankNames is the wire and display representation of each rank.
var rankNames = map[Rank]string{
	Rank7:  "7",
	Rank8:  "8",
	Rank9:  "9",
	Rank10: "10",
	RankJ:  "J",
	RankQ:  "Q",
	RankK:  "K",
	RankA:  "A",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return "rank(" + strconv.Itoa(int(r)) + ")"
}

// RankFromName parses a wire rank name.
func RankFromName(name string) (Rank, error) {
	for r, n := range rankNames {
		if n == name {
			return r, nil
		}
	}
	return -1, fmt.Errorf("unknown rank: %q", name)
}

// Card is one playing card. Value type, compared by (Suit, Rank).
type Card struct {
	Suit Suit
	Rank Rank
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()[:1]
}

// trumpOrder ranks cards within the trump suit, low to high.
var trumpOrder = map[Rank]int{
	Rank7:  0,
	Rank8:  1,
	RankQ:  2,
	RankK:  3,
	Rank10: 4,
	RankA:  5,
	Rank9:  6,
	RankJ:  7,
}

// plainOrder ranks cards in a non-trump suit, low to high.
var plainOrder = map[Rank]int{
	Rank7:  0,
	Rank8:  1,
	Rank9:  2,
	RankJ:  3,
	RankQ:  4,
	RankK:  5,
	Rank10: 6,
	RankA:  7,
}

// TrumpOrder returns the strength of a rank under trump ordering.
func TrumpOrder(r Rank) int { return trumpOrder[r] }

// PlainOrder returns the strength of a rank under plain ordering.
func PlainOrder(r Rank) int { return plainOrder[r] }

// Deck is an ordered sequence of cards.
type Deck []Card

// NewDeck builds the full 32-card deck in suit order.
func NewDeck() Deck {
	deck := make(Deck, 0, 32)
	for s := Spades; s <= Clubs; s++ {
		for r := Rank7; r <= RankA; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle permutes the deck in place with an unbiased Fisher-Yates shuffle.
func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Remove deletes the first occurrence of c from hand and reports whether it
// was present.
func Remove(hand []Card, c Card) ([]Card, bool) {
	for i, h := range hand {
		if h == c {
			return append(hand[:i], hand[i+1:]...), true
		}
	}
	return hand, false
}

// Contains reports whether hand holds c.
func Contains(hand []Card, c Card) bool {
	for _, h := range hand {
		if h == c {
			return true
		}
	}
	return false
}

// HasSuit reports whether hand holds any card of suit s.
func HasSuit(hand []Card, s Suit) bool {
	for _, h := range hand {
		if h.Suit == s {
			return true
		}
	}
	return false
}
