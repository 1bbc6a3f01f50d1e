package server

import (
	"math/rand/v2"
	"strconv"
)

// Fallback nicknames for players who join without a name.
var (
	adjectives = []string{
		"Brave", "Clever", "Lucky", "Quiet", "Swift",
		"Bold", "Sly", "Calm", "Sharp", "Merry",
	}

	nouns = []string{
		"Rook", "Falcon", "Lynx", "Otter", "Badger",
		"Heron", "Marten", "Stork", "Weasel", "Boar",
	}
)

// GenerateNickname builds a random nickname.
func GenerateNickname() string {
	adj := adjectives[rand.IntN(len(adjectives))]
	noun := nouns[rand.IntN(len(nouns))]
	return adj + noun + strconv.Itoa(rand.IntN(100))
}
