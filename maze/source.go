package maze

import "math/rand"

// Source is the random stream maze generation draws from.
// Intn returns a value in [0, n).
type Source interface {
	Intn(n int) int
}

// NewSource returns a seeded Source so generation can be replayed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// shuffle permutes dirs in place with Fisher–Yates.
func shuffle(dirs []Direction, src Source) {
	for i := len(dirs) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
}
