package pkg

import (
	"math/rand"
	"sync"
	"time"
)

// RNG abstracts random number generation so shuffles and dice can be scripted in tests.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// NewRNG returns a time-seeded RNG that is safe for concurrent use.
func NewRNG() RNG {
	return NewSeededRNG(time.Now().UnixNano())
}

func NewSeededRNG(seed int64) RNG {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

var (
	codeLetters = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")
	codeRNG     = NewRNG()
)

// RandString builds a room code of length n.
func RandString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = codeLetters[codeRNG.Intn(len(codeLetters))]
	}
	return string(b)
}

// Shuffle runs Fisher-Yates over n elements using rng.
func Shuffle(rng RNG, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		swap(i, j)
	}
}
