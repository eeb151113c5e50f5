package seed

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Rand is the random source behind generated data and ids
type Rand interface {
	Intn(n int) int
	Float64() float64
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

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// NewRand returns a goroutine-safe source. A seed of 0 seeds from the clock.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

// Between returns an int in [min, max]
func Between(r Rand, min, max int) int {
	return r.Intn(max-min+1) + min
}

// Pick returns a random element of items, which must be non-empty
func Pick[T any](r Rand, items []T) T {
	return items[r.Intn(len(items))]
}

// HexID returns prefix followed by six random hex digits
func HexID(r Rand, prefix string) string {
	return fmt.Sprintf("%s%06x", prefix, r.Intn(1<<24))
}
