package skyline

import (
	"math"
	"math/rand"
	"time"
)

// Rand samples every stochastic attribute of a scene.
type Rand struct {
	r *rand.Rand
}

// NewRand seeds from the clock when seed is 0.
func NewRand(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// Between returns a uniform value in [min(a,b), max(a,b)).
func (r *Rand) Between(a, b float64) float64 {
	return math.Abs(b-a)*r.r.Float64() + math.Min(a, b)
}

// IntBetween returns a uniform integer in [min(a,b), max(a,b)].
func (r *Rand) IntBetween(a, b int) int {
	lo, hi := min(a, b), max(a, b)
	return lo + r.r.Intn(hi-lo+1)
}

// Index returns a uniform index in [0, n-1].
func (r *Rand) Index(n int) (int, error) {
	if n <= 0 {
		return 0, ErrIndexOutOfRange
	}
	return r.r.Intn(n), nil
}

// Chance reports true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.r.Float64() < p
}
