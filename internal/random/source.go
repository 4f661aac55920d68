package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Pooled hands each caller its own generator for the duration of one draw.
type Pooled struct {
	pool sync.Pool
}

func New() *Pooled {
	p := &Pooled{}
	p.pool.New = func() any {
		return rand.New(rand.NewPCG(entropy(), entropy()))
	}
	return p
}

func entropy() uint64 {
	seed, err := NewSeed()
	if err != nil {
		// crypto/rand is unavailable only on broken hosts; fall back to the clock.
		return uint64(time.Now().UnixNano())
	}
	return seed
}

func (p *Pooled) Float64() float64 {
	r := p.pool.Get().(*rand.Rand)
	defer p.pool.Put(r)
	return r.Float64()
}

func (p *Pooled) IntN(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	r := p.pool.Get().(*rand.Rand)
	defer p.pool.Put(r)
	return lo + r.IntN(hi-lo)
}

// Seeded is a deterministic source guarded by a mutex.
type Seeded struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewSeeded(seed uint64) *Seeded {
	return &Seeded{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *Seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *Seeded) IntN(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.r.IntN(hi-lo)
}

type source interface {
	Float64() float64
}

// Uniform samples [lo,hi) from r.
func Uniform(r source, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
