package usecase

import (
	"math/rand/v2"
	"sync"
)

// Random draws uniformly distributed integers in [0, n).
type Random interface {
	IntN(n int) int
}

// PooledRandom hands every worker its own PCG generator, each seeded
// independently, so concurrent requests never contend on a shared source.
type PooledRandom struct {
	pool sync.Pool
}

func NewPooledRandom() *PooledRandom {
	return &PooledRandom{
		pool: sync.Pool{
			New: func() any {
				return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
			},
		},
	}
}

func (p *PooledRandom) IntN(n int) int {
	r, _ := p.pool.Get().(*rand.Rand)
	v := r.IntN(n)
	p.pool.Put(r)
	return v
}
