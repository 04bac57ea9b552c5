package matching

import "sync/atomic"

// orderIDGenerator hands out the monotonic, process-wide order id
// sequence from one shared counter, starting at 0. A submission rejected
// before allocation only reads the counter and does not advance it.
type orderIDGenerator struct {
	counter atomic.Uint64
}

// next allocates and returns the next id.
func (g *orderIDGenerator) next() uint64 {
	return g.counter.Add(1) - 1
}

// current returns the counter's current value without allocating, used by
// the validation-reject path to hand back "no effect" without consuming an
// id.
func (g *orderIDGenerator) current() uint64 {
	return g.counter.Load()
}
