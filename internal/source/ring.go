package source

import "sync"

// Ring is a thread-safe circular sample buffer.
type Ring struct {
	buf  []float64
	size int
	w    int // write position
	len  int // current fill level
	mu   sync.Mutex
}

// NewRing creates a ring holding up to size samples.
func NewRing(size int) *Ring {
	return &Ring{
		buf:  make([]float64, size),
		size: size,
	}
}

// Write appends samples, overwriting the oldest once full.
func (r *Ring) Write(p []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, v := range p {
		r.buf[r.w] = v
		r.w = (r.w + 1) % r.size
	}
	r.len = min(r.size, r.len+len(p))
}

// Latest copies the n most recent samples into dst, oldest first, and
// returns how many were available. Missing history is left as zeros at the
// front of dst.
func (r *Ring) Latest(dst []float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := min(len(dst), r.len)
	pad := len(dst) - n
	clear(dst[:pad])
	start := (r.w - n + r.size) % r.size
	for i := range n {
		dst[pad+i] = r.buf[(start+i)%r.size]
	}
	return n
}

// Len returns the number of buffered samples.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.len
}
