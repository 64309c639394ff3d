package geometry

// RollingAverage keeps the last N vector samples and reports their mean.
// It damps forces that flip from one frame to the next.
type RollingAverage struct {
	samples []Vector2D
	next    int
	full    bool
}

// NewRollingAverage creates a window holding at most size samples (minimum 1).
func NewRollingAverage(size int) *RollingAverage {
	if size < 1 {
		size = 1
	}
	return &RollingAverage{samples: make([]Vector2D, size)}
}

// Push records v, evicting the oldest sample once the window is full,
// and returns the mean of the samples currently held.
func (r *RollingAverage) Push(v Vector2D) Vector2D {
	r.samples[r.next] = v
	r.next++
	if r.next == len(r.samples) {
		r.next = 0
		r.full = true
	}
	return r.Mean()
}

// Mean returns the average of the samples held, or zero when empty.
func (r *RollingAverage) Mean() Vector2D {
	n := r.Len()
	if n == 0 {
		return Vector2D{}
	}
	var sum Vector2D
	for i := 0; i < n; i++ {
		sum = sum.Add(r.samples[i])
	}
	return sum.Mul(1 / float64(n))
}

// Len is the number of samples currently held.
func (r *RollingAverage) Len() int {
	if r.full {
		return len(r.samples)
	}
	return r.next
}

// Cap is the fixed window length.
func (r *RollingAverage) Cap() int {
	return len(r.samples)
}

// Reset drops every sample.
func (r *RollingAverage) Reset() {
	clear(r.samples)
	r.next = 0
	r.full = false
}
