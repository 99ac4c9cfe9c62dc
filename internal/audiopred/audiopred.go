// Package audiopred implements the order-0..3 linear predictors used by the
// lossless audio codec, adapted from the fixed-coefficient predictor this
// module's teacher generalizes from JPEG-LS's single MED formula.
package audiopred

import "fmt"

// MaxOrder is the highest supported predictor order.
const MaxOrder = 3

// History holds the previous reconstructed samples for one channel:
// h[0] = s[n-1], h[1] = s[n-2], h[2] = s[n-3].
type History struct {
	h [3]int32
}

// Predictor computes order-0..3 linear predictions from per-channel history
// and advances that history with each reconstructed sample.
type Predictor struct {
	order int
}

// New creates a Predictor of the given order, which must be in [0, MaxOrder].
func New(order int) (*Predictor, error) {
	if order < 0 || order > MaxOrder {
		return nil, fmt.Errorf("audiopred: order %d out of range [0,%d]", order, MaxOrder)
	}
	return &Predictor{order: order}, nil
}

// Order returns the configured predictor order.
func (p *Predictor) Order() int { return p.order }

// NewHistory creates a zeroed history for one channel.
func NewHistory() *History { return &History{} }

// Predict computes the clamped 16-bit prediction from history.
func (p *Predictor) Predict(h *History) int32 {
	var pred int32
	switch p.order {
	case 0:
		pred = 0
	case 1:
		pred = h.h[0]
	case 2:
		pred = 2*h.h[0] - h.h[1]
	case 3:
		pred = 3*h.h[0] - 3*h.h[1] + h.h[2]
	}
	return clamp16(pred)
}

// Advance shifts history and records the reconstructed sample, which must
// be the value both encoder and decoder agree on (not the original sample)
// so the two sides stay in lock-step.
func (h *History) Advance(reconstructed int32) {
	h.h[2] = h.h[1]
	h.h[1] = h.h[0]
	h.h[0] = reconstructed
}

func clamp16(v int32) int32 {
	if v < -32768 {
		return -32768
	}
	if v > 32767 {
		return 32767
	}
	return v
}
