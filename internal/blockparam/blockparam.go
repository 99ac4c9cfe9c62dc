// Package blockparam estimates the Golomb divisor m for a block of
// residuals from their mean absolute value, using the geometric-distribution
// optimum (Golomb 1966). It is grounded on the adaptive-m computation this
// module's original source duplicates in both its lossless audio and image
// codecs (see DESIGN.md for the Open Question this package resolves in
// favor of the newer geometric-optimal formula over the older 95%-of-mean
// heuristic).
package blockparam

import "math"

// EstimateAudio computes the adaptive m for an audio residual block,
// clamped to [1, 2^16-1] per spec §4.5.
func EstimateAudio(residuals []int32) uint32 {
	return estimate(residuals, 1, 1<<16-1)
}

// EstimateImage computes the adaptive m for an image residual block. The
// wire format's block-m field is 8 bits wide (max 255), so this clamps to
// [1,255] rather than the [1,4096] figure quoted elsewhere; the original
// encoder/decoder pair this is grounded on clamps to [1,256] and then
// writes the result into the same 8-bit field, so a returned 256 would
// silently truncate to 0 on the wire. See DESIGN.md for the resolution of
// this conflict.
func EstimateImage(residuals []int32) uint32 {
	return estimate(residuals, 1, 255)
}

func estimate(residuals []int32, lo, hi uint32) uint32 {
	meanAbs := meanAbsolute(residuals)
	alpha := meanAbs / (meanAbs + 1.0)
	m := math.Ceil(-1.0 / math.Log2(alpha))
	return clampM(m, lo, hi)
}

func meanAbsolute(residuals []int32) float64 {
	if len(residuals) == 0 {
		return 1.0
	}
	var sum float64
	for _, r := range residuals {
		if r < 0 {
			r = -r
		}
		sum += float64(r)
	}
	return sum / float64(len(residuals))
}

func clampM(m float64, lo, hi uint32) uint32 {
	if m < float64(lo) {
		return lo
	}
	if m > float64(hi) {
		return hi
	}
	return uint32(m)
}
