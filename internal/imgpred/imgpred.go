// Package imgpred implements the nine spatial predictors for the lossless
// image codec: eight fixed linear formulas plus the JPEG-LS median-edge
// (MED) predictor, adapted from this module's teacher's single-mode MED
// predictor in internal/jpegls/predictor.go and generalized to a
// caller-selectable mode with full boundary handling.
package imgpred

import "fmt"

// Mode identifies one of the nine predictor formulas.
type Mode int

const (
	NONE Mode = iota
	LEFT
	UP
	UPLEFT
	PLANE
	LEFTAVG
	UPAVG
	AVG
	JPEGLS
)

// NumModes is the number of predictor modes, for auto-select iteration.
const NumModes = 9

// Names gives a human-readable label per mode, for verbose CLI output.
var Names = [NumModes]string{
	"NONE", "LEFT", "UP", "UP_LEFT", "PLANE", "LEFT_AVG", "UP_AVG", "AVG", "JPEG-LS",
}

// Neighborhood holds the three causal neighbours of a pixel at (x,y):
// a = left, b = up, c = up-left. Out-of-range neighbours are 0.
type Neighborhood struct {
	A, B, C int
}

// At derives the neighbourhood for (x,y) from a row-major reconstructed
// pixel plane of the given width; out-of-range positions read as 0,
// matching spec's "out-of-range neighbours are treated as 0" rule.
func At(plane []byte, width, x, y int) Neighborhood {
	get := func(px, py int) int {
		if px < 0 || py < 0 {
			return 0
		}
		return int(plane[py*width+px])
	}
	return Neighborhood{
		A: get(x-1, y),
		B: get(x, y-1),
		C: get(x-1, y-1),
	}
}

// Predict computes the prediction for the given mode and neighbourhood.
// The JPEG-LS mode degrades specially at the first row/column per spec §4.4.
func Predict(mode Mode, n Neighborhood, x, y int) (int, error) {
	a, b, c := n.A, n.B, n.C
	switch mode {
	case NONE:
		return 0, nil
	case LEFT:
		return a, nil
	case UP:
		return b, nil
	case UPLEFT:
		return c, nil
	case PLANE:
		return a + b - c, nil
	case LEFTAVG:
		return a + truncDiv2(b-c), nil
	case UPAVG:
		return b + truncDiv2(a-c), nil
	case AVG:
		return (a + b) / 2, nil
	case JPEGLS:
		if y == 0 && x == 0 {
			return 0, nil
		}
		if y == 0 {
			return a, nil
		}
		if x == 0 {
			return b, nil
		}
		if c >= max(a, b) {
			return min(a, b), nil
		}
		if c <= min(a, b) {
			return max(a, b), nil
		}
		return a + b - c, nil
	default:
		return 0, fmt.Errorf("imgpred: unknown mode %d", mode)
	}
}

// truncDiv2 divides by 2, truncating toward zero (not floor), matching the
// spec's "(b-c)/2 (integer truncation toward zero)" note — Go's native "/"
// on signed ints already truncates toward zero, so this just documents it.
func truncDiv2(v int) int { return v / 2 }

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Clamp restricts a reconstructed pixel value to [0,255].
func Clamp(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// ParseMode validates a predictor index from CLI input or a stream header.
func ParseMode(idx int) (Mode, error) {
	if idx < 0 || idx >= NumModes {
		return 0, fmt.Errorf("imgpred: predictor index %d out of range [0,%d]", idx, NumModes-1)
	}
	return Mode(idx), nil
}
