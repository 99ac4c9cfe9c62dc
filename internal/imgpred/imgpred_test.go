package imgpred

import "testing"

func TestLiteralJPEGLSConstantImage(t *testing.T) {
	// §8 literal scenario: JPEG-LS on a 3x3 constant-128 image — all
	// residuals except the top-left are 0; top-left residual is 128.
	const width, height = 3, 3
	plane := make([]byte, width*height)
	for i := range plane {
		plane[i] = 128
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			n := At(plane, width, x, y)
			pred, err := Predict(JPEGLS, n, x, y)
			if err != nil {
				t.Fatal(err)
			}
			resid := int(plane[y*width+x]) - pred
			if x == 0 && y == 0 {
				if resid != 128 {
					t.Errorf("top-left residual = %d, want 128", resid)
				}
			} else if resid != 0 {
				t.Errorf("(%d,%d) residual = %d, want 0", x, y, resid)
			}
		}
	}
}

func TestAllModesDeterministicRoundTrip(t *testing.T) {
	const width, height = 5, 4
	original := []byte{
		10, 20, 30, 40, 50,
		5, 15, 25, 200, 45,
		0, 255, 128, 64, 32,
		1, 2, 3, 4, 5,
	}

	for mode := Mode(0); mode < NumModes; mode++ {
		recon := make([]byte, width*height)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				n := At(recon, width, x, y)
				pred, err := Predict(mode, n, x, y)
				if err != nil {
					t.Fatal(err)
				}
				idx := y*width + x
				resid := int(original[idx]) - pred
				recon[idx] = Clamp(pred + resid)
			}
		}
		for i := range original {
			if recon[i] != original[i] {
				t.Fatalf("mode %d (%s): pixel %d reconstructed %d, want %d",
					mode, Names[mode], i, recon[i], original[i])
			}
		}
	}
}

func TestParseModeBounds(t *testing.T) {
	if _, err := ParseMode(-1); err == nil {
		t.Fatal("expected error for -1")
	}
	if _, err := ParseMode(9); err == nil {
		t.Fatal("expected error for 9")
	}
	if m, err := ParseMode(8); err != nil || m != JPEGLS {
		t.Fatalf("ParseMode(8) = %v, %v", m, err)
	}
}
