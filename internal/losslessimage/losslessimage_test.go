package losslessimage

import (
	"bytes"
	"testing"

	"predictive-codec/internal/imgpred"
)

func makeTestImage(width, height int) []byte {
	pix := make([]byte, width*height)
	for i := range pix {
		pix[i] = byte((i*37 + i*i) % 256)
	}
	return pix
}

func roundTrip(t *testing.T, pix []byte, width, height int, opts Options) {
	t.Helper()
	var buf bytes.Buffer
	if err := Encode(&buf, pix, width, height, opts); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img, err := Decode(bytes.NewReader(buf.Bytes()), nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Width != width || img.Height != height {
		t.Fatalf("dims = %dx%d, want %dx%d", img.Width, img.Height, width, height)
	}
	if !bytes.Equal(img.Pixels, pix) {
		t.Fatalf("round trip mismatch for predictor=%d blockSize=%d m=%d", opts.Predictor, opts.BlockSize, opts.M)
	}
}

func TestRoundTripMatrix(t *testing.T) {
	const width, height = 17, 13
	pix := makeTestImage(width, height)

	for predictor := 0; predictor < imgpred.NumModes; predictor++ {
		for _, blockSize := range []uint32{0, 64, uint32(width), uint32(2 * width)} {
			for _, m := range []uint32{0, 4} {
				roundTrip(t, pix, width, height, Options{Predictor: predictor, BlockSize: blockSize, M: m})
			}
		}
	}
}

func TestAutoSelectRoundTrip(t *testing.T) {
	const width, height = 16, 16
	pix := makeTestImage(width, height)
	roundTrip(t, pix, width, height, Options{Predictor: AutoSelect, BlockSize: 0, M: 0})
}

func TestBadMagicRejected(t *testing.T) {
	garbage := bytes.Repeat([]byte{0xFF}, 64)
	if _, err := Decode(bytes.NewReader(garbage), nil); err == nil {
		t.Fatal("expected format error for bad magic")
	}
}

func TestFixedMOverflowRejected(t *testing.T) {
	pix := makeTestImage(4, 4)
	var buf bytes.Buffer
	err := Encode(&buf, pix, 4, 4, Options{Predictor: 0, M: 300})
	if err == nil {
		t.Fatal("expected error for m exceeding 8-bit wire field")
	}
}
