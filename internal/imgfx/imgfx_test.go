package imgfx

import (
	"bytes"
	"testing"
)

func TestBrightenClamps(t *testing.T) {
	pix := []byte{0, 100, 250}
	got := Brighten(pix, 20)
	want := []byte{20, 120, 255}
	if !bytes.Equal(got, want) {
		t.Errorf("Brighten = %v, want %v", got, want)
	}

	got = Brighten(pix, -20)
	want = []byte{0, 80, 230}
	if !bytes.Equal(got, want) {
		t.Errorf("Brighten(negative) = %v, want %v", got, want)
	}
}

func TestNegative(t *testing.T) {
	got := Negative([]byte{0, 128, 255})
	want := []byte{255, 127, 0}
	if !bytes.Equal(got, want) {
		t.Errorf("Negative = %v, want %v", got, want)
	}
}

func TestMirrorHorizontal(t *testing.T) {
	// 2x2:
	// 1 2
	// 3 4
	pix := []byte{1, 2, 3, 4}
	got := MirrorHorizontal(pix, 2, 2)
	want := []byte{2, 1, 4, 3}
	if !bytes.Equal(got, want) {
		t.Errorf("MirrorHorizontal = %v, want %v", got, want)
	}
}

func TestMirrorVertical(t *testing.T) {
	pix := []byte{1, 2, 3, 4}
	got := MirrorVertical(pix, 2, 2)
	want := []byte{3, 4, 1, 2}
	if !bytes.Equal(got, want) {
		t.Errorf("MirrorVertical = %v, want %v", got, want)
	}
}

func TestRotate90(t *testing.T) {
	// 2x3 (w=3,h=2):
	// 1 2 3
	// 4 5 6
	pix := []byte{1, 2, 3, 4, 5, 6}
	out, newW, newH := Rotate90(pix, 3, 2)
	if newW != 2 || newH != 3 {
		t.Fatalf("dims = %dx%d, want 2x3", newW, newH)
	}
	// Expected clockwise rotation:
	// 4 1
	// 5 2
	// 6 3
	want := []byte{4, 1, 5, 2, 6, 3}
	if !bytes.Equal(out, want) {
		t.Errorf("Rotate90 = %v, want %v", out, want)
	}
}

func TestRotate90FourTimesIsIdentity(t *testing.T) {
	pix := []byte{1, 2, 3, 4, 5, 6}
	w, h := 3, 2
	cur := pix
	for i := 0; i < 4; i++ {
		cur, w, h = Rotate90(cur, w, h)
	}
	if w != 3 || h != 2 || !bytes.Equal(cur, pix) {
		t.Errorf("four rotations = %v (%dx%d), want original %v", cur, w, h, pix)
	}
}

func TestExtractChannel(t *testing.T) {
	rgb := []byte{10, 20, 30, 40, 50, 60}
	if got := ExtractChannel(rgb, 2, 1, ChannelRed); !bytes.Equal(got, []byte{10, 40}) {
		t.Errorf("red = %v", got)
	}
	if got := ExtractChannel(rgb, 2, 1, ChannelGreen); !bytes.Equal(got, []byte{20, 50}) {
		t.Errorf("green = %v", got)
	}
	if got := ExtractChannel(rgb, 2, 1, ChannelBlue); !bytes.Equal(got, []byte{30, 60}) {
		t.Errorf("blue = %v", got)
	}
}

func TestRGBToGrayscaleWhiteAndBlack(t *testing.T) {
	rgb := []byte{255, 255, 255, 0, 0, 0}
	got := RGBToGrayscale(rgb, 2, 1)
	if got[0] != 255 || got[1] != 0 {
		t.Errorf("RGBToGrayscale = %v, want [255 0]", got)
	}
}
