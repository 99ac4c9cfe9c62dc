package ppmio

import (
	"bytes"
	"testing"
)

func TestP5RoundTrip(t *testing.T) {
	img := &GrayImage{
		Pixels: []byte{0, 1, 2, 3, 4, 5, 6, 7, 8},
		Width:  3,
		Height: 3,
		MaxVal: 255,
	}
	var buf bytes.Buffer
	if err := WriteP5(&buf, img); err != nil {
		t.Fatalf("WriteP5: %v", err)
	}
	got, err := ReadP5(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadP5: %v", err)
	}
	if got.Width != img.Width || got.Height != img.Height || got.MaxVal != img.MaxVal {
		t.Fatalf("header mismatch: %+v", got)
	}
	if !bytes.Equal(got.Pixels, img.Pixels) {
		t.Fatalf("pixels mismatch: got %v, want %v", got.Pixels, img.Pixels)
	}
}

func TestP6RoundTrip(t *testing.T) {
	img := &RGBImage{
		Pixels: []byte{255, 0, 0, 0, 255, 0, 0, 0, 255, 10, 20, 30},
		Width:  2,
		Height: 2,
		MaxVal: 255,
	}
	var buf bytes.Buffer
	if err := WriteP6(&buf, img); err != nil {
		t.Fatalf("WriteP6: %v", err)
	}
	got, err := ReadP6(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadP6: %v", err)
	}
	if !bytes.Equal(got.Pixels, img.Pixels) {
		t.Fatalf("pixels mismatch: got %v, want %v", got.Pixels, img.Pixels)
	}
}

func TestWrongMagicRejected(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("P6\n2 2\n255\n")
	buf.Write(make([]byte, 12))
	if _, err := ReadP5(bytes.NewReader(buf.Bytes())); err == nil {
		t.Fatal("expected error reading P6 data as P5")
	}
}

func TestTruncatedPixelDataRejected(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("P5\n4 4\n255\n")
	buf.Write(make([]byte, 3))
	if _, err := ReadP5(bytes.NewReader(buf.Bytes())); err == nil {
		t.Fatal("expected error for truncated pixel data")
	}
}

func TestWrongMaxValRejected(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("P5\n2 2\n15\n")
	buf.Write(make([]byte, 4))
	if _, err := ReadP5(bytes.NewReader(buf.Bytes())); err == nil {
		t.Fatal("expected error for maxval != 255")
	}
}
