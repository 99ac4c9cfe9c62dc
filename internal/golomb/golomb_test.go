package golomb

import (
	"bytes"
	"testing"

	"predictive-codec/internal/bitio"
)

func TestInterleaveRoundTrip(t *testing.T) {
	for n := int32(-5000); n <= 5000; n++ {
		u := Interleave(n)
		if got := Deinterleave(u); got != n {
			t.Fatalf("Deinterleave(Interleave(%d)) = %d", n, got)
		}
	}
}

// TestEncodeDecodeBitStringRoundTrip exercises the CLI-facing bit-string
// helpers across a representative set of m values, including the m=1
// corner where the remainder field must be empty (see writeTruncatedBinary).
func TestEncodeDecodeBitStringRoundTrip(t *testing.T) {
	for _, m := range []uint32{1, 4, 5, 8, 255} {
		c, err := New(m, ModeInterleaving)
		if err != nil {
			t.Fatal(err)
		}
		for _, n := range []int32{0, 1, -1, 5, -3, 100, -100} {
			bits := c.EncodeToBitString(n)
			decoded, err := c.DecodeBitString(bits)
			if err != nil {
				t.Fatalf("m=%d n=%d: decode(%q): %v", m, n, bits, err)
			}
			if decoded != n {
				t.Errorf("m=%d: decode(encode(%d)) = %d, bits=%q", m, n, decoded, bits)
			}
		}
	}
}

// TestM1RemainderIsEmpty pins down the m=1/b=1 corner from §4.2/§9: the
// truncated-binary remainder must contribute zero bits, so the whole
// code is the unary quotient plus its terminating one bit.
func TestM1RemainderIsEmpty(t *testing.T) {
	c, err := New(1, ModeInterleaving)
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []int32{0, 1, -1, 2, -2, 10} {
		bits := c.EncodeToBitString(n)
		u := Interleave(n)
		wantLen := int(u) + 1 // q=u, remainder width 0, plus terminator
		if len(bits) != wantLen {
			t.Errorf("n=%d: code length %d, want %d (bits=%q)", n, len(bits), wantLen, bits)
		}
	}
}

func TestGolombRoundTripAllM(t *testing.T) {
	ms := []uint32{1, 2, 3, 4, 7, 8, 32, 255, 256, 4096, 65535}
	for _, m := range ms {
		for _, mode := range []Mode{ModeInterleaving, ModeSignMagnitude} {
			c, err := New(m, mode)
			if err != nil {
				t.Fatal(err)
			}
			for n := int32(-2000); n <= 2000; n += 7 {
				var buf bytes.Buffer
				bw := bitio.NewWriter(&buf)
				c.Encode(bw, n)
				bw.Close()

				br := bitio.NewReader(bytes.NewReader(buf.Bytes()))
				got, err := c.Decode(br)
				if err != nil {
					t.Fatalf("m=%d mode=%v n=%d: decode error: %v", m, mode, n, err)
				}
				if got != n {
					t.Fatalf("m=%d mode=%v: decode(encode(%d)) = %d", m, mode, n, got)
				}
			}
		}
	}
}

func TestMZeroRejected(t *testing.T) {
	if _, err := New(0, ModeInterleaving); err == nil {
		t.Fatal("expected error for m=0")
	}
}

func TestSetMRecomputesBAndCutoff(t *testing.T) {
	c, err := New(4, ModeInterleaving)
	if err != nil {
		t.Fatal(err)
	}
	if c.b != 2 || c.cutoff != 0 {
		t.Fatalf("m=4: b=%d cutoff=%d, want b=2 cutoff=0", c.b, c.cutoff)
	}
	if err := c.SetM(1); err != nil {
		t.Fatal(err)
	}
	if c.b != 1 {
		t.Fatalf("m=1: b=%d, want 1", c.b)
	}
	if err := c.SetM(6); err != nil {
		t.Fatal(err)
	}
	// b = ceil(log2(6)) = 3, cutoff = 8-6 = 2
	if c.b != 3 || c.cutoff != 2 {
		t.Fatalf("m=6: b=%d cutoff=%d, want b=3 cutoff=2", c.b, c.cutoff)
	}
}

func TestRunawayUnaryDetected(t *testing.T) {
	c, err := New(1<<20, ModeInterleaving)
	if err != nil {
		t.Fatal(err)
	}
	// A stream of all zero bits never terminates the unary code.
	zeros := bytes.Repeat([]byte{0x00}, 20000)
	br := bitio.NewReader(bytes.NewReader(zeros))
	if _, err := c.Decode(br); err == nil {
		t.Fatal("expected runaway unary error")
	}
}
