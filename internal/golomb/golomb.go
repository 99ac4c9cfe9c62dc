// Package golomb implements Golomb/Rice coding with truncated-binary
// remainders: a signed integer is mapped to a non-negative value, split
// into a unary-coded quotient and a truncated-binary remainder. It is
// adapted from the JPEG-LS Golomb-Rice coder this module's teacher
// ships, generalized to an explicit divisor m (rather than a k derived
// from a running context) and to a caller-selectable negative-value
// mapping.
package golomb

import (
	"errors"
	"fmt"

	"predictive-codec/internal/bitio"
)

// Mode selects how negative integers are mapped to the non-negative
// domain the Golomb code operates on. The mode is fixed per Coder and
// never changes mid-stream.
type Mode int

const (
	// ModeInterleaving is the canonical zig-zag mapping:
	// enc(n) = 2n for n >= 0, -2n-1 for n < 0.
	ModeInterleaving Mode = iota
	// ModeSignMagnitude prepends one sign bit and encodes |n|.
	ModeSignMagnitude
)

// maxUnaryRun bounds the unary quotient length a decoder will accept
// before treating the stream as corrupt.
const maxUnaryRun = 100000

// Coder holds Golomb parameters m, b = ceil(log2(m)), and cutoff
// c = 2^b - m, recomputed every time m changes so that no block can see
// a stale b/c pair from a previous block's m.
type Coder struct {
	m      uint32
	b      uint32
	cutoff uint32
	mode   Mode
}

// New creates a Coder for divisor m and the given negative-value mapping.
// m must be at least 1.
func New(m uint32, mode Mode) (*Coder, error) {
	c := &Coder{mode: mode}
	if err := c.SetM(m); err != nil {
		return nil, err
	}
	return c, nil
}

// SetM changes the divisor, recomputing b and the truncated-binary
// cutoff. This is the only place b/c are derived; callers must invoke it
// on every block boundary where m may have changed.
func (c *Coder) SetM(m uint32) error {
	if m == 0 {
		return errors.New("golomb: m must be greater than 0")
	}
	c.m = m
	if m == 1 {
		// b=1 is a convention that keeps the remainder field empty,
		// rather than emitting a spurious zero-width loop.
		c.b = 1
	} else {
		b := uint32(0)
		for (uint32(1) << b) < m {
			b++
		}
		c.b = b
	}
	c.cutoff = (uint32(1) << c.b) - c.m
	return nil
}

// M returns the current divisor.
func (c *Coder) M() uint32 { return c.m }

// Interleave maps a signed integer to the non-negative domain using the
// canonical zig-zag mapping, independent of a Coder's configured mode.
func Interleave(n int32) uint32 {
	if n >= 0 {
		return uint32(2 * n)
	}
	return uint32(-2*n - 1)
}

// Deinterleave is the inverse of Interleave.
func Deinterleave(u uint32) int32 {
	if u%2 == 0 {
		return int32(u / 2)
	}
	return -int32((u + 1) / 2)
}

// Encode writes n to bw using the Coder's current m and mode.
func (c *Coder) Encode(bw *bitio.Writer, n int32) {
	if c.mode == ModeSignMagnitude {
		if n < 0 {
			bw.WriteBit(1)
		} else {
			bw.WriteBit(0)
		}
		c.encodeUnsigned(bw, absU32(n))
		return
	}
	c.encodeUnsigned(bw, Interleave(n))
}

func (c *Coder) encodeUnsigned(bw *bitio.Writer, u uint32) {
	q := u / c.m
	r := u % c.m
	for i := uint32(0); i < q; i++ {
		bw.WriteBit(0)
	}
	bw.WriteBit(1)
	c.writeTruncatedBinary(bw, r)
}

// writeTruncatedBinary emits r in b-1 bits if r < cutoff, else r+cutoff
// in b bits. With m=1 the remainder field is empty: zero bits, never one.
func (c *Coder) writeTruncatedBinary(bw *bitio.Writer, r uint32) {
	if c.m == 1 {
		return
	}
	if r < c.cutoff {
		bw.WriteBits(uint64(r), int(c.b-1))
	} else {
		bw.WriteBits(uint64(r+c.cutoff), int(c.b))
	}
}

// Decode reads one value from br using the Coder's current m and mode.
func (c *Coder) Decode(br *bitio.Reader) (int32, error) {
	var negative bool
	if c.mode == ModeSignMagnitude {
		bit, ok := br.ReadBit()
		if !ok {
			return 0, errors.New("golomb: unexpected end of stream reading sign bit")
		}
		negative = bit == 1
	}

	u, err := c.decodeUnsigned(br)
	if err != nil {
		return 0, err
	}

	if c.mode == ModeSignMagnitude {
		v := int32(u)
		if negative {
			v = -v
		}
		return v, nil
	}
	return Deinterleave(u), nil
}

func (c *Coder) decodeUnsigned(br *bitio.Reader) (uint32, error) {
	q := uint32(0)
	for {
		bit, ok := br.ReadBit()
		if !ok {
			return 0, errors.New("golomb: unexpected end of stream in unary quotient")
		}
		if bit == 1 {
			break
		}
		q++
		if q > maxUnaryRun {
			return 0, fmt.Errorf("golomb: runaway unary code exceeds %d zero bits, stream corrupt", maxUnaryRun)
		}
	}

	r, err := c.readTruncatedBinary(br)
	if err != nil {
		return 0, err
	}
	return q*c.m + r, nil
}

func (c *Coder) readTruncatedBinary(br *bitio.Reader) (uint32, error) {
	if c.m == 1 {
		return 0, nil
	}
	v, ok := br.ReadBits(int(c.b - 1))
	if !ok {
		return 0, errors.New("golomb: unexpected end of stream in remainder")
	}
	r := uint32(v)
	if r < c.cutoff {
		return r, nil
	}
	bit, ok := br.ReadBit()
	if !ok {
		return 0, errors.New("golomb: unexpected end of stream in extended remainder")
	}
	r = (r << 1) | uint32(bit)
	return r - c.cutoff, nil
}

func absU32(n int32) uint32 {
	if n < 0 {
		return uint32(-n)
	}
	return uint32(n)
}
