package golomb

import (
	"bytes"
	"fmt"
	"strings"

	"predictive-codec/internal/bitio"
)

// EncodeToBitString renders the Golomb encoding of n as a string of '0'
// and '1' characters, for the golomb CLI utility (spec §6).
func (c *Coder) EncodeToBitString(n int32) string {
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	c.Encode(bw, n)
	bw.Close()

	var sb strings.Builder
	for _, b := range buf.Bytes() {
		for i := 7; i >= 0; i-- {
			if (b>>uint(i))&1 == 1 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}
	return sb.String()[:trailingBitWidth(c, n, sb.Len())]
}

// trailingBitWidth returns how many of the byte-padded output bits are
// the real encoding; padding added by Writer.Close to byte-align is
// trimmed off so the CLI prints exactly the code, e.g. "00100" not
// "00100000".
func trailingBitWidth(c *Coder, n int32, padded int) int {
	w := bitWidth(c, n)
	if w > padded {
		return padded
	}
	return w
}

func bitWidth(c *Coder, n int32) int {
	var u uint32
	signBits := 0
	if c.mode == ModeSignMagnitude {
		signBits = 1
		u = absU32(n)
	} else {
		u = Interleave(n)
	}
	q := u / c.m
	remBits := 0
	if c.m > 1 {
		r := u % c.m
		if r < c.cutoff {
			remBits = int(c.b - 1)
		} else {
			remBits = int(c.b)
		}
	}
	return signBits + int(q) + 1 + remBits
}

// DecodeBitString decodes a single Golomb value from a literal '0'/'1'
// string (one CLI argument, holding exactly one encoded value).
func (c *Coder) DecodeBitString(bits string) (int32, error) {
	if bits == "" {
		return 0, fmt.Errorf("golomb: empty bit string")
	}
	for _, ch := range bits {
		if ch != '0' && ch != '1' {
			return 0, fmt.Errorf("golomb: invalid bit character %q", ch)
		}
	}
	// Pack into bytes, zero-padding the final partial byte; Decode never
	// reads more bits than the code defines, so padding is never observed.
	packed := make([]byte, (len(bits)+7)/8)
	for i, ch := range bits {
		if ch == '1' {
			packed[i/8] |= 1 << uint(7-(i%8))
		}
	}
	br := bitio.NewReader(bytes.NewReader(packed))
	return c.Decode(br)
}
