// Package lossyaudio implements the lossy DCT-transform PCM audio codec:
// per-block DCT-II analysis, psychoacoustic-weighted energy-adaptive
// quantization, and DCT-III synthesis on decode. It is grounded on this
// module's original source's lossy_codec_enc.cpp and lossy_codec_dec.cpp,
// restructured into an encoder/decoder pair in the style of this module's
// teacher's internal/jpegls Encoder.
package lossyaudio

import (
	"errors"
	"fmt"
	"io"
	"math"

	"predictive-codec/internal/bitio"
	"predictive-codec/internal/progress"
)

// Magic is the "GDCT" tag (big-endian bytes) for the lossy audio format.
// The stream header does not carry it and Decode does not check it.
const Magic = 0x47444354

// BlockSize is the fixed DCT transform block length in samples.
const BlockSize = 1024

// BaseQuantization is the baseline quantization step Q0 applied before
// psychoacoustic weighting and energy adaptation.
const BaseQuantization = 0.002

// maxMagnitudeBits caps the per-coefficient magnitude field width; a
// coefficient whose magnitude needs more bits is truncated to this width,
// matching the original encoder/decoder's shared 20-bit ceiling.
const maxMagnitudeBits = 20

// Options configures one encode call. Only mono input is supported, per
// spec §4.8 Non-goals.
type Options struct {
	// Q0 overrides the baseline quantization step. Zero selects
	// BaseQuantization.
	Q0       float64
	Progress progress.Sink
}

// Stream holds a decoded mono PCM16 signal.
type Stream struct {
	Samples    []int16
	SampleRate uint32
}

// Encode writes samples (mono PCM16) to w as a lossy DCT stream.
func Encode(w io.Writer, samples []int16, sampleRate uint32, opts Options) error {
	q0 := opts.Q0
	if q0 == 0 {
		q0 = BaseQuantization
	}

	bw := bitio.NewWriter(w)
	bw.WriteBits(uint64(sampleRate), 32)
	bw.WriteBits(uint64(len(samples)), 32)
	bw.WriteBits(uint64(BlockSize), 16)
	bw.WriteBits(uint64(uint32(q0*1000000)), 32)

	block := make([]float64, BlockSize)
	totalFrames := uint64(len(samples))
	var processed uint64
	for start := 0; start < len(samples); start += BlockSize {
		end := start + BlockSize
		if end > len(samples) {
			end = len(samples)
		}
		for i := range block {
			block[i] = 0.0
		}
		for i := start; i < end; i++ {
			block[i-start] = float64(samples[i]) / 32768.0
		}

		energy := calculateEnergy(block)
		energyFactor := clampFloat(energy*10.0, 0.5, 2.0)

		coeffs := forwardDCT(block)
		quantized := quantize(coeffs, q0, energyFactor)

		energyEnc := uint16(energyFactor * 1000)
		bw.WriteBits(uint64(energyEnc), 16)

		for _, c := range quantized {
			writeCoefficient(bw, c)
		}

		processed += uint64(end - start)
		if opts.Progress != nil {
			opts.Progress.Report(processed, totalFrames)
		}
	}

	return bw.Close()
}

// Decode reads a lossy DCT stream from r in full.
func Decode(r io.Reader, prog progress.Sink) (*Stream, error) {
	br := bitio.NewReader(r)

	sampleRate, ok := br.ReadBits(32)
	if !ok {
		return nil, errors.New("lossyaudio: unexpected end of stream reading sample rate")
	}
	totalFramesRaw, ok := br.ReadBits(32)
	if !ok {
		return nil, errors.New("lossyaudio: unexpected end of stream reading total frames")
	}
	blockSizeRaw, ok := br.ReadBits(16)
	if !ok {
		return nil, errors.New("lossyaudio: unexpected end of stream reading block size")
	}
	quantFixed, ok := br.ReadBits(32)
	if !ok {
		return nil, errors.New("lossyaudio: unexpected end of stream reading quantization step")
	}

	blockSize := int(blockSizeRaw)
	if blockSize == 0 {
		return nil, errors.New("lossyaudio: format error, zero block size")
	}
	baseQuant := float64(quantFixed) / 1000000.0
	totalFrames := totalFramesRaw

	samples := make([]int16, 0, totalFrames)
	quantized := make([]int32, blockSize)
	var written uint64

	for written < totalFrames {
		energyEncRaw, ok := br.ReadBits(16)
		if !ok {
			break
		}
		energyFactor := float64(energyEncRaw) / 1000.0

		for i := 0; i < blockSize; i++ {
			c, err := readCoefficient(br)
			if err != nil {
				return nil, fmt.Errorf("lossyaudio: %w", err)
			}
			quantized[i] = c
		}

		coeffs := dequantize(quantized, baseQuant, energyFactor)
		block := inverseDCT(coeffs)

		toWrite := uint64(blockSize)
		if remaining := totalFrames - written; toWrite > remaining {
			toWrite = remaining
		}
		for i := uint64(0); i < toWrite; i++ {
			samples = append(samples, floatToPCM16(block[i]))
		}

		written += toWrite
		if prog != nil {
			prog.Report(written, totalFrames)
		}
	}

	return &Stream{Samples: samples, SampleRate: uint32(sampleRate)}, nil
}

func writeCoefficient(bw *bitio.Writer, coeff int32) {
	sign := 0
	if coeff < 0 {
		sign = 1
		coeff = -coeff
	}
	bw.WriteBit(sign)

	bitsNeeded := 0
	for temp := coeff; temp > 0; temp >>= 1 {
		bitsNeeded++
	}
	if bitsNeeded == 0 {
		bitsNeeded = 1
	}
	if bitsNeeded > maxMagnitudeBits {
		bitsNeeded = maxMagnitudeBits
	}

	bw.WriteBits(uint64(bitsNeeded), 5)
	bw.WriteBits(uint64(coeff), bitsNeeded)
}

func readCoefficient(br *bitio.Reader) (int32, error) {
	signBit, ok := br.ReadBit()
	if !ok {
		return 0, errors.New("unexpected end of stream reading coefficient sign")
	}
	bitsNeededRaw, ok := br.ReadBits(5)
	if !ok {
		return 0, errors.New("unexpected end of stream reading coefficient width")
	}
	bitsNeeded := int(bitsNeededRaw)
	if bitsNeeded == 0 {
		bitsNeeded = 1
	}
	magnitude, ok := br.ReadBits(bitsNeeded)
	if !ok {
		return 0, errors.New("unexpected end of stream reading coefficient magnitude")
	}
	if signBit == 1 {
		return -int32(magnitude), nil
	}
	return int32(magnitude), nil
}

// forwardDCT computes the orthonormal DCT-II of input.
func forwardDCT(input []float64) []float64 {
	n := len(input)
	output := make([]float64, n)
	for k := 0; k < n; k++ {
		scale := math.Sqrt(2.0 / float64(n))
		if k == 0 {
			scale = math.Sqrt(1.0 / float64(n))
		}
		var sum float64
		for i, v := range input {
			sum += v * math.Cos(math.Pi*float64(k)*(float64(i)+0.5)/float64(n))
		}
		output[k] = sum * scale
	}
	return output
}

// inverseDCT computes the orthonormal DCT-III (the inverse of forwardDCT),
// with reconstructed samples clamped to the normalized [-1,1] range.
func inverseDCT(input []float64) []float64 {
	n := len(input)
	output := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for k, v := range input {
			scale := math.Sqrt(2.0 / float64(n))
			if k == 0 {
				scale = math.Sqrt(1.0 / float64(n))
			}
			sum += scale * v * math.Cos(math.Pi*float64(k)*(float64(i)+0.5)/float64(n))
		}
		output[i] = clampFloat(sum, -1.0, 1.0)
	}
	return output
}

// weight returns the psychoacoustic weight for coefficient index within a
// block of the given size: lower frequencies are weighted less (finer
// quantization step) and high frequencies more (coarser step).
func weight(index, blockSize int) float64 {
	freqRatio := float64(index) / float64(blockSize)
	switch {
	case freqRatio < 0.1:
		return 0.5
	case freqRatio < 0.3:
		return 1.0
	case freqRatio < 0.5:
		return 1.5
	default:
		return 2.5
	}
}

func calculateEnergy(block []float64) float64 {
	var energy float64
	for _, v := range block {
		energy += v * v
	}
	return math.Sqrt(energy / float64(len(block)))
}

func quantize(coeffs []float64, baseStep, energyFactor float64) []int32 {
	quantized := make([]int32, len(coeffs))
	for i, c := range coeffs {
		step := baseStep * weight(i, len(coeffs)) * energyFactor
		quantized[i] = int32(math.Round(c / step))
	}
	return quantized
}

func dequantize(quantized []int32, baseStep, energyFactor float64) []float64 {
	coeffs := make([]float64, len(quantized))
	for i, q := range quantized {
		step := baseStep * weight(i, len(quantized)) * energyFactor
		coeffs[i] = float64(q) * step
	}
	return coeffs
}

func floatToPCM16(v float64) int16 {
	scaled := v * 32767.0
	if scaled > 32767.0 {
		scaled = 32767.0
	}
	if scaled < -32768.0 {
		scaled = -32768.0
	}
	return int16(scaled)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
