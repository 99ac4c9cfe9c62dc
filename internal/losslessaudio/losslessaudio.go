// Package losslessaudio implements the header/framing, mid/side stereo
// transform, and block orchestration of the lossless PCM audio codec,
// wiring together internal/audiopred, internal/golomb, and
// internal/blockparam. It is grounded on this module's original source's
// lossless_audio.cpp, generalized from that file's encodeWavWithGolomb /
// decodeGolombToWav pair into a package with encoder/decoder types in the
// style of this module's teacher's internal/jpegls Encoder.
package losslessaudio

import (
	"errors"
	"fmt"
	"io"

	"predictive-codec/internal/audiopred"
	"predictive-codec/internal/bitio"
	"predictive-codec/internal/blockparam"
	"predictive-codec/internal/golomb"
	"predictive-codec/internal/progress"
)

// Options configures one encode call.
type Options struct {
	BlockSize      uint32 // frames per block
	M              uint32 // 0 selects block-adaptive m
	PredictorOrder int    // 0..audiopred.MaxOrder
	Progress       progress.Sink
}

// Stream holds the decoded result of a lossless audio stream.
type Stream struct {
	Samples    []int16 // interleaved by channel, frame-major
	SampleRate uint32
	Channels   uint16
}

// Encode writes samples (frame-interleaved, 16-bit signed) to w as a
// lossless audio stream per spec §4.6/§6.
func Encode(w io.Writer, samples []int16, sampleRate uint32, channels uint16, opts Options) error {
	if opts.BlockSize == 0 {
		return fmt.Errorf("losslessaudio: block size must be nonzero")
	}
	pred, err := audiopred.New(opts.PredictorOrder)
	if err != nil {
		return fmt.Errorf("losslessaudio: %w", err)
	}
	if channels == 0 {
		return fmt.Errorf("losslessaudio: channel count must be nonzero")
	}
	if len(samples)%int(channels) != 0 {
		return fmt.Errorf("losslessaudio: sample count %d not a multiple of channel count %d", len(samples), channels)
	}
	frames := uint64(len(samples)) / uint64(channels)

	bw := bitio.NewWriter(w)
	bw.WriteBits(uint64(sampleRate), 32)
	bw.WriteBits(uint64(channels), 16)
	bw.WriteBits(frames, 64)
	bw.WriteBits(uint64(opts.BlockSize), 32)
	bw.WriteBits(uint64(opts.PredictorOrder), 8)

	useMidSide := channels == 2
	encodedChannels := int(channels)

	histories := make([]*audiopred.History, encodedChannels)
	for i := range histories {
		histories[i] = audiopred.NewHistory()
	}

	coder, err := golomb.New(1, golomb.ModeInterleaving)
	if err != nil {
		return fmt.Errorf("losslessaudio: %w", err)
	}

	var processed uint64
	for frameStart := uint64(0); frameStart < frames; frameStart += uint64(opts.BlockSize) {
		blockFrames := opts.BlockSize
		if remaining := frames - frameStart; uint64(blockFrames) > remaining {
			blockFrames = uint32(remaining)
		}

		residuals := make([]int32, 0, uint64(blockFrames)*uint64(encodedChannels))
		for i := uint32(0); i < blockFrames; i++ {
			frameIdx := frameStart + uint64(i)
			l := samples[frameIdx*uint64(channels)]
			var frame []int16
			if useMidSide {
				r := samples[frameIdx*uint64(channels)+1]
				mid, side := forwardMidSide(l, r)
				frame = []int16{mid, side}
			} else {
				frame = make([]int16, channels)
				for ch := 0; ch < int(channels); ch++ {
					frame[ch] = samples[frameIdx*uint64(channels)+uint64(ch)]
				}
			}
			for ch, s := range frame {
				h := histories[ch]
				p := pred.Predict(h)
				resid := int32(s) - p
				residuals = append(residuals, resid)
				h.Advance(int32(s))
			}
		}

		blockM := opts.M
		if blockM == 0 {
			blockM = blockparam.EstimateAudio(residuals)
		}
		if err := coder.SetM(blockM); err != nil {
			return fmt.Errorf("losslessaudio: %w", err)
		}

		bw.WriteBits(uint64(blockM), 16)
		bw.WriteBits(uint64(len(residuals)), 32)
		for _, r := range residuals {
			coder.Encode(bw, r)
		}

		processed += uint64(blockFrames)
		if opts.Progress != nil {
			opts.Progress.Report(processed, frames)
		}
	}

	return bw.Close()
}

// Decode reads a lossless audio stream from r in full.
func Decode(r io.Reader, prog progress.Sink) (*Stream, error) {
	br := bitio.NewReader(r)

	sampleRate, ok := br.ReadBits(32)
	if !ok {
		return nil, errors.New("losslessaudio: unexpected end of stream reading sample rate")
	}
	channelsRaw, ok := br.ReadBits(16)
	if !ok {
		return nil, errors.New("losslessaudio: unexpected end of stream reading channel count")
	}
	channels := uint16(channelsRaw)
	frames, ok := br.ReadBits(64)
	if !ok {
		return nil, errors.New("losslessaudio: unexpected end of stream reading frame count")
	}
	blockSize, ok := br.ReadBits(32)
	if !ok {
		return nil, errors.New("losslessaudio: unexpected end of stream reading block size")
	}
	orderRaw, ok := br.ReadBits(8)
	if !ok {
		return nil, errors.New("losslessaudio: unexpected end of stream reading predictor order")
	}
	pred, err := audiopred.New(int(orderRaw))
	if err != nil {
		return nil, fmt.Errorf("losslessaudio: %w", err)
	}
	if channels == 0 || blockSize == 0 {
		return nil, errors.New("losslessaudio: format error, channel count or block size is zero")
	}

	useMidSide := channels == 2
	encodedChannels := int(channels)
	histories := make([]*audiopred.History, encodedChannels)
	for i := range histories {
		histories[i] = audiopred.NewHistory()
	}

	coder, err := golomb.New(1, golomb.ModeInterleaving)
	if err != nil {
		return nil, fmt.Errorf("losslessaudio: %w", err)
	}

	samples := make([]int16, 0, frames*uint64(channels))
	var processed uint64
	for processed < frames {
		blockM, ok := br.ReadBits(16)
		if !ok {
			return nil, errors.New("losslessaudio: unexpected end of stream reading block m")
		}
		sampleCount, ok := br.ReadBits(32)
		if !ok {
			return nil, errors.New("losslessaudio: unexpected end of stream reading block sample count")
		}
		if blockM == 0 || sampleCount == 0 {
			return nil, errors.New("losslessaudio: stream corruption, block_m or sample count is zero mid-stream")
		}
		if err := coder.SetM(uint32(blockM)); err != nil {
			return nil, fmt.Errorf("losslessaudio: %w", err)
		}

		frame := make([]int16, encodedChannels)
		for i := uint32(0); i < uint32(sampleCount); i++ {
			ch := int(i) % encodedChannels
			resid, err := coder.Decode(br)
			if err != nil {
				return nil, fmt.Errorf("losslessaudio: %w", err)
			}
			h := histories[ch]
			p := pred.Predict(h)
			sample := int16(p + resid)
			h.Advance(int32(sample))
			frame[ch] = sample

			if ch == encodedChannels-1 {
				if useMidSide {
					mid, side := frame[0], frame[1]
					l, r := inverseMidSide(mid, side)
					samples = append(samples, l, r)
				} else {
					samples = append(samples, frame...)
				}
				processed++
				if prog != nil {
					prog.Report(processed, frames)
				}
			}
		}
	}

	return &Stream{Samples: samples, SampleRate: uint32(sampleRate), Channels: channels}, nil
}

// forwardMidSide computes side = L-R, mid = R + (side>>1) in wide
// arithmetic, narrowing to 16 bits with two's-complement wraparound at each
// step exactly as the original C++ int16_t assignment does, per spec's
// design note that wide intermediate arithmetic is required but the wire
// format stores 16-bit values.
func forwardMidSide(l, r int16) (mid, side int16) {
	side = int16(int32(l) - int32(r))
	mid = int16(int32(r) + (int32(side) >> 1))
	return mid, side
}

// inverseMidSide is the exact inverse of forwardMidSide.
func inverseMidSide(mid, side int16) (l, r int16) {
	r = int16(int32(mid) - (int32(side) >> 1))
	l = int16(int32(r) + int32(side))
	return l, r
}
