// Package wavio adapts PCM16 sample slices to and from RIFF/WAV files,
// wrapping github.com/go-audio/wav the way this module's teacher's
// cmd/anonymizer wraps github.com/suyashkumar/dicom for its own file
// format.
package wavio

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// bitDepth is the only sample format this package reads and writes; the
// codecs this module implements operate on PCM16 exclusively.
const bitDepth = 16

// Read decodes a WAV file from r into interleaved PCM16 samples.
func Read(r io.ReadSeeker) (samples []int16, sampleRate uint32, channels uint16, err error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, 0, fmt.Errorf("wavio: not a valid WAV file")
	}
	if dec.BitDepth != bitDepth {
		return nil, 0, 0, fmt.Errorf("wavio: format error, unsupported bit depth %d, want %d", dec.BitDepth, bitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("wavio: decode: %w", err)
	}

	samples = make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v)
	}

	return samples, uint32(buf.Format.SampleRate), uint16(buf.Format.NumChannels), nil
}

// Write encodes interleaved PCM16 samples to w as a WAV file. w must
// support Seek, since the RIFF chunk sizes are backpatched after the
// sample data is written.
func Write(w io.WriteSeeker, samples []int16, sampleRate uint32, channels uint16) error {
	enc := wav.NewEncoder(w, int(sampleRate), bitDepth, int(channels), 1)

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: int(channels), SampleRate: int(sampleRate)},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: write: %w", err)
	}
	return enc.Close()
}
