// Package losslessimage implements the header/framing and pixel-block
// orchestration of the lossless grayscale image codec, wiring together
// internal/imgpred, internal/golomb, and internal/blockparam. It is
// grounded on this module's original source's lossless_image.cpp
// (encodeImage/decodeImage and findBestPredictor), restructured into an
// encoder/decoder pair in the style of this module's teacher's
// internal/jpegls Encoder.
package losslessimage

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"predictive-codec/internal/bitio"
	"predictive-codec/internal/blockparam"
	"predictive-codec/internal/golomb"
	"predictive-codec/internal/imgpred"
	"predictive-codec/internal/progress"
)

// Magic is the file header magic number, "GIMG" as big-endian bytes.
const Magic = 0x47494D47

// AutoSelect requests that Encode try all nine predictors and keep the
// smallest output.
const AutoSelect = -1

// Options configures one encode call.
type Options struct {
	Predictor int // 0..8, or AutoSelect
	M         uint32
	BlockSize uint32 // 0 normalizes to width
	Progress  progress.Sink
}

// Image holds a decoded grayscale pixel plane.
type Image struct {
	Pixels []byte
	Width  int
	Height int
}

// Encode writes pix (row-major, width*height bytes) to w as a lossless
// image stream per spec §4.7/§6.
func Encode(w io.Writer, pix []byte, width, height int, opts Options) error {
	if len(pix) != width*height {
		return fmt.Errorf("losslessimage: pixel count %d does not match %dx%d", len(pix), width, height)
	}
	if opts.M > 255 {
		return fmt.Errorf("losslessimage: fixed m %d exceeds the 8-bit wire field", opts.M)
	}

	mode := imgpred.Mode(opts.Predictor)
	if opts.Predictor == AutoSelect {
		best, err := selectBestPredictor(pix, width, height, opts)
		if err != nil {
			return err
		}
		mode = best
	} else {
		m, err := imgpred.ParseMode(opts.Predictor)
		if err != nil {
			return fmt.Errorf("losslessimage: %w", err)
		}
		mode = m
	}

	return encodeWithPredictor(w, pix, width, height, mode, opts)
}

// selectBestPredictor performs the 9 sequential trial encodes spec §5
// mandates, each to a throwaway buffer, and returns the smallest.
func selectBestPredictor(pix []byte, width, height int, opts Options) (imgpred.Mode, error) {
	best := imgpred.JPEGLS
	bestSize := -1
	for p := 0; p < imgpred.NumModes; p++ {
		var buf bytes.Buffer
		trialOpts := opts
		trialOpts.Progress = nil
		if err := encodeWithPredictor(&buf, pix, width, height, imgpred.Mode(p), trialOpts); err != nil {
			return 0, fmt.Errorf("losslessimage: trial encode with predictor %d: %w", p, err)
		}
		if bestSize == -1 || buf.Len() < bestSize {
			bestSize = buf.Len()
			best = imgpred.Mode(p)
		}
	}
	return best, nil
}

func encodeWithPredictor(w io.Writer, pix []byte, width, height int, mode imgpred.Mode, opts Options) error {
	blockSize := opts.BlockSize
	if blockSize == 0 {
		blockSize = uint32(width)
	}
	adaptive := opts.M == 0

	bw := bitio.NewWriter(w)
	bw.WriteBits(Magic, 32)
	bw.WriteBits(uint64(width), 32)
	bw.WriteBits(uint64(height), 32)
	bw.WriteBits(uint64(mode), 8)
	bw.WriteBits(uint64(opts.M), 8)
	bw.WriteBits(uint64(blockSize), 32)

	coder, err := golomb.New(1, golomb.ModeInterleaving)
	if err != nil {
		return fmt.Errorf("losslessimage: %w", err)
	}

	totalPixels := uint64(width) * uint64(height)
	var processed uint64
	for blockStart := uint64(0); blockStart < totalPixels; blockStart += uint64(blockSize) {
		currentBlockSize := blockSize
		if remaining := totalPixels - blockStart; uint64(currentBlockSize) > remaining {
			currentBlockSize = uint32(remaining)
		}

		residuals := make([]int32, currentBlockSize)
		for i := uint32(0); i < currentBlockSize; i++ {
			pixelIdx := blockStart + uint64(i)
			x := int(pixelIdx % uint64(width))
			y := int(pixelIdx / uint64(width))
			n := imgpred.At(pix, width, x, y)
			pred, err := imgpred.Predict(mode, n, x, y)
			if err != nil {
				return fmt.Errorf("losslessimage: %w", err)
			}
			residuals[i] = int32(pix[pixelIdx]) - int32(pred)
		}

		blockM := opts.M
		if adaptive {
			blockM = blockparam.EstimateImage(residuals)
			bw.WriteBits(uint64(blockM), 8)
		}
		if err := coder.SetM(blockM); err != nil {
			return fmt.Errorf("losslessimage: %w", err)
		}
		for _, r := range residuals {
			coder.Encode(bw, r)
		}

		processed += uint64(currentBlockSize)
		if opts.Progress != nil {
			opts.Progress.Report(processed, totalPixels)
		}
	}

	return bw.Close()
}

// Decode reads a lossless image stream from r in full.
func Decode(r io.Reader, prog progress.Sink) (*Image, error) {
	br := bitio.NewReader(r)

	magic, ok := br.ReadBits(32)
	if !ok || magic != Magic {
		return nil, errors.New("losslessimage: format error, bad magic")
	}
	widthRaw, ok := br.ReadBits(32)
	if !ok {
		return nil, errors.New("losslessimage: unexpected end of stream reading width")
	}
	heightRaw, ok := br.ReadBits(32)
	if !ok {
		return nil, errors.New("losslessimage: unexpected end of stream reading height")
	}
	predictorRaw, ok := br.ReadBits(8)
	if !ok {
		return nil, errors.New("losslessimage: unexpected end of stream reading predictor index")
	}
	mFlag, ok := br.ReadBits(8)
	if !ok {
		return nil, errors.New("losslessimage: unexpected end of stream reading adaptive flag")
	}
	blockSize, ok := br.ReadBits(32)
	if !ok {
		return nil, errors.New("losslessimage: unexpected end of stream reading block size")
	}

	mode, err := imgpred.ParseMode(int(predictorRaw))
	if err != nil {
		return nil, fmt.Errorf("losslessimage: %w", err)
	}
	width, height := int(widthRaw), int(heightRaw)
	if width == 0 || height == 0 || blockSize == 0 {
		return nil, errors.New("losslessimage: format error, zero width/height/block size")
	}

	coder, err := golomb.New(1, golomb.ModeInterleaving)
	if err != nil {
		return nil, fmt.Errorf("losslessimage: %w", err)
	}

	pix := make([]byte, width*height)
	totalPixels := uint64(width) * uint64(height)
	adaptive := mFlag == 0
	var processed uint64
	for blockStart := uint64(0); blockStart < totalPixels; blockStart += uint64(blockSize) {
		currentBlockSize := blockSize
		if remaining := totalPixels - blockStart; currentBlockSize > remaining {
			currentBlockSize = remaining
		}

		blockM := uint32(mFlag)
		if adaptive {
			v, ok := br.ReadBits(8)
			if !ok {
				return nil, errors.New("losslessimage: unexpected end of stream reading block m")
			}
			blockM = uint32(v)
		}
		if blockM == 0 {
			return nil, errors.New("losslessimage: stream corruption, block_m is zero mid-stream")
		}
		if err := coder.SetM(blockM); err != nil {
			return nil, fmt.Errorf("losslessimage: %w", err)
		}

		for i := uint64(0); i < currentBlockSize; i++ {
			pixelIdx := blockStart + i
			x := int(pixelIdx % uint64(width))
			y := int(pixelIdx / uint64(width))

			resid, err := coder.Decode(br)
			if err != nil {
				return nil, fmt.Errorf("losslessimage: %w", err)
			}

			n := imgpred.At(pix, width, x, y)
			pred, err := imgpred.Predict(mode, n, x, y)
			if err != nil {
				return nil, fmt.Errorf("losslessimage: %w", err)
			}
			pix[pixelIdx] = imgpred.Clamp(pred + int(resid))
		}

		processed += uint64(currentBlockSize)
		if prog != nil {
			prog.Report(processed, totalPixels)
		}
	}

	return &Image{Pixels: pix, Width: width, Height: height}, nil
}
