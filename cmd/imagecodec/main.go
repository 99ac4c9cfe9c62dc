// Command imagecodec encodes PPM (P5 grayscale or P6 color) images to the
// lossless predictive Golomb-coded stream and decodes it back, optionally
// applying a colour/geometry effect to the decoded image before writing it.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"predictive-codec/internal/cli"
	"predictive-codec/internal/imgfx"
	"predictive-codec/internal/losslessimage"
	"predictive-codec/internal/ppmio"
	"predictive-codec/internal/progress"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(cli.ExitUsage)
	}

	switch os.Args[1] {
	case "encode":
		runEncode(os.Args[2:])
	case "decode":
		runDecode(os.Args[2:])
	case "-h", "--help":
		usage()
		os.Exit(cli.ExitSuccess)
	default:
		usage()
		os.Exit(cli.ExitUsage)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage:
  imagecodec encode <in.ppm> <out.gimg> <predictor(-1..8)> <m> <block_size> [-v] [-auto]
  imagecodec decode <in.gimg> <out.ppm> [-v]
    [-brighten N] [-negative] [-mirror-h] [-mirror-v] [-rotate90]

predictor -1 with -auto tries all nine predictors and keeps the smallest
encoding. m=0 selects per-block adaptive m. Color (P6) input is converted
to grayscale before encoding; decode always writes P5.`)
}

func runEncode(args []string) {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	verbose := fs.Bool("v", false, "show a progress bar")
	auto := fs.Bool("auto", false, "try all predictors and keep the smallest")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 5 {
		cli.Fail("encode requires in.ppm out.gimg predictor m block_size")
	}
	inPath, outPath := rest[0], rest[1]
	predictor, err := strconv.Atoi(rest[2])
	if err != nil {
		cli.Fail("invalid predictor %q: %v", rest[2], err)
	}
	m, err := strconv.ParseUint(rest[3], 10, 32)
	if err != nil {
		cli.Fail("invalid m %q: %v", rest[3], err)
	}
	blockSize, err := strconv.ParseUint(rest[4], 10, 32)
	if err != nil {
		cli.Fail("invalid block_size %q: %v", rest[4], err)
	}
	if *auto {
		predictor = losslessimage.AutoSelect
	}

	in, err := os.Open(inPath)
	if err != nil {
		cli.Die(err)
	}
	defer in.Close()

	pix, width, height, err := readGrayPixels(in)
	if err != nil {
		cli.Die(err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		cli.Die(err)
	}
	defer out.Close()

	opts := losslessimage.Options{Predictor: predictor, M: uint32(m), BlockSize: uint32(blockSize)}
	if *verbose {
		cli.PrintHeader("Lossless image encode", [][2]string{
			{"Input", inPath},
			{"Output", outPath},
			{"Dimensions", fmt.Sprintf("%dx%d", width, height)},
		})
		opts.Progress = progress.NewBar(os.Stdout, "encode", 50)
	}

	if err := losslessimage.Encode(out, pix, width, height, opts); err != nil {
		cli.Die(err)
	}
	if *verbose {
		cli.PrintSummary("Encoded %dx%d image", width, height)
	}
}

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	verbose := fs.Bool("v", false, "show a progress bar")
	brighten := fs.Int("brighten", 0, "add delta to every pixel")
	negative := fs.Bool("negative", false, "invert every pixel")
	mirrorH := fs.Bool("mirror-h", false, "mirror horizontally")
	mirrorV := fs.Bool("mirror-v", false, "mirror vertically")
	rotate90 := fs.Bool("rotate90", false, "rotate 90 degrees clockwise")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 2 {
		cli.Fail("decode requires in.gimg out.ppm")
	}
	inPath, outPath := rest[0], rest[1]

	in, err := os.Open(inPath)
	if err != nil {
		cli.Die(err)
	}
	defer in.Close()

	var prog progress.Sink
	if *verbose {
		prog = progress.NewBar(os.Stdout, "decode", 50)
	}

	img, err := losslessimage.Decode(in, prog)
	if err != nil {
		cli.Die(err)
	}

	pix, width, height := img.Pixels, img.Width, img.Height
	if *brighten != 0 {
		pix = imgfx.Brighten(pix, *brighten)
	}
	if *negative {
		pix = imgfx.Negative(pix)
	}
	if *mirrorH {
		pix = imgfx.MirrorHorizontal(pix, width, height)
	}
	if *mirrorV {
		pix = imgfx.MirrorVertical(pix, width, height)
	}
	if *rotate90 {
		pix, width, height = imgfx.Rotate90(pix, width, height)
	}

	out, err := os.Create(outPath)
	if err != nil {
		cli.Die(err)
	}
	defer out.Close()

	gray := &ppmio.GrayImage{Pixels: pix, Width: width, Height: height, MaxVal: 255}
	if err := ppmio.WriteP5(out, gray); err != nil {
		cli.Die(err)
	}
	if *verbose {
		cli.PrintSummary("Decoded %dx%d image", width, height)
	}
}

// readGrayPixels reads a P5 or P6 PPM, converting P6 to grayscale.
func readGrayPixels(r *os.File) (pix []byte, width, height int, err error) {
	peek := make([]byte, 2)
	if _, err := r.Read(peek); err != nil {
		return nil, 0, 0, err
	}
	if _, err := r.Seek(0, 0); err != nil {
		return nil, 0, 0, err
	}

	if string(peek) == "P6" {
		rgb, err := ppmio.ReadP6(r)
		if err != nil {
			return nil, 0, 0, err
		}
		gray := imgfx.RGBToGrayscale(rgb.Pixels, rgb.Width, rgb.Height)
		return gray, rgb.Width, rgb.Height, nil
	}

	gray, err := ppmio.ReadP5(r)
	if err != nil {
		return nil, 0, 0, err
	}
	return gray.Pixels, gray.Width, gray.Height, nil
}
