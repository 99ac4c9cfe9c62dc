// Command lossyaudio encodes mono WAV PCM16 audio to the DCT-transform
// psychoacoustic-weighted lossy stream and decodes it back.
package main

import (
	"flag"
	"fmt"
	"os"

	"predictive-codec/internal/cli"
	"predictive-codec/internal/lossyaudio"
	"predictive-codec/internal/progress"
	"predictive-codec/internal/wavio"
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
  lossyaudio encode <in.wav> <out.dct> [-v] [-q0 0.002]
  lossyaudio decode <in.dct> <out.wav> [-v]

Only mono input is supported.`)
}

func runEncode(args []string) {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	verbose := fs.Bool("v", false, "show a progress bar")
	q0 := fs.Float64("q0", lossyaudio.BaseQuantization, "baseline quantization step")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 2 {
		cli.Fail("encode requires in.wav out.dct")
	}
	inPath, outPath := rest[0], rest[1]

	in, err := os.Open(inPath)
	if err != nil {
		cli.Die(err)
	}
	defer in.Close()

	samples, sampleRate, channels, err := wavio.Read(in)
	if err != nil {
		cli.Die(err)
	}
	if channels != 1 {
		cli.Fail("only mono audio is supported, got %d channels", channels)
	}

	out, err := os.Create(outPath)
	if err != nil {
		cli.Die(err)
	}
	defer out.Close()

	opts := lossyaudio.Options{Q0: *q0}
	if *verbose {
		cli.PrintHeader("Lossy audio encode", [][2]string{
			{"Input", inPath},
			{"Output", outPath},
			{"Sample rate", fmt.Sprintf("%d Hz", sampleRate)},
			{"Q0", fmt.Sprintf("%g", *q0)},
		})
		opts.Progress = progress.NewBar(os.Stdout, "encode", 50)
	}

	if err := lossyaudio.Encode(out, samples, sampleRate, opts); err != nil {
		cli.Die(err)
	}
	if *verbose {
		cli.PrintSummary("Encoded %d frames", len(samples))
	}
}

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	verbose := fs.Bool("v", false, "show a progress bar")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 2 {
		cli.Fail("decode requires in.dct out.wav")
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

	stream, err := lossyaudio.Decode(in, prog)
	if err != nil {
		cli.Die(err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		cli.Die(err)
	}
	defer out.Close()

	if err := wavio.Write(out, stream.Samples, stream.SampleRate, 1); err != nil {
		cli.Die(err)
	}
	if *verbose {
		cli.PrintSummary("Decoded %d frames", len(stream.Samples))
	}
}
