// Command audiocodec encodes WAV PCM16 audio to the lossless block-adaptive
// Golomb-coded stream and decodes it back.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"predictive-codec/internal/cli"
	"predictive-codec/internal/losslessaudio"
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
  audiocodec encode <in.wav> <out.gblk> <block_samples> <m> <predictor_order> [-v]
  audiocodec decode <in.gblk> <out.wav> [-v]

m=0 selects per-block adaptive m. Mid/side decorrelation is applied
automatically when the input is 2-channel.`)
}

func runEncode(args []string) {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	verbose := fs.Bool("v", false, "show a progress bar")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 5 {
		cli.Fail("encode requires in.wav out.gblk block_samples m predictor_order")
	}
	inPath, outPath := rest[0], rest[1]
	blockSamples, err := strconv.ParseUint(rest[2], 10, 32)
	if err != nil {
		cli.Fail("invalid block_samples %q: %v", rest[2], err)
	}
	m, err := strconv.ParseUint(rest[3], 10, 32)
	if err != nil {
		cli.Fail("invalid m %q: %v", rest[3], err)
	}
	order, err := strconv.Atoi(rest[4])
	if err != nil {
		cli.Fail("invalid predictor_order %q: %v", rest[4], err)
	}

	in, err := os.Open(inPath)
	if err != nil {
		cli.Die(err)
	}
	defer in.Close()

	samples, sampleRate, channels, err := wavio.Read(in)
	if err != nil {
		cli.Die(err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		cli.Die(err)
	}
	defer out.Close()

	opts := losslessaudio.Options{
		BlockSize:      uint32(blockSamples),
		M:              uint32(m),
		PredictorOrder: order,
	}
	if *verbose {
		cli.PrintHeader("Lossless audio encode", [][2]string{
			{"Input", inPath},
			{"Output", outPath},
			{"Channels", strconv.Itoa(int(channels))},
		})
		opts.Progress = progress.NewBar(os.Stdout, "encode", 50)
	}

	if err := losslessaudio.Encode(out, samples, sampleRate, channels, opts); err != nil {
		cli.Die(err)
	}
	if *verbose {
		cli.PrintSummary("Encoded %d samples", len(samples))
	}
}

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	verbose := fs.Bool("v", false, "show a progress bar")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 2 {
		cli.Fail("decode requires in.gblk out.wav")
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

	stream, err := losslessaudio.Decode(in, prog)
	if err != nil {
		cli.Die(err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		cli.Die(err)
	}
	defer out.Close()

	if err := wavio.Write(out, stream.Samples, stream.SampleRate, stream.Channels); err != nil {
		cli.Die(err)
	}
	if *verbose {
		cli.PrintSummary("Decoded %d samples", len(stream.Samples))
	}
}
