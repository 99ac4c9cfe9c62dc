// Command golombutil encodes and decodes integers with the Golomb/Rice
// coder directly, bypassing the audio and image codecs, for inspecting
// and debugging the bit-level encoding in isolation.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"predictive-codec/internal/cli"
	"predictive-codec/internal/golomb"
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
  golombutil encode [-m M] [-mode interleaving|sign-magnitude] <int>...
  golombutil decode [-m M] [-mode interleaving|sign-magnitude] <bits>...`)
}

func parseMode(s string) (golomb.Mode, error) {
	switch s {
	case "interleaving":
		return golomb.ModeInterleaving, nil
	case "sign-magnitude":
		return golomb.ModeSignMagnitude, nil
	default:
		return 0, fmt.Errorf("unknown mode %q, want interleaving or sign-magnitude", s)
	}
}

func runEncode(args []string) {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	m := fs.Uint("m", 4, "Golomb divisor")
	modeFlag := fs.String("mode", "interleaving", "interleaving or sign-magnitude")
	fs.Parse(args)

	mode, err := parseMode(*modeFlag)
	if err != nil {
		cli.Fail("%v", err)
	}
	if fs.NArg() == 0 {
		cli.Fail("encode requires at least one integer argument")
	}

	coder, err := golomb.New(uint32(*m), mode)
	if err != nil {
		cli.Die(err)
	}

	for _, arg := range fs.Args() {
		n, err := strconv.ParseInt(arg, 10, 32)
		if err != nil {
			cli.Fail("invalid integer %q: %v", arg, err)
		}
		fmt.Println(coder.EncodeToBitString(int32(n)))
	}
}

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	m := fs.Uint("m", 4, "Golomb divisor")
	modeFlag := fs.String("mode", "interleaving", "interleaving or sign-magnitude")
	fs.Parse(args)

	mode, err := parseMode(*modeFlag)
	if err != nil {
		cli.Fail("%v", err)
	}
	if fs.NArg() == 0 {
		cli.Fail("decode requires at least one bit-string argument")
	}

	coder, err := golomb.New(uint32(*m), mode)
	if err != nil {
		cli.Die(err)
	}

	for _, arg := range fs.Args() {
		n, err := coder.DecodeBitString(arg)
		if err != nil {
			cli.Die(err)
		}
		fmt.Println(n)
	}
}
