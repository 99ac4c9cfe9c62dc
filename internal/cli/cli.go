// Package cli holds the small pieces of terminal presentation shared by
// the four codec binaries (cmd/audiocodec, cmd/imagecodec, cmd/lossyaudio,
// cmd/golombutil): usage/error exit codes and run header/summary
// printing. Adapted from this module's teacher's internal/cli runner,
// which printed a similar header/progress-bar/summary sequence around a
// single long-running operation; the progress bar itself now lives in
// internal/progress since it must satisfy that package's Sink interface.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Exit codes shared by every cmd/ binary in this module, per spec.md §6.
const (
	ExitSuccess = 0
	ExitUsage   = 1
	ExitFailure = 2
)

// Fail prints a usage error to stderr and exits with ExitUsage.
func Fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(ExitUsage)
}

// Die prints an operational error to stderr and exits with ExitFailure.
func Die(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(ExitFailure)
}

// PrintHeader prints a run header in the teacher's "title, rule, field:
// value" style.
func PrintHeader(title string, fields [][2]string) {
	fmt.Println(title)
	fmt.Println(strings.Repeat("=", 50))
	for _, f := range fields {
		fmt.Printf("%-11s%s\n", f[0]+":", f[1])
	}
	fmt.Println()
}

// PrintSummary prints a one-line completion summary below a trailing
// blank line, matching the teacher's printSummary framing.
func PrintSummary(format string, args ...any) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf(format+"\n", args...)
}
