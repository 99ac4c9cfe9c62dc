package cli

import "testing"

func TestExitCodesMatchSpec(t *testing.T) {
	if ExitSuccess != 0 || ExitUsage != 1 || ExitFailure != 2 {
		t.Fatalf("exit codes = %d,%d,%d, want 0,1,2", ExitSuccess, ExitUsage, ExitFailure)
	}
}
