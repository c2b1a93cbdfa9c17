package cargo

import (
	"context"
	"runtime"
	"testing"
	"time"

	"cargomcp/internal/logging"
)

// The runner is exercised with generic executables rather than cargo
// itself so the tests run on machines without a Rust toolchain.

func newTestRunner(t *testing.T, path string) *Runner {
	t.Helper()
	logger, _ := logging.NewTestLogger()
	return NewRunner(path, logger)
}

func TestRunCapturesOutputAndExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}
	r := newTestRunner(t, "sh")

	res := r.Run(context.Background(), t.TempDir(), "-c", "echo out; echo err >&2")

	if !res.Success() {
		t.Fatalf("expected success, got exit code %d", res.ExitCode)
	}
	if res.Stdout != "out\n" {
		t.Errorf("stdout = %q, want %q", res.Stdout, "out\n")
	}
	if res.Stderr != "err\n" {
		t.Errorf("stderr = %q, want %q", res.Stderr, "err\n")
	}
}

func TestRunNonZeroExitIsNotAnError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}
	r := newTestRunner(t, "sh")

	res := r.Run(context.Background(), t.TempDir(), "-c", "exit 3")

	if res.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", res.ExitCode)
	}
	if res.Success() {
		t.Error("exit 3 must not report success")
	}
}

func TestRunLaunchFailure(t *testing.T) {
	r := newTestRunner(t, "definitely-not-a-real-executable-4712")

	res := r.Run(context.Background(), t.TempDir())

	if res.Success() {
		t.Fatal("launch failure must produce a non-zero exit code")
	}
	if res.Stderr == "" {
		t.Error("launch failure must carry the error text in stderr")
	}
}

func TestRunRespectsContextCancellation(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}
	r := newTestRunner(t, "sh")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	res := r.Run(ctx, t.TempDir(), "-c", "sleep 30")

	if time.Since(start) > 10*time.Second {
		t.Fatal("cancellation did not propagate to the subprocess")
	}
	if res.Success() {
		t.Error("a killed process must not report success")
	}
}

func TestNewRunnerDefaultsToCargo(t *testing.T) {
	logger, _ := logging.NewTestLogger()
	r := NewRunner("", logger)
	if r.cargoPath != "cargo" {
		t.Errorf("empty path should default to cargo, got %q", r.cargoPath)
	}
}
