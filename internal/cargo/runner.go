// Package cargo invokes the Cargo toolchain and normalizes its output.
//
// The package is split along the data flow: Runner spawns cargo and
// captures raw output, the parsers turn that output into Diagnostics
// or TestReports, and the formatters render those models as plain
// text. Parsers and formatters are pure; only Runner and the project
// reader touch the outside world.
package cargo

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"cargomcp/internal/logging"
)

// CommandResult is the raw outcome of one cargo invocation.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the command exited cleanly.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// Runner executes cargo subcommands in a project directory.
type Runner struct {
	cargoPath string
	logger    *logging.AppLogger
}

// NewRunner creates a Runner invoking the given cargo executable.
// An empty path falls back to "cargo" resolved through PATH.
func NewRunner(cargoPath string, logger *logging.AppLogger) *Runner {
	if cargoPath == "" {
		cargoPath = "cargo"
	}
	return &Runner{
		cargoPath: cargoPath,
		logger:    logger,
	}
}

// Run executes one cargo subcommand to completion and captures its
// output. A non-zero exit from cargo is a normal result, not an error:
// compile errors, lint findings and failing tests all surface that
// way. Run never returns a Go error; if the process cannot be started
// at all, the launch failure lands in Stderr with a non-zero exit code
// so downstream formatting treats it like any other failed command.
//
// Cancelling ctx kills the subprocess.
func (r *Runner) Run(ctx context.Context, dir string, args ...string) CommandResult {
	cmd := exec.CommandContext(ctx, r.cargoPath, args...)
	cmd.Dir = dir
	// Output is parsed as text and JSON; ANSI control codes would
	// corrupt both.
	cmd.Env = append(os.Environ(), "CARGO_TERM_COLOR=never", "NO_COLOR=1")

	// Buffers are attached before start so exec drains both pipes
	// while the process runs; waiting until exit before reading can
	// deadlock on a full pipe buffer.
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	r.logger.LogPerformance("cargo "+firstArg(args), start)

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// ExitCode is -1 when the process died to a signal,
			// still non-zero so callers can branch on success.
			return CommandResult{
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
				ExitCode: exitErr.ExitCode(),
			}
		}

		// Launch failure (executable missing, permission denied).
		r.logger.Error("Failed to launch cargo", "cargo", r.cargoPath, "error", err)
		return CommandResult{
			Stdout:   stdout.String(),
			Stderr:   err.Error(),
			ExitCode: -1,
		}
	}

	return CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
