package mcp

import (
	"context"
	"strings"
	"testing"

	"cargomcp/internal/cargo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleFullReport(t *testing.T) {
	// The fake cargo branches on the subcommand: clippy finds one
	// warning, fmt finds one misformatted file, doc is clean.
	script := `case "$1" in
clippy)
  echo '{"reason":"compiler-message","message":{"level":"warning","message":"unused variable","code":{"code":"unused_variables"},"spans":[{"file_name":"src/lib.rs","line_start":3,"column_start":9,"label":"unused"}]}}'
  exit 0
  ;;
fmt)
  echo "Diff in src/main.rs at line 1:"
  exit 1
  ;;
doc)
  exit 0
  ;;
esac
exit 2
`
	fakeCargo := writeFakeCargo(t, script)
	s := newTestServer(t, fakeCargo)

	result, err := s.handleFullReport(context.Background(), newRequest(map[string]any{"path": newCargoProject(t)}))

	require.NoError(t, err)
	assert.False(t, result.IsError)
	text := resultText(t, result)

	// Sections appear in their fixed, meaningful order.
	lint := strings.Index(text, "## Lint (cargo clippy)")
	format := strings.Index(text, "## Formatting (cargo fmt --check)")
	doc := strings.Index(text, "## Documentation (cargo doc --no-deps)")
	require.True(t, lint >= 0 && format >= 0 && doc >= 0, "missing section headers:\n%s", text)
	assert.True(t, lint < format && format < doc, "sections out of order:\n%s", text)

	assert.Contains(t, text, "warning[unused_variables]: unused variable")
	assert.Contains(t, text, "Diff in src/main.rs")
	assert.Contains(t, text, "No issues found.")
	assert.Contains(t, text, "Total issues: 2")
}

func TestHandleFullReportStepFailureDoesNotAbort(t *testing.T) {
	// Every subcommand fails outright; the report still renders all
	// three sections.
	fakeCargo := writeFakeCargo(t, "echo 'something broke' >&2\nexit 2\n")
	s := newTestServer(t, fakeCargo)

	result, err := s.handleFullReport(context.Background(), newRequest(map[string]any{"path": newCargoProject(t)}))

	require.NoError(t, err)
	text := resultText(t, result)
	assert.Equal(t, 3, strings.Count(text, "## "), "all sections must be present:\n%s", text)
	assert.Contains(t, text, "Total issues:")
}

func TestDiagnosticsSection(t *testing.T) {
	tests := []struct {
		name       string
		result     cargo.CommandResult
		wantIssues int
		wantText   string
	}{
		{
			name:       "clean run",
			result:     cargo.CommandResult{ExitCode: 0},
			wantIssues: 0,
			wantText:   "No issues found.",
		},
		{
			name: "notes do not count as issues",
			result: cargo.CommandResult{
				Stdout:   `{"reason":"compiler-message","message":{"level":"note","message":"ctx","spans":[{"file_name":"a.rs","line_start":1,"column_start":1,"label":null}]}}`,
				ExitCode: 0,
			},
			wantIssues: 0,
			wantText:   "note: ctx",
		},
		{
			name:       "failure without diagnostics counts once",
			result:     cargo.CommandResult{Stderr: "no such subcommand", ExitCode: 101},
			wantIssues: 1,
			wantText:   "Command failed:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, issues := diagnosticsSection(tt.result)
			assert.Equal(t, tt.wantIssues, issues)
			assert.Contains(t, text, tt.wantText)
		})
	}
}

func TestFormattingSection(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		text, issues := formattingSection(cargo.CommandResult{ExitCode: 0})
		assert.Equal(t, 0, issues)
		assert.Contains(t, text, "formatted correctly")
	})

	t.Run("two misformatted files", func(t *testing.T) {
		result := cargo.CommandResult{
			Stdout:   "Diff in src/main.rs at line 1:\n...\nDiff in src/lib.rs at line 4:\n...",
			ExitCode: 1,
		}
		text, issues := formattingSection(result)
		assert.Equal(t, 2, issues)
		assert.Contains(t, text, "Formatting issues found.")
	})

	t.Run("rustfmt itself failed", func(t *testing.T) {
		result := cargo.CommandResult{Stderr: "rustfmt missing", ExitCode: 1}
		text, issues := formattingSection(result)
		assert.Equal(t, 1, issues)
		assert.Contains(t, text, "rustfmt missing")
	})
}
