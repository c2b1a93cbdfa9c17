package cargo

import (
	"fmt"
	"strings"
)

// FormatDiagnostics renders diagnostics as stable plain text.
// The headline counts errors and warnings; notes and help are still
// listed below, they just never inflate the tally.
func FormatDiagnostics(diagnostics []Diagnostic) string {
	if len(diagnostics) == 0 {
		return "No issues found."
	}

	errors, warnings := 0, 0
	for _, d := range diagnostics {
		switch d.Level {
		case LevelError:
			errors++
		case LevelWarning:
			warnings++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %s and %s:\n",
		pluralize(errors, "error"), pluralize(warnings, "warning"))

	for _, d := range diagnostics {
		b.WriteString("\n")
		if d.Code != "" {
			fmt.Fprintf(&b, "%s[%s]: %s\n", d.Level, d.Code, d.Message)
		} else {
			fmt.Fprintf(&b, "%s: %s\n", d.Level, d.Message)
		}
		fmt.Fprintf(&b, "  --> %s:%d:%d\n", d.File, d.Line, d.Column)
		if d.Suggestion != "" {
			fmt.Fprintf(&b, "  suggestion: %s\n", d.Suggestion)
		}
	}

	return b.String()
}

// FormatTestResults renders a test report together with the raw
// command result it came from. The exit code disambiguates "tests ran
// and some failed" from "the run never executed tests": a failing exit
// with zero recorded failures means compilation (or the harness
// itself) broke, and the raw stderr is appended verbatim so the cause
// is not lost.
func FormatTestResults(report TestReport, result CommandResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Test results: %s\n", report.Summary)

	failed := report.FailedNames()
	if len(failed) > 0 {
		b.WriteString("\nFailed tests:\n")
		for _, name := range failed {
			fmt.Fprintf(&b, "  - %s\n", name)
		}
	}
	if n := report.CountByStatus(TestPassed); n > 0 {
		fmt.Fprintf(&b, "\n%d passed\n", n)
	}
	if n := report.CountByStatus(TestSkipped); n > 0 {
		fmt.Fprintf(&b, "\n%d skipped\n", n)
	}

	if !result.Success() && len(failed) == 0 {
		b.WriteString("\nCompilation or other error:\n")
		b.WriteString(result.Stderr)
	}

	return b.String()
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
