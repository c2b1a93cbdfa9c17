package mcp

import (
	"context"
	"fmt"
	"strings"

	"cargomcp/internal/cargo"

	"github.com/mark3labs/mcp-go/mcp"
)

// reportStep is one stage of the combined report: a cargo command, a
// section label, and a renderer turning the raw result into section
// text plus an issue count.
type reportStep struct {
	label  string
	args   []string
	render func(cargo.CommandResult) (string, int)
}

// handleFullReport runs lint, formatting and documentation checks in a
// fixed order and concatenates their sections. The steps are
// independent but strictly sequential: the section order is meaningful
// and concurrent cargo invocations would fight over the build lock.
// One failing step never aborts the rest.
func (s *Server) handleFullReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir, errResult := s.projectDir(req)
	if errResult != nil {
		return errResult, nil
	}

	steps := []reportStep{
		{
			label:  "Lint (cargo clippy)",
			args:   []string{"clippy", "--message-format=json"},
			render: diagnosticsSection,
		},
		{
			label:  "Formatting (cargo fmt --check)",
			args:   []string{"fmt", "--check"},
			render: formattingSection,
		},
		{
			label:  "Documentation (cargo doc --no-deps)",
			args:   []string{"doc", "--no-deps", "--message-format=json"},
			render: diagnosticsSection,
		},
	}

	var sections []string
	totalIssues := 0

	for _, step := range steps {
		result := s.runCargo(ctx, dir, step.args)
		text, issues := step.render(result)
		sections = append(sections, "## "+step.label+"\n\n"+text)
		totalIssues += issues
	}

	report := strings.Join(sections, "\n\n") +
		fmt.Sprintf("\n\nTotal issues: %d\n", totalIssues)

	return mcp.NewToolResultText(report), nil
}

// diagnosticsSection renders a JSON-diagnostics step. The issue count
// follows the headline tally: errors and warnings count, notes and
// help do not.
func diagnosticsSection(result cargo.CommandResult) (string, int) {
	diagnostics := cargo.ParseDiagnostics(result.Stdout)

	issues := 0
	for _, d := range diagnostics {
		if d.Level == cargo.LevelError || d.Level == cargo.LevelWarning {
			issues++
		}
	}

	text := cargo.FormatDiagnostics(diagnostics)
	if !result.Success() && len(diagnostics) == 0 {
		if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
			text += "\n\nCommand failed:\n" + stderr
			issues++
		}
	}
	return text, issues
}

// formattingSection renders the fmt --check step. rustfmt prints one
// "Diff in <file>" block per misformatted file and exits non-zero.
func formattingSection(result cargo.CommandResult) (string, int) {
	if result.Success() {
		return "All files are formatted correctly.", 0
	}

	issues := strings.Count(result.Stdout, "Diff in ")
	if issues == 0 {
		// Non-zero exit without diff output: rustfmt itself failed.
		issues = 1
	}

	text := "Formatting issues found."
	if stdout := strings.TrimSpace(result.Stdout); stdout != "" {
		text += "\n\n" + stdout
	}
	if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
		text += "\n\n" + stderr
	}
	return text, issues
}
