package mcp

import (
	"context"
	"strconv"
	"strings"

	"cargomcp/internal/cargo"

	"github.com/mark3labs/mcp-go/mcp"
)

// projectDir extracts and validates the required path option. A nil
// second return means the path is usable; otherwise the tagged error
// result is ready to hand back to the client. No subprocess is spawned
// before this gate passes.
func (s *Server) projectDir(req mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	path, err := req.RequireString("path")
	if err != nil {
		return "", mcp.NewToolResultError("missing required option \"path\": the Cargo project directory must be supplied")
	}
	if err := cargo.ValidateProject(path); err != nil {
		s.logger.Debug("Project validation failed", "path", path, "error", err)
		return "", mcp.NewToolResultError(err.Error())
	}
	return path, nil
}

// Option-to-flag translation. One-directional and order-sensitive: the
// builders append flags in a fixed order behind the subcommand.

func stringFlag(req mcp.CallToolRequest, key, flag string) []string {
	if v := req.GetString(key, ""); v != "" {
		return []string{flag, v}
	}
	return nil
}

func boolFlag(req mcp.CallToolRequest, key, flag string) []string {
	if req.GetBool(key, false) {
		return []string{flag}
	}
	return nil
}

func numberFlag(req mcp.CallToolRequest, key, flag string) []string {
	if n := req.GetInt(key, 0); n > 0 {
		return []string{flag, strconv.Itoa(n)}
	}
	return nil
}

// listFlag expands a string-array option into one flag pair per entry.
func listFlag(req mcp.CallToolRequest, key, flag string) []string {
	var args []string
	for _, v := range req.GetStringSlice(key, nil) {
		if v != "" {
			args = append(args, flag, v)
		}
	}
	return args
}

// runDiagnosticTool executes a cargo command that emits line-delimited
// JSON diagnostics and renders them. A failing exit with zero parsed
// diagnostics means the command itself broke (launch failure, bad
// flag), so the raw stderr is appended to the report.
func (s *Server) runDiagnosticTool(ctx context.Context, req mcp.CallToolRequest, args []string) (*mcp.CallToolResult, error) {
	dir, errResult := s.projectDir(req)
	if errResult != nil {
		return errResult, nil
	}

	result := s.runCargo(ctx, dir, args)
	diagnostics := cargo.ParseDiagnostics(result.Stdout)

	text := cargo.FormatDiagnostics(diagnostics)
	if !result.Success() && len(diagnostics) == 0 {
		if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
			text += "\n\nCommand failed:\n" + stderr
		}
	}

	return mcp.NewToolResultText(text), nil
}

// runRawTool executes a cargo command whose output is passed through
// as-is, framed with a success or failure line derived from the exit
// code. Findings reported via non-zero exit (audit, outdated) are a
// normal result, not a protocol error.
func (s *Server) runRawTool(ctx context.Context, req mcp.CallToolRequest, label string, args []string) (*mcp.CallToolResult, error) {
	dir, errResult := s.projectDir(req)
	if errResult != nil {
		return errResult, nil
	}

	result := s.runCargo(ctx, dir, args)
	return mcp.NewToolResultText(formatRawResult(label, result)), nil
}

func formatRawResult(label string, result cargo.CommandResult) string {
	var b strings.Builder
	if result.Success() {
		b.WriteString(label + " succeeded.\n")
	} else {
		b.WriteString(label + " failed (exit code " + strconv.Itoa(result.ExitCode) + ").\n")
	}

	stdout := strings.TrimSpace(result.Stdout)
	stderr := strings.TrimSpace(result.Stderr)
	if stdout != "" {
		b.WriteString("\n" + stdout + "\n")
	}
	if stderr != "" {
		b.WriteString("\n" + stderr + "\n")
	}
	if stdout == "" && stderr == "" {
		b.WriteString("\n(no output)\n")
	}
	return b.String()
}

func checkArgs(req mcp.CallToolRequest) []string {
	args := []string{"check", "--message-format=json"}
	args = append(args, stringFlag(req, "package", "--package")...)
	args = append(args, boolFlag(req, "workspace", "--workspace")...)
	args = append(args, boolFlag(req, "release", "--release")...)
	args = append(args, boolFlag(req, "all_features", "--all-features")...)
	args = append(args, boolFlag(req, "no_default_features", "--no-default-features")...)
	args = append(args, listFlag(req, "features", "--features")...)
	args = append(args, stringFlag(req, "target", "--target")...)
	return args
}

func clippyArgs(req mcp.CallToolRequest) []string {
	args := []string{"clippy", "--message-format=json"}
	args = append(args, stringFlag(req, "package", "--package")...)
	args = append(args, boolFlag(req, "all_targets", "--all-targets")...)
	if req.GetBool("fix", false) {
		// --fix refuses a dirty working tree without --allow-dirty.
		args = append(args, "--fix", "--allow-dirty")
	}

	// Lint level overrides are arguments to clippy itself, behind the
	// -- separator, one flag pair per lint name.
	lintArgs := listFlag(req, "allow", "-A")
	lintArgs = append(lintArgs, listFlag(req, "warn", "-W")...)
	lintArgs = append(lintArgs, listFlag(req, "deny", "-D")...)
	if len(lintArgs) > 0 {
		args = append(args, "--")
		args = append(args, lintArgs...)
	}
	return args
}

func testArgs(req mcp.CallToolRequest) []string {
	args := []string{"test"}
	args = append(args, stringFlag(req, "package", "--package")...)
	args = append(args, boolFlag(req, "release", "--release")...)
	if filter := req.GetString("filter", ""); filter != "" {
		args = append(args, filter)
	}

	// Harness options sit behind the -- separator.
	var harness []string
	if req.GetBool("no_capture", false) {
		harness = append(harness, "--nocapture")
	}
	harness = append(harness, numberFlag(req, "test_threads", "--test-threads")...)
	if len(harness) > 0 {
		args = append(args, "--")
		args = append(args, harness...)
	}
	return args
}

func buildArgs(req mcp.CallToolRequest) []string {
	args := []string{"build", "--message-format=json"}
	args = append(args, stringFlag(req, "package", "--package")...)
	args = append(args, stringFlag(req, "bin", "--bin")...)
	args = append(args, boolFlag(req, "release", "--release")...)
	args = append(args, boolFlag(req, "all_features", "--all-features")...)
	args = append(args, listFlag(req, "features", "--features")...)
	args = append(args, stringFlag(req, "target", "--target")...)
	return args
}

func fixArgs(req mcp.CallToolRequest) []string {
	args := []string{"fix", "--message-format=json"}
	args = append(args, boolFlag(req, "allow_dirty", "--allow-dirty")...)
	args = append(args, boolFlag(req, "edition", "--edition")...)
	return args
}

func docArgs(req mcp.CallToolRequest) []string {
	args := []string{"doc", "--message-format=json"}
	args = append(args, stringFlag(req, "package", "--package")...)
	args = append(args, boolFlag(req, "no_deps", "--no-deps")...)
	args = append(args, boolFlag(req, "document_private_items", "--document-private-items")...)
	return args
}

func fmtArgs(req mcp.CallToolRequest) []string {
	args := []string{"fmt"}
	args = append(args, stringFlag(req, "package", "--package")...)
	args = append(args, boolFlag(req, "check", "--check")...)
	return args
}

func (s *Server) handleCheck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runDiagnosticTool(ctx, req, checkArgs(req))
}

func (s *Server) handleClippy(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runDiagnosticTool(ctx, req, clippyArgs(req))
}

func (s *Server) handleBuild(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runDiagnosticTool(ctx, req, buildArgs(req))
}

func (s *Server) handleFix(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runDiagnosticTool(ctx, req, fixArgs(req))
}

func (s *Server) handleDoc(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runDiagnosticTool(ctx, req, docArgs(req))
}

func (s *Server) handleTest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir, errResult := s.projectDir(req)
	if errResult != nil {
		return errResult, nil
	}

	result := s.runCargo(ctx, dir, testArgs(req))

	// The harness splits its output across both streams; outcomes can
	// land on either side, so parse the concatenation.
	report := cargo.ParseTestResults(result.Stdout + "\n" + result.Stderr)

	return mcp.NewToolResultText(cargo.FormatTestResults(report, result)), nil
}

func (s *Server) handleFmt(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runRawTool(ctx, req, "cargo fmt", fmtArgs(req))
}

func (s *Server) handleAudit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := []string{"audit"}
	args = append(args, listFlag(req, "ignore", "--ignore")...)
	return s.runRawTool(ctx, req, "cargo audit", args)
}

func (s *Server) handleOutdated(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := []string{"outdated"}
	args = append(args, boolFlag(req, "workspace", "--workspace")...)
	args = append(args, boolFlag(req, "root_deps_only", "--root-deps-only")...)
	args = append(args, numberFlag(req, "depth", "--depth")...)
	return s.runRawTool(ctx, req, "cargo outdated", args)
}

func (s *Server) handleTree(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := []string{"tree"}
	args = append(args, stringFlag(req, "package", "--package")...)
	args = append(args, numberFlag(req, "depth", "--depth")...)
	args = append(args, boolFlag(req, "duplicates", "--duplicates")...)
	return s.runRawTool(ctx, req, "cargo tree", args)
}

func (s *Server) handleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := []string{"update"}
	args = append(args, stringFlag(req, "package", "--package")...)
	args = append(args, boolFlag(req, "dry_run", "--dry-run")...)
	return s.runRawTool(ctx, req, "cargo update", args)
}

func (s *Server) handleClean(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := []string{"clean"}
	args = append(args, stringFlag(req, "package", "--package")...)
	args = append(args, boolFlag(req, "release", "--release")...)
	return s.runRawTool(ctx, req, "cargo clean", args)
}

func (s *Server) handleAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required option \"name\": the crate to add must be supplied"), nil
	}

	args := []string{"add", name}
	args = append(args, boolFlag(req, "dev", "--dev")...)
	args = append(args, boolFlag(req, "optional", "--optional")...)
	args = append(args, listFlag(req, "features", "--features")...)
	return s.runRawTool(ctx, req, "cargo add", args)
}

func (s *Server) handleRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required option \"name\": the crate to remove must be supplied"), nil
	}

	args := []string{"remove", name}
	args = append(args, boolFlag(req, "dev", "--dev")...)
	return s.runRawTool(ctx, req, "cargo remove", args)
}

func (s *Server) handleProjectInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir, errResult := s.projectDir(req)
	if errResult != nil {
		return errResult, nil
	}

	info, err := cargo.ReadProjectInfo(dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(cargo.FormatProjectInfo(info)), nil
}
