package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolNames returns every registered tool name in registration order.
func ToolNames() []string {
	return []string{
		"cargo_check",
		"cargo_clippy",
		"cargo_test",
		"cargo_build",
		"cargo_fix",
		"cargo_doc",
		"cargo_fmt",
		"cargo_audit",
		"cargo_outdated",
		"cargo_tree",
		"cargo_update",
		"cargo_clean",
		"cargo_add",
		"cargo_remove",
		"cargo_project_info",
		"cargo_full_report",
	}
}

// Shared option constructors. Every tool requires path; the rest is a
// closed, typed set per tool.
func pathOption() mcp.ToolOption {
	return mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Path to the Cargo project directory (must contain Cargo.toml)"),
	)
}

func packageOption() mcp.ToolOption {
	return mcp.WithString("package",
		mcp.Description("Restrict the command to one package of the workspace"),
	)
}

func stringArray() map[string]any {
	return map[string]any{"type": "string"}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("cargo_check",
		mcp.WithDescription("Type-check the project without producing artifacts (cargo check)"),
		pathOption(),
		packageOption(),
		mcp.WithBoolean("workspace", mcp.Description("Check all workspace members")),
		mcp.WithBoolean("release", mcp.Description("Check with release profile optimizations")),
		mcp.WithBoolean("all_features", mcp.Description("Activate all available features")),
		mcp.WithBoolean("no_default_features", mcp.Description("Do not activate the default feature set")),
		mcp.WithArray("features", mcp.Description("Additional features to activate"), mcp.Items(stringArray())),
		mcp.WithString("target", mcp.Description("Check for a specific target triple")),
	), s.handleCheck)

	s.mcpServer.AddTool(mcp.NewTool("cargo_clippy",
		mcp.WithDescription("Lint the project with clippy and report findings (cargo clippy)"),
		pathOption(),
		packageOption(),
		mcp.WithBoolean("all_targets", mcp.Description("Lint library, binaries, tests and benches")),
		mcp.WithBoolean("fix", mcp.Description("Apply machine-applicable fixes to the working tree")),
		mcp.WithArray("allow", mcp.Description("Lint names to allow"), mcp.Items(stringArray())),
		mcp.WithArray("warn", mcp.Description("Lint names to warn on"), mcp.Items(stringArray())),
		mcp.WithArray("deny", mcp.Description("Lint names to deny"), mcp.Items(stringArray())),
	), s.handleClippy)

	s.mcpServer.AddTool(mcp.NewTool("cargo_test",
		mcp.WithDescription("Run the test suite and report per-test outcomes (cargo test)"),
		pathOption(),
		packageOption(),
		mcp.WithString("filter", mcp.Description("Only run tests whose name contains this string")),
		mcp.WithBoolean("release", mcp.Description("Run tests with release profile optimizations")),
		mcp.WithBoolean("no_capture", mcp.Description("Show test program output while running")),
		mcp.WithNumber("test_threads", mcp.Description("Number of threads the test harness may use")),
	), s.handleTest)

	s.mcpServer.AddTool(mcp.NewTool("cargo_build",
		mcp.WithDescription("Compile the project and report diagnostics (cargo build)"),
		pathOption(),
		packageOption(),
		mcp.WithString("bin", mcp.Description("Build only the named binary")),
		mcp.WithBoolean("release", mcp.Description("Build with release profile optimizations")),
		mcp.WithBoolean("all_features", mcp.Description("Activate all available features")),
		mcp.WithArray("features", mcp.Description("Additional features to activate"), mcp.Items(stringArray())),
		mcp.WithString("target", mcp.Description("Build for a specific target triple")),
	), s.handleBuild)

	s.mcpServer.AddTool(mcp.NewTool("cargo_fix",
		mcp.WithDescription("Apply compiler-suggested fixes to the source tree (cargo fix)"),
		pathOption(),
		mcp.WithBoolean("allow_dirty", mcp.Description("Fix even when the working tree has uncommitted changes")),
		mcp.WithBoolean("edition", mcp.Description("Migrate the project to the next edition")),
	), s.handleFix)

	s.mcpServer.AddTool(mcp.NewTool("cargo_doc",
		mcp.WithDescription("Build documentation and report rustdoc diagnostics (cargo doc)"),
		pathOption(),
		packageOption(),
		mcp.WithBoolean("no_deps", mcp.Description("Document only this project, not its dependencies")),
		mcp.WithBoolean("document_private_items", mcp.Description("Include non-public items in the documentation")),
	), s.handleDoc)

	s.mcpServer.AddTool(mcp.NewTool("cargo_fmt",
		mcp.WithDescription("Format the source tree, or verify formatting with check mode (cargo fmt)"),
		pathOption(),
		packageOption(),
		mcp.WithBoolean("check", mcp.Description("Only verify formatting, do not rewrite files")),
	), s.handleFmt)

	s.mcpServer.AddTool(mcp.NewTool("cargo_audit",
		mcp.WithDescription("Audit dependencies for known security vulnerabilities (cargo audit)"),
		pathOption(),
		mcp.WithArray("ignore", mcp.Description("Advisory IDs to ignore"), mcp.Items(stringArray())),
	), s.handleAudit)

	s.mcpServer.AddTool(mcp.NewTool("cargo_outdated",
		mcp.WithDescription("List dependencies with newer versions available (cargo outdated)"),
		pathOption(),
		mcp.WithBoolean("workspace", mcp.Description("Check all workspace members")),
		mcp.WithBoolean("root_deps_only", mcp.Description("Only check direct dependencies")),
		mcp.WithNumber("depth", mcp.Description("How deep in the dependency tree to search")),
	), s.handleOutdated)

	s.mcpServer.AddTool(mcp.NewTool("cargo_tree",
		mcp.WithDescription("Display the dependency tree (cargo tree)"),
		pathOption(),
		packageOption(),
		mcp.WithNumber("depth", mcp.Description("Maximum display depth of the tree")),
		mcp.WithBoolean("duplicates", mcp.Description("Only show crates present in multiple versions")),
	), s.handleTree)

	s.mcpServer.AddTool(mcp.NewTool("cargo_update",
		mcp.WithDescription("Update dependencies in Cargo.lock (cargo update)"),
		pathOption(),
		packageOption(),
		mcp.WithBoolean("dry_run", mcp.Description("Show what would be updated without writing Cargo.lock")),
	), s.handleUpdate)

	s.mcpServer.AddTool(mcp.NewTool("cargo_clean",
		mcp.WithDescription("Remove build artifacts (cargo clean)"),
		pathOption(),
		packageOption(),
		mcp.WithBoolean("release", mcp.Description("Only clean release artifacts")),
	), s.handleClean)

	s.mcpServer.AddTool(mcp.NewTool("cargo_add",
		mcp.WithDescription("Add a dependency to Cargo.toml (cargo add)"),
		pathOption(),
		mcp.WithString("name", mcp.Required(), mcp.Description("Crate to add, optionally with a version requirement (e.g. serde@1)")),
		mcp.WithBoolean("dev", mcp.Description("Add as a dev-dependency")),
		mcp.WithBoolean("optional", mcp.Description("Mark the dependency as optional")),
		mcp.WithArray("features", mcp.Description("Features of the dependency to enable"), mcp.Items(stringArray())),
	), s.handleAdd)

	s.mcpServer.AddTool(mcp.NewTool("cargo_remove",
		mcp.WithDescription("Remove a dependency from Cargo.toml (cargo remove)"),
		pathOption(),
		mcp.WithString("name", mcp.Required(), mcp.Description("Crate to remove")),
		mcp.WithBoolean("dev", mcp.Description("Remove from dev-dependencies")),
	), s.handleRemove)

	s.mcpServer.AddTool(mcp.NewTool("cargo_project_info",
		mcp.WithDescription("Read package name, version, edition and dependencies from Cargo.toml"),
		pathOption(),
	), s.handleProjectInfo)

	s.mcpServer.AddTool(mcp.NewTool("cargo_full_report",
		mcp.WithDescription("Run lint, formatting and documentation checks in sequence and produce a combined report"),
		pathOption(),
	), s.handleFullReport)
}
