// Package mcp implements a Model Context Protocol (MCP) server for the
// Cargo toolchain using the mcp-go library.
//
// The server exposes Cargo operations (check, clippy, test, build and
// friends) as MCP tools so an AI assistant can drive a Rust project's
// build pipeline over JSON-RPC 2.0 on stdin/stdout. The package itself
// is a thin adapter: it validates tool options, translates them into
// cargo argument lists, and hands raw output to the parsers and
// formatters in internal/cargo. All failure paths resolve to a normal
// tool result carrying an error flag; nothing panics past the protocol
// boundary.
package mcp
