// Package main is the entry point for the cargomcp MCP server.
//
// The server speaks the Model Context Protocol over stdin/stdout, so
// the default command immediately hands the terminal to the transport:
// all human-facing output (logs, errors) goes to stderr. Startup is
// deliberately small: load config, build the server, serve until the
// client hangs up.
package main

import (
	"fmt"
	"os"

	"cargomcp/internal/config"
	"cargomcp/internal/logging"
	"cargomcp/internal/mcp"

	"github.com/spf13/cobra"
)

var cargoFlag string

var rootCmd = &cobra.Command{
	Use:   "cargomcp",
	Short: "cargomcp — an MCP server for the Cargo toolchain",
	Long: `cargomcp exposes Cargo operations (check, clippy, test, build, doc,
fmt, audit and more) as MCP tools over stdio, so an AI coding assistant
can drive a Rust project's build pipeline without shelling out itself.

Configuration is read from the XDG config directory
(cargomcp/config.yaml); a missing file means defaults.`,
	RunE: runServe,
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tool names the server registers",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range mcp.ToolNames() {
			fmt.Println(name)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the server version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", mcp.ServerName, mcp.ServerVersion)
	},
}

func runServe(cmd *cobra.Command, args []string) error {
	appLogger := logging.NewAppLogger()

	cfg, err := config.Load()
	if err != nil {
		appLogger.Error("Error loading config", "error", err)
		return err
	}
	if cargoFlag != "" {
		cfg.CargoPath = cargoFlag
	}

	appLogger.Info("Configuration loaded", "cargo", cfg.CargoPath)

	server := mcp.NewServer(cfg, appLogger)
	if err := server.Start(); err != nil {
		appLogger.Error("Server exited with error", "error", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cargoFlag, "cargo", "", "cargo executable to invoke (overrides config)")
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(versionCmd)

	// Usage errors should not be duplicated by cobra on stdout; the
	// transport owns that stream.
	rootCmd.SetOut(os.Stderr)
	rootCmd.SilenceUsage = true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
