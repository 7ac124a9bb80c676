package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hpungsan/noten/internal/config"
	"github.com/hpungsan/noten/internal/mcp"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"add": true, "list": true, "get": true, "latest": true,
	"update": true, "delete": true, "clear": true,
	"export": true, "serve": true,
	"help": true,
}

// commandArg returns the first argument after global flags, or "".
func commandArg() string {
	for _, arg := range os.Args[1:] {
		if arg == "--memory" {
			continue
		}
		return arg
	}
	return ""
}

// hasMemoryFlag reports whether the global --memory flag precedes the command.
func hasMemoryFlag() bool {
	return len(os.Args) > 1 && os.Args[1] == "--memory"
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	arg := commandArg()
	if arg == "" {
		return false // No command → MCP server
	}
	// Known subcommand → CLI
	if cliCommands[arg] {
		return true
	}
	// --help or --version → CLI
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	arg := commandArg()
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
                 _
   _ __   ___ | |_ ___ _ __
  | '_ \ / _ \| __/ _ \ '_ \
  | | | | (_) | ||  __/ | | |
  |_| |_|\___/ \__\___|_| |_|

  Minimal note keeper

  Usage: noten <command> [options]
         noten --help

  MCP server mode requires piped input.`)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if commandArg() == "" && isTerminal() {
		printBanner()
		return
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Handle --help/--version before loading anything
	if isHelpOrVersion() {
		app := newCLIApp(&env{cfg: config.DefaultConfig(), logger: logger})
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}
	baseDir := filepath.Join(homeDir, ".noten")

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine working directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadWithRepo(baseDir, workDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	if unknown := mcp.ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		logger.Warn("unknown tools in disabled_tools", "tools", unknown)
	}

	e := &env{baseDir: baseDir, cfg: cfg, logger: logger}

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(e)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", commandArg())
		fmt.Fprintf(os.Stderr, "Run 'noten --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	s, closeStore, err := e.openStore(context.Background(), hasMemoryFlag())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	if err := mcp.Run(s, cfg, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
