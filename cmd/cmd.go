// Package cmd provides CLI commands for the Baby Steps server.
//
// Commands:
//   - serve: HTTP API server
//   - migrate: apply pending database migrations and exit
//
// Signal handling and graceful shutdown are implemented via context
// cancellation.
package cmd

import (
	"fmt"
	"os"
)

// Execute is the main entry point for the babysteps binary.
func Execute() error {
	if len(os.Args) < 2 {
		runHelp()
		return nil
	}

	switch os.Args[1] {
	case "serve":
		return runServe()
	case "migrate":
		return runMigrate()
	case "version", "--version", "-v":
		runVersion()
		return nil
	case "help", "--help", "-h":
		runHelp()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

// runHelp displays the help message.
func runHelp() {
	fmt.Println("Baby Steps - parenting tracker backend")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  babysteps serve [addr]  Start HTTP API server (default: 127.0.0.1:8080)")
	fmt.Println("  babysteps migrate       Apply pending database migrations")
	fmt.Println("  babysteps --version     Show version information")
	fmt.Println("  babysteps --help        Show this help")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("  Read from ~/.babysteps/config.yaml or ./config.yaml, overridable")
	fmt.Println("  with BABYSTEPS_* environment variables. DATABASE_URL overrides the")
	fmt.Println("  individual postgres_* settings.")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DATABASE_URL            PostgreSQL connection URL")
	fmt.Println("  BABYSTEPS_JWT_SECRET    Required: token signing secret (32+ bytes)")
	fmt.Println("  BABYSTEPS_GEMINI_API_KEY  Optional: enables the LLM-backed endpoints")
	fmt.Println("  DEBUG                   Optional: enable debug logging")
}
