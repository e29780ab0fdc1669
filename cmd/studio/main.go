// Package main provides the soffai studio CLI.
//
// Usage:
//
//	studio [flags] <command> [args]
//
// Commands:
//
//	generate   - Run a generation request (text, search, speech, video)
//	categories - List the supported generation categories
//
// Configuration:
//
//	The CLI reads an optional YAML config file (see --config). The API key
//	is taken from the environment variable named there (GEMINI_API_KEY by
//	default).
package main

import (
	"fmt"
	"os"

	"github.com/soffai/studio/cmd/studio/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
