// Package cli provides the command-line interface for tickersocial.
package cli

import (
	"fmt"
	"os"
)

// Run starts the CLI application and exits non-zero on any command error.
func Run() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
