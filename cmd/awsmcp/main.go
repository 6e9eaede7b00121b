// Package main provides the entry point for the awsmcp CLI.
package main

import (
	"os"

	"github.com/opskit/awsmcp/cmd/awsmcp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
