// Package main is the entry point for the topoplan CLI.
//
// topoplan resolves a layered, inheritance-based virtual cluster
// configuration into a concrete deployment plan: named node instances with
// blade placements and network address assignments, ready for a
// provisioning layer to realize.
//
// Commands: resolve, version.
//
// For detailed usage information, run:
//
//	topoplan --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/topoplan/cmd/topoplan/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
