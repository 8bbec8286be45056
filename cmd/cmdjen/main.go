// Command cmdjen generates a commands.yml descriptor fragment from command
// declarations in Go source. It is meant to be run from go:generate:
//
//	//go:generate go run github.com/grafana/cmdjen/cmd/cmdjen -o resources ./...
//
// Run with --check in CI to fail when the committed descriptor is stale.
package main

import (
	"os"

	"github.com/charmbracelet/log"
)

var version = "dev"

func main() {
	if err := newRootCmd(version).Execute(); err != nil {
		log.Error("cmdjen failed", "err", err)
		os.Exit(1)
	}
}
