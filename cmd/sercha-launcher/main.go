// Command sercha-launcher is a launcher search for the terminal.
package main

import (
	"os"

	"github.com/custodia-labs/sercha-launcher/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version string

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(build)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
