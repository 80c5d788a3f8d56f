package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/recall-cli/internal/adapters/driving/cli"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
