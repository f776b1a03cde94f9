package main

import (
	"os"

	"github.com/Makepad-fr/tada/internal/cli"
)

func main() {
	// Flags, subcommands and exit codes are all handled by the CLI runner.
	os.Exit(cli.Run(os.Args[1:]))
}
