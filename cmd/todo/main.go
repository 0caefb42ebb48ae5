package main

import (
	"os"

	"github.com/Makepad-fr/todolist/internal/cli"
)

func main() {
	// Root flags and the subcommand are parsed by the runner.
	os.Exit(cli.Run(os.Args[1:], cli.Options{}))
}
