package main

import (
	"os"

	"pipekit.dev/cli/internal/interfaces/cli"
)

func main() {
	os.Exit(cli.Execute())
}
