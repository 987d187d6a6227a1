package main

import (
	"os"

	"github.com/Barritosaurus/cpusched/internal/cli"
)

func main() {
	if err := cli.BuildCLI().Execute(); err != nil {
		os.Exit(1)
	}
}
