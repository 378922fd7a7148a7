package main

import (
	"os"

	"github.com/caslab/casvc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
