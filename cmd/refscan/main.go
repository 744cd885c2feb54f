package main

import (
	"os"

	"github.com/microbiomedata/refscan/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
