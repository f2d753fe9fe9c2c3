package main

import (
	"os"

	"github.com/rustyeddy/midas/cmd/midas/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
