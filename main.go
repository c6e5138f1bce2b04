package main

import (
	"os"

	"github.com/skylane/rosterops/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
