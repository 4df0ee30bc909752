package main

import (
	"os"

	"github.com/solidcat/solidcat/cmd/solidcat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
