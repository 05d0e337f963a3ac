package main

import (
	"fmt"
	"os"

	"video2md/cmd/v2md/cmd"
	"video2md/internal/config"
)

func main() {
	// Load .env before anything reads the environment. Missing keys only
	// disable optional features, so a warning is enough.
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration warning: %v\n", err)
	}

	cmd.Execute()
}
