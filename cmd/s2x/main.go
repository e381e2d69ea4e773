package main

import (
	"fmt"
	"os"

	"s2x/cmd/s2x/cmd"
	"s2x/internal/config"
)

func main() {
	// Missing .env files are fine; only a malformed one is reported.
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration Warning: %v\n", err)
	}

	cmd.Execute()
}
