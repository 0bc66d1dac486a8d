package main

import (
	"fmt"
	"os"

	"worktime/internal/cli"
	"worktime/internal/config"
)

func main() {
	// Defaults, config file and environment; flags are applied by the root command
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	root := cli.NewRootCommand(cfg, newBusinessAPI)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
