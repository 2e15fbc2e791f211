package main

import (
	"os"

	"github.com/lucerne-labs/fundreply/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
