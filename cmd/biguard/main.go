package main

import (
	"os"

	"github.com/biguard-dev/biguard/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
