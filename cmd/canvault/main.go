package main

import (
	"fmt"
	"os"

	"github.com/vkarthik/canvault/internal/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "canvault failed: %v\n", err)
		os.Exit(1)
	}
}
