package main

import (
	"os"

	"github.com/bolophil/SplitIt/cmd/splitit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
