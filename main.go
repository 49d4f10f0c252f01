package main

import (
	"os"

	"github.com/proconnect/trust-engine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
