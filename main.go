package main

import (
	"os"

	"github.com/caseforge/caseforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
