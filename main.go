// Package main provides the entrypoint for hookctl.
package main

import (
	"os"

	"github.com/isometry/hookctl/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		os.Exit(1)
	}
}
