// Package main provides the entrypoint for bluews.
package main

import (
	"os"

	"github.com/isometry/bluews/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		os.Exit(1)
	}
}
