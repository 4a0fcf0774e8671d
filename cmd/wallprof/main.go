package main

import (
	"os"

	"github.com/psantana5/wallprof/cmd/wallprof/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
