// Package main implements a CLI tool that creates the next semantic version
// tag of a git repository when it changed since the latest tag.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/aoepeople/tagging/cmd"
)

func main() {
	if err := cmd.Execute(Version, os.Args[1:]); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
