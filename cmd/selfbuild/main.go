// Package main is the entry point for the selfbuild CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/selfbuild/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
