// Package main is the entry point for the testreg CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/testreg/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
