// Package main is the entry point for the sqlcoach binary.
package main

import (
	"os"

	cli "sqlcoach/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
