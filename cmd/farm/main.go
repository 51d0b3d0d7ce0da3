package main

import (
	"os"

	"farm-tracker/internal/cli"
)

func main() {
	os.Exit(cli.Run(build, os.Args[1:], os.Stdout, os.Stderr))
}
