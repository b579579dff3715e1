package main

import (
	"os"

	"github.com/typeshift/typeshift/pkg/cli"
)

func main() {
	os.Exit(cli.Entry(os.Stdout, os.Stderr))
}
