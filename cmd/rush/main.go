package main

import (
	"os"

	"github.com/funvibe/rush/pkg/cli"
)

func main() {
	os.Exit(cli.Main())
}
