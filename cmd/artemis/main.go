package main

import (
	"os"

	"github.com/artemis-io/agent/cmd/cli"
)

func main() {
	os.Exit(cli.Execute())
}
