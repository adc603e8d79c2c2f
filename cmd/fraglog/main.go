package main

import (
	"os"

	"github.com/fraglog/fraglog/internal/cli"
)

func main() {
	err := cli.Execute()
	os.Exit(cli.ExitCode(err))
}
