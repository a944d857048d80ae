package main

import (
	"fmt"
	"os"

	"github.com/BasharSaadi/RA-Query-Processor/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
