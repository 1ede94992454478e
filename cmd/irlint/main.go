package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "irlint",
		Usage: "Verify the musttail/ret invariant in emitted LLVM IR",
		Commands: []*cli.Command{
			&CheckCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
