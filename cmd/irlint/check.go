package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/navicore/cem-sub000/go/codegen/irlint"
)

// CheckCmd verifies one or more --emit-llvm output files against the
// musttail/ret invariant. Phi-predecessor verification (irlint.Run's second
// pass) takes its ground truth from the compiler's own CFG and isn't
// reachable from IR text alone, so this command exercises CheckMusttail
// only; CheckPhiPredecessors is intended for in-process use by the codegen
// pipeline itself, which already has the real predecessor map in hand.
var CheckCmd = cli.Command{
	Action:    doCheck,
	Name:      "check",
	Usage:     "Check one or more LLVM IR files for musttail/ret violations",
	ArgsUsage: "<file.ll> [file.ll ...]",
}

func doCheck(context *cli.Context) error {
	paths := context.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("irlint check: at least one IR file is required")
	}

	total := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		violations := irlint.CheckMusttail(string(data))
		for _, v := range violations {
			fmt.Printf("%s: %s\n", path, v)
		}
		total += len(violations)
	}

	if total > 0 {
		return fmt.Errorf("irlint: found %d violation(s)", total)
	}
	fmt.Println("irlint: all clear")
	return nil
}
