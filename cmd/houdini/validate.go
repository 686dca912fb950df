package main

import (
	"fmt"
	"os"

	"github.com/boogiedrive/houdini/internal/config"
)

func validateCommand(args []string) {
	configPath := parseConfigFlag(args, "validate")

	cfg, err := config.LoadRunConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("config ok: solver=%s verbosity=%d z3=%v\n", cfg.Solver.Command, cfg.Solver.Verbosity, cfg.Solver.Z3)
}
