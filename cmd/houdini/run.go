package main

import (
	"fmt"
	"os"

	"github.com/oklog/ulid/v2"

	"github.com/boogiedrive/houdini/internal/config"
	"github.com/boogiedrive/houdini/internal/fixture"
	"github.com/boogiedrive/houdini/internal/houdini"
	"github.com/boogiedrive/houdini/internal/program"
)

func runCommand(args []string) {
	configPath := parseConfigFlag(args, "run")

	cfg, err := config.LoadRunConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	prog := demoProgram()
	verifiers := map[string]houdini.Verifier{}
	for _, impl := range prog.Implementations {
		v := &fixture.Verifier{Program: prog, ImplName: impl.Name}
		verifiers[impl.Name] = v
	}

	denyAssignment := map[string]bool{}
	for _, c := range prog.Constants {
		if c.Existential && config.MatchAny(cfg.Houdini.DenyCandidates, c.Name) {
			denyAssignment[c.Name] = false
		}
	}
	denyImpls := map[string]bool{}
	for _, impl := range prog.Implementations {
		if config.MatchAny(cfg.Houdini.DenyImplementations, impl.Name) {
			denyImpls[impl.Name] = true
		}
	}

	eng := houdini.NewEngine(houdini.Config{
		Program:                  prog,
		Verifiers:                verifiers,
		CrossDependenciesEnabled: cfg.Houdini.CrossDependenciesEnabled,
		UnsatCoreEnabled:         cfg.Houdini.UnsatCoreEnabled,
		ReverseInitialOrder:      cfg.Houdini.ReverseInitialOrder,
		InitialAssignment:        denyAssignment,
		DenyImplementations:      denyImpls,
		RunID:                    ulid.Make().String(),
	})

	ctx, cancel := signalCancelContext()
	defer cancel()

	if err := eng.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "run failed:", err)
		os.Exit(1)
	}

	fmt.Println("final assignment:")
	for name, val := range eng.Assignment() {
		fmt.Printf("  %s = %v\n", name, val)
	}
	fmt.Println("implementation outcomes:")
	for name, out := range eng.Outcomes() {
		fmt.Printf("  %s: %s\n", name, out.Outcome)
	}
}

func parseConfigFlag(args []string, subcommand string) string {
	var configPath string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "--config requires a value")
				os.Exit(1)
			}
			configPath = args[i]
		default:
			fmt.Fprintf(os.Stderr, "unknown arg: %s\n", args[i])
			os.Exit(1)
		}
	}
	if configPath == "" {
		fmt.Fprintf(os.Stderr, "houdini %s requires --config\n", subcommand)
		os.Exit(1)
	}
	return configPath
}

// demoProgram is the minimal in-memory program fixture spec.md's
// out-of-scope AST/VC-generator leaves room for: two procedures wired so
// that a single "run" invocation exercises candidate refutation and
// cross-implementation propagation end to end.
func demoProgram() *program.Program {
	cGuard := func(name string) program.Expr {
		return program.Implies(program.Leaf(name), program.Leaf("phi"))
	}
	return &program.Program{
		Constants: []program.Constant{
			{Name: "c1", Existential: true},
			{Name: "c2", Existential: true},
		},
		Procedures: []program.Procedure{
			{Name: "A"},
			{Name: "B", Ensures: []program.Condition{{Expr: cGuard("c2")}}},
		},
		Implementations: []program.Implementation{
			{Name: "ImplB", Procedure: "B"},
			{
				Name:      "ImplA",
				Procedure: "A",
				Calls:     []program.CallSite{{Callee: "B"}},
				Asserts:   []program.Condition{{Expr: cGuard("c1")}},
			},
		},
	}
}
