// jcheck is a demo CLI exercising the checker core against the hand-built
// fixtures in workspace/fixtures.go, since parsing a real source file is
// an explicit external collaborator (spec.md §1/§6) this module never
// implements. Grounded on the teacher's cmd/parse/main.go role ("mainly
// intended for quick and dirty testing"), rebuilt around
// github.com/spf13/cobra + github.com/BurntSushi/toml the way the wider
// retrieval pack's compiler-shaped CLIs are built, rather than the
// teacher's bare flag package.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/susji/jcheck/ast"
	"github.com/susji/jcheck/check"
	"github.com/susji/jcheck/config"
	"github.com/susji/jcheck/diag"
	"github.com/susji/jcheck/jlog"
	"github.com/susji/jcheck/workspace"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "jcheck",
		Short: "Drive the type-checker core against a fixture scenario",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to an optional jcheck.toml")

	root.AddCommand(newListCommand())
	root.AddCommand(newRunCommand(&configPath))
	return root
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available fixture scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(workspace.Scenarios))
			for name := range workspace.Scenarios {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func newRunCommand(configPath *string) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "Run one fixture scenario (or the config's default) through RunAll",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if verbose {
				cfg.Verbose = true
			}

			name := cfg.DefaultScenario
			if len(args) == 1 {
				name = args[0]
			}
			build, ok := workspace.Scenarios[name]
			if !ok {
				return fmt.Errorf("unknown scenario %q (see jcheck list)", name)
			}

			return runScenario(name, build, cfg)
		},
	}
	cmd.Flags().BoolVar(&verbose, "verbose", false, "trace the declaration driver")
	return cmd
}

// runScenario builds w and the scenario's Block, queues every top-level
// declaration, and reports whatever RunAll returns -- mirroring the
// teacher's tap() loop (lex -> parse -> analyze -> report), minus the
// lexing and parsing stages this module doesn't own.
func runScenario(name string, build func(file string) *ast.Block, cfg config.Config) error {
	w := workspace.New(workspace.NewMapScope())
	file := name + ".jc"
	if src, ok := workspace.Sources[name]; ok {
		w.Files.Add(file, src)
	}

	blk := build(file)
	logger := jlog.Nop()
	if cfg.Verbose {
		logger = jlog.New(true)
	}

	errs := check.RunAll(w, blk.Declarations, logger)
	if len(errs) == 0 {
		fmt.Printf("%s: ok, %d declaration(s) typechecked\n", name, len(blk.Declarations))
		return nil
	}

	for _, err := range errs {
		diag.ReportInfo(w, err.Location, err.Error())
	}
	return fmt.Errorf("%s: %d error(s)", name, len(errs))
}
