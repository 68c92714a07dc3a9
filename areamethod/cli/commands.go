package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf"
	"github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/evaluator"
	"github.com/npillmayer/areamethod/problem"
	"github.com/spf13/cobra"
)

var proveCmd = &cobra.Command{
	Use:   "prove FILE...",
	Short: "Prove the objectives of problem files",
	Long: `Prove runs the engine on each problem in prove mode. Expression
objectives are proven to vanish.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runProblems(args, evaluator.WithProve(true))
	},
}

var evalCmd = &cobra.Command{
	Use:   "eval FILE...",
	Short: "Evaluate the objectives of problem files",
	Long: `Eval runs the engine on each problem in evaluation mode. Predicate
objectives are evaluated as the expression they are lowered to.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runProblems(args, evaluator.WithEvaluate())
	},
}

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Check problem files against their expected outcome",
	Long: `Check runs problems concurrently and compares each result with the
expectation of the problem file. It exits with code 1 if a problem fails.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runProblems(args)
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Enter statements interactively",
	Run:   runREPLCmd,
}

// runProblems loads and runs problems, prints a report table and exits.
func runProblems(paths []string, mode ...evaluator.Option) {
	k := areamethod.Configuration
	problems, err := loadProblems(paths, k)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		areamethod.Exit(2)
	}
	opts, err := engineOptions(k)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		areamethod.Exit(2)
	}
	opts = append(opts, mode...)
	reports, err := problem.RunAll(areamethod.SignalContext, problems, k.Int("workers"), opts...)
	fmt.Println(reportTable(reports).Render())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		areamethod.Exit(2)
	}
	if !problem.AllPassed(reports) {
		areamethod.Exit(1)
	}
	areamethod.Exit(0)
}

// loadProblems reads problem files. Names which are not found as given are
// looked up in the problem directory.
func loadProblems(paths []string, k *koanf.Koanf) ([]*problem.Problem, error) {
	var flavor *evaluator.Flavor
	if f := setting(k, "flavor"); f != "" {
		fl, err := evaluator.ParseFlavor(f)
		if err != nil {
			return nil, err
		}
		flavor = &fl
	}
	problems := make([]*problem.Problem, 0, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			alt := filepath.Join(locatePaths().ProblemDir(), path)
			tracer().Debugf("%s not found, trying %s", path, alt)
			path = alt
		}
		p, err := problem.Load(path)
		if err != nil {
			return nil, err
		}
		if flavor != nil {
			p.Flavor = *flavor
		}
		problems = append(problems, p)
	}
	return problems, nil
}
