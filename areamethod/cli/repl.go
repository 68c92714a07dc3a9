package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/evaluator"
	"github.com/npillmayer/areamethod/grammar"
	"github.com/npillmayer/areamethod/problem"
	"github.com/npillmayer/areamethod/areamethod/ui/termui"
	"github.com/spf13/cobra"
)

func runREPLCmd(cmd *cobra.Command, args []string) {
	tracer().Infof("areamethod REPL called")
	intp, err := newInterpreter()
	if err != nil {
		tracer().Errorf("cannot start REPL: %v", err)
		areamethod.Exit(2)
	}
	intp.Prompt(true)
}

// interpreter executes statements of the problem language, collecting them
// in a scope. Prove and eval statements run the engine on the scope.
type interpreter struct {
	*termui.BaseREPL
	scope  *problem.Scope
	flavor evaluator.Flavor
	memo   *evaluator.Memo
	opts   []evaluator.Option
}

func newInterpreter() (*interpreter, error) {
	intp := &interpreter{scope: problem.NewScope(), memo: evaluator.NewMemo()}
	k := areamethod.Configuration
	if f := setting(k, "flavor"); f != "" {
		flavor, err := evaluator.ParseFlavor(f)
		if err != nil {
			return nil, err
		}
		intp.flavor = flavor
	}
	opts, err := engineOptions(k)
	if err != nil {
		return nil, err
	}
	intp.opts = opts
	base, err := termui.NewBaseREPL("areamethod", "0.1 experimental", completions()...)
	if err != nil {
		return nil, err
	}
	intp.BaseREPL = base
	intp.Interpreter = intp
	intp.Formatter = Formatter{}
	intp.Helper = func(w io.Writer) {
		io.WriteString(w, `
areamethod will interpret statements of the problem language:

  point A B C                     : declare free points
  param r                         : declare parameters
  Y = <construction> <arguments>  : construct a point, e.g. 'M = midpoint A B'
  basis O U V                     : set the basis of the coordinate closure
  ext <expression>                : add an algebraic relation, e.g. 'ext r^2 - 2'
  prove <predicate>               : prove a predicate, e.g. 'prove collinear A M B'
  eval <expression>               : evaluate an expression, e.g. 'eval S(A,M,C)/S(A,B,C)'

and the commands

  show                            : list the constructions
  flavor [plane|affine]           : display or set the geometry
  memo                            : display statistics of the memo table
  reset                           : forget all statements

`)
	}
	return intp, nil
}

// completions for the statements of the problem language.
func completions() []readline.PrefixCompleterInterface {
	predicates := []readline.PrefixCompleterInterface{}
	for _, p := range []string{"collinear", "parallel", "perpendicular", "eqpoints", "eqdistance", "vanishes"} {
		predicates = append(predicates, readline.PcItem(p))
	}
	return []readline.PrefixCompleterInterface{
		readline.PcItem("point"),
		readline.PcItem("param"),
		readline.PcItem("basis"),
		readline.PcItem("ext"),
		readline.PcItem("prove", predicates...),
		readline.PcItem("eval"),
		readline.PcItem("show"),
		readline.PcItem("flavor", readline.PcItem("plane"), readline.PcItem("affine")),
		readline.PcItem("memo"),
		readline.PcItem("reset"),
	}
}

// InterpretCommand is called by the REPL for every line which is not an
// administrative command.
func (intp *interpreter) InterpretCommand(command string) {
	command = strings.Trim(command, "\x00")
	tracer().Debugf("interpreter: %q", command)
	if item := intp.execute(command); item != nil {
		intp.Print(item)
	}
}

// execute runs a command and returns the item to print, or nil.
func (intp *interpreter) execute(command string) interface{} {
	words := strings.Fields(command)
	if len(words) == 0 {
		return nil
	}
	switch words[0] {
	case "show":
		return intp.scope.Constructions()
	case "flavor":
		if len(words) > 1 {
			flavor, err := evaluator.ParseFlavor(words[1])
			if err != nil {
				return err
			}
			if flavor != intp.flavor {
				intp.flavor = flavor
				intp.memo = evaluator.NewMemo()
			}
		}
		return fmt.Sprintf("geometry is the %v", intp.flavor)
	case "memo":
		hits, misses := intp.memo.Stats()
		return fmt.Sprintf("%d proofs memoized, %d hits, %d misses", intp.memo.Len(), hits, misses)
	case "reset":
		intp.scope = problem.NewScope()
		intp.memo = evaluator.NewMemo()
		return nil
	}
	stmts, err := grammar.Parse(command)
	if err != nil {
		return err
	}
	// statements of a line are applied all or none
	scope := intp.scope.Clone()
	var results []interface{}
	for _, s := range stmts {
		obj, err := scope.Apply(s)
		if err != nil {
			return err
		}
		if obj == nil {
			continue
		}
		r, err := intp.run(scope, *obj)
		if err != nil {
			return err
		}
		results = append(results, r)
	}
	intp.scope = scope
	switch len(results) {
	case 0:
		return nil
	case 1:
		return results[0]
	}
	for _, r := range results[:len(results)-1] {
		intp.Print(r)
	}
	return results[len(results)-1]
}

func (intp *interpreter) run(scope *problem.Scope, obj evaluator.Objective) (evaluator.Result, error) {
	opts := append(scope.Options(), intp.opts...)
	opts = append(opts, evaluator.WithMemo(intp.memo))
	return evaluator.Run(intp.flavor, scope.Constructions(), obj, opts...)
}
