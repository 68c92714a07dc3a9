package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/npillmayer/areamethod/construct"
	"github.com/npillmayer/areamethod/evaluator"
	"github.com/npillmayer/areamethod/problem"
	"github.com/npillmayer/areamethod/areamethod/ui/termui"
)

// reportTable lists the outcome of a batch of problems.
func reportTable(reports []problem.Report) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"problem", "flavor", "objective", "result", "expected", "status", "time"})
	for _, r := range reports {
		if r.Problem == nil { // not run, batch cancelled
			continue
		}
		result := r.Result.String()
		if r.Err != nil {
			result = r.Err.Error()
		}
		expected := "-"
		if r.Problem.Expect != nil {
			expected = r.Problem.Expect.String()
		}
		tw.AppendRow(table.Row{
			r.Problem.Name,
			r.Problem.Flavor,
			r.Problem.Objective,
			result,
			expected,
			r.Status,
			r.Elapsed.Round(time.Microsecond),
		})
	}
	tw.SetStyle(table.StyleLight)
	return tw
}

// constructionTable lists the constructions of a scope with their
// non-degeneracy conditions.
func constructionTable(seq []construct.Construction) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Constructions")
	tw.AppendHeader(table.Row{"#", "point", "construction", "non-degenerate unless"})
	for i, c := range seq {
		tw.AppendRow(table.Row{i + 1, c.Point(), c, c.NDG()})
	}
	tw.SetStyle(table.StyleLight)
	return tw
}

// Formatter prints results of the engine in the REPL.
type Formatter struct {
	termui.DefaultFormatter
}

// Format implements termui.Formatter.
func (f Formatter) Format(item interface{}, w io.Writer) (bool, error) {
	tracer().Debugf("format item of type %T", item)
	switch t := item.(type) {
	case evaluator.Result:
		if t.Proved {
			item = fmt.Sprintf("%v", t.Truth)
		} else if len(t.Basis) == 3 {
			item = fmt.Sprintf("%s   [basis %s %s %s]", t.Value, t.Basis[0], t.Basis[1], t.Basis[2])
		} else {
			item = t.Value.String()
		}
	case []construct.Construction:
		item = constructionTable(t)
	}
	return f.DefaultFormatter.Format(item, w)
}
