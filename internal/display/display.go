package display

import (
	"fmt"
	"strings"

	"opensye/internal/exercise"
	"opensye/internal/exercise/procstate"
	"opensye/internal/exercise/tasktree"
)

const separator = "--------------------------------------------------"

// FormatSummary lists what each imagined exercise contains, one line per
// generated item.
func FormatSummary(exs []exercise.Exercise) string {
	var sb strings.Builder
	sb.WriteString("Imagined exercises:\n")
	sb.WriteString(separator + "\n")
	for i, ex := range exs {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, ex.Name()))
		switch g := ex.(type) {
		case *procstate.Generator:
			for j, q := range g.Questions() {
				status := "feasible"
				if !q.Feasible {
					status = fmt.Sprintf("infeasible, %d violation(s)", len(g.Violations(q.States)))
				}
				sb.WriteString(fmt.Sprintf("   %d) %-8s [%s]\n", j+1, codes(q.States), status))
			}
		case *tasktree.Generator:
			for j, it := range g.Forward() {
				sb.WriteString(fmt.Sprintf("   %d) %s\n", j+1, it.Operator))
			}
			for j, it := range g.Reverse() {
				sb.WriteString(fmt.Sprintf("   %d) %s (reverse)\n", len(g.Forward())+j+1, it.Operator))
			}
		}
	}
	sb.WriteString(separator)
	return sb.String()
}

func codes(series []procstate.State) string {
	var sb strings.Builder
	for _, s := range series {
		sb.WriteString(s.Code())
	}
	return sb.String()
}
