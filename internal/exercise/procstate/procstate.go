// Package procstate generates series of process states for the "is this
// life cycle possible?" exercise and explains why the impossible ones are
// impossible.
package procstate

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"opensye/internal/locale"
	"opensye/internal/logger"
)

const (
	Name = "procstate"

	minQuestions       = 3
	maxQuestions       = 5
	minLength          = 5
	maxLength          = 8
	invalidProbability = 0.10

	arrow = ` $\rightarrow$ `
)

// Question is one series of states and whether it can really happen.
type Question struct {
	States   []State
	Feasible bool
}

// Violation is one reason a series is impossible. Head violations concern
// the first state, which must be External; the others concern the
// transition From -> To ending at Position.
type Violation struct {
	Position int
	From     State
	To       State
	// Head marks a series that does not start from External. It is not a
	// pair: From is unset and To is the first state.
	Head     bool
}

type Generator struct {
	rng       *rand.Rand
	graph     Graph
	questions []Question
}

func New(rng *rand.Rand) *Generator {
	return NewWithGraph(rng, Transitions)
}

// NewWithGraph uses a custom life cycle instead of Transitions.
func NewWithGraph(rng *rand.Rand, graph Graph) *Generator {
	return &Generator{rng: rng, graph: graph}
}

func (g *Generator) Name() string { return Name }

// Questions returns the current batch. It must not be modified.
func (g *Generator) Questions() []Question { return g.questions }

// Imagine replaces the batch with 3 to 5 new series.
func (g *Generator) Imagine() {
	n := g.between(minQuestions, maxQuestions)
	questions := make([]Question, 0, n)
	for range n {
		questions = append(questions, g.imagineSeries())
	}
	g.questions = questions

	codes := make([]string, len(questions))
	for i, q := range questions {
		codes[i] = codeString(q.States) + " feasible=" + strconv.FormatBool(q.Feasible)
	}
	logger.Log.Debug("Generated a series of process states", "exercise", Name, "series", codes)
}

func (g *Generator) imagineSeries() Question {
	length := g.between(minLength, maxLength)
	q := Question{States: make([]State, 0, length), Feasible: true}

	for pos := 0; pos < length; pos++ {
		if g.rng.Float64() < invalidProbability {
			if next, ok := g.invalidNext(q.States); ok {
				q.Feasible = false
				q.States = append(q.States, next)
				continue
			}
		}

		if pos == 0 {
			q.States = append(q.States, External)
			continue
		}

		// Terminated, or any other state with no way out, ends the series early.
		successors := g.graph.Successors(q.States[pos-1])
		if len(successors) == 0 {
			break
		}

		var next State
		if pos == length-1 && slices.Contains(successors, Terminated) {
			next = Terminated
		} else {
			next = successors[g.rng.IntN(len(successors))]
		}
		q.States = append(q.States, next)
	}
	return q
}

// invalidNext picks a state that cannot follow the series. At the head of
// a series anything but External is invalid.
func (g *Generator) invalidNext(series []State) (State, bool) {
	var candidates []State
	if len(series) == 0 {
		for _, s := range States {
			if s != External {
				candidates = append(candidates, s)
			}
		}
	} else {
		prev := series[len(series)-1]
		for _, s := range States {
			if s != prev && !g.graph.Allows(prev, s) {
				candidates = append(candidates, s)
			}
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[g.rng.IntN(len(candidates))], true
}

// Violations lists every reason series is impossible, in order.
func (g *Generator) Violations(series []State) []Violation {
	var out []Violation
	if len(series) > 0 && series[0] != External {
		out = append(out, Violation{Position: 0, To: series[0], Head: true})
	}
	for i := 1; i < len(series); i++ {
		if !g.graph.Allows(series[i-1], series[i]) {
			out = append(out, Violation{Position: i, From: series[i-1], To: series[i]})
		}
	}
	return out
}

// ExplainInvalidTransitions writes one sentence per violation.
func (g *Generator) ExplainInvalidTransitions(series []State, l locale.Locale) string {
	violations := g.Violations(series)
	sentences := make([]string, 0, len(violations))
	for _, v := range violations {
		if v.Head {
			sentences = append(sentences, locale.Text(l, locale.ProcStateInvalidHead, v.To.Name(l), External.Name(l)))
			continue
		}
		sentences = append(sentences, locale.Text(l, locale.ProcStateImpossible, v.From.Name(l), v.To.Name(l)))
	}
	return strings.Join(sentences, " ")
}

func (g *Generator) Question(l locale.Locale) (string, error) {
	if err := l.Validate(); err != nil {
		return "", err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "\\section{%s}\n\n", locale.Text(l, locale.ProcStateTitle))
	sb.WriteString(locale.Text(l, locale.ProcStateGuidelines))
	sb.WriteString("\n\n")
	for i, q := range g.questions {
		fmt.Fprintf(&sb, "%d. %s\n\n", i+1, path(q.States, l))
	}
	return sb.String(), nil
}

func (g *Generator) Correction(l locale.Locale) (string, error) {
	if err := l.Validate(); err != nil {
		return "", err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "\\section{%s}\n\n", locale.Text(l, locale.ProcStateTitle))
	sb.WriteString(locale.Text(l, locale.ProcStateAnswers))
	sb.WriteString("\n\n")
	for i, q := range g.questions {
		if q.Feasible {
			fmt.Fprintf(&sb, "%d. %s\n\n", i+1, locale.Text(l, locale.ProcStateCorrect))
			continue
		}
		fmt.Fprintf(&sb, "%d. %s %s\n\n", i+1, locale.Text(l, locale.ProcStateWrong), g.ExplainInvalidTransitions(q.States, l))
	}
	return sb.String(), nil
}

func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func path(series []State, l locale.Locale) string {
	names := make([]string, len(series))
	for i, s := range series {
		names[i] = s.Name(l)
	}
	return strings.Join(names, arrow)
}

func codeString(series []State) string {
	var sb strings.Builder
	for _, s := range series {
		sb.WriteString(s.Code())
	}
	return sb.String()
}
