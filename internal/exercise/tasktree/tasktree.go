// Package tasktree generates composed-task expressions for the exercise
// converting between the || notation and parbegin/parend pseudocode.
package tasktree

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"opensye/internal/locale"
	"opensye/internal/logger"
)

const (
	Name = "tasktree"

	minForward  = 3
	maxForward  = 5
	minReverse  = 1
	maxReverse  = 2
	minBranches = 1
	maxBranches = 3

	example = "begin\n" +
		"    parbegin\n" +
		"        T1;\n" +
		"        T2;\n" +
		"    parend;\n" +
		"    T3;\n" +
		"end;"
)

// Item is one tree with both of its renderings.
type Item struct {
	Tree     *Node
	Operator string
	Block    string
}

type Generator struct {
	rng     *rand.Rand
	forward []Item
	reverse []Item
}

func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

func (g *Generator) Name() string { return Name }

// Forward items ask for the block form of an operator expression.
func (g *Generator) Forward() []Item { return g.forward }

// Reverse items ask for the operator form of a block program.
func (g *Generator) Reverse() []Item { return g.reverse }

// Imagine replaces both batches.
func (g *Generator) Imagine() {
	g.forward = g.imagineBatch(minForward, maxForward)
	g.reverse = g.imagineBatch(minReverse, maxReverse)

	logger.Log.Debug("Generating a series of composed tasks",
		"exercise", Name, "forward", operators(g.forward), "reverse", operators(g.reverse))
}

func (g *Generator) imagineBatch(lo, hi int) []Item {
	n := g.between(lo, hi)
	items := make([]Item, 0, n)
	b := NewBuilder(g.rng)
	for range n {
		tree := b.Build(g.between(minBranches, maxBranches))
		items = append(items, Item{Tree: tree, Operator: tree.OperatorForm(), Block: tree.BlockForm()})
	}
	return items
}

func (g *Generator) Question(l locale.Locale) (string, error) {
	if err := l.Validate(); err != nil {
		return "", err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "\\section{%s}\n\n", locale.Text(l, locale.TaskTreeTitle))
	sb.WriteString(locale.Text(l, locale.TaskTreeGuidelines))
	sb.WriteString("\n")
	writeListing(&sb, example)
	sb.WriteString("\n")
	sb.WriteString(locale.Text(l, locale.TaskTreeInstruction))
	sb.WriteString("\\\\\n")

	for i, it := range g.forward {
		fmt.Fprintf(&sb, "%d. %s\\\\\n", i+1, inline(it.Operator))
	}

	if len(g.reverse) > 0 {
		prompt := locale.TaskTreeReverseMany
		if len(g.reverse) == 1 {
			prompt = locale.TaskTreeReverseOne
		}
		sb.WriteString("\n")
		sb.WriteString(locale.Text(l, prompt))
		sb.WriteString("\\\\\n")
	}
	for i, it := range g.reverse {
		fmt.Fprintf(&sb, "%d. \\\\\n", len(g.forward)+i+1)
		writeListing(&sb, it.Block)
		sb.WriteString("~\\\\\n")
	}
	return sb.String(), nil
}

func (g *Generator) Correction(l locale.Locale) (string, error) {
	if err := l.Validate(); err != nil {
		return "", err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "\\section{%s}\n\n", locale.Text(l, locale.TaskTreeTitle))
	sb.WriteString(locale.Text(l, locale.TaskTreeAnswers))
	sb.WriteString("\n\n")

	for i, it := range g.forward {
		fmt.Fprintf(&sb, "%d. \\\\\n", i+1)
		writeListing(&sb, it.Block)
		sb.WriteString("\n")
	}
	for i, it := range g.reverse {
		fmt.Fprintf(&sb, "\\noindent %d. %s\\\\\n", len(g.forward)+i+1, inline(it.Operator))
	}
	return sb.String(), nil
}

func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func writeListing(sb *strings.Builder, code string) {
	sb.WriteString("\\begin{verbatim}\n")
	sb.WriteString(code)
	sb.WriteString("\n\\end{verbatim}\n")
}

// inline typesets an operator expression verbatim. Expressions never
// contain '+', so it is a safe delimiter.
func inline(expr string) string {
	return "\\verb+" + expr + "+"
}

func operators(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Operator
	}
	return out
}
