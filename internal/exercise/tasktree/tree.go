package tasktree

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

type Kind int

const (
	Leaf Kind = iota
	Sequential
	Parallel
)

func (k Kind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Sequential:
		return "sequential"
	case Parallel:
		return "parallel"
	}
	return "unknown"
}

// Node is a composed task. Leaves carry a label, compositions carry
// children: the steps of a Sequential node, the branches of a Parallel one.
type Node struct {
	Kind     Kind
	Label    int
	Children []*Node
}

const (
	// nestProbability is the chance that a step is itself a parallel group.
	nestProbability = 0.12
	// maxDepth bounds nesting; past it every step is a leaf.
	maxDepth = 6

	indentUnit = "    "
)

// Builder draws random trees. Labels are unique within one Build call.
type Builder struct {
	rng  *rand.Rand
	next int
}

func NewBuilder(rng *rand.Rand) *Builder {
	return &Builder{rng: rng}
}

// Build returns a parallel composition of the given number of branches,
// labelling leaves from 1.
func (b *Builder) Build(branches int) *Node {
	b.next = 1
	return b.expand(branches, 0)
}

// Leaves is the number of labels handed out by the last Build.
func (b *Builder) Leaves() int { return b.next - 1 }

func (b *Builder) expand(branches, depth int) *Node {
	par := &Node{Kind: Parallel, Children: make([]*Node, 0, branches)}
	for range branches {
		// 1 + U{1..6}/3 gives 1, 2 or 3 steps.
		k := 1 + (1+b.rng.IntN(6))/3
		steps := make([]*Node, 0, k)
		for range k {
			if b.rng.Float64() < nestProbability && depth < maxDepth {
				steps = append(steps, b.expand(2+b.rng.IntN(2), depth+1))
				continue
			}
			steps = append(steps, &Node{Kind: Leaf, Label: b.next})
			b.next++
		}
		if k == 1 {
			par.Children = append(par.Children, steps[0])
		} else {
			par.Children = append(par.Children, &Node{Kind: Sequential, Children: steps})
		}
	}
	return par
}

// Labels lists leaf labels in reading order.
func (n *Node) Labels() []int {
	var out []int
	var walk func(*Node)
	walk = func(n *Node) {
		if n.Kind == Leaf {
			out = append(out, n.Label)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// collapse skips parallel groups of a single branch.
func (n *Node) collapse() *Node {
	for n.Kind == Parallel && len(n.Children) == 1 {
		n = n.Children[0]
	}
	return n
}

// OperatorForm renders the tree with || for parallel composition and
// juxtaposition for sequential composition.
func (n *Node) OperatorForm() string {
	var sb strings.Builder
	n.writeOperator(&sb)
	return sb.String()
}

func (n *Node) writeOperator(sb *strings.Builder) {
	n = n.collapse()
	switch n.Kind {
	case Leaf:
		sb.WriteString("T")
		sb.WriteString(strconv.Itoa(n.Label))
	case Sequential:
		sb.WriteByte('(')
		for _, c := range n.Children {
			c.writeOperator(sb)
		}
		sb.WriteByte(')')
	case Parallel:
		sb.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				sb.WriteString("||")
			}
			c.writeOperator(sb)
		}
		sb.WriteByte(')')
	}
}

// BlockForm renders the tree as a begin/end program using parbegin/parend
// for parallel composition, one statement per line.
func (n *Node) BlockForm() string {
	var sb strings.Builder
	sb.WriteString("begin\n")
	root := n.collapse()
	if root.Kind == Sequential {
		for _, c := range root.Children {
			c.writeBlock(&sb, 1)
		}
	} else {
		root.writeBlock(&sb, 1)
	}
	sb.WriteString("end;")
	return sb.String()
}

func (n *Node) writeBlock(sb *strings.Builder, depth int) {
	n = n.collapse()
	indent := strings.Repeat(indentUnit, depth)
	switch n.Kind {
	case Leaf:
		sb.WriteString(indent + "T" + strconv.Itoa(n.Label) + ";\n")
	case Sequential:
		sb.WriteString(indent + "begin\n")
		for _, c := range n.Children {
			c.writeBlock(sb, depth+1)
		}
		sb.WriteString(indent + "end;\n")
	case Parallel:
		sb.WriteString(indent + "parbegin\n")
		for _, c := range n.Children {
			c.writeBlock(sb, depth+1)
		}
		sb.WriteString(indent + "parend;\n")
	}
}
