// Package exercise defines the contract every exercise generator follows
// and the steps the driver applies to them: selection, imagination and
// rendering.
package exercise

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"opensye/internal/exercise/procstate"
	"opensye/internal/exercise/tasktree"
	"opensye/internal/leet"
	"opensye/internal/locale"
)

// Exercise is a template that can be instantiated into a concrete problem.
// Imagine replaces the current problem; Question and Correction render it
// as LaTeX fragments and are stable until the next Imagine.
type Exercise interface {
	Name() string
	Imagine()
	Question(l locale.Locale) (string, error)
	Correction(l locale.Locale) (string, error)
}

type Factory func(rng *rand.Rand) Exercise

type registration struct {
	name    string
	factory Factory
}

var registry = []registration{
	{procstate.Name, func(rng *rand.Rand) Exercise { return procstate.New(rng) }},
	{tasktree.Name, func(rng *rand.Rand) Exercise { return tasktree.New(rng) }},
}

var ErrUnknownExercise = errors.New("unknown exercise")

// Names lists the registered exercises in registration order.
func Names() []string {
	names := make([]string, len(registry))
	for i, r := range registry {
		names[i] = r.name
	}
	return names
}

func Available() int { return len(registry) }

// Select shuffles the registered exercises and keeps the first n. Every
// exercise gets its own source seeded from rng, so a seed reproduces the
// whole selection.
func Select(rng *rand.Rand, n int) ([]Exercise, error) {
	if n < 1 || n > len(registry) {
		return nil, fmt.Errorf("cannot select %d exercises: between 1 and %d are available", n, len(registry))
	}
	order := make([]int, len(registry))
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	out := make([]Exercise, 0, n)
	for _, idx := range order[:n] {
		out = append(out, registry[idx].factory(child(rng)))
	}
	return out, nil
}

// Named builds the listed exercises in the given order.
func Named(rng *rand.Rand, names []string) ([]Exercise, error) {
	out := make([]Exercise, 0, len(names))
	for _, name := range names {
		idx := slices.IndexFunc(registry, func(r registration) bool { return r.name == name })
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownExercise, name, Names())
		}
		out = append(out, registry[idx].factory(child(rng)))
	}
	return out, nil
}

func child(rng *rand.Rand) *rand.Rand {
	return rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64()))
}

// Rendered is the text of one imagined exercise, ready for a document.
type Rendered struct {
	Name       string
	Question   string
	Correction string
}

// Render produces the question and correction text of ex and runs them
// through the obfuscation stage.
func Render(ex Exercise, l locale.Locale, leetLevel int) (Rendered, error) {
	q, err := ex.Question(l)
	if err != nil {
		return Rendered{}, fmt.Errorf("render %s question: %w", ex.Name(), err)
	}
	c, err := ex.Correction(l)
	if err != nil {
		return Rendered{}, fmt.Errorf("render %s correction: %w", ex.Name(), err)
	}
	return Rendered{
		Name:       ex.Name(),
		Question:   leet.LaTeX(q, leetLevel),
		Correction: leet.LaTeX(c, leetLevel),
	}, nil
}
