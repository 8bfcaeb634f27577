package display

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"opensye/internal/exercise"
	"opensye/internal/exercise/procstate"
	"opensye/internal/exercise/tasktree"
	"opensye/internal/locale"
	"opensye/internal/metrics"
)

func imagined(t *testing.T) (*procstate.Generator, *tasktree.Generator) {
	t.Helper()
	ps := procstate.New(rand.New(rand.NewPCG(1, 2)))
	tt := tasktree.New(rand.New(rand.NewPCG(3, 4)))
	ps.Imagine()
	tt.Imagine()
	return ps, tt
}

func TestFormatSummary(t *testing.T) {
	ps, tt := imagined(t)

	out := FormatSummary([]exercise.Exercise{ps, tt})

	if !strings.HasPrefix(out, "Imagined exercises:\n") {
		t.Errorf("The summary is missing the main header.")
	}
	if !strings.Contains(out, "1. procstate") || !strings.Contains(out, "2. tasktree") {
		t.Errorf("The summary is missing an exercise name:\n%s", out)
	}
	for _, q := range ps.Questions() {
		if !strings.Contains(out, codes(q.States)) {
			t.Errorf("The summary is missing series %s", codes(q.States))
		}
	}
	for _, it := range tt.Forward() {
		if !strings.Contains(out, it.Operator) {
			t.Errorf("The summary is missing expression %s", it.Operator)
		}
	}
	if !strings.Contains(out, "(reverse)") {
		t.Errorf("The summary does not flag reverse items:\n%s", out)
	}
}

func TestDumpYAML(t *testing.T) {
	ps, tt := imagined(t)

	out, err := DumpYAML([]exercise.Exercise{ps, tt}, locale.EN)
	if err != nil {
		t.Fatalf("Did not expect an error, but got: %v", err)
	}

	var decoded []exerciseDump
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("The dump is not valid YAML: %v\n%s", err, out)
	}
	if len(decoded) != 2 {
		t.Fatalf("Expected 2 exercises, got %d", len(decoded))
	}
	if decoded[0].Exercise != procstate.Name || len(decoded[0].Series) != len(ps.Questions()) {
		t.Errorf("Unexpected procstate dump: %+v", decoded[0])
	}
	for i, s := range decoded[0].Series {
		q := ps.Questions()[i]
		if s.Feasible != q.Feasible {
			t.Errorf("series %d: feasible=%v, want %v", i, s.Feasible, q.Feasible)
		}
		if !s.Feasible && s.Explanation == "" {
			t.Errorf("series %d: infeasible series has no explanation", i)
		}
		if s.Path[0] != q.States[0].Name(locale.EN) {
			t.Errorf("series %d: path not localized: %v", i, s.Path)
		}
	}
	if decoded[1].Exercise != tasktree.Name || len(decoded[1].Forward) != len(tt.Forward()) || len(decoded[1].Reverse) != len(tt.Reverse()) {
		t.Errorf("Unexpected tasktree dump: %+v", decoded[1])
	}
	if decoded[1].Forward[0].Block != tt.Forward()[0].Block {
		t.Errorf("Block form did not survive the dump:\n%s", decoded[1].Forward[0].Block)
	}
}

func TestFormatRunMetrics(t *testing.T) {
	if got := FormatRunMetrics(nil); got != "No metrics available." {
		t.Errorf("unexpected output for nil metrics: %q", got)
	}

	start := time.Now()
	rm := &metrics.RunMetrics{
		RunID:      "ab12cd34",
		Seed:       42,
		DurationMs: 1500,
		Succeeded:  false,
		Exercises: []metrics.ExerciseMetrics{
			{Name: "procstate", Start: start, DurationMs: 1, Success: true},
		},
		Compiles: []metrics.CompileMetrics{
			{File: "sheet_corr.tex", DurationMs: 1400, Success: false, Err: "exit status 12"},
		},
	}
	out := FormatRunMetrics(rm)

	for _, want := range []string{"Run ab12cd34 metrics (seed=42)", "Total: 1500 ms", "procstate", "[ok]", "sheet_corr.tex", "[err]"} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output is missing %q:\n%s", want, out)
		}
	}
}
