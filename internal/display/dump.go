package display

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"opensye/internal/exercise"
	"opensye/internal/exercise/procstate"
	"opensye/internal/exercise/tasktree"
	"opensye/internal/locale"
)

type seriesDump struct {
	Codes       string   `yaml:"codes"`
	Path        []string `yaml:"path"`
	Feasible    bool     `yaml:"feasible"`
	Explanation string   `yaml:"explanation,omitempty"`
}

type treeDump struct {
	Operator string `yaml:"operator"`
	Block    string `yaml:"block"`
	Leaves   int    `yaml:"leaves"`
}

type exerciseDump struct {
	Exercise string       `yaml:"exercise"`
	Series   []seriesDump `yaml:"series,omitempty"`
	Forward  []treeDump   `yaml:"forward,omitempty"`
	Reverse  []treeDump   `yaml:"reverse,omitempty"`
}

// DumpYAML describes the imagined exercises as YAML, state names in l.
func DumpYAML(exs []exercise.Exercise, l locale.Locale) (string, error) {
	dumps := make([]exerciseDump, 0, len(exs))
	for _, ex := range exs {
		d := exerciseDump{Exercise: ex.Name()}
		switch g := ex.(type) {
		case *procstate.Generator:
			for _, q := range g.Questions() {
				path := make([]string, len(q.States))
				for i, s := range q.States {
					path[i] = s.Name(l)
				}
				sd := seriesDump{Codes: codes(q.States), Path: path, Feasible: q.Feasible}
				if !q.Feasible {
					sd.Explanation = g.ExplainInvalidTransitions(q.States, l)
				}
				d.Series = append(d.Series, sd)
			}
		case *tasktree.Generator:
			d.Forward = trees(g.Forward())
			d.Reverse = trees(g.Reverse())
		}
		dumps = append(dumps, d)
	}

	out, err := yaml.Marshal(dumps)
	if err != nil {
		return "", fmt.Errorf("could not encode exercises: %w", err)
	}
	return string(out), nil
}

func trees(items []tasktree.Item) []treeDump {
	out := make([]treeDump, len(items))
	for i, it := range items {
		out[i] = treeDump{Operator: it.Operator, Block: it.Block, Leaves: len(it.Tree.Labels())}
	}
	return out
}
