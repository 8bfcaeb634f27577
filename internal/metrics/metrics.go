package metrics

import "time"

type ExerciseMetrics struct {
	Name       string    `json:"name" yaml:"name"`
	Start      time.Time `json:"start" yaml:"start"`
	End        time.Time `json:"end" yaml:"end"`
	DurationMs int64     `json:"duration_ms" yaml:"duration_ms"`
	Success    bool      `json:"success" yaml:"success"`
	Err        string    `json:"err,omitempty" yaml:"err,omitempty"`
}

type CompileMetrics struct {
	File       string    `json:"file" yaml:"file"`
	Start      time.Time `json:"start" yaml:"start"`
	End        time.Time `json:"end" yaml:"end"`
	DurationMs int64     `json:"duration_ms" yaml:"duration_ms"`
	Success    bool      `json:"success" yaml:"success"`
	Err        string    `json:"err,omitempty" yaml:"err,omitempty"`
}

type RunMetrics struct {
	RunID      string            `json:"run_id" yaml:"run_id"`
	Seed       uint64            `json:"seed" yaml:"seed"`
	Start      time.Time         `json:"start" yaml:"start"`
	End        time.Time         `json:"end" yaml:"end"`
	DurationMs int64             `json:"duration_ms" yaml:"duration_ms"`
	Succeeded  bool              `json:"succeeded" yaml:"succeeded"`
	Exercises  []ExerciseMetrics `json:"exercises" yaml:"exercises"`
	Compiles   []CompileMetrics  `json:"compiles,omitempty" yaml:"compiles,omitempty"`
}

// Compute derived fields.
func (e *ExerciseMetrics) Finalize() {
	e.DurationMs = e.End.Sub(e.Start).Milliseconds()
}

func (c *CompileMetrics) Finalize() {
	c.DurationMs = c.End.Sub(c.Start).Milliseconds()
}

func (r *RunMetrics) Finalize() {
	r.DurationMs = r.End.Sub(r.Start).Milliseconds()
}
