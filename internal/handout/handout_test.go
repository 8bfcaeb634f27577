package handout

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opensye/internal/config"
	"opensye/internal/document"
	"opensye/internal/exercise"
	"opensye/internal/exercise/procstate"
	"opensye/internal/locale"
	"opensye/internal/metrics"
)

type fakeCompiler struct {
	fs      afero.Fs
	err     error
	workDir string
	files   []string
}

func (f *fakeCompiler) Compile(_ context.Context, workDir, pdfDir string, files []string) ([]metrics.CompileMetrics, error) {
	f.workDir = workDir
	f.files = files
	var out []metrics.CompileMetrics
	for _, file := range files {
		out = append(out, metrics.CompileMetrics{File: file, Success: f.err == nil})
		if f.err == nil {
			if err := afero.WriteFile(f.fs, filepath.Join(pdfDir, document.PDFName(file)), []byte("%PDF"), 0o644); err != nil {
				return out, err
			}
		}
	}
	return out, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		Lang:      locale.EN,
		Exercises: exercise.Available(),
		Year:      2026,
		Author:    "prof@example.org",
		Filename:  "sheet.tex",
		Seed:      42,
		OutDir:    "out",
		Compile:   false,
	}
}

func read(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestRunWritesBothDocuments(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := testConfig()

	res, err := New(cfg, fs, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("out", "tmp", "sheet.tex"), res.QuestionPath)
	assert.Equal(t, filepath.Join("out", "tmp", "sheet_corr.tex"), res.CorrectionPath)
	assert.Len(t, res.Exercises, exercise.Available())
	assert.Empty(t, res.PDFs)

	question := read(t, fs, res.QuestionPath)
	correction := read(t, fs, res.CorrectionPath)

	assert.Contains(t, question, `\date{prof@example.org\\2026-2027}`)
	assert.Contains(t, correction, `\date{2026-2027}`)
	assert.Contains(t, question, `\usepackage[english]{babel}`)
	assert.Contains(t, correction, locale.Text(locale.EN, locale.DocCorrectionSuffix))
	assert.Contains(t, question, locale.Text(locale.EN, locale.ProcStateTitle))
	assert.Contains(t, question, locale.Text(locale.EN, locale.TaskTreeTitle))
	assert.True(t, strings.HasSuffix(correction, "\\end{document}\n"))

	require.NotNil(t, res.Metrics)
	assert.True(t, res.Metrics.Succeeded)
	assert.Equal(t, uint64(42), res.Metrics.Seed)
	assert.Len(t, res.Metrics.Exercises, exercise.Available())
	assert.Len(t, res.RunID, 8)
}

func TestRunIsReproducibleForASeed(t *testing.T) {
	run := func() (string, string) {
		fs := afero.NewMemMapFs()
		res, err := New(testConfig(), fs, nil).Run(context.Background())
		require.NoError(t, err)
		return read(t, fs, res.QuestionPath), read(t, fs, res.CorrectionPath)
	}

	q1, c1 := run()
	q2, c2 := run()
	assert.Equal(t, q1, q2)
	assert.Equal(t, c1, c2)
}

func TestRunOnlyNamedExercise(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := testConfig()
	cfg.Only = []string{procstate.Name}

	res, err := New(cfg, fs, nil).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Exercises, 1)
	assert.Equal(t, procstate.Name, res.Exercises[0].Name())
	assert.NotContains(t, read(t, fs, res.QuestionPath), locale.Text(locale.EN, locale.TaskTreeTitle))
}

func TestRunUnknownExercise(t *testing.T) {
	cfg := testConfig()
	cfg.Only = []string{"nope"}

	_, err := New(cfg, afero.NewMemMapFs(), nil).Run(context.Background())
	assert.ErrorIs(t, err, exercise.ErrUnknownExercise)
}

func TestRunCompiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := testConfig()
	cfg.Compile = true
	fc := &fakeCompiler{fs: fs}

	res, err := New(cfg, fs, fc).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("out", "tmp"), fc.workDir)
	assert.Equal(t, []string{"sheet.tex", "sheet_corr.tex"}, fc.files)
	assert.Equal(t, []string{
		filepath.Join("out", "pdf", "sheet.pdf"),
		filepath.Join("out", "pdf", "sheet_corr.pdf"),
	}, res.PDFs)
	assert.Len(t, res.Metrics.Compiles, 2)
	assert.True(t, res.Metrics.Succeeded)
}

func TestRunCompileFailureKeepsSources(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := testConfig()
	cfg.Compile = true
	boom := errors.New("latexmk exploded")

	res, err := New(cfg, fs, &fakeCompiler{fs: fs, err: boom}).Run(context.Background())
	require.ErrorIs(t, err, boom)

	ok, _ := afero.Exists(fs, res.QuestionPath)
	assert.True(t, ok, "sources must survive a failed compilation")
	assert.False(t, res.Metrics.Succeeded)
	assert.Empty(t, res.PDFs)
}

func TestRunCompileWithoutCompiler(t *testing.T) {
	cfg := testConfig()
	cfg.Compile = true

	_, err := New(cfg, afero.NewMemMapFs(), nil).Run(context.Background())
	assert.Error(t, err)
}

func TestExistingOutputs(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := testConfig()
	b := New(cfg, fs, nil)

	existing, err := b.ExistingOutputs()
	require.NoError(t, err)
	assert.Empty(t, existing)

	require.NoError(t, afero.WriteFile(fs, filepath.Join("out", "tmp", "sheet_corr.tex"), nil, 0o644))
	require.NoError(t, afero.WriteFile(fs, filepath.Join("out", "pdf", "sheet.pdf"), nil, 0o644))

	existing, err = b.ExistingOutputs()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("out", "tmp", "sheet_corr.tex")}, existing)

	cfg.Compile = true
	existing, err = b.ExistingOutputs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join("out", "tmp", "sheet_corr.tex"),
		filepath.Join("out", "pdf", "sheet.pdf"),
	}, existing)
}

func TestSeed(t *testing.T) {
	cfg := testConfig()
	b := New(cfg, afero.NewMemMapFs(), nil)
	assert.Equal(t, uint64(42), b.Seed())

	cfg.Seed = 0
	b.now = func() time.Time { return time.Unix(0, 1234) }
	assert.Equal(t, uint64(1234), b.Seed())
}

func TestImagine(t *testing.T) {
	b := New(testConfig(), afero.NewMemMapFs(), nil)

	exs, err := b.Imagine(NewRand(7))
	require.NoError(t, err)
	require.Len(t, exs, exercise.Available())
	for _, ex := range exs {
		_, err := ex.Question(locale.FR)
		assert.NoError(t, err)
	}
}
