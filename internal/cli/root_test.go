package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opensye/internal/compiler"
	"opensye/internal/config"
	"opensye/internal/exercise/procstate"
	"opensye/internal/locale"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateWithoutCompiling(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t,
		"--no-compile", "--yes",
		"-l", "EN", "--seed", "5", "--year", "2030",
		"-o", dir, "-f", "sheet.tex",
		"--log-file", filepath.Join(dir, "run.log"),
	)
	require.NoError(t, err, out)

	for _, name := range []string{"sheet.tex", "sheet_corr.tex"} {
		data, err := os.ReadFile(filepath.Join(dir, "tmp", name))
		require.NoError(t, err)
		assert.Contains(t, string(data), "2030-2031")
	}
	assert.NoDirExists(t, filepath.Join(dir, "pdf"))

	assert.Contains(t, out, locale.Text(locale.EN, locale.CLIWelcome))
	assert.Contains(t, out, "Imagined exercises:")
	assert.Contains(t, out, "seed=5")
	assert.Contains(t, out, "Wrote "+filepath.Join(dir, "tmp", "sheet_corr.tex"))

	logData, err := os.ReadFile(filepath.Join(dir, "run.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "Documents written")
}

func TestNoCompileFalseKeepsCompiling(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t,
		"--no-compile=false", "--yes",
		"--latexmk", "opensye-missing-latex-tool",
		"-o", dir, "-f", "sheet.tex",
		"--log-file", filepath.Join(dir, "run.log"),
	)
	require.ErrorIs(t, err, compiler.ErrToolNotFound)
	assert.FileExists(t, filepath.Join(dir, "tmp", "sheet.tex"))
}

func TestGenerateRejectsBadLanguage(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "--no-compile", "-l", "DE", "-o", dir, "--log-file", filepath.Join(dir, "run.log"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestGenerateRejectsTooManyExercises(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "--no-compile", "-n", "9", "-o", dir, "--log-file", filepath.Join(dir, "run.log"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	args := []string{"inspect", "--seed", "9", "-l", "EN", "--exercise", procstate.Name, "--log-file", filepath.Join(dir, "run.log")}

	first, err := run(t, args...)
	require.NoError(t, err)
	second, err := run(t, args...)
	require.NoError(t, err)

	assert.Contains(t, first, "# seed: 9\n")
	assert.Contains(t, first, "exercise: "+procstate.Name)
	assert.NotContains(t, first, "tasktree")
	assert.Equal(t, first, second)
}
