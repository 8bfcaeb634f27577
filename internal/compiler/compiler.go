// Package compiler turns the generated LaTeX sources into PDFs with an
// external latexmk installation.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"opensye/internal/document"
	"opensye/internal/logger"
	"opensye/internal/metrics"
)

const (
	DefaultTool    = "latexmk"
	DefaultTimeout = 2 * time.Minute

	maxLoggedOutput = 2000
)

var ErrToolNotFound = errors.New("LaTeX toolchain not found")

// Runner runs an external command in dir and returns its combined output.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

type Compiler struct {
	fs       afero.Fs
	tool     string
	timeout  time.Duration
	runner   Runner
	lookPath func(string) (string, error)
}

type Option func(*Compiler)

func WithRunner(r Runner) Option {
	return func(c *Compiler) { c.runner = r }
}

func WithLookPath(f func(string) (string, error)) Option {
	return func(c *Compiler) { c.lookPath = f }
}

// New builds a compiler for tool. fs is used to move the produced PDFs.
func New(fs afero.Fs, tool string, timeout time.Duration, opts ...Option) *Compiler {
	if tool == "" {
		tool = DefaultTool
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Compiler{
		fs:       fs,
		tool:     tool,
		timeout:  timeout,
		runner:   ExecRunner{},
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile builds every .tex file in workDir concurrently and moves the
// resulting PDFs into pdfDir. Metrics are returned for every file, even on
// failure.
func (c *Compiler) Compile(ctx context.Context, workDir, pdfDir string, files []string) ([]metrics.CompileMetrics, error) {
	if _, err := c.lookPath(c.tool); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrToolNotFound, c.tool, err)
	}
	if err := c.fs.MkdirAll(pdfDir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create folder %s: %w", pdfDir, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	results := make([]metrics.CompileMetrics, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			m := metrics.CompileMetrics{File: file, Start: time.Now()}
			err := c.compileOne(gctx, workDir, pdfDir, file)
			m.End = time.Now()
			m.Finalize()
			m.Success = err == nil
			if err != nil {
				m.Err = err.Error()
			}
			results[i] = m
			return err
		})
	}
	return results, g.Wait()
}

func (c *Compiler) compileOne(ctx context.Context, workDir, pdfDir, file string) error {
	logger.Log.Info("Compiling", "tool", c.tool, "file", file, "dir", workDir)
	out, err := c.runner.Run(ctx, workDir, c.tool, "-pdf", "-bibtex", "-shell-escape", file)
	if err != nil {
		logger.Log.Error("Compilation failed", "file", file, "err", err, "output", tail(string(out), maxLoggedOutput))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", c.tool, file, ctxErr)
		}
		return fmt.Errorf("%s %s failed: %w", c.tool, file, err)
	}

	pdf := document.PDFName(file)
	src := filepath.Join(workDir, pdf)
	dst := filepath.Join(pdfDir, pdf)
	if err := c.fs.Rename(src, dst); err != nil {
		return fmt.Errorf("could not move %s to %s: %w", src, dst, err)
	}
	logger.Log.Info("Compiled", "pdf", dst)
	return nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
