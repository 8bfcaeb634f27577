// Package handout runs one generation: it selects and imagines exercises,
// renders them, writes the handout and its correction, then compiles both.
package handout

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"opensye/internal/config"
	"opensye/internal/document"
	"opensye/internal/exercise"
	"opensye/internal/leet"
	"opensye/internal/locale"
	"opensye/internal/logger"
	"opensye/internal/metrics"
)

const (
	sourceDir = "tmp"
	pdfDir    = "pdf"
)

// Compiler turns the written sources into PDFs.
type Compiler interface {
	Compile(ctx context.Context, workDir, pdfDir string, files []string) ([]metrics.CompileMetrics, error)
}

type Result struct {
	RunID          string
	Seed           uint64
	Exercises      []exercise.Exercise
	QuestionPath   string
	CorrectionPath string
	PDFs           []string
	Metrics        *metrics.RunMetrics
}

type Builder struct {
	cfg      *config.Config
	fs       afero.Fs
	compiler Compiler
	now      func() time.Time
}

// New returns a Builder. compiler may be nil when cfg.Compile is false.
func New(cfg *config.Config, fs afero.Fs, compiler Compiler) *Builder {
	return &Builder{cfg: cfg, fs: fs, compiler: compiler, now: time.Now}
}

// NewRand returns the generation source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Seed is the configured seed, or a fresh one when none is configured.
func (b *Builder) Seed() uint64 {
	if b.cfg.Seed != 0 {
		return b.cfg.Seed
	}
	return uint64(b.now().UnixNano())
}

// Sources are the LaTeX file names written by Run.
func (b *Builder) Sources() []string {
	return []string{b.cfg.Filename, document.CorrectionName(b.cfg.Filename)}
}

// ExistingOutputs lists the files a run would replace.
func (b *Builder) ExistingOutputs() ([]string, error) {
	var existing []string
	var candidates []string
	for _, src := range b.Sources() {
		candidates = append(candidates, filepath.Join(b.cfg.OutDir, sourceDir, src))
		if b.cfg.Compile {
			candidates = append(candidates, filepath.Join(b.cfg.OutDir, pdfDir, document.PDFName(src)))
		}
	}
	for _, path := range candidates {
		ok, err := afero.Exists(b.fs, path)
		if err != nil {
			return nil, fmt.Errorf("could not check %s: %w", path, err)
		}
		if ok {
			existing = append(existing, path)
		}
	}
	return existing, nil
}

func (b *Builder) pick(rng *rand.Rand) ([]exercise.Exercise, error) {
	if len(b.cfg.Only) > 0 {
		return exercise.Named(rng, b.cfg.Only)
	}
	return exercise.Select(rng, b.cfg.Exercises)
}

// Imagine selects the configured exercises and imagines each of them.
func (b *Builder) Imagine(rng *rand.Rand) ([]exercise.Exercise, error) {
	exs, err := b.pick(rng)
	if err != nil {
		return nil, err
	}
	for _, ex := range exs {
		ex.Imagine()
	}
	return exs, nil
}

// Run performs a whole generation. The returned Result carries metrics even
// when an error is returned after documents were written.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	res := &Result{RunID: uuid.New().String()[:8], Seed: b.Seed()}
	rm := &metrics.RunMetrics{RunID: res.RunID, Seed: res.Seed, Start: b.now()}
	res.Metrics = rm
	defer func() {
		rm.End = b.now()
		rm.Finalize()
	}()

	log := logger.Log.With("run_id", res.RunID)
	log.Info("Starting generation", "seed", res.Seed, "lang", b.cfg.Lang.String(), "exercises", b.cfg.Exercises, "l33t", b.cfg.LeetLevel())

	var err error
	if res.Exercises, err = b.pick(NewRand(res.Seed)); err != nil {
		return res, err
	}

	level := b.cfg.LeetLevel()
	questions := make([]string, 0, len(res.Exercises))
	corrections := make([]string, 0, len(res.Exercises))
	for _, ex := range res.Exercises {
		em := metrics.ExerciseMetrics{Name: ex.Name(), Start: b.now()}
		ex.Imagine()
		rendered, rerr := exercise.Render(ex, b.cfg.Lang, level)
		em.End = b.now()
		em.Finalize()
		em.Success = rerr == nil
		if rerr != nil {
			em.Err = rerr.Error()
		}
		rm.Exercises = append(rm.Exercises, em)
		if rerr != nil {
			log.Error("Rendering failed", "exercise", ex.Name(), "err", rerr)
			return res, rerr
		}
		questions = append(questions, rendered.Question)
		corrections = append(corrections, rendered.Correction)
		log.Info("Exercise ready", "exercise", ex.Name(), "duration_ms", em.DurationMs)
	}

	header := b.header(level)
	correctionHeader := header
	correctionHeader.Title = leet.LaTeX(document.Escape(b.cfg.DocumentTitle()+locale.Text(b.cfg.Lang, locale.DocCorrectionSuffix)), level)
	correctionHeader.Signed = false

	w := document.NewWriter(b.fs, filepath.Join(b.cfg.OutDir, sourceDir))
	sources := b.Sources()
	if res.QuestionPath, err = w.Write(sources[0], document.Document{Header: header, Body: questions}); err != nil {
		return res, err
	}
	if res.CorrectionPath, err = w.Write(sources[1], document.Document{Header: correctionHeader, Body: corrections}); err != nil {
		return res, err
	}
	log.Info("Documents written", "question", res.QuestionPath, "correction", res.CorrectionPath)

	if !b.cfg.Compile {
		rm.Succeeded = true
		return res, nil
	}
	if b.compiler == nil {
		return res, fmt.Errorf("compilation requested but no compiler configured")
	}

	outDir := filepath.Join(b.cfg.OutDir, pdfDir)
	rm.Compiles, err = b.compiler.Compile(ctx, w.Dir(), outDir, sources)
	if err != nil {
		log.Error("Compilation failed", "err", err)
		return res, fmt.Errorf("compile handout: %w", err)
	}
	for _, src := range sources {
		res.PDFs = append(res.PDFs, filepath.Join(outDir, document.PDFName(src)))
	}
	rm.Succeeded = true
	log.Info("Generation finished", "pdfs", res.PDFs)
	return res, nil
}

func (b *Builder) header(level int) document.Header {
	l := b.cfg.Lang
	return document.Header{
		Course:      document.Escape(locale.Text(l, locale.DocCourse)),
		Title:       leet.LaTeX(document.Escape(b.cfg.DocumentTitle()), level),
		Author:      document.Escape(b.cfg.Author),
		Year:        b.cfg.Year,
		Babel:       l.BabelName(),
		PDFLanguage: locale.Text(l, locale.DocPDFLanguage),
		Signed:      true,
	}
}
