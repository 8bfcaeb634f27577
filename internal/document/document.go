// Package document wraps exercise fragments into complete LaTeX documents.
package document

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/afero"
)

const Creator = "OpenSYE TD Generator Pro Plus 11 SE Max"

const preamble = `\documentclass[11pt]{article}
\usepackage[T1]{fontenc}
\usepackage[utf8]{inputenc}
\usepackage{graphicx}
\usepackage{grffile}
\usepackage{longtable}
\usepackage{wrapfig}
\usepackage{rotating}
\usepackage[normalem]{ulem}
\usepackage{amsmath}
\usepackage{textcomp}
\usepackage{amssymb}
\usepackage{capt-of}
\usepackage{hyperref}
\usepackage{minted}
\usepackage{tabularx}
\usepackage[<<.Babel>>]{babel}
\usepackage[text={17cm,24cm},centering]{geometry}
\usepackage{enumitem}
\usepackage{tikz}
\usetikzlibrary{positioning,arrows.meta}
\author{<<.Course>>}
\date{<<if .Signed>><<.Author>>\\<<end>><<.Year>>-<<.NextYear>>}
\title{<<.Title>>}
\hypersetup{
  pdfauthor={<<.Author>>},
  pdftitle={<<.Title>>},
  pdfkeywords={},
  pdfsubject={},
  pdfcreator={<<.Creator>>},
  pdflang={<<.PDFLanguage>>}}
\begin{document}

\maketitle

`

const postamble = `
\end{document}
`

var preambleTmpl = template.Must(template.New("preamble").Delims("<<", ">>").Parse(preamble))

// Header is the metadata of one document. Course, Title and Author must
// already be valid LaTeX; see Escape.
type Header struct {
	Course      string
	Title       string
	Author      string
	Year        int
	Babel       string
	PDFLanguage string
	// Signed puts the author above the academic year on the title page.
	Signed      bool
}

func (h Header) NextYear() int { return h.Year + 1 }

func (h Header) Creator() string { return Creator }

// Document is a header followed by exercise fragments.
type Document struct {
	Header Header
	Body   []string
}

func (d Document) Render() (string, error) {
	var sb strings.Builder
	if err := preambleTmpl.Execute(&sb, d.Header); err != nil {
		return "", fmt.Errorf("render preamble: %w", err)
	}
	for _, part := range d.Body {
		sb.WriteString(part)
		if !strings.HasSuffix(part, "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(postamble)
	return sb.String(), nil
}

var escaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"{", `\{`,
	"}", `\}`,
	"#", `\#`,
	"$", `\$`,
	"%", `\%`,
	"&", `\&`,
	"_", `\_`,
	"^", `\textasciicircum{}`,
	"~", `\textasciitilde{}`,
)

// Escape makes user supplied text safe to embed in LaTeX.
func Escape(s string) string {
	return escaper.Replace(s)
}

// CorrectionName derives the correction file name: sheet.tex -> sheet_corr.tex.
func CorrectionName(filename string) string {
	return strings.TrimSuffix(filename, ".tex") + "_corr.tex"
}

// PDFName maps a .tex file name onto its compiled .pdf name.
func PDFName(filename string) string {
	return strings.TrimSuffix(filename, ".tex") + ".pdf"
}

// Writer stores rendered documents under one directory.
type Writer struct {
	fs  afero.Fs
	dir string
}

func NewWriter(fs afero.Fs, dir string) *Writer {
	return &Writer{fs: fs, dir: dir}
}

func (w *Writer) Dir() string { return w.dir }

// Path is where filename is written.
func (w *Writer) Path(filename string) string {
	return filepath.Join(w.dir, filename)
}

// Exists reports whether filename is already present.
func (w *Writer) Exists(filename string) (bool, error) {
	return afero.Exists(w.fs, w.Path(filename))
}

// Write renders doc and replaces filename with it.
func (w *Writer) Write(filename string, doc Document) (string, error) {
	text, err := doc.Render()
	if err != nil {
		return "", err
	}
	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create folder %s: %w", w.dir, err)
	}
	path := w.Path(filename)
	if err := afero.WriteFile(w.fs, path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("could not write %s: %w", path, err)
	}
	return path, nil
}
