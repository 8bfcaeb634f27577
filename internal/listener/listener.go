// Package listener asks the user yes/no questions on the terminal.
package listener

import (
	"strings"
	"sync"

	"github.com/chzyer/readline"
)

// terminal is the part of *readline.Instance a Prompter uses.
type terminal interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Write(b []byte) (int, error)
	Close() error
}

type Prompter struct {
	mu   sync.Mutex
	term terminal
}

// Open starts reading from the terminal. Close must be called when done.
func Open() (*Prompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "",
		EOFPrompt:       "",
	})
	if err != nil {
		return nil, err
	}
	return &Prompter{term: rl}, nil
}

func (p *Prompter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.term != nil {
		_ = p.term.Close()
		p.term = nil
	}
}

// Println writes s above the prompt line.
func (p *Prompter) Println(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = p.term.Write([]byte(s + "\r\n"))
}

// readAnswer reads one line with prompt. A read error counts as an empty line.
func (p *Prompter) readAnswer(prompt string) string {
	p.mu.Lock()
	p.term.SetPrompt(prompt)
	p.mu.Unlock()

	line, err := p.term.Readline()
	if err != nil {
		return ""
	}
	return line
}

// Answer is the reading of a y/n reply.
type Answer int

const (
	Unclear Answer = iota
	Yes
	No
)

func ParseAnswer(s string) Answer {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "y", "yes", "o", "oui":
		return Yes
	case "n", "no", "non", "":
		return No
	}
	return Unclear
}

// AskYesNo asks until it gets a clear answer. An empty line or end of
// input counts as no.
func (p *Prompter) AskYesNo(question string) bool {
	p.Println(question + " [y/n]")
	for {
		switch ParseAnswer(p.readAnswer("> ")) {
		case Yes:
			return true
		case No:
			return false
		}
		p.Println("Please answer y/n.")
	}
}
