package listener

import (
	"io"
	"strings"
	"testing"
)

type fakeTerminal struct {
	lines   []string
	prompts []string
	out     strings.Builder
	closed  bool
}

func (f *fakeTerminal) Readline() (string, error) {
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *fakeTerminal) SetPrompt(prompt string) { f.prompts = append(f.prompts, prompt) }

func (f *fakeTerminal) Write(b []byte) (int, error) { return f.out.Write(b) }

func (f *fakeTerminal) Close() error {
	f.closed = true
	return nil
}

func TestParseAnswer(t *testing.T) {
	testCases := []struct {
		in   string
		want Answer
	}{
		{"y", Yes},
		{"YES", Yes},
		{" oui ", Yes},
		{"n", No},
		{"Non", No},
		{"", No},
		{"maybe", Unclear},
		{"yep", Unclear},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			if got := ParseAnswer(tc.in); got != tc.want {
				t.Errorf("ParseAnswer(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestAskYesNo(t *testing.T) {
	testCases := []struct {
		name      string
		lines     []string
		want      bool
		reprompts int
	}{
		{name: "yes at once", lines: []string{"y"}, want: true},
		{name: "french yes after noise", lines: []string{"maybe", "yep", "oui"}, want: true, reprompts: 2},
		{name: "explicit no", lines: []string{"non"}, want: false},
		{name: "end of input", lines: nil, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			term := &fakeTerminal{lines: tc.lines}
			p := &Prompter{term: term}

			if got := p.AskYesNo("Overwrite?"); got != tc.want {
				t.Errorf("AskYesNo = %v, want %v", got, tc.want)
			}
			out := term.out.String()
			if !strings.HasPrefix(out, "Overwrite? [y/n]") {
				t.Errorf("The question was not printed first: %q", out)
			}
			if got := strings.Count(out, "Please answer y/n."); got != tc.reprompts {
				t.Errorf("Expected %d reprompts, got %d: %q", tc.reprompts, got, out)
			}
		})
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	term := &fakeTerminal{}
	p := &Prompter{term: term}
	p.Close()
	p.Close()
	if !term.closed {
		t.Errorf("Expected the terminal to be closed")
	}
}
