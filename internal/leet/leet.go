// Package leet turns text into l33t-5p34k. It is a pure post-processing
// stage: generators never call it, the rendering pipeline applies it to
// finished text.
package leet

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const MaxLevel = 3

var tables = [MaxLevel + 1]map[rune]string{
	0: {},
	1: {
		'a': "4", 'b': "6", 'l': "|", 'o': "0", 'e': "3", 't': "7", 's': "5", 'i': "1",
	},
	2: {
		'a': "4", 'b': "6", 'l': "1", 'o': "0", 'e': "3", 't': "7",
		'c': "(", 'd': "[)", 'f': "|=", 'h': "#", 'i': "!", 'j': ",|", 'k': "]{",
		'm': `(\/)`, 'n': `(\)`, 's': "5", 'u': "(_)", 'v': `\/`, 'w': "'//",
		'x': "%", 'y': "'/",
	},
	3: {
		'a': `/-\`, 'b': "!3", 'c': "(", 'd': "|)", 'e': "3", 'f': "|=", 'g': "(_+",
		'h': "]-[", 'i': "!", 'j': "_|", 'k': "|<", 'l': "|_", 'm': `|\/|`, 'n': `/\/`,
		'o': "()", 'p': "|*", 'q': "0_", 'r': "|?", 's': "5", 't': "7", 'u': "|_|",
		'v': `\/`, 'w': `\/\/`, 'x': "><", 'y': "'/", 'z': "2",
	},
}

// latexTables holds the same substitutions with LaTeX special characters
// escaped.
var latexTables [MaxLevel + 1]map[rune]string

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"{", `\{`,
	"}", `\}`,
	"#", `\#`,
	"%", `\%`,
	"_", `\_`,
	"&", `\&`,
)

func init() {
	for lvl, t := range tables {
		escaped := make(map[rune]string, len(t))
		for r, s := range t {
			escaped[r] = latexEscaper.Replace(s)
		}
		latexTables[lvl] = escaped
	}
}

func clamp(level int) int {
	if level < 0 {
		return 0
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// Text obfuscates plain terminal text.
func Text(s string, level int) string {
	level = clamp(level)
	if level == 0 {
		return s
	}
	return substitute(cases.Lower(language.Und).String(s), tables[level])
}

// LaTeX obfuscates a LaTeX fragment. Control sequences, environment names,
// math spans, \verb spans and verbatim environments are copied unchanged.
func LaTeX(s string, level int) string {
	level = clamp(level)
	if level == 0 {
		return s
	}
	table := latexTables[level]
	lower := cases.Lower(language.Und)

	var out, prose strings.Builder
	flush := func() {
		if prose.Len() > 0 {
			out.WriteString(substitute(lower.String(prose.String()), table))
			prose.Reset()
		}
	}

	for i := 0; i < len(s); {
		if n := protectedSpan(s[i:]); n > 0 {
			flush()
			out.WriteString(s[i : i+n])
			i += n
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		prose.WriteRune(r)
		i += size
	}
	flush()
	return out.String()
}

func substitute(s string, table map[rune]string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if rep, ok := table[r]; ok {
			sb.WriteString(rep)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// protectedSpan returns the length of the span at the start of s that must
// be copied verbatim, or 0.
func protectedSpan(s string) int {
	switch {
	case strings.HasPrefix(s, `\begin{verbatim}`):
		return spanThrough(s, `\end{verbatim}`, len(`\begin{verbatim}`))
	case strings.HasPrefix(s, `\verb`) && len(s) > len(`\verb`) && !isLetter(s[len(`\verb`)]):
		delim := s[len(`\verb`) : len(`\verb`)+1]
		return spanThrough(s, delim, len(`\verb`)+1)
	case strings.HasPrefix(s, `\begin{`), strings.HasPrefix(s, `\end{`):
		return spanThrough(s, "}", 1)
	case s[0] == '\\':
		n := 1
		for n < len(s) && isLetter(s[n]) {
			n++
		}
		if n == 1 && len(s) > 1 {
			_, size := utf8.DecodeRuneInString(s[1:])
			n += size
		}
		return n
	case s[0] == '$':
		end := strings.IndexByte(s[1:], '$')
		if end < 0 {
			return 1
		}
		return end + 2
	}
	return 0
}

// spanThrough returns the length of s up to and including the first
// occurrence of closer found at or after from, or len(s) when missing.
func spanThrough(s, closer string, from int) int {
	idx := strings.Index(s[from:], closer)
	if idx < 0 {
		return len(s)
	}
	return from + idx + len(closer)
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
