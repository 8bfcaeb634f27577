// Package locale holds the two languages handouts can be written in and the
// phrase catalog shared by every exercise.
package locale

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

type Locale string

const (
	FR Locale = "FR"
	EN Locale = "EN"
)

var ErrUnsupportedLocale = errors.New("unsupported locale")

// Supported lists the locales handouts can be written in.
var Supported = []Locale{FR, EN}

// Parse accepts "FR", "en", "fr-CA", ... and maps it onto a supported locale.
// Only the base language counts: regional variants are accepted, languages
// a matcher would fall back from (br, oc, mfe, ...) are not.
func Parse(s string) (Locale, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty language", ErrUnsupportedLocale)
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a language tag", ErrUnsupportedLocale, s)
	}
	base, _ := tag.Base()
	for _, l := range Supported {
		if want, _ := l.Tag().Base(); want == base {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported: FR, EN)", ErrUnsupportedLocale, s)
}

func (l Locale) Validate() error {
	switch l {
	case FR, EN:
		return nil
	}
	return fmt.Errorf("%w: %q (supported: FR, EN)", ErrUnsupportedLocale, string(l))
}

func (l Locale) Tag() language.Tag {
	if l == FR {
		return language.French
	}
	return language.English
}

// BabelName is the babel package option for the locale.
func (l Locale) BabelName() string {
	if l == FR {
		return "french"
	}
	return "english"
}

func (l Locale) String() string { return string(l) }
