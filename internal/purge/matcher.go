package purge

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher tests titles against one curated phrase list, compiled into a
// single case-insensitive alternation.
type Matcher struct {
	phrases []string
	re      *regexp.Regexp
}

// Compile builds a matcher from a phrase list. Each phrase is quoted,
// inner whitespace is generalized to \s+, and \b anchors are added only
// where the phrase edge is an ASCII word character: RE2's \b is
// ASCII-only, so anchoring next to an accented letter (the lists carry
// French terms like "confirmé") would make the phrase unmatchable.
func Compile(phrases []string) (*Matcher, error) {
	var alts []string
	var kept []string
	for _, p := range phrases {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		alts = append(alts, phrasePattern(p))
		kept = append(kept, p)
	}
	if len(alts) == 0 {
		return &Matcher{}, nil
	}
	re, err := regexp.Compile(`(?i)(?:` + strings.Join(alts, "|") + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile phrase list: %w", err)
	}
	return &Matcher{phrases: kept, re: re}, nil
}

// MustCompile is Compile for hand-maintained lists known to be valid.
func MustCompile(phrases []string) *Matcher {
	m, err := Compile(phrases)
	if err != nil {
		panic(err)
	}
	return m
}

func phrasePattern(phrase string) string {
	parts := strings.Fields(phrase)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	pat := strings.Join(parts, `\s+`)

	runes := []rune(phrase)
	if isASCIIWord(runes[0]) {
		pat = `\b` + pat
	}
	if isASCIIWord(runes[len(runes)-1]) {
		pat = pat + `\b`
	}
	return pat
}

func isASCIIWord(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

// Match reports whether the title contains any phrase from the list.
func (m *Matcher) Match(title string) bool {
	if m == nil || m.re == nil {
		return false
	}
	return m.re.MatchString(title)
}

// Phrases returns the phrases the matcher was compiled from.
func (m *Matcher) Phrases() []string {
	return append([]string(nil), m.phrases...)
}
