package query

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

type script int

const (
	scriptLatin script = iota
	scriptHebrew
)

// scriptOf inspects the first non-whitespace rune. Anything outside the
// Hebrew block is treated as Latin-locale text.
func scriptOf(s string) script {
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if unicode.Is(unicode.Hebrew, r) {
			return scriptHebrew
		}
		return scriptLatin
	}
	return scriptLatin
}

var (
	// Collators are not safe for concurrent use; everything funnels
	// through collatorCompare below.
	collateMu      sync.Mutex
	hebrewCollator = collate.New(language.Hebrew, collate.Loose)
	latinCollator  = collate.New(language.English, collate.Loose)
)

// foldForCollation normalizes a string for comparison: NFC plus stripping
// punctuation, so "a.b-c" and "abc" collate together.
func foldForCollation(s string) string {
	s = norm.NFC.String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, s)
}

func collatorCompare(sc script, a, b string) int {
	collateMu.Lock()
	defer collateMu.Unlock()
	c := latinCollator
	if sc == scriptHebrew {
		c = hebrewCollator
	}
	return c.CompareString(foldForCollation(a), foldForCollation(b))
}

// CompareText compares two text operands with per-operand script detection.
// Same-script pairs use that script's collation (case/accent-insensitive,
// punctuation stripped) with desc flipping the result. Mixed-script pairs
// put the Hebrew operand first independent of requested direction.
func CompareText(a, b string, desc bool) int {
	sa, sb := scriptOf(a), scriptOf(b)
	if sa != sb {
		if sa == scriptHebrew {
			return -1
		}
		return 1
	}
	c := collatorCompare(sa, a, b)
	if desc {
		return -c
	}
	return c
}
