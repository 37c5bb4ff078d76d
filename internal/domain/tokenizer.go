package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Token is the result of scanning query text for a bang.
type Token struct {
	Found   bool
	Keyword string // Without the trigger.

	// Start and End delimit the consumed token (trigger included) in the
	// normalized text.
	Start int
	End   int

	Remainder string
}

// exclamationVariants are non-ASCII code points rendered like '!'.
// Fullwidth forms are handled by width folding.
var exclamationVariants = map[rune]struct{}{
	'ǃ': {}, // latin letter retroflex click
	'︕': {}, // presentation form for vertical exclamation mark
	'﹗': {}, // small exclamation mark
	'❕': {}, // white exclamation mark ornament
	'❗': {}, // heavy exclamation mark symbol
}

// NormalizeExclamations rewrites exclamation mark look-alikes to '!'.
func NormalizeExclamations(s string) string {
	if isASCII(s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf {
			return r
		}
		if _, ok := exclamationVariants[r]; ok {
			return '!'
		}
		if width.LookupRune(r).Kind() == width.EastAsianFullwidth && width.LookupRune(r).Narrow() == '!' {
			return '!'
		}
		return r
	}, s)
}

// Tokenize finds the first "<trigger><keyword>" token that starts the text or
// follows whitespace, and removes it. Without a match the text is returned
// unchanged as the remainder.
func Tokenize(text, trigger string) Token {
	if trigger == "" {
		return Token{Remainder: text}
	}
	norm := text
	if strings.Contains(trigger, "!") {
		norm = NormalizeExclamations(text)
	}

	for i := 0; i < len(norm); {
		idx := strings.Index(norm[i:], trigger)
		if idx < 0 {
			break
		}
		start := i + idx

		if start > 0 {
			prev, _ := utf8.DecodeLastRuneInString(norm[:start])
			if !unicode.IsSpace(prev) {
				i = start + len(trigger)
				continue
			}
		}

		rest := norm[start+len(trigger):]
		n := strings.IndexFunc(rest, unicode.IsSpace)
		if n < 0 {
			n = len(rest)
		}
		if n == 0 {
			// A bare trigger is ordinary text.
			i = start + len(trigger)
			continue
		}

		end := start + len(trigger) + n
		return Token{
			Found:     true,
			Keyword:   rest[:n],
			Start:     start,
			End:       end,
			Remainder: joinAround(norm[:start], norm[end:]),
		}
	}

	return Token{Remainder: text}
}

func joinAround(before, after string) string {
	before = strings.TrimRightFunc(before, unicode.IsSpace)
	after = strings.TrimLeftFunc(after, unicode.IsSpace)
	switch {
	case before == "":
		return strings.TrimSpace(after)
	case after == "":
		return strings.TrimSpace(before)
	default:
		return strings.TrimSpace(before + " " + after)
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
