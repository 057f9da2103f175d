// Package textnorm prepares raw document text for pattern matching.
// Normalization strips formatting noise (page-number artifacts,
// hyphen-broken words, runaway whitespace) but never semantic content,
// and it is idempotent: normalizing twice yields the same result.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// binarySniffLen is how many leading runes are inspected for control
// characters when deciding whether upstream text extraction leaked raw
// bytes (e.g. a scanned PDF).
const binarySniffLen = 4000

// binaryRatio is the control-character ratio above which the input is
// flagged as binary garbage.
const binaryRatio = 0.20

var (
	pageNumberLine = regexp.MustCompile(`(?m)^\s*\d{1,4}\s*$`)
	pageOfLine     = regexp.MustCompile(`(?im)^\s*page\s+\d+\s+(of\s+\d+\s*)?$`)
	hyphenBreak    = regexp.MustCompile(`([a-z])-\s*\n\s*([a-z])`)
	blankRuns      = regexp.MustCompile(`\n\s*\n\s*\n+`)
	horizontalWS   = regexp.MustCompile(`[ \t]+`)
	trailingWS     = regexp.MustCompile(`(?m)[ \t]+$`)
)

// Normalized is the cleaned view of a document. Text preserves case and
// line structure for heading/title/signature detection; Folded is the
// lowercased copy used for lexical matching.
type Normalized struct {
	Text      string
	Folded    string
	WordCount int
	Binary    bool
}

// Normalize cleans raw text and derives the folded copy, word count,
// and binary flag. Empty or whitespace-only input yields WordCount 0
// and empty strings; callers short-circuit before running extractors.
func Normalize(raw string) Normalized {
	binary := LooksBinary(raw)

	text := strings.ToValidUTF8(raw, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = pageNumberLine.ReplaceAllString(text, "")
	text = pageOfLine.ReplaceAllString(text, "")
	text = hyphenBreak.ReplaceAllString(text, "$1$2")
	text = horizontalWS.ReplaceAllString(text, " ")
	text = trailingWS.ReplaceAllString(text, "")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	return Normalized{
		Text:      text,
		Folded:    strings.ToLower(text),
		WordCount: CountWords(text),
		Binary:    binary,
	}
}

// CountWords returns the whitespace-delimited word count.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// CountChars returns the character count as runes (not bytes).
// This correctly handles multi-byte UTF-8 characters.
func CountChars(s string) int {
	return utf8.RuneCountInString(s)
}

// LooksBinary reports whether the leading portion of the input has a
// high ratio of non-printable control characters. Tabs and newlines do
// not count; replacement runes from broken decoding do.
func LooksBinary(raw string) bool {
	if raw == "" {
		return false
	}
	total := 0
	suspect := 0
	for _, r := range raw {
		if total >= binarySniffLen {
			break
		}
		total++
		switch {
		case r == '\n' || r == '\r' || r == '\t':
		case r == utf8.RuneError:
			suspect++
		case unicode.IsControl(r):
			suspect++
		}
	}
	if total == 0 {
		return false
	}
	return float64(suspect)/float64(total) > binaryRatio
}

// Head returns the first n runes of s, or all of s if shorter. Title
// and parties cues only look near the top of a document.
func Head(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// Tail returns the last n runes of s, or all of s if shorter.
// Signature blocks only count near the end of a document.
func Tail(s string, n int) string {
	count := utf8.RuneCountInString(s)
	if count <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[count-n:])
}
