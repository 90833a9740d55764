package textutil

import (
	"strings"
	"unicode"
)

// MinSummaryWords is the smallest input the summarizer accepts.
const MinSummaryWords = 50

// IsSpace matches the whitespace class browsers use for \s: the Unicode
// White_Space set plus the byte order mark, without NEL (U+0085).
func IsSpace(r rune) bool {
	switch r {
	case '\uFEFF':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}

// WordCount counts runs of non-space characters.
func WordCount(text string) int {
	return len(strings.FieldsFunc(text, IsSpace))
}

// LongEnoughToSummarize reports whether text clears the summarization gate.
func LongEnoughToSummarize(text string) bool {
	return WordCount(text) >= MinSummaryWords
}
