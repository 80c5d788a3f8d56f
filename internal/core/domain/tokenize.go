package domain

import (
	"strings"
	"unicode"
)

// Tokenize splits text into lowercase terms for sparse retrieval.
// Dots, hyphens and underscores are kept inside tokens so command
// vocabulary like "kafka-topics.sh" and "log.retention.hours" survives
// as a single term; leading and trailing punctuation is stripped.
// The same function is used at index build time and at query time.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
		switch r {
		case '.', '-', '_':
			return false
		}
		return true
	})

	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "._-")
		if f != "" {
			terms = append(terms, f)
		}
	}
	return terms
}
