// Package menu turns the plain-text dump of a weekly catering menu into
// meal entries keyed by calendar date and period, and resolves which
// published week should answer a request for an arbitrary date.
//
// Everything in this package is a pure function of its inputs: no I/O,
// no shared state. Parsing several weeks concurrently is safe as long as
// each parse owns its result until it is merged.
package menu

import (
	"strings"
	"unicode"
)

// Classifier decides whether a line of extracted text is noise.
//
// The zero value recognises the structural junk produced by table
// extraction. Extra keywords mark page furniture (school name, titles)
// as junk too.
type Classifier struct {
	noise []string
}

// NewClassifier returns a classifier that also rejects lines containing
// any of the given keywords, compared case-insensitively.
func NewClassifier(noise ...string) Classifier {
	keywords := make([]string, 0, len(noise))
	for _, kw := range noise {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return Classifier{noise: keywords}
}

// IsJunk reports whether line carries no menu content.
func (c Classifier) IsJunk(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || trimmed == `"` {
		return true
	}
	if !strings.ContainsFunc(trimmed, isAlphanumeric) {
		return true
	}
	if len(c.noise) == 0 {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, kw := range c.noise {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsJunk applies the default classifier.
func IsJunk(line string) bool {
	return Classifier{}.IsJunk(line)
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
