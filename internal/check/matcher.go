package check

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/codewithboateng/signoff/internal/ir"
)

const regexPrefix = "regex:"

// CompletenessPredicate is the existence-mode capability supplied by the
// calling item: it decides whether one record satisfies the item.
type CompletenessPredicate interface {
	Satisfied(rec ir.ParsedRecord) bool
}

// PredicateFunc adapts a plain function to CompletenessPredicate.
type PredicateFunc func(ir.ParsedRecord) bool

func (f PredicateFunc) Satisfied(rec ir.ParsedRecord) bool { return f(rec) }

// RecordMatcher decides whether a requirement pattern claims a record. Bound
// at assembler construction, per item.
type RecordMatcher interface {
	Match(pattern string, rec ir.ParsedRecord) bool
}

// PatternMatcher is the default requirement matcher. A pattern starting with
// "regex:" is a single unanchored regexp; anything else splits on "|" into
// alternatives, each a substring test (or a whole-string wildcard when Glob
// is set). The record matches if any alternative matches.
//
// Requirement matching is deliberately looser than waiver matching, which
// defaults to exact equality. Keep the two apart.
type PatternMatcher struct {
	Glob bool
}

func (m PatternMatcher) Match(pattern string, rec ir.ParsedRecord) bool {
	text := rec.Value
	if rest, ok := strings.CutPrefix(pattern, regexPrefix); ok {
		re, err := regexp.Compile(rest)
		if err != nil {
			return false
		}
		return re.MatchString(text)
	}
	for _, alt := range strings.Split(pattern, "|") {
		if m.Glob {
			if ok, err := filepath.Match(alt, text); err == nil && ok {
				return true
			}
			continue
		}
		if strings.Contains(text, alt) {
			return true
		}
	}
	return false
}

// matchWaiver matches one waiver pattern against violation text: exact
// equality, then wildcard, then an anchored "regex:" match, first success
// wins. An invalid regex is reported, never a crash.
func matchWaiver(pattern, text string) (bool, error) {
	if pattern == text {
		return true, nil
	}
	if ok, err := filepath.Match(pattern, text); err == nil && ok {
		return true, nil
	}
	if rest, ok := strings.CutPrefix(pattern, regexPrefix); ok {
		re, err := regexp.Compile("^(?:" + rest + ")")
		if err != nil {
			return false, &WaiverPatternError{Pattern: pattern, Err: err}
		}
		return re.MatchString(text), nil
	}
	return false, nil
}

// violationText is what selective waivers match against: the first non-empty
// of expected, value, description.
func violationText(e ir.Entry) string {
	if e.Expected != "" {
		return e.Expected
	}
	if e.Value != "" {
		return e.Value
	}
	return e.Description
}
