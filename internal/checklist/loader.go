package checklist

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codewithboateng/signoff/internal/check"
	"github.com/codewithboateng/signoff/internal/ir"
)

// File is the on-disk checklist: an ordered list of sign-off items.
type File struct {
	Items []Item `yaml:"items" json:"items"`
}

// Item is one checklist entry as configured. The requirement and waiver
// values stay raw strings here; the classifier owns their validation, so a
// bad cell turns that one item INVALID instead of rejecting the whole file.
type Item struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`

	Requirement struct {
		Value    string   `yaml:"value" json:"value"` // "N/A" or a positive count
		Patterns []string `yaml:"patterns" json:"patterns"`
	} `yaml:"requirement" json:"requirement"`

	Waiver struct {
		Value    string         `yaml:"value" json:"value"` // "N/A", 0, or a positive count
		Items    []ir.WaiveItem `yaml:"items" json:"items"`
		Comments []string       `yaml:"comments" json:"comments"` // global mode free text
	} `yaml:"waiver" json:"waiver"`

	Match struct {
		Glob        bool `yaml:"glob" json:"glob"`
		FailOnExtra bool `yaml:"fail_on_extra" json:"fail_on_extra"`
	} `yaml:"match" json:"match"`

	Existence struct {
		// Require is a substring the record value must carry to satisfy the
		// item. Empty means any non-empty value counts.
		Require string `yaml:"require" json:"require"`
	} `yaml:"existence" json:"existence"`
}

// Options carry run-wide policy into every compiled check.
type Options struct {
	Strict bool
	Logger *slog.Logger
}

// Load reads a checklist file and compiles every item. Structural problems
// (unreadable file, bad YAML, missing or duplicate IDs) fail the load;
// per-item mode validation is deferred to each item's run.
func Load(path string, opts Options) ([]check.Check, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read checklist: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse checklist yaml: %w", err)
	}
	if len(f.Items) == 0 {
		return nil, fmt.Errorf("checklist %s has no items", path)
	}

	seen := map[string]bool{}
	out := make([]check.Check, 0, len(f.Items))
	for i, item := range f.Items {
		if strings.TrimSpace(item.ID) == "" {
			return nil, fmt.Errorf("checklist item %d: missing id", i)
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("checklist item %q: duplicate id", item.ID)
		}
		seen[item.ID] = true
		out = append(out, Compile(item, opts))
	}
	return out, nil
}

// Compile binds one configured item into a runnable check.
func Compile(item Item, opts Options) check.Check {
	return check.Check{
		ID:               item.ID,
		Title:            item.Title,
		Description:      description(item),
		RequirementValue: item.Requirement.Value,
		WaiverValue:      item.Waiver.Value,
		Patterns:         item.Requirement.Patterns,
		WaiveItems:       item.Waiver.Items,
		WaiveComments:    item.Waiver.Comments,
		Matcher:          check.PatternMatcher{Glob: item.Match.Glob},
		Predicate:        predicate(item),
		FailOnExtra:      item.Match.FailOnExtra,
		Strict:           opts.Strict,
		Logger:           opts.Logger,
	}
}

func description(item Item) string {
	if item.Title != "" {
		return item.Title
	}
	return item.ID
}

// predicate builds the existence-mode completeness test from the declarative
// config: a required substring, or any non-empty value.
func predicate(item Item) check.CompletenessPredicate {
	require := item.Existence.Require
	return check.PredicateFunc(func(rec ir.ParsedRecord) bool {
		if require != "" {
			return strings.Contains(rec.Value, require)
		}
		return rec.Value != ""
	})
}
