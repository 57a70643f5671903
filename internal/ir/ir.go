package ir

import "time"

const Version = "1.0"

// Mode selects the validation algorithm, the waiver behavior, and the output
// contract for one checklist item.
type Mode int

const (
	ModeExistence       Mode = 1 // existence, no waiver
	ModePattern         Mode = 2 // pattern, no waiver
	ModePatternWaiver   Mode = 3 // pattern + waiver
	ModeExistenceWaiver Mode = 4 // existence + waiver
)

// PatternBased reports whether the mode runs the pattern-consumption algorithm.
func (m Mode) PatternBased() bool { return m == ModePattern || m == ModePatternWaiver }

// Waivable reports whether the mode carries waiver buckets in its contract.
func (m Mode) Waivable() bool { return m == ModePatternWaiver || m == ModeExistenceWaiver }

type Status string

const (
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
	StatusInvalid Status = "INVALID" // fatal config error; distinct from FAIL
)

// ParsedRecord is one provenance-tagged fact extracted upstream from a
// sign-off artifact (log, netlist, report). Immutable once produced;
// downstream only copies and enriches it.
type ParsedRecord struct {
	Value          string            `json:"value"`
	SourceFile     string            `json:"source_file"`
	LineNumber     *int              `json:"line_number"` // >=1, nil when unknown
	MatchedContent string            `json:"matched_content"`
	ParsedFields   map[string]string `json:"parsed_fields"`
}

// Entry is a ParsedRecord enriched with check context. A ghost entry is a
// synthesized placeholder for a required item that was never found; it is
// tagged in memory so it cannot be mistaken for genuine provenance, and it
// serializes with empty source_file / null line_number.
type Entry struct {
	ParsedRecord
	Ghost       bool   `json:"-"`
	Description string `json:"description,omitempty"`
	Expected    string `json:"expected,omitempty"`
	Actual      string `json:"actual,omitempty"`
}

// NewGhost synthesizes a placeholder for a required item never found.
func NewGhost(description, expected string) Entry {
	return Entry{
		ParsedRecord: ParsedRecord{ParsedFields: map[string]string{}},
		Ghost:        true,
		Description:  description,
		Expected:     expected,
	}
}

// WaivedEntry is a violation moved out of its origin bucket by the waiver
// engine, with the claiming pattern and reason recorded.
type WaivedEntry struct {
	Entry
	WaiverPattern string `json:"waiver_pattern"`
	WaiverReason  string `json:"waiver_reason"`
}

// UnusedWaiver is a configured waiver pattern that matched zero violations,
// or one whose regex failed to compile (Reason then carries the diagnostic).
type UnusedWaiver struct {
	Pattern string `json:"pattern"`
	Reason  string `json:"reason"`
}

// WaiverKind is the waiver engine behavior derived from the item's waiver
// scalar: NONE when absent, GLOBAL at 0, SELECTIVE above 0.
type WaiverKind int

const (
	WaiveNone WaiverKind = iota
	WaiveGlobal
	WaiveSelective
)

// WaiveItem is one selective waiver: a match pattern and the reason recorded
// on every violation it claims.
type WaiveItem struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Reason  string `json:"reason" yaml:"reason"`
}

// WaiverSpec drives the waiver engine. Comments are GLOBAL free text,
// surfaced as informational trace entries and never used as match patterns.
// Items are SELECTIVE patterns, consumed in list order.
type WaiverSpec struct {
	Kind     WaiverKind
	Comments []string
	Items    []WaiveItem
}

// CheckResult is the canonical pre-projection result for one item. The
// assembler builds it once; the waiver engine transforms it into a new value,
// never in place.
type CheckResult struct {
	Status        Status         `json:"status"`
	Found         []Entry        `json:"found_items"`
	Missing       []Entry        `json:"missing_items"`
	Extra         []Entry        `json:"extra_items"`
	Waived        []WaivedEntry  `json:"waived"`
	UnusedWaivers []UnusedWaiver `json:"unused_waivers"`
}

// ItemResult is one item's projected outcome within a run.
type ItemResult struct {
	ID          string         `json:"id"`
	Title       string         `json:"title,omitempty"`
	Mode        Mode           `json:"mode,omitempty"`
	Status      Status         `json:"status"`
	Result      map[string]any `json:"result,omitempty"`
	Diagnostics []string       `json:"diagnostics,omitempty"`
}

// Summary is the run rollup reported alongside the per-item results.
type Summary struct {
	Items         int `json:"items"`
	Pass          int `json:"pass"`
	Fail          int `json:"fail"`
	Invalid       int `json:"invalid"`
	Waived        int `json:"waived"`
	UnusedWaivers int `json:"unused_waivers"`
}

// Report is the full output of one checklist run.
type Report struct {
	RunID         string       `json:"run_id"`
	StartedAt     time.Time    `json:"started_at"`
	IRVersion     string       `json:"ir_version,omitempty"`
	SearchedPaths []string     `json:"searched_paths"`
	Summary       Summary      `json:"summary"`
	Items         []ItemResult `json:"items"`
}
