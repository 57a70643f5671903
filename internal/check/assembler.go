package check

import (
	"slices"

	"github.com/codewithboateng/signoff/internal/ir"
)

// Assembler partitions the normalized record stream for one item into
// found/missing/extra. It owns no I/O and no shared state; every invocation
// works on its own arena.
type Assembler struct {
	// Description labels enriched entries and ghosts for this item.
	Description string

	// Patterns, in checklist order, for the pattern algorithm. Order is
	// load-bearing: it defines the 1:1 correspondence with validation items.
	Patterns []string

	Matcher   RecordMatcher         // pattern modes
	Predicate CompletenessPredicate // existence modes

	// FailOnExtra escalates unclaimed records to a failure. Off by default:
	// surplus alone does not fail a pattern check.
	FailOnExtra bool
}

// Assemble runs the algorithm the mode selects.
func (a *Assembler) Assemble(mode ir.Mode, records []ir.ParsedRecord) ir.CheckResult {
	if mode.PatternBased() {
		return a.assemblePattern(records)
	}
	return a.assembleExistence(records)
}

// assembleExistence tests each record against the item's completeness
// predicate. Passing records are found; failing ones are violations in the
// missing bucket (observed but unsatisfying), so nothing is silently dropped.
// An item that saw no records at all gets a single ghost for the unmet slot.
func (a *Assembler) assembleExistence(records []ir.ParsedRecord) ir.CheckResult {
	res := emptyResult()
	for _, r := range records {
		e := ir.Entry{ParsedRecord: r, Description: a.Description, Actual: r.Value}
		if a.Predicate != nil && !a.Predicate.Satisfied(r) {
			res.Missing = append(res.Missing, e)
			continue
		}
		res.Found = append(res.Found, e)
	}
	if len(records) == 0 {
		res.Missing = append(res.Missing, ir.NewGhost(a.Description, ""))
	}
	res.Status = a.status(res)
	return res
}

// assemblePattern claims records for patterns in list order; each pattern
// scans the still-unconsumed records in normalized order and the first match
// wins. Deterministic O(n*m) by choice: reproducible partitions matter more
// here than optimal bipartite matching. Duplicate pattern strings are
// independent consumption events, each claiming its own record.
func (a *Assembler) assemblePattern(records []ir.ParsedRecord) ir.CheckResult {
	res := emptyResult()
	claimed := make([]bool, len(records))
	for _, pat := range a.Patterns {
		idx := -1
		for i, r := range records {
			if claimed[i] {
				continue
			}
			if a.Matcher.Match(pat, r) {
				idx = i
				break
			}
		}
		if idx < 0 {
			res.Missing = append(res.Missing, ir.NewGhost(a.Description, pat))
			continue
		}
		// Each step works against the partition returned by the previous
		// one; nothing mutates a partition another step already saw.
		claimed = claim(claimed, idx)
		res.Found = append(res.Found, ir.Entry{
			ParsedRecord: records[idx],
			Description:  a.Description,
			Expected:     pat,
			Actual:       records[idx].Value,
		})
	}
	for i, r := range records {
		if !claimed[i] {
			res.Extra = append(res.Extra, ir.Entry{ParsedRecord: r, Description: a.Description, Actual: r.Value})
		}
	}
	res.Status = a.status(res)
	return res
}

// status: PASS iff missing is empty; extras fail only when escalated.
func (a *Assembler) status(res ir.CheckResult) ir.Status {
	if len(res.Missing) > 0 {
		return ir.StatusFail
	}
	if a.FailOnExtra && len(res.Extra) > 0 {
		return ir.StatusFail
	}
	return ir.StatusPass
}

func claim(claimed []bool, idx int) []bool {
	next := slices.Clone(claimed)
	next[idx] = true
	return next
}

func emptyResult() ir.CheckResult {
	return ir.CheckResult{
		Found:         []ir.Entry{},
		Missing:       []ir.Entry{},
		Extra:         []ir.Entry{},
		Waived:        []ir.WaivedEntry{},
		UnusedWaivers: []ir.UnusedWaiver{},
	}
}
