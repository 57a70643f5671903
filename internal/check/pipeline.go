package check

import (
	"log/slog"

	"github.com/codewithboateng/signoff/internal/ir"
)

// Check is one fully-bound validation item: the two mode scalars, the ordered
// pattern list, the waiver configuration, and the injected capabilities.
// A Check owns no I/O and no shared state; independent checks can run in
// parallel workers.
type Check struct {
	ID          string
	Title       string
	Description string

	RequirementValue string // "N/A" or a positive count
	WaiverValue      string // "N/A", 0, or a positive count

	Patterns      []string
	WaiveItems    []ir.WaiveItem // selective patterns, in order
	WaiveComments []string       // global free-text comments

	Matcher     RecordMatcher
	Predicate   CompletenessPredicate
	FailOnExtra bool

	Strict bool // projection defects become errors
	Logger *slog.Logger
}

// Outcome is the projected result of one item run plus its recoverable
// diagnostics.
type Outcome struct {
	Mode        ir.Mode
	Status      ir.Status
	Result      map[string]any
	Diagnostics []string
}

// Run executes classify -> normalize -> assemble -> waive -> project for one
// item. A ConfigMismatchError (or a strict projection defect) aborts with no
// partial result; recoverable problems come back as diagnostics.
func (c *Check) Run(records []ir.ParsedRecord) (Outcome, error) {
	req, err := ParseScalar(c.RequirementValue)
	if err != nil {
		return Outcome{}, &ConfigMismatchError{Item: c.ID, Reason: "requirement value: " + err.Error()}
	}
	waiver, err := ParseScalar(c.WaiverValue)
	if err != nil {
		return Outcome{}, &ConfigMismatchError{Item: c.ID, Reason: "waiver value: " + err.Error()}
	}
	mode, err := Classify(req, waiver, len(c.Patterns), len(c.WaiveItems))
	if err != nil {
		if cme, ok := err.(*ConfigMismatchError); ok && cme.Item == "" {
			cme.Item = c.ID
		}
		return Outcome{}, err
	}

	normalized, dropped := NormalizeRecords(records)
	var diags []string
	for _, d := range dropped {
		c.logger().Warn("dropping malformed record", "item", c.ID, "err", d)
		diags = append(diags, d.Error())
	}

	asm := &Assembler{
		Description: c.Description,
		Patterns:    c.Patterns,
		Matcher:     c.matcher(),
		Predicate:   c.Predicate,
		FailOnExtra: c.FailOnExtra,
	}
	res := asm.Assemble(mode, normalized)

	engine := &WaiverEngine{Spec: c.waiverSpec(mode, waiver), Logger: c.logger()}
	res = engine.Apply(res)

	proj := &Projector{Strict: c.Strict, Logger: c.logger()}
	out, err := proj.Project(res, mode)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Mode: mode, Status: res.Status, Result: out, Diagnostics: diags}, nil
}

// waiverSpec derives the engine behavior from the mode and the waiver scalar:
// modes 1/2 never waive, 0 waives globally, a positive count selects.
func (c *Check) waiverSpec(mode ir.Mode, waiver Scalar) ir.WaiverSpec {
	if !mode.Waivable() {
		return ir.WaiverSpec{Kind: ir.WaiveNone}
	}
	if waiver.Count == 0 {
		return ir.WaiverSpec{Kind: ir.WaiveGlobal, Comments: c.WaiveComments}
	}
	return ir.WaiverSpec{Kind: ir.WaiveSelective, Items: c.WaiveItems}
}

func (c *Check) matcher() RecordMatcher {
	if c.Matcher != nil {
		return c.Matcher
	}
	return PatternMatcher{}
}

func (c *Check) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
