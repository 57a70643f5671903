package check

import (
	"fmt"
	"log/slog"

	"github.com/codewithboateng/signoff/internal/ir"
)

// contract maps each mode to its exact output keys. Nothing outside the row
// may be emitted; everything in the row is always present, possibly empty.
var contract = map[ir.Mode][]string{
	ir.ModeExistence:       {"status", "found_items", "missing_items"},
	ir.ModePattern:         {"status", "found_items", "missing_items", "extra_items"},
	ir.ModePatternWaiver:   {"status", "found_items", "missing_items", "extra_items", "waived", "unused_waivers"},
	ir.ModeExistenceWaiver: {"status", "found_items", "missing_items", "waived", "unused_waivers"},
}

// ContractKeys returns the output keys for a mode, for the read-only API.
func ContractKeys(mode ir.Mode) []string {
	keys, ok := contract[mode]
	if !ok {
		return nil
	}
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Projector flattens a CheckResult onto the mode's key allowlist. A
// non-empty field outside the contract is a defect: an error when Strict,
// otherwise a warning and the field is dropped.
type Projector struct {
	Strict bool
	Logger *slog.Logger
}

func (p *Projector) Project(res ir.CheckResult, mode ir.Mode) (map[string]any, error) {
	keys, ok := contract[mode]
	if !ok {
		return nil, &ConfigMismatchError{Reason: fmt.Sprintf("no output contract for mode %d", mode)}
	}

	fields := map[string]any{
		"status":         res.Status,
		"found_items":    entries(res.Found),
		"missing_items":  entries(res.Missing),
		"extra_items":    entries(res.Extra),
		"waived":         waivedEntries(res.Waived),
		"unused_waivers": unusedWaivers(res.UnusedWaivers),
	}

	out := make(map[string]any, len(keys))
	for _, k := range keys {
		out[k] = fields[k]
		delete(fields, k)
	}
	for k, v := range fields {
		if !populated(v) {
			continue
		}
		if p.Strict {
			return nil, fmt.Errorf("projection defect: non-empty field %q outside mode %d contract", k, mode)
		}
		p.logger().Warn("dropping field outside output contract", "field", k, "mode", int(mode))
	}
	return out, nil
}

func (p *Projector) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func populated(v any) bool {
	switch t := v.(type) {
	case []ir.Entry:
		return len(t) > 0
	case []ir.WaivedEntry:
		return len(t) > 0
	case []ir.UnusedWaiver:
		return len(t) > 0
	default:
		return v != nil
	}
}

// The contracted lists are always concrete empty slices, never nil, so they
// serialize as [] rather than null.

func entries(in []ir.Entry) []ir.Entry {
	if in == nil {
		return []ir.Entry{}
	}
	return in
}

func waivedEntries(in []ir.WaivedEntry) []ir.WaivedEntry {
	if in == nil {
		return []ir.WaivedEntry{}
	}
	return in
}

func unusedWaivers(in []ir.UnusedWaiver) []ir.UnusedWaiver {
	if in == nil {
		return []ir.UnusedWaiver{}
	}
	return in
}
