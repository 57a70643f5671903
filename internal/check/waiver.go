package check

import (
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/codewithboateng/signoff/internal/ir"
)

// WaiverEngine overlays the item's waiver policy on an assembled result. It
// never mutates its input: every Apply returns a fresh CheckResult, so
// applying twice to the same input yields the same output.
type WaiverEngine struct {
	Spec   ir.WaiverSpec
	Logger *slog.Logger
}

// Apply dispatches on the waiver kind.
func (w *WaiverEngine) Apply(res ir.CheckResult) ir.CheckResult {
	switch w.Spec.Kind {
	case ir.WaiveGlobal:
		return w.applyGlobal(res)
	case ir.WaiveSelective:
		return w.applySelective(res)
	default:
		out := cloneResult(res)
		out.Waived = []ir.WaivedEntry{}
		out.UnusedWaivers = []ir.UnusedWaiver{}
		return out
	}
}

// applyGlobal relabels every violation informational and forces PASS. No
// pattern matching happens: the configured comments only synthesize the
// reason and are logged as trace entries.
func (w *WaiverEngine) applyGlobal(res ir.CheckResult) ir.CheckResult {
	reason := strings.Join(w.Spec.Comments, "; ")
	if reason == "" {
		reason = "globally waived"
	}
	for _, c := range w.Spec.Comments {
		w.logger().Info("global waiver comment", "comment", c)
	}

	out := cloneResult(res)
	out.Waived = make([]ir.WaivedEntry, 0, len(res.Missing)+len(res.Extra))
	for _, e := range res.Missing {
		out.Waived = append(out.Waived, ir.WaivedEntry{Entry: e, WaiverReason: reason})
	}
	for _, e := range res.Extra {
		out.Waived = append(out.Waived, ir.WaivedEntry{Entry: e, WaiverReason: reason})
	}
	out.Missing = []ir.Entry{}
	out.Extra = []ir.Entry{}
	out.UnusedWaivers = []ir.UnusedWaiver{}
	out.Status = ir.StatusPass
	return out
}

// applySelective consumes waiver patterns in list order. Each pattern scans
// the still-unclaimed violations (missing first, then extra, both in bucket
// order) and moves every one whose violation text it matches; a violation is
// claimed by at most one pattern. Patterns that claim nothing land in
// unused_waivers, as does any pattern with a broken regex, carrying the
// compile diagnostic instead of crashing the run.
func (w *WaiverEngine) applySelective(res ir.CheckResult) ir.CheckResult {
	out := cloneResult(res)
	out.Waived = slices.Clone(res.Waived)
	if out.Waived == nil {
		out.Waived = []ir.WaivedEntry{}
	}
	out.UnusedWaivers = []ir.UnusedWaiver{}

	missing := slices.Clone(res.Missing)
	extra := slices.Clone(res.Extra)

	for _, item := range w.Spec.Items {
		var claimedAny bool
		var bad *WaiverPatternError

		take := func(bucket []ir.Entry) []ir.Entry {
			kept := bucket[:0:0]
			for _, e := range bucket {
				if bad != nil {
					kept = append(kept, e)
					continue
				}
				ok, err := matchWaiver(item.Pattern, violationText(e))
				if err != nil {
					var wpe *WaiverPatternError
					if !errors.As(err, &wpe) {
						wpe = &WaiverPatternError{Pattern: item.Pattern, Err: err}
					}
					bad = wpe
					kept = append(kept, e)
					continue
				}
				if !ok {
					kept = append(kept, e)
					continue
				}
				claimedAny = true
				out.Waived = append(out.Waived, ir.WaivedEntry{
					Entry:         e,
					WaiverPattern: item.Pattern,
					WaiverReason:  waiveReason(item),
				})
			}
			return kept
		}

		missing = take(missing)
		extra = take(extra)

		switch {
		case bad != nil:
			w.logger().Warn("waiver pattern rejected", "pattern", item.Pattern, "err", bad.Err)
			out.UnusedWaivers = append(out.UnusedWaivers, ir.UnusedWaiver{
				Pattern: item.Pattern,
				Reason:  "invalid regex: " + bad.Err.Error(),
			})
		case !claimedAny:
			out.UnusedWaivers = append(out.UnusedWaivers, ir.UnusedWaiver{
				Pattern: item.Pattern,
				Reason:  unusedReason(item),
			})
		}
	}

	out.Missing = missing
	out.Extra = extra
	// Post-waiver the rule is strict: anything left in either violation
	// bucket fails, escalation flag or not.
	if len(out.Missing) == 0 && len(out.Extra) == 0 {
		out.Status = ir.StatusPass
	} else {
		out.Status = ir.StatusFail
	}
	return out
}

func (w *WaiverEngine) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

func waiveReason(item ir.WaiveItem) string {
	if item.Reason != "" {
		return item.Reason
	}
	return "waived by checklist"
}

func unusedReason(item ir.WaiveItem) string {
	if item.Reason != "" {
		return item.Reason
	}
	return "matched no violations"
}

// cloneResult copies the bucket slices so the waiver engine can build a new
// result without touching the assembler's.
func cloneResult(res ir.CheckResult) ir.CheckResult {
	out := res
	out.Found = slices.Clone(res.Found)
	out.Missing = slices.Clone(res.Missing)
	out.Extra = slices.Clone(res.Extra)
	out.Waived = slices.Clone(res.Waived)
	out.UnusedWaivers = slices.Clone(res.UnusedWaivers)
	if out.Found == nil {
		out.Found = []ir.Entry{}
	}
	if out.Missing == nil {
		out.Missing = []ir.Entry{}
	}
	if out.Extra == nil {
		out.Extra = []ir.Entry{}
	}
	return out
}
