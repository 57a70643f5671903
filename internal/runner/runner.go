// Package runner orchestrates one checklist run: every item goes through
// classify -> normalize -> assemble -> waive -> project, independently and
// in parallel workers. Nothing here touches disk.
package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/codewithboateng/signoff/internal/check"
	"github.com/codewithboateng/signoff/internal/facts"
	"github.com/codewithboateng/signoff/internal/ir"
)

const defaultWorkers = 4

type Options struct {
	Workers int
	Logger  *slog.Logger
}

// Run validates every check against its fact stream and assembles the run
// report. Item order in the report follows checklist order regardless of
// worker scheduling.
func Run(ctx context.Context, checks []check.Check, doc facts.Document, opts Options) ir.Report {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	report := ir.Report{
		RunID:         "run-" + uuid.NewString(),
		StartedAt:     time.Now().UTC(),
		IRVersion:     ir.Version,
		SearchedPaths: check.NormalizePaths(doc.SearchedPaths),
		Items:         make([]ir.ItemResult, len(checks)),
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range checks {
		g.Go(func() error {
			report.Items[i] = runItem(&checks[i], doc.Records(checks[i].ID), opts.Logger)
			return nil
		})
	}
	_ = g.Wait() // item errors land in ItemResult, never abort the run

	report.Summary = summarize(report.Items)
	return report
}

// runItem maps a fatal item error to the INVALID outcome; everything else is
// the projected result plus recoverable diagnostics.
func runItem(c *check.Check, records []ir.ParsedRecord, logger *slog.Logger) ir.ItemResult {
	out, err := c.Run(records)
	if err != nil {
		if logger != nil {
			logger.Error("item aborted", "item", c.ID, "err", err)
		}
		return ir.ItemResult{
			ID:          c.ID,
			Title:       c.Title,
			Status:      ir.StatusInvalid,
			Diagnostics: []string{err.Error()},
		}
	}
	return ir.ItemResult{
		ID:          c.ID,
		Title:       c.Title,
		Mode:        out.Mode,
		Status:      out.Status,
		Result:      out.Result,
		Diagnostics: out.Diagnostics,
	}
}

func summarize(items []ir.ItemResult) ir.Summary {
	s := ir.Summary{Items: len(items)}
	for _, it := range items {
		switch it.Status {
		case ir.StatusPass:
			s.Pass++
		case ir.StatusFail:
			s.Fail++
		default:
			s.Invalid++
		}
		if w, ok := it.Result["waived"].([]ir.WaivedEntry); ok {
			s.Waived += len(w)
		}
		if u, ok := it.Result["unused_waivers"].([]ir.UnusedWaiver); ok {
			s.UnusedWaivers += len(u)
		}
	}
	return s
}
