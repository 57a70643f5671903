package check

import (
	"sort"

	"github.com/codewithboateng/signoff/internal/ir"
)

// unknownLine sorts records without a line number after numbered ones within
// the same file.
const unknownLine = int(^uint32(0) >> 1)

// NormalizeRecords imposes the stable order the assembler depends on:
// (source_file, line_number, arrival index). The stable tiebreak preserves
// the upstream traversal order, which first-unconsumed-match-wins relies on.
// Records missing value or source_file are dropped and reported back.
func NormalizeRecords(records []ir.ParsedRecord) ([]ir.ParsedRecord, []*MalformedRecordError) {
	var dropped []*MalformedRecordError
	out := make([]ir.ParsedRecord, 0, len(records))
	for i, r := range records {
		switch {
		case r.Value == "":
			dropped = append(dropped, &MalformedRecordError{Index: i, Reason: "missing value"})
		case r.SourceFile == "":
			dropped = append(dropped, &MalformedRecordError{Index: i, Reason: "missing source_file"})
		default:
			if r.ParsedFields == nil {
				r.ParsedFields = map[string]string{}
			}
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SourceFile != out[j].SourceFile {
			return out[i].SourceFile < out[j].SourceFile
		}
		return lineKey(out[i]) < lineKey(out[j])
	})
	return out, dropped
}

// NormalizePaths deduplicates the searched-path set and sorts it ascending,
// case-sensitively.
func NormalizePaths(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func lineKey(r ir.ParsedRecord) int {
	if r.LineNumber == nil {
		return unknownLine
	}
	return *r.LineNumber
}
