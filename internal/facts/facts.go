// Package facts is the boundary with the upstream extraction collaborator:
// a flat, ordered record stream per checklist item plus the set of files
// that were searched. No extraction happens here.
package facts

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/codewithboateng/signoff/internal/ir"
)

// Document is the collaborator handoff for one run.
type Document struct {
	SearchedPaths []string                     `json:"searched_paths"`
	Facts         map[string][]ir.ParsedRecord `json:"facts"` // item id -> ordered records
}

// Load reads a fact document from disk.
func Load(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read facts: %w", err)
	}
	return Decode(b)
}

// Decode parses a fact document.
func Decode(b []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(b, &d); err != nil {
		return Document{}, fmt.Errorf("parse facts json: %w", err)
	}
	if d.Facts == nil {
		d.Facts = map[string][]ir.ParsedRecord{}
	}
	return d, nil
}

// Records returns the ordered stream for one item; missing items get an
// empty stream, which the existence algorithm reports as an unmet slot.
func (d Document) Records(itemID string) []ir.ParsedRecord {
	return d.Facts[itemID]
}
