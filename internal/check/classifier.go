package check

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codewithboateng/signoff/internal/ir"
)

// Scalar is one of the two checklist cells that select the validation mode:
// "N/A" (or absent) or a count.
type Scalar struct {
	NA    bool
	Count int
}

// ParseScalar reads a checklist cell. Empty and "N/A" (any case) mean absent;
// anything else must be a non-negative integer.
func ParseScalar(s string) (Scalar, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "N/A") {
		return Scalar{NA: true}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Scalar{}, fmt.Errorf("not a count or N/A: %q", s)
	}
	if n < 0 {
		return Scalar{}, fmt.Errorf("negative count: %d", n)
	}
	return Scalar{Count: n}, nil
}

// Classify maps the requirement/waiver scalars to one of the four validation
// modes and validates the declared counts against the configured lists.
//
//	requirement  waiver       mode
//	N/A          N/A          1  existence
//	>0           N/A          2  pattern
//	>0           >=0          3  pattern + waiver
//	N/A          >=0          4  existence + waiver
func Classify(req, waiver Scalar, patternCount, waiveCount int) (ir.Mode, error) {
	if !req.NA && req.Count <= 0 {
		return 0, &ConfigMismatchError{Reason: fmt.Sprintf("requirement count must be positive, got %d", req.Count)}
	}
	if !req.NA && req.Count != patternCount {
		return 0, &ConfigMismatchError{Reason: fmt.Sprintf(
			"requirement count %d disagrees with %d configured patterns", req.Count, patternCount)}
	}
	if !waiver.NA && waiver.Count > 0 && waiver.Count != waiveCount {
		return 0, &ConfigMismatchError{Reason: fmt.Sprintf(
			"waiver count %d disagrees with %d configured waive items", waiver.Count, waiveCount)}
	}

	switch {
	case req.NA && waiver.NA:
		return ir.ModeExistence, nil
	case !req.NA && waiver.NA:
		return ir.ModePattern, nil
	case !req.NA && !waiver.NA:
		return ir.ModePatternWaiver, nil
	default:
		return ir.ModeExistenceWaiver, nil
	}
}
