package check

import "fmt"

// ConfigMismatchError is fatal for an item: the requirement/waiver scalars
// fall outside the four-mode table, or a declared count disagrees with the
// configured list. The item aborts with no partial result and surfaces as
// INVALID, never silently coerced.
type ConfigMismatchError struct {
	Item   string
	Reason string
}

func (e *ConfigMismatchError) Error() string {
	if e.Item == "" {
		return "config mismatch: " + e.Reason
	}
	return fmt.Sprintf("config mismatch in %s: %s", e.Item, e.Reason)
}

// MalformedRecordError is recoverable: the normalizer drops the record with a
// warning, and whatever it should have evidenced still surfaces as missing.
type MalformedRecordError struct {
	Index  int // position in the incoming stream
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at index %d: %s", e.Index, e.Reason)
}

// WaiverPatternError is recoverable: an invalid regex: waiver pattern is
// treated as never-matching and reported as an unused waiver carrying the
// compile diagnostic.
type WaiverPatternError struct {
	Pattern string
	Err     error
}

func (e *WaiverPatternError) Error() string {
	return fmt.Sprintf("waiver pattern %q: %v", e.Pattern, e.Err)
}

func (e *WaiverPatternError) Unwrap() error { return e.Err }
