package checklist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithboateng/signoff/internal/ir"
)

const sampleChecklist = `
items:
  - id: SYN-001
    title: synthesis tool version
    requirement:
      value: "1"
      patterns: ["2025|Genus"]
  - id: STA-002
    title: timing clean
    requirement:
      value: "2"
      patterns: ["setup met", "hold met"]
    waiver:
      value: "1"
      items:
        - pattern: "hold met"
          reason: hold closure in ECO
    match:
      fail_on_extra: true
  - id: PWR-003
    title: power report present
    requirement:
      value: "N/A"
    waiver:
      value: "0"
      comments: ["power signoff deferred"]
    existence:
      require: power
`

func writeChecklist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checklist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	checks, err := Load(writeChecklist(t, sampleChecklist), Options{})
	require.NoError(t, err)
	require.Len(t, checks, 3)

	assert.Equal(t, "SYN-001", checks[0].ID)
	assert.Equal(t, []string{"2025|Genus"}, checks[0].Patterns)
	assert.Equal(t, "1", checks[0].RequirementValue)
	assert.Equal(t, "", checks[0].WaiverValue, "absent waiver stays absent")

	assert.Equal(t, []ir.WaiveItem{{Pattern: "hold met", Reason: "hold closure in ECO"}}, checks[1].WaiveItems)
	assert.True(t, checks[1].FailOnExtra)

	assert.Equal(t, "0", checks[2].WaiverValue)
	assert.Equal(t, []string{"power signoff deferred"}, checks[2].WaiveComments)
}

func TestLoad_ExistencePredicate(t *testing.T) {
	checks, err := Load(writeChecklist(t, sampleChecklist), Options{})
	require.NoError(t, err)

	pred := checks[2].Predicate
	assert.True(t, pred.Satisfied(ir.ParsedRecord{Value: "total power 1.2mW"}))
	assert.False(t, pred.Satisfied(ir.ParsedRecord{Value: "area 120um2"}), "require substring missing")

	// default predicate: any non-empty value
	anyPred := Compile(Item{ID: "X"}, Options{}).Predicate
	assert.True(t, anyPred.Satisfied(ir.ParsedRecord{Value: "x"}))
	assert.False(t, anyPred.Satisfied(ir.ParsedRecord{}))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writeChecklist(t, "items: []"), Options{})
	assert.ErrorContains(t, err, "no items")

	_, err = Load(writeChecklist(t, "items:\n  - title: nameless\n"), Options{})
	assert.ErrorContains(t, err, "missing id")

	_, err = Load(writeChecklist(t, "items:\n  - id: A\n  - id: A\n"), Options{})
	assert.ErrorContains(t, err, "duplicate id")

	_, err = Load(filepath.Join(t.TempDir(), "nope.yaml"), Options{})
	assert.ErrorContains(t, err, "read checklist")

	_, err = Load(writeChecklist(t, "items: ["), Options{})
	assert.ErrorContains(t, err, "parse checklist yaml")
}

func TestCompile_DescriptionFallsBackToID(t *testing.T) {
	c := Compile(Item{ID: "LEC-009"}, Options{})
	assert.Equal(t, "LEC-009", c.Description)
}
