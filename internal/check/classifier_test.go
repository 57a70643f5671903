package check

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithboateng/signoff/internal/ir"
)

func TestParseScalar(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Scalar
	}{
		{"N/A", Scalar{NA: true}},
		{"n/a", Scalar{NA: true}},
		{"", Scalar{NA: true}},
		{"  N/A  ", Scalar{NA: true}},
		{"0", Scalar{Count: 0}},
		{"3", Scalar{Count: 3}},
	} {
		got, err := ParseScalar(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}

	for _, in := range []string{"-1", "three", "1.5", "N/B"} {
		_, err := ParseScalar(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestClassify_ModeTable(t *testing.T) {
	na := Scalar{NA: true}

	mode, err := Classify(na, na, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, ir.ModeExistence, mode)

	mode, err = Classify(Scalar{Count: 2}, na, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, ir.ModePattern, mode)

	mode, err = Classify(Scalar{Count: 2}, Scalar{Count: 1}, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, ir.ModePatternWaiver, mode)

	mode, err = Classify(Scalar{Count: 2}, Scalar{Count: 0}, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, ir.ModePatternWaiver, mode, "waiver 0 is global, still mode 3")

	mode, err = Classify(na, Scalar{Count: 0}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, ir.ModeExistenceWaiver, mode)

	mode, err = Classify(na, Scalar{Count: 2}, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, ir.ModeExistenceWaiver, mode)
}

func TestClassify_Mismatches(t *testing.T) {
	na := Scalar{NA: true}

	// requirement count must be positive
	_, err := Classify(Scalar{Count: 0}, na, 0, 0)
	var cme *ConfigMismatchError
	require.True(t, errors.As(err, &cme))

	// declared requirement count disagrees with the pattern list
	_, err = Classify(Scalar{Count: 3}, na, 2, 0)
	require.True(t, errors.As(err, &cme))
	assert.Contains(t, cme.Error(), "disagrees")

	// declared selective waiver count disagrees with the waive items
	_, err = Classify(Scalar{Count: 2}, Scalar{Count: 3}, 2, 1)
	require.True(t, errors.As(err, &cme))
}
