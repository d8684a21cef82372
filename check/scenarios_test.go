package check_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susji/jcheck/check"
	"github.com/susji/jcheck/workspace"
)

// runScenario builds a fresh Workspace, runs the named fixture through
// check.RunAll, and returns whatever errors came back -- the same path
// cmd/jcheck's `run` subcommand drives.
func runScenario(t *testing.T, name string) []*check.CheckError {
	t.Helper()
	build, ok := workspace.Scenarios[name]
	require.True(t, ok, "unknown scenario %q", name)

	w := workspace.New(workspace.NewMapScope())
	blk := build(name + ".jc")
	return check.RunAll(w, blk.Declarations, nil)
}

// TestFixedArrayToSlice exercises spec.md §8's C7-rule-4 scenario: a Fixed
// array value satisfying a Slice-typed declaration via implicit promotion.
func TestFixedArrayToSlice(t *testing.T) {
	errs := runScenario(t, "fixed-array-to-slice")
	assert.Empty(t, errs)
}

// TestIntegerRangeOverflow exercises spec.md §4.4's Number range check: 300
// does not fit in a u8.
func TestIntegerRangeOverflow(t *testing.T) {
	errs := runScenario(t, "integer-range-overflow")
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], check.ErrNumberTooBig))
}

// TestConstantFoldRefinalize exercises spec.md §4.6/§4.7's interaction: a
// folded `3 + 4` must stay open to re-finalization against u8 rather than
// defaulting to int and failing the declaration's own type check.
func TestConstantFoldRefinalize(t *testing.T) {
	errs := runScenario(t, "constant-fold-refinalize")
	assert.Empty(t, errs)
}

// TestForwardReference exercises C6's park/resume across RunAll's retry
// passes: `a` references `b` before `b` finishes, and must still resolve.
func TestForwardReference(t *testing.T) {
	errs := runScenario(t, "forward-reference")
	assert.Empty(t, errs)
}

// TestCircularDependency exercises RunAll's no-progress termination.
func TestCircularDependency(t *testing.T) {
	errs := runScenario(t, "circular-dependency")
	require.Len(t, errs, 2)
	for _, err := range errs {
		assert.True(t, errors.Is(err, check.ErrCircularDependency))
	}
}

// TestForeignImport exercises C6's #foreign finalization rule: libc is a
// plain declaration, not one bound by #import, so puts must be rejected.
func TestForeignImport(t *testing.T) {
	errs := runScenario(t, "foreign-import")
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], check.ErrForeignNotImport))
}

// TestRunAllIsDeterministic re-runs a fixture from scratch twice and checks
// both runs agree -- spec.md §8's determinism property: the same
// declarations, checked independently, never disagree on errors produced.
func TestRunAllIsDeterministic(t *testing.T) {
	for _, name := range []string{
		"fixed-array-to-slice", "integer-range-overflow", "forward-reference",
	} {
		first := runScenario(t, name)
		second := runScenario(t, name)
		assert.Equal(t, len(first), len(second), "scenario %q: error count differs across independent runs", name)
	}
}
