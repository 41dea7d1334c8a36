package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitrdm/raphael-go/pkg/craftsim"
)

func TestStepLowerBoundSolver_CompletedStateNeedsNoFurtherSteps(t *testing.T) {
	settings := testSettings()
	s := NewStepLowerBoundSolver(settings)

	st := craftsim.NewState(settings)
	st.Progress = settings.MaxProgress
	st.Quality = settings.MaxQuality

	assert.Equal(t, uint8(1), s.StepLowerBound(st, 1, false),
		"a state with nothing left to gain needs no steps beyond the hint floor")
}

func TestStepLowerBoundSolver_HigherHintNeverReturnsLessThanTrueMinimum(t *testing.T) {
	settings := testSettings()
	s := NewStepLowerBoundSolver(settings)
	st := craftsim.NewState(settings)

	trueMinimum := s.StepLowerBound(st, 1, false)

	fresh := NewStepLowerBoundSolver(settings)
	withHigherHint := fresh.StepLowerBound(st, trueMinimum+5, false)

	assert.GreaterOrEqual(t, withHigherHint, trueMinimum,
		"starting the search from a higher hint must never undercut the true minimum")
}

func TestStepLowerBoundSolver_MemoizationIsConsistent(t *testing.T) {
	settings := testSettings()
	s := NewStepLowerBoundSolver(settings)
	st := craftsim.NewState(settings)

	first := s.StepLowerBound(st, 1, false)
	second := s.StepLowerBound(st, 1, false)
	assert.Equal(t, first, second)
}

func TestStepLowerBoundSolver_ProgressOnlyAgreesWithFullWhenQualityIsNotRequired(t *testing.T) {
	settings := testSettings()
	settings.MaxQuality = 0 // nothing to gain from quality actions at all
	s := NewStepLowerBoundSolver(settings)
	st := craftsim.NewState(settings)

	full := s.StepLowerBound(st, 1, false)
	progressOnly := s.StepLowerBound(st, 1, true)

	assert.Equal(t, full, progressOnly,
		"when there is no quality target, restricting to progress-only actions must reach the same minimum step count")
}
