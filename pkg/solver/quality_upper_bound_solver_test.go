package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitrdm/raphael-go/pkg/craftsim"
)

func TestQualityUpperBoundSolver_BoundIsWithinMaxQuality(t *testing.T) {
	settings := testSettings()
	qub := NewQualityUpperBoundSolver(settings)
	st := craftsim.NewState(settings)
	assert.LessOrEqual(t, qub.QualityUpperBound(st), settings.MaxQuality)
}

func TestQualityUpperBoundSolver_OpenerBoundIsMaximallyGenerous(t *testing.T) {
	settings := testSettings()
	qub := NewQualityUpperBoundSolver(settings)
	st := craftsim.NewState(settings)
	assert.Equal(t, settings.MaxQuality, qub.QualityUpperBound(st),
		"a fresh opener state's bound must stay admissible by being maximally generous")
}

func TestQualityUpperBoundSolver_BoundIsAdmissible(t *testing.T) {
	settings := testSettings()
	qub := NewQualityUpperBoundSolver(settings)

	st, err := craftsim.NewState(settings).UseAction(craftsim.ActionMuscleMemory, craftsim.ConditionNormal, settings)
	assert.NoError(t, err)

	bound := qub.QualityUpperBound(st)

	child, err := st.UseAction(craftsim.ActionPreparatoryTouch, craftsim.ConditionNormal, settings)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, bound, child.Quality,
		"the bound computed before an action must never be exceeded by the quality actually reached after it")
}

func TestQualityUpperBoundSolver_BoundIsMonotonicallyNonIncreasingAsDurabilitySpent(t *testing.T) {
	settings := testSettings()
	qub := NewQualityUpperBoundSolver(settings)

	st, err := craftsim.NewState(settings).UseAction(craftsim.ActionMuscleMemory, craftsim.ConditionNormal, settings)
	assert.NoError(t, err)
	boundBefore := qub.QualityUpperBound(st)

	st, err = st.UseAction(craftsim.ActionBasicSynthesis, craftsim.ConditionNormal, settings)
	assert.NoError(t, err)
	boundAfter := qub.QualityUpperBound(st)

	assert.LessOrEqual(t, boundAfter, boundBefore,
		"spending a resource without gaining quality must never raise the bound")
}

func TestQualityUbSolverShard_WarmThenMergeIsIdempotent(t *testing.T) {
	settings := testSettings()
	qub := NewQualityUpperBoundSolver(settings)
	st, err := craftsim.NewState(settings).UseAction(craftsim.ActionMuscleMemory, craftsim.ConditionNormal, settings)
	assert.NoError(t, err)

	want := qub.QualityUpperBound(st)

	fresh := NewQualityUpperBoundSolver(settings)
	shard := NewQualityUbSolverShard(fresh)
	shard.Warm(st)
	shard.MergeInto(fresh)

	assert.Equal(t, want, fresh.QualityUpperBound(st))
}
