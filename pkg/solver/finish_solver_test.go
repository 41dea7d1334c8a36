package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/raphael-go/pkg/craftsim"
)

// testSettings returns a mid-tier settings value shared across this
// package's internal tests.
func testSettings() craftsim.Settings {
	return craftsim.Settings{
		MaxCP:          400,
		MaxDurability:  60,
		MaxProgress:    2000,
		MaxQuality:     1000,
		BaseProgress:   100,
		BaseQuality:    100,
		JobLevel:       90,
		AllowedActions: craftsim.ActionMaskAll(),
	}
}

func TestFinishSolver_InitialStateCanFinish(t *testing.T) {
	settings := testSettings()
	fs := NewFinishSolver(settings)
	assert.True(t, fs.CanFinish(craftsim.NewState(settings)))
}

func TestFinishSolver_CannotFinishWithNoDurabilityOrCP(t *testing.T) {
	settings := testSettings()
	fs := NewFinishSolver(settings)
	st := craftsim.NewState(settings)
	st.Durability = 0
	st.CP = 0
	assert.False(t, fs.CanFinish(st))
}

func TestFinishSolver_AlreadyCompletedCanFinish(t *testing.T) {
	settings := testSettings()
	fs := NewFinishSolver(settings)
	st := craftsim.NewState(settings)
	st.Progress = settings.MaxProgress
	assert.True(t, fs.CanFinish(st))
}

func TestFinishSolver_MemoizationIsConsistent(t *testing.T) {
	settings := testSettings()
	fs := NewFinishSolver(settings)
	st := craftsim.NewState(settings)

	first := fs.MaxAdditionalProgress(st)
	second := fs.MaxAdditionalProgress(st)
	assert.Equal(t, first, second, "repeated queries against an identical state must agree")
}

func TestFinishSolverShard_MergeIntoMatchesDirectSolve(t *testing.T) {
	settings := testSettings()
	parent := NewFinishSolver(settings)
	st := craftsim.NewState(settings)

	want := parent.CanFinish(st)

	fresh := NewFinishSolver(settings)
	shard := NewFinishSolverShard(fresh)
	shard.Warm(st)
	shard.MergeInto(fresh)

	require.True(t, fresh.CanFinish(st) == want)
}
