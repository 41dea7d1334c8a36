package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/raphael-go/pkg/craftsim"
)

func TestActionCombo_SingleRoundTrips(t *testing.T) {
	c := Single(craftsim.ActionObserve)
	assert.Equal(t, uint8(1), c.Steps())
	assert.Equal(t, []craftsim.Action{craftsim.ActionObserve}, c.Actions())
	assert.Equal(t, "Observe", c.String())
}

func TestActionCombo_PairFoldsTwoSteps(t *testing.T) {
	c := Pair(craftsim.ActionBasicTouch, craftsim.ActionStandardTouch)
	assert.Equal(t, uint8(2), c.Steps())
	assert.Equal(t, []craftsim.Action{craftsim.ActionBasicTouch, craftsim.ActionStandardTouch}, c.Actions())
	assert.Equal(t, "BasicTouch+StandardTouch", c.String())
	assert.Equal(t, uint32(craftsim.ActionBasicTouch.TimeCost())+uint32(craftsim.ActionStandardTouch.TimeCost()), c.TimeCost())
}

func TestUseActionCombo_FirstStepFailureReturnsOriginalState(t *testing.T) {
	settings := testSettings()
	settings.MaxCP = 0
	st := craftsim.NewState(settings)
	c := Pair(craftsim.ActionBasicTouch, craftsim.ActionStandardTouch)

	got, err := UseActionCombo(st, c, craftsim.ConditionNormal, settings)
	require.Error(t, err, "BasicTouch alone already costs more CP than MaxCP=0 allows")
	assert.Equal(t, st, got)
}

func TestProgressOnlyCombos_ExcludesPureQualityActions(t *testing.T) {
	combos := ProgressOnlyCombos(craftsim.ActionMaskAll())
	for _, c := range combos {
		for _, a := range c.Actions() {
			assert.NotEqual(t, craftsim.ActionByregotsBlessing, a)
			assert.NotEqual(t, craftsim.ActionGreatStrides, a)
		}
	}
}

func TestQualityOnlyCombos_ExcludesPureProgressActions(t *testing.T) {
	combos := QualityOnlyCombos(craftsim.ActionMaskAll())
	for _, c := range combos {
		for _, a := range c.Actions() {
			assert.NotEqual(t, craftsim.ActionBasicSynthesis, a)
			assert.NotEqual(t, craftsim.ActionGroundwork, a)
		}
	}
}

func TestFullCombos_RespectsAllowedMask(t *testing.T) {
	allowed := craftsim.ActionMaskAll().Remove(craftsim.ActionManipulation)
	combos := FullCombos(allowed)
	for _, c := range combos {
		for _, a := range c.Actions() {
			assert.NotEqual(t, craftsim.ActionManipulation, a)
		}
	}
}
