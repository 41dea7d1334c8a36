package craftsim_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/raphael-go/pkg/craftsim"
)

func baseSettings() craftsim.Settings {
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

func TestUseAction_Determinism(t *testing.T) {
	settings := baseSettings()
	sequence := []craftsim.Action{
		craftsim.ActionMuscleMemory,
		craftsim.ActionVeneration,
		craftsim.ActionGroundwork,
		craftsim.ActionInnovation,
		craftsim.ActionPrudentTouch,
	}

	run := func() craftsim.State {
		st := craftsim.NewState(settings)
		for _, a := range sequence {
			next, err := st.UseAction(a, craftsim.ConditionNormal, settings)
			require.NoError(t, err, "action %s", a)
			st = next
		}
		return st
	}

	a := run()
	b := run()
	assert.Equal(t, a, b, "identical settings and action sequence must yield bitwise-identical final state")
}

func TestUseAction_FailedPreconditionDoesNotMutate(t *testing.T) {
	settings := baseSettings()
	settings.MaxCP = 0
	st := craftsim.NewState(settings)

	before := st
	_, err := st.UseAction(craftsim.ActionMuscleMemory, craftsim.ConditionNormal, settings)
	require.Error(t, err)
	assert.True(t, errors.Is(err, craftsim.NotEnoughCp))
	assert.Equal(t, before, st, "a rejected action must never mutate the receiver")
}

func TestUseAction_LevelGate(t *testing.T) {
	settings := baseSettings()
	settings.JobLevel = 1
	st := craftsim.NewState(settings)

	_, err := st.UseAction(craftsim.ActionByregotsBlessing, craftsim.ConditionNormal, settings)
	require.Error(t, err)
	assert.True(t, errors.Is(err, craftsim.LevelTooLow))
}

func TestUseAction_ActionDisabledByMask(t *testing.T) {
	settings := baseSettings()
	settings.AllowedActions = craftsim.ActionMaskAll().Remove(craftsim.ActionObserve)
	st := craftsim.NewState(settings)

	_, err := st.UseAction(craftsim.ActionObserve, craftsim.ConditionNormal, settings)
	require.Error(t, err)
	assert.True(t, errors.Is(err, craftsim.ActionDisabled))
}

func TestUseAction_OpenerOnlyAsFirstAction(t *testing.T) {
	settings := baseSettings()
	st := craftsim.NewState(settings)

	st, err := st.UseAction(craftsim.ActionObserve, craftsim.ConditionNormal, settings)
	require.NoError(t, err)

	_, err = st.UseAction(craftsim.ActionMuscleMemory, craftsim.ConditionNormal, settings)
	require.Error(t, err)
	assert.True(t, errors.Is(err, craftsim.ComboMismatch))
}

func TestUseAction_StateFinalAfterCompletion(t *testing.T) {
	settings := baseSettings()
	settings.MaxProgress = 1
	settings.BaseProgress = 10000
	st := craftsim.NewState(settings)

	st, err := st.UseAction(craftsim.ActionBasicSynthesis, craftsim.ConditionNormal, settings)
	require.NoError(t, err)
	require.True(t, st.IsCompleted(settings))

	_, err = st.UseAction(craftsim.ActionObserve, craftsim.ConditionNormal, settings)
	require.Error(t, err)
	assert.True(t, errors.Is(err, craftsim.StateFinal))
}

func TestUseAction_InnerQuietAccumulatesOnQualityGain(t *testing.T) {
	settings := baseSettings()
	st := craftsim.NewState(settings)

	st, err := st.UseAction(craftsim.ActionBasicTouch, craftsim.ConditionNormal, settings)
	require.NoError(t, err)
	assert.Greater(t, st.Quality, uint32(0))
	assert.Equal(t, uint8(1), st.Effects.InnerQuiet())
}

func TestUseAction_ByregotsBlessingRequiresInnerQuiet(t *testing.T) {
	settings := baseSettings()
	st := craftsim.NewState(settings)

	_, err := st.UseAction(craftsim.ActionByregotsBlessing, craftsim.ConditionNormal, settings)
	require.Error(t, err)

	st, err = st.UseAction(craftsim.ActionBasicTouch, craftsim.ConditionNormal, settings)
	require.NoError(t, err)

	st, err = st.UseAction(craftsim.ActionByregotsBlessing, craftsim.ConditionNormal, settings)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), st.Effects.InnerQuiet())
}

func TestUseAction_HeartAndSoulIsSingleUse(t *testing.T) {
	settings := baseSettings()
	st := craftsim.NewState(settings)

	st, err := st.UseAction(craftsim.ActionHeartAndSoul, craftsim.ConditionNormal, settings)
	require.NoError(t, err)
	assert.True(t, st.Effects.HeartAndSoulActive())

	_, err = st.UseAction(craftsim.ActionHeartAndSoul, craftsim.ConditionNormal, settings)
	require.Error(t, err)
}

func TestUseAction_ManipulationRestoresDurabilityOnTick(t *testing.T) {
	settings := baseSettings()
	st := craftsim.NewState(settings)

	st, err := st.UseAction(craftsim.ActionManipulation, craftsim.ConditionNormal, settings)
	require.NoError(t, err)
	before := st.Durability

	st, err = st.UseAction(craftsim.ActionBasicTouch, craftsim.ConditionNormal, settings)
	require.NoError(t, err)
	assert.Equal(t, before-10+5, st.Durability)
}

// TestUseAction_AdversarialQualityAccounting hand-verifies the three
// branches of UseAction's adversarial quality bookkeeping against the
// formula: while a guard is armed, Quality is credited with the action's
// real-condition gain; once unguarded, Quality is credited with the
// Poor-condition floor plus whatever the running UnreliableQuality bank
// can cover of the gap, and the remainder replaces the bank; and the
// guard is only armed (for exactly the following step) after a quality
// gain, never forced back to unguarded early.
//
// Job level is kept below 11 so Inner Quiet never increments and the
// quality modifier stays constant across every step, which keeps the
// hand-computed expectations tractable.
func TestUseAction_AdversarialQualityAccounting(t *testing.T) {
	settings := craftsim.Settings{
		MaxCP:          1000,
		MaxDurability:  100,
		MaxProgress:    100000,
		MaxQuality:     100000,
		BaseProgress:   100,
		BaseQuality:    100,
		JobLevel:       10,
		AllowedActions: craftsim.ActionMaskAll(),
		Adversarial:    true,
	}
	st := craftsim.NewState(settings)
	require.Equal(t, uint8(2), st.Effects.Guard(), "a fresh adversarial craft starts double-guarded")

	// Step 1: guarded (initial AdversarialGuard2), Normal condition.
	// Credited with the real gain (100), not the Poor floor (50).
	st, err := st.UseAction(craftsim.ActionBasicTouch, craftsim.ConditionNormal, settings)
	require.NoError(t, err)
	assert.Equal(t, uint32(100), st.Quality)
	assert.Equal(t, uint32(0), st.UnreliableQuality)
	assert.Equal(t, uint8(1), st.Effects.Guard(), "a quality gain re-arms the guard for one more step")

	// Step 2: BasicSynthesis gains no quality, so the guard is left to
	// tick_down's own decay instead of being force-reset, and the decay
	// (armed -> unguarded) is only now visible.
	st, err = st.UseAction(craftsim.ActionBasicSynthesis, craftsim.ConditionNormal, settings)
	require.NoError(t, err)
	assert.Equal(t, uint32(100), st.Quality, "a non-quality action must not change Quality")
	assert.Equal(t, uint8(0), st.Effects.Guard(), "the armed guard decays naturally once a step passes with no quality gain")

	// Step 3: unguarded, Excellent condition. Credited with the Poor
	// floor (50) plus min(bank, diff); the remainder becomes the new
	// bank.
	st, err = st.UseAction(craftsim.ActionBasicTouch, craftsim.ConditionExcellent, settings)
	require.NoError(t, err)
	assert.Equal(t, uint32(150), st.Quality)
	assert.Equal(t, uint32(350), st.UnreliableQuality)
	assert.Equal(t, uint8(1), st.Effects.Guard(), "the quality gain just made re-arms the guard")

	// Step 4: guarded again, Normal condition. Credited with the real
	// gain (100, not the Poor floor of 50), and the bank is cleared.
	st, err = st.UseAction(craftsim.ActionBasicTouch, craftsim.ConditionNormal, settings)
	require.NoError(t, err)
	assert.Equal(t, uint32(250), st.Quality)
	assert.Equal(t, uint32(0), st.UnreliableQuality)
}

func TestEffects_TickDownSaturatesAtZero(t *testing.T) {
	e := craftsim.NewEffects().WithInnovation(1)
	e = e.TickDown()
	assert.Equal(t, uint8(0), e.Innovation())
	e = e.TickDown()
	assert.Equal(t, uint8(0), e.Innovation())
}

func TestActionMask_RoundTrips(t *testing.T) {
	m := craftsim.ActionMaskOf(craftsim.ActionBasicSynthesis, craftsim.ActionBasicTouch)
	assert.True(t, m.Has(craftsim.ActionBasicSynthesis))
	assert.True(t, m.Has(craftsim.ActionBasicTouch))
	assert.False(t, m.Has(craftsim.ActionObserve))
	assert.Equal(t, 2, m.Len())

	m = m.Remove(craftsim.ActionBasicTouch)
	assert.False(t, m.Has(craftsim.ActionBasicTouch))
}
