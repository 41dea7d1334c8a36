// Package solvertest provides small replay-and-assert helpers for tests
// that exercise MacroSolver output against the real simulator, rather
// than re-deriving state by hand in every test.
package solvertest

import (
	"github.com/gitrdm/raphael-go/pkg/craftsim"
	"github.com/gitrdm/raphael-go/pkg/solver"
)

// Solve runs the solver with the given settings and options and returns
// whatever MacroSolver.Solve returns; it exists purely so test files
// don't need to import both pkg/solver and construct a MacroSolver
// themselves for the common case.
func Solve(settings craftsim.Settings, opts ...solver.Option) ([]craftsim.Action, error) {
	return solver.NewMacroSolver(settings, opts...).Solve()
}

// ScoreQuad replays actions one at a time against the real simulator and
// reports the resulting final Progress, Quality, step count, and total
// TimeCost. An error from the simulator aborts the replay and is
// returned, with whatever quad had accumulated up to that point.
func ScoreQuad(actions []craftsim.Action, settings craftsim.Settings) (progress, quality, steps, duration uint32, err error) {
	state := craftsim.NewState(settings)
	for _, a := range actions {
		state, err = state.UseAction(a, craftsim.ConditionNormal, settings)
		if err != nil {
			return state.Progress, state.Quality, steps, duration, err
		}
		steps++
		duration += uint32(a.TimeCost())
	}
	return state.Progress, state.Quality, steps, duration, nil
}

// ScoreQuadWithConditions replays actions one at a time against the real
// simulator like ScoreQuad, but drives each step with the corresponding
// entry of conditions instead of assuming ConditionNormal throughout.
// This is the hook adversarial-mode tests need: Settings.Adversarial
// accounting depends on which condition actually landed on each step, so
// a fixed-condition replay can't exercise it. conditions must have at
// least len(actions) entries; any condition past the last action is
// ignored.
func ScoreQuadWithConditions(actions []craftsim.Action, conditions []craftsim.Condition, settings craftsim.Settings) (progress, quality, steps, duration uint32, err error) {
	state := craftsim.NewState(settings)
	for i, a := range actions {
		state, err = state.UseAction(a, conditions[i], settings)
		if err != nil {
			return state.Progress, state.Quality, steps, duration, err
		}
		steps++
		duration += uint32(a.TimeCost())
	}
	return state.Progress, state.Quality, steps, duration, nil
}

// Quality replays actions and returns only the final Quality.
func Quality(actions []craftsim.Action, settings craftsim.Settings) (uint32, error) {
	_, quality, _, _, err := ScoreQuad(actions, settings)
	return quality, err
}

// IsProgressBackloaded reports whether, once the first Progress-raising
// action in actions has been applied, no later action ever raises
// Quality again. It replays actions against the real simulator rather
// than inspecting the action table directly, so it reflects what the
// sequence actually does under settings instead of what each action
// could do in isolation.
func IsProgressBackloaded(actions []craftsim.Action, settings craftsim.Settings) (bool, error) {
	state := craftsim.NewState(settings)
	progressStarted := false
	for _, a := range actions {
		next, err := state.UseAction(a, craftsim.ConditionNormal, settings)
		if err != nil {
			return false, err
		}
		if next.Progress > state.Progress {
			progressStarted = true
		}
		if progressStarted && next.Quality > state.Quality {
			return false, nil
		}
		state = next
	}
	return true, nil
}
