package solver

import "github.com/gitrdm/raphael-go/pkg/craftsim"

// stepLbKey is ReducedState (StepLbSolver): a step budget, whether the
// query runs in progress-only mode, durability, and effects capped to the
// step horizon.
type stepLbKey struct {
	budget       uint8
	progressOnly bool
	durability   int16
	effects      craftsim.Effects
}

// StepLowerBoundSolver answers, for a state and a candidate step budget k,
// the tightest Quality reachable within k steps, and derives from that the
// minimum k for which max Quality is reachable at all.
type StepLowerBoundSolver struct {
	settings       craftsim.Settings
	fullCombos     []ActionCombo
	progressCombos []ActionCombo

	builder *ParetoFrontBuilder
	memoID  map[stepLbKey]int
}

// NewStepLowerBoundSolver builds a solver for settings.
func NewStepLowerBoundSolver(settings craftsim.Settings) *StepLowerBoundSolver {
	return &StepLowerBoundSolver{
		settings:       settings,
		fullCombos:     FullCombos(settings.AllowedActions),
		progressCombos: ProgressOnlyCombos(settings.AllowedActions),
		builder:        NewParetoFrontBuilder(settings.MaxProgress, settings.MaxQuality),
		memoID:         make(map[stepLbKey]int),
	}
}

// StepLowerBound starts from max(hint, 1) and increments the step budget
// until max Quality is reachable within it from st, returning that budget.
// A return of 255 means infeasible within any budget this solver tried.
func (s *StepLowerBoundSolver) StepLowerBound(st craftsim.State, hint uint8, progressOnly bool) uint8 {
	k := hint
	if k < 1 {
		k = 1
	}
	remaining := uint32(0)
	if s.settings.MaxProgress > st.Progress {
		remaining = s.settings.MaxProgress - st.Progress
	}
	targetQuality := uint32(0)
	if s.settings.MaxQuality > st.Quality {
		targetQuality = s.settings.MaxQuality - st.Quality
	}

	for ; k < 255; k++ {
		bound := s.qualityWithinBudget(st, k, remaining, progressOnly)
		if bound >= targetQuality {
			return k
		}
	}
	return 255
}

func (s *StepLowerBoundSolver) qualityWithinBudget(st craftsim.State, k uint8, remaining uint32, progressOnly bool) uint32 {
	id := s.solve(s.reduce(st, k, progressOnly))
	front := s.builder.Retrieve(id)
	for _, p := range front {
		if p.Progress >= remaining {
			return p.Quality
		}
	}
	return 0
}

func (s *StepLowerBoundSolver) reduce(st craftsim.State, k uint8, progressOnly bool) stepLbKey {
	e := st.Effects
	e = capField(e, e.WasteNot(), k, e.WithWasteNot)
	e = capField(e, e.Manipulation(), k, e.WithManipulation)
	e = capField(e, e.Innovation(), min(k, 7), e.WithInnovation)
	e = capField(e, e.Veneration(), min(k, 7), e.WithVeneration)
	if progressOnly {
		e = e.StripQualityEffects()
	}
	return stepLbKey{budget: k, progressOnly: progressOnly, durability: st.Durability, effects: e}
}

// capField flattens a ticking duration to "permanent within the horizon":
// any nonzero value becomes min(k, 15) (15 being the 4-bit ceiling of
// WasteNot and Manipulation) rather than its exact countdown, since
// within a bounded step horizon what matters is only whether the effect
// is active, not its exact remaining duration beyond k. reduce passes
// Innovation and Veneration a horizon already capped at 7, the ceiling
// of their 3-bit fields, so the stored value never wraps.
func capField(e craftsim.Effects, current uint8, k uint8, setter func(uint8) craftsim.Effects) craftsim.Effects {
	if current == 0 {
		return e
	}
	cap := k
	if cap > 15 {
		cap = 15
	}
	return setter(cap)
}

func (s *StepLowerBoundSolver) combos(progressOnly bool) []ActionCombo {
	if progressOnly {
		return s.progressCombos
	}
	return s.fullCombos
}

func (s *StepLowerBoundSolver) solve(key stepLbKey) int {
	if id, ok := s.memoID[key]; ok {
		return id
	}
	base := craftsim.State{Durability: key.durability, Effects: key.effects, CP: int32(s.settings.MaxCP)}

	s.builder.PushSlice([]Point{{Progress: 0, Quality: 0}})
	if key.budget > 0 {
		for _, c := range s.combos(key.progressOnly) {
			if c.Steps() > key.budget {
				continue
			}
			child, err := UseActionCombo(base, c, craftsim.ConditionNormal, s.settings)
			if err != nil {
				continue
			}
			dProgress := child.Progress
			dQuality := child.Quality
			if child.IsTerminal(s.settings) || key.budget-c.Steps() == 0 {
				s.builder.PushSlice([]Point{{Progress: dProgress, Quality: dQuality}})
			} else {
				childKey := s.reduce(child, key.budget-c.Steps(), key.progressOnly)
				childID := s.solve(childKey)
				s.builder.PushID(childID)
				s.builder.Offset(dProgress, dQuality)
			}
			s.builder.Merge()
			if s.builder.IsMax() {
				break
			}
		}
	}

	id := s.builder.Save()
	s.builder.Pop()
	s.memoID[key] = id
	return id
}
