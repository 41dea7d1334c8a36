package solver

import "github.com/gitrdm/raphael-go/pkg/craftsim"

// finishKey is ReducedState (FinishSolver): durability, cp, and effects
// with every quality-only field stripped, since whether Progress can
// still be completed never depends on InnerQuiet, Innovation or
// GreatStrides.
type finishKey struct {
	durability int16
	cp         int32
	effects    craftsim.Effects
}

// FinishSolver answers, for any reachable State, whether Progress can
// still be driven to completion, memoizing the maximum additional
// Progress obtainable per ReducedState so repeated queries against
// structurally identical states are O(1).
type FinishSolver struct {
	settings craftsim.Settings
	combos   []ActionCombo
	memo     map[finishKey]uint32
}

// NewFinishSolver builds a solver restricted to settings' allowed
// progress-sustaining actions.
func NewFinishSolver(settings craftsim.Settings) *FinishSolver {
	return &FinishSolver{
		settings: settings,
		combos:   ProgressOnlyCombos(settings.AllowedActions),
		memo:     make(map[finishKey]uint32),
	}
}

func (fs *FinishSolver) reduce(st craftsim.State) finishKey {
	return finishKey{
		durability: st.Durability,
		cp:         st.CP,
		effects:    st.Effects.StripQualityEffects(),
	}
}

// CanFinish reports whether some sequence of progress-sustaining actions
// drives st to Progress >= MaxProgress before failing.
func (fs *FinishSolver) CanFinish(st craftsim.State) bool {
	return st.Progress+fs.MaxAdditionalProgress(st) >= fs.settings.MaxProgress
}

// MaxAdditionalProgress returns the most Progress obtainable from st using
// only progress-sustaining actions, memoized by ReducedState. The search
// stops early once that amount reaches MaxProgress.
func (fs *FinishSolver) MaxAdditionalProgress(st craftsim.State) uint32 {
	return fs.solve(st, make(map[finishKey]bool))
}

func (fs *FinishSolver) solve(st craftsim.State, visiting map[finishKey]bool) uint32 {
	key := fs.reduce(st)
	if v, ok := fs.memo[key]; ok {
		return v
	}
	// A handful of actions (TricksOfTheTrade's CP restore) can, in the
	// degenerate case of an otherwise-idle state, map back onto the exact
	// same ReducedState. Treat a re-entrant visit as a dead end rather
	// than recursing forever.
	if visiting[key] {
		return 0
	}
	visiting[key] = true
	defer delete(visiting, key)

	var best uint32
	for _, c := range fs.combos {
		child, err := UseActionCombo(st, c, craftsim.ConditionNormal, fs.settings)
		if err != nil {
			continue
		}
		gained := child.Progress - st.Progress
		var total uint32
		if child.IsTerminal(fs.settings) {
			total = gained
		} else {
			total = gained + fs.solve(child, visiting)
		}
		if total > best {
			best = total
		}
		if best >= fs.settings.MaxProgress {
			break
		}
	}
	fs.memo[key] = best
	return best
}

// FinishSolverShard reads a parent FinishSolver's memo table read-only and
// accumulates new entries into a private overflow map, so a pool of
// goroutines can precompute disjoint batches of reduced states without any
// lock on the hot path. MergeInto folds the overflow back into the
// parent's table once every shard has finished.
type FinishSolverShard struct {
	parent   *FinishSolver
	overflow map[finishKey]uint32
}

// NewFinishSolverShard returns a shard borrowing parent's memo table.
func NewFinishSolverShard(parent *FinishSolver) *FinishSolverShard {
	return &FinishSolverShard{parent: parent, overflow: make(map[finishKey]uint32)}
}

// CanFinish behaves like FinishSolver.CanFinish but only ever writes into
// this shard's private overflow.
func (sh *FinishSolverShard) CanFinish(st craftsim.State) bool {
	return st.Progress+sh.maxAdditionalProgress(st) >= sh.parent.settings.MaxProgress
}

// Warm populates this shard's private overflow for st without reporting
// anything back to the caller, for use by a precomputation pool that
// only cares about the memoization side effect.
func (sh *FinishSolverShard) Warm(st craftsim.State) {
	sh.maxAdditionalProgress(st)
}

func (sh *FinishSolverShard) maxAdditionalProgress(st craftsim.State) uint32 {
	key := sh.parent.reduce(st)
	if v, ok := sh.parent.memo[key]; ok {
		return v
	}
	if v, ok := sh.overflow[key]; ok {
		return v
	}
	visiting := map[finishKey]bool{key: true}
	best := uint32(0)
	for _, c := range sh.parent.combos {
		child, err := UseActionCombo(st, c, craftsim.ConditionNormal, sh.parent.settings)
		if err != nil {
			continue
		}
		gained := child.Progress - st.Progress
		childKey := sh.parent.reduce(child)
		var total uint32
		switch {
		case child.IsTerminal(sh.parent.settings):
			total = gained
		case visiting[childKey]:
			total = gained
		default:
			total = gained + sh.maxAdditionalProgress(child)
		}
		if total > best {
			best = total
		}
		if best >= sh.parent.settings.MaxProgress {
			break
		}
	}
	sh.overflow[key] = best
	return best
}

// MergeInto folds this shard's overflow into dst's memo table. Callers
// must not invoke this concurrently with another MergeInto on the same
// destination.
func (sh *FinishSolverShard) MergeInto(dst *FinishSolver) {
	for k, v := range sh.overflow {
		if _, ok := dst.memo[k]; !ok {
			dst.memo[k] = v
		}
	}
}
