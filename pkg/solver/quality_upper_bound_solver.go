package solver

import "github.com/gitrdm/raphael-go/pkg/craftsim"

// qubKey is ReducedState (QualityUbSolver): durability is folded into cp
// via durabilityPrice rather than kept as its own axis, GreatStrides is
// boolean, Combo is boolean (SynthesisBegin or not), and unreliableQuality
// is coarsened to a small bucket.
type qubKey struct {
	cp               int32
	effects          craftsim.Effects
	unreliableBucket uint8
}

// QualityUpperBoundSolver computes an admissible upper bound on the
// Quality attainable from a state, given that Progress must still be
// fully completed. The bound collapses durability into CP at a fixed
// exchange rate (durabilityPrice, the cheapest CP-per-5-durability
// available from the allowed repair actions) so the DFS only has to
// memoize on a single resource axis plus the quality-relevant effects.
type QualityUpperBoundSolver struct {
	settings        craftsim.Settings
	durabilityPrice uint32
	combos          []ActionCombo

	builder     *ParetoFrontBuilder
	memoID      map[qubKey]int
	zeroFrontID int
	iqLUT       [11]uint32
}

// InnerQuietQualityCeiling returns the QualityModifier a quality action
// would see at the given InnerQuiet level with GreatStrides and
// Innovation both inactive, from the solver's precomputed LUT.
func (q *QualityUpperBoundSolver) InnerQuietQualityCeiling(iq uint8) uint32 {
	if iq > 10 {
		iq = 10
	}
	return q.iqLUT[iq]
}

// NewQualityUpperBoundSolver builds a solver for settings, computing
// durabilityPrice once from whichever of MasterMend/Manipulation/
// ImmaculateMend are allowed.
func NewQualityUpperBoundSolver(settings craftsim.Settings) *QualityUpperBoundSolver {
	q := &QualityUpperBoundSolver{
		settings:        settings,
		durabilityPrice: durabilityPrice(settings),
		combos:          FullCombos(settings.AllowedActions),
		builder:         NewParetoFrontBuilder(settings.MaxProgress, settings.MaxQuality),
		memoID:          make(map[qubKey]int),
		iqLUT:           innerQuietQualityLUT(),
	}
	q.builder.PushSlice([]Point{{Progress: 0, Quality: 0}})
	q.zeroFrontID = q.builder.Save()
	q.builder.Pop()
	return q
}

// durabilityPrice returns the minimum CP needed to restore 5 durability,
// amortized across whichever repair actions settings allows. A sentinel
// of 999 means none are allowed: durability effectively cannot be
// converted to CP, so the bound treats it as unaffordable rather than
// dividing by zero.
func durabilityPrice(settings craftsim.Settings) uint32 {
	const sentinel = 999
	best := uint32(sentinel)
	if settings.AllowedActions.Has(craftsim.ActionMasterMend) {
		if p := ceilDiv(uint32(craftsim.ActionMasterMend.BaseCPCost())*5, 30); p < best {
			best = p
		}
	}
	if settings.AllowedActions.Has(craftsim.ActionManipulation) {
		if p := ceilDiv(uint32(craftsim.ActionManipulation.BaseCPCost())*5, 40); p < best {
			best = p
		}
	}
	if settings.AllowedActions.Has(craftsim.ActionImmaculateMend) && settings.MaxDurability > 0 {
		if p := ceilDiv(uint32(craftsim.ActionImmaculateMend.BaseCPCost())*5, uint32(settings.MaxDurability)); p < best {
			best = p
		}
	}
	return best
}

func ceilDiv(a, b uint32) uint32 {
	if b == 0 {
		return a
	}
	return (a + b - 1) / b
}

// QualityUpperBound returns an admissible upper bound on the Quality
// attainable from st, given the remaining Progress still owed.
func (q *QualityUpperBoundSolver) QualityUpperBound(st craftsim.State) uint32 {
	if st.Effects.Combo() == craftsim.ComboSynthesisBegin {
		// A fresh state can still reach for Reflect/TrainedEye; being
		// maximally generous here stays admissible and avoids running the
		// DFS on the single most expensive (highest fan-out) state.
		return q.settings.MaxQuality
	}

	remaining := uint32(0)
	if q.settings.MaxProgress > st.Progress {
		remaining = q.settings.MaxProgress - st.Progress
	}

	id := q.solve(q.reduce(st), make(map[qubKey]bool))
	front := q.builder.Retrieve(id)
	for _, p := range front {
		if p.Progress >= remaining {
			return clampU32(st.Quality+p.Quality, q.settings.MaxQuality)
		}
	}
	return st.Quality
}

func (q *QualityUpperBoundSolver) reduce(st craftsim.State) qubKey {
	e := st.Effects
	gs := uint8(0)
	if e.GreatStrides() != 0 {
		gs = 3
	}
	e = e.WithGreatStrides(gs)
	if e.Combo() != craftsim.ComboSynthesisBegin {
		e = e.WithCombo(craftsim.ComboNone)
	}

	latent := uint32(st.Durability/5) * q.durabilityPrice
	latent += uint32(e.Manipulation()) * q.durabilityPrice
	if e.TrainedPerfectionAvailable() {
		latent += 2 * q.durabilityPrice
	}
	effectiveCP := st.CP + int32(latent)

	bucket := uint8(0)
	if q.settings.BaseQuality > 0 {
		b := ceilDiv(st.UnreliableQuality, 2*q.settings.BaseQuality)
		if b > 255 {
			b = 255
		}
		bucket = uint8(b)
	}

	return qubKey{cp: effectiveCP, effects: e, unreliableBucket: bucket}
}

func (q *QualityUpperBoundSolver) solve(key qubKey, visiting map[qubKey]bool) int {
	if id, ok := q.memoID[key]; ok {
		return id
	}
	if visiting[key] {
		return q.zeroFrontID
	}
	visiting[key] = true
	defer delete(visiting, key)

	// Reconstruct a representative State for this reduced key so the
	// simulator can be driven forward; effectiveCP stands in for CP since
	// durability has already been folded into it.
	base := craftsim.State{CP: key.cp, Durability: int16(q.settings.MaxDurability), Effects: key.effects}

	q.builder.PushSlice([]Point{{Progress: 0, Quality: 0}})
	for _, c := range q.combos {
		child, err := UseActionCombo(base, c, craftsim.ConditionNormal, q.settings)
		if err != nil {
			continue
		}
		dProgress := child.Progress
		dQuality := child.Quality
		if child.IsTerminal(q.settings) {
			q.builder.PushSlice([]Point{{Progress: dProgress, Quality: dQuality}})
		} else {
			childKey := q.reduce(child)
			childID := q.solve(childKey, visiting)
			q.builder.PushID(childID)
			q.builder.Offset(dProgress, dQuality)
		}
		q.builder.Merge()
		if q.builder.IsMax() {
			break
		}
	}

	id := q.builder.Save()
	q.builder.Pop()
	q.memoID[key] = id
	return id
}

func clampU32(v, max uint32) uint32 {
	if v > max {
		return max
	}
	return v
}

// QualityUbSolverShard is FinishSolverShard's counterpart: it reads the
// parent's memoID table read-only and records the reduced keys it has not
// seen in a private map. It computes no fronts itself (its builder is not
// used); MergeInto runs the DFS for those keys against the parent after
// the sharded phase.
type QualityUbSolverShard struct {
	parent  *QualityUpperBoundSolver
	builder *ParetoFrontBuilder
	ids     map[qubKey]int
}

// NewQualityUbSolverShard returns a shard borrowing parent's settings and
// combo vocabulary.
func NewQualityUbSolverShard(parent *QualityUpperBoundSolver) *QualityUbSolverShard {
	return &QualityUbSolverShard{
		parent:  parent,
		builder: NewParetoFrontBuilder(parent.settings.MaxProgress, parent.settings.MaxQuality),
		ids:     make(map[qubKey]int),
	}
}

// Warm records the reduced key for st in this shard's private map, unless
// the parent or this shard already has it. It runs no DFS and never
// touches the parent's memo table.
func (sh *QualityUbSolverShard) Warm(st craftsim.State) {
	key := sh.parent.reduce(st)
	if _, ok := sh.parent.memoID[key]; ok {
		return
	}
	if _, ok := sh.ids[key]; ok {
		return
	}
	// Only the key is kept, so the shard never mutates shared state; the
	// front for it is built against the parent's arena in MergeInto.
	sh.ids[key] = 0 // presence marks "seen"; MergeInto recomputes against parent.
}

// MergeInto replays every key this shard observed against dst's own
// builder/memo, so the expensive DFS work only ever runs once per key
// across the whole precomputation phase, serialized through dst.
func (sh *QualityUbSolverShard) MergeInto(dst *QualityUpperBoundSolver) {
	for key := range sh.ids {
		if _, ok := dst.memoID[key]; ok {
			continue
		}
		dst.solve(key, make(map[qubKey]bool))
	}
}
