package solver

import "github.com/gitrdm/raphael-go/pkg/craftsim"

// insertionKey is the "discriminating" half of a search node's effects:
// fields that describe qualitatively distinct modes (which two-step touch
// combo is open, whether quality actions are forbidden) rather than a
// quantity that can dominate another. Nodes with different insertionKeys
// are incomparable and are never pruned against each other.
type insertionKey struct {
	progress uint32
	combo    craftsim.Combo
	specialQ craftsim.SpecialQualityState
}

// insertionValue is the "comparable" half: everything that can be said to
// be at-least-as-good as another node's corresponding field. Higher CP,
// higher durability, higher quality, higher unreliableQuality, and more
// remaining duration on every timed buff all dominate a lesser value,
// all else equal.
type insertionValue struct {
	cp                int32
	durability        int16
	quality           uint32
	unreliableQuality uint32
	effects           craftsim.Effects
}

func dominatesValue(a, b insertionValue) bool {
	if a.cp < b.cp || a.durability < b.durability || a.quality < b.quality || a.unreliableQuality < b.unreliableQuality {
		return false
	}
	ae, be := a.effects, b.effects
	if ae.InnerQuiet() < be.InnerQuiet() ||
		ae.WasteNot() < be.WasteNot() ||
		ae.Innovation() < be.Innovation() ||
		ae.Veneration() < be.Veneration() ||
		ae.GreatStrides() < be.GreatStrides() ||
		ae.MuscleMemory() < be.MuscleMemory() ||
		ae.Manipulation() < be.Manipulation() {
		return false
	}
	if boolLess(ae.TrainedPerfectionAvailable(), be.TrainedPerfectionAvailable()) ||
		boolLess(ae.HeartAndSoulAvailable(), be.HeartAndSoulAvailable()) ||
		boolLess(ae.QuickInnovationAvailable(), be.QuickInnovationAvailable()) ||
		boolLess(ae.TrainedPerfectionActive(), be.TrainedPerfectionActive()) ||
		boolLess(ae.HeartAndSoulActive(), be.HeartAndSoulActive()) {
		return false
	}
	strictlyGreater := a.cp > b.cp || a.durability > b.durability || a.quality > b.quality ||
		a.unreliableQuality > b.unreliableQuality ||
		ae.InnerQuiet() > be.InnerQuiet() || ae.WasteNot() > be.WasteNot() ||
		ae.Innovation() > be.Innovation() || ae.Veneration() > be.Veneration() ||
		ae.GreatStrides() > be.GreatStrides() || ae.MuscleMemory() > be.MuscleMemory() ||
		ae.Manipulation() > be.Manipulation()
	return strictlyGreater || a != b
}

func boolLess(a, b bool) bool { return !a && b }

// InsertionFront is the MacroSolver's per-key Pareto filter: a bucketed
// set of non-dominated insertionValues, keyed by insertionKey. A leaf
// that grows past a threshold would, in the source design, split itself
// on cp into two child leaves; this port keeps a single flat bucket per
// key instead (a deliberate simplification — see DESIGN.md), trading
// leaf-tree lookup speed for a much smaller implementation while
// preserving the same non-domination invariant.
type InsertionFront struct {
	buckets map[insertionKey][]insertionValue
}

// NewInsertionFront returns an empty front.
func NewInsertionFront() *InsertionFront {
	return &InsertionFront{buckets: make(map[insertionKey][]insertionValue)}
}

// Insert adds v under key if it is neither equal to nor dominated by an existing entry,
// and removes any existing entries v dominates. Returns true if v was
// kept.
func (f *InsertionFront) Insert(key insertionKey, v insertionValue) bool {
	bucket := f.buckets[key]
	for _, existing := range bucket {
		if existing == v {
			return false
		}
		if dominatesValue(existing, v) {
			return false
		}
	}
	kept := bucket[:0]
	for _, existing := range bucket {
		if !dominatesValue(v, existing) {
			kept = append(kept, existing)
		}
	}
	f.buckets[key] = append(kept, v)
	return true
}

// Len reports how many nodes currently survive across every bucket.
func (f *InsertionFront) Len() int {
	n := 0
	for _, b := range f.buckets {
		n += len(b)
	}
	return n
}
