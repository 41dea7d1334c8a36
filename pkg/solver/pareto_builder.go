package solver

import "sort"

// Point is a single (progress, quality) objective pair on a Pareto front.
type Point struct {
	Progress uint32
	Quality  uint32
}

type frontRange struct {
	start, end int
}

// ParetoFrontBuilder is a reusable, arena-backed builder for 2-objective
// Pareto fronts over (progress, quality). It never frees arena memory
// mid-build: fronts popped by Merge simply stop being referenced by the
// stack, which keeps every operation append-only and avoids the
// allocation churn a fresh slice per recursive call would cost the
// heuristic solvers, which call this thousands of times per solve.
type ParetoFrontBuilder struct {
	arena []Point
	stack []frontRange
	saved map[int][]Point
	nextID int

	maxProgress uint32
	maxQuality  uint32
}

// NewParetoFrontBuilder returns a builder that clamps every merged front
// to (maxProgress, maxQuality).
func NewParetoFrontBuilder(maxProgress, maxQuality uint32) *ParetoFrontBuilder {
	return &ParetoFrontBuilder{
		saved:       make(map[int][]Point),
		maxProgress: maxProgress,
		maxQuality:  maxQuality,
	}
}

// PushEmpty pushes a new, empty front on top of the stack.
func (b *ParetoFrontBuilder) PushEmpty() {
	b.stack = append(b.stack, frontRange{start: len(b.arena), end: len(b.arena)})
}

// PushSlice appends points as a new top-of-stack front. points need not be
// pre-sorted or non-dominated; callers that want that invariant should
// route through Merge.
func (b *ParetoFrontBuilder) PushSlice(points []Point) {
	start := len(b.arena)
	b.arena = append(b.arena, points...)
	b.stack = append(b.stack, frontRange{start: start, end: len(b.arena)})
}

// PushID re-pushes a previously Save-d front by id.
func (b *ParetoFrontBuilder) PushID(id int) {
	b.PushSlice(b.saved[id])
}

// PeekMut returns the top front as a slice into the arena: mutating it in
// place (e.g. via Offset) is visible to subsequent Merge/Save calls.
func (b *ParetoFrontBuilder) PeekMut() []Point {
	top := b.stack[len(b.stack)-1]
	return b.arena[top.start:top.end]
}

// Offset adds (dProgress, dQuality) to every point of the top front,
// saturating and clamping to (maxProgress, maxQuality).
func (b *ParetoFrontBuilder) Offset(dProgress, dQuality uint32) {
	top := b.PeekMut()
	for i := range top {
		top[i].Progress = clampAddU32(top[i].Progress, dProgress, b.maxProgress)
		top[i].Quality = clampAddU32(top[i].Quality, dQuality, b.maxQuality)
	}
}

// Pop removes and discards the top front.
func (b *ParetoFrontBuilder) Pop() {
	b.stack = b.stack[:len(b.stack)-1]
}

// Merge pops the top two fronts and pushes their Pareto union: a strictly
// non-dominated sequence, ascending in progress and descending in quality, clamped
// to (maxProgress, maxQuality). When more than two fronts need combining,
// callers Merge pairwise; for wide fan-outs a caller should prefer
// repeated pairwise merges of the smallest fronts first to approximate
// the O(n log n) multi-way merge described in the design.
func (b *ParetoFrontBuilder) Merge() {
	n := len(b.stack)
	top := b.stack[n-1]
	second := b.stack[n-2]

	// Copy out before appending: further arena growth may reallocate the
	// backing array, invalidating the slices above.
	a := append([]Point(nil), b.arena[second.start:second.end]...)
	c := append([]Point(nil), b.arena[top.start:top.end]...)

	merged := skyline(append(a, c...))
	for i := range merged {
		merged[i].Progress = min32(merged[i].Progress, b.maxProgress)
		merged[i].Quality = min32(merged[i].Quality, b.maxQuality)
	}
	merged = skyline(merged)

	b.stack = b.stack[:n-2]
	start := len(b.arena)
	b.arena = append(b.arena, merged...)
	b.stack = append(b.stack, frontRange{start: start, end: len(b.arena)})
}

// IsMax reports whether the top front already contains the point
// (maxProgress, maxQuality), letting a caller short-circuit further
// expansion of a state: nothing can improve on an already-maxed front.
func (b *ParetoFrontBuilder) IsMax() bool {
	top := b.PeekMut()
	if len(top) == 0 {
		return false
	}
	last := top[len(top)-1]
	return last.Progress >= b.maxProgress && last.Quality >= b.maxQuality
}

// Save copies the top front into long-term storage and returns an id for
// later PushID/Retrieve, without popping the stack.
func (b *ParetoFrontBuilder) Save() int {
	id := b.nextID
	b.nextID++
	b.saved[id] = append([]Point(nil), b.PeekMut()...)
	return id
}

// Retrieve returns a previously Save-d front by id.
func (b *ParetoFrontBuilder) Retrieve(id int) []Point {
	return b.saved[id]
}

// QualityAt returns the quality of the first point on the top front whose
// progress is at least minProgress, and whether such a point exists. The
// top front must be ascending in progress (true of every front this
// builder ever produces via Merge).
func (b *ParetoFrontBuilder) QualityAt(minProgress uint32) (uint32, bool) {
	top := b.PeekMut()
	for _, p := range top {
		if p.Progress >= minProgress {
			return p.Quality, true
		}
	}
	return 0, false
}

// skyline reduces points to the non-dominated subset, sorted ascending by
// Progress (and, for equal Progress, ascending Quality). A point is
// dominated when another point has both Progress and Quality at least as
// large, with at least one strictly larger.
func skyline(points []Point) []Point {
	sort.Slice(points, func(i, j int) bool {
		if points[i].Progress != points[j].Progress {
			return points[i].Progress > points[j].Progress
		}
		return points[i].Quality > points[j].Quality
	})
	out := make([]Point, 0, len(points))
	bestQuality := uint32(0)
	first := true
	for _, p := range points {
		if first || p.Quality > bestQuality {
			out = append(out, p)
			bestQuality = p.Quality
			first = false
		}
	}
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

func clampAddU32(v, delta, max uint32) uint32 {
	sum := v + delta
	if sum > max || sum < v {
		return max
	}
	return sum
}

func min32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
