package solver

import "container/heap"

// SearchScore is the composite, lexicographically-compared priority the
// outer search pops batches by: higher quality upper bound first, then
// fewer steps, then shorter duration, then (as a tiebreak favoring nodes
// closer to the seed) fewer current steps and less current duration.
type SearchScore struct {
	QualityUpperBound uint32
	StepsLowerBound   uint8
	DurationLowerBound uint32
	CurrentSteps      uint32
	CurrentDuration   uint32
}

// MaxSearchScore sorts ahead of every other score; used to seed the
// initial state so it is always the first batch popped.
var MaxSearchScore = SearchScore{
	QualityUpperBound: ^uint32(0),
}

// Less reports whether a should be popped before b: a has strictly higher
// priority. Implemented by hand, field by field, rather than relying on
// any generic comparator so the exact tie-break order in the design stays
// explicit and auditable.
func (a SearchScore) Less(b SearchScore) bool {
	if a.QualityUpperBound != b.QualityUpperBound {
		return a.QualityUpperBound > b.QualityUpperBound
	}
	if a.StepsLowerBound != b.StepsLowerBound {
		return a.StepsLowerBound < b.StepsLowerBound
	}
	if a.DurationLowerBound != b.DurationLowerBound {
		return a.DurationLowerBound < b.DurationLowerBound
	}
	if a.CurrentSteps != b.CurrentSteps {
		return a.CurrentSteps < b.CurrentSteps
	}
	return a.CurrentDuration < b.CurrentDuration
}

// searchQueueItem pairs a score with the backtracking arena index of the
// node it was computed for.
type searchQueueItem struct {
	score SearchScore
	node  int
}

// searchQueue is a binary max-heap over SearchScore, giving O(log n)
// push/pop of the single highest-priority node. The source's
// BTreeMap<SearchScore, Vec<Node>> batches same-scored nodes together;
// this port pops one node at a time instead, which is simpler and, since
// SearchScore collisions are rare once CurrentDuration is in the tuple,
// does not change which node is explored next.
type searchQueue struct {
	items []searchQueueItem
}

func newSearchQueue() *searchQueue {
	q := &searchQueue{}
	heap.Init(q)
	return q
}

func (q *searchQueue) PushNode(score SearchScore, node int) {
	heap.Push(q, searchQueueItem{score: score, node: node})
}

func (q *searchQueue) PopBest() (int, bool) {
	if q.Len() == 0 {
		return 0, false
	}
	item := heap.Pop(q).(searchQueueItem)
	return item.node, true
}

func (q *searchQueue) Len() int { return len(q.items) }
func (q *searchQueue) Less(i, j int) bool {
	return q.items[i].score.Less(q.items[j].score)
}
func (q *searchQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *searchQueue) Push(x any)    { q.items = append(q.items, x.(searchQueueItem)) }
func (q *searchQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}
