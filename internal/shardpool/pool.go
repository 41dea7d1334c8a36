// Package shardpool fans a batch of precomputation work out across a
// fixed number of goroutines, each warming its own private shard, then
// merges every shard back into a shared target once all of them have
// finished. It is a stripped-down sibling of the teacher's
// StaticWorkerPool: no dynamic rescaling, no statistics collection, no
// deadlock detection, and no shared task queue — those concerns only
// pay for themselves in a long-lived service fed by an unpredictable
// request stream. The shard precomputation phase this package drives is
// a single bounded burst of work, known in full up front, with a fixed
// number of independent partitions, so a worker-per-shard split serves
// it with far less machinery.
package shardpool

import (
	"context"
	"runtime"
	"sync"
)

// RunShards partitions states round-robin across workers goroutines, each
// of which owns exactly one private shard for its whole lifetime and
// warms it serially over its own slice of states, then passes every
// shard to merge in a fixed (shard) order so repeated runs over the
// same states are deterministic. newShard must return an independent
// shard value each call: workers never share one.
//
// Each worker goroutine is the sole caller of warm for its shard, so
// warm never needs to be goroutine-safe against concurrent calls on the
// same shard — only against calls on distinct shards, which touch
// disjoint memory by construction. merge runs only after every worker
// has exited, so it never needs its own locking either.
//
// A shared channel-fed pool would not give this guarantee: two states
// assigned the "same" shard index could still be picked up by two
// different idle workers and warmed concurrently. Dedicating one
// goroutine per shard avoids that race entirely.
func RunShards[S any, Sh any](ctx context.Context, workers int, states []S, newShard func() Sh, warm func(Sh, S), merge func(Sh)) error {
	if len(states) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(states) {
		workers = len(states)
	}

	shards := make([]Sh, workers)
	for i := range shards {
		shards[i] = newShard()
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			shard := shards[w]
			for i := w; i < len(states); i += workers {
				select {
				case <-ctx.Done():
					return
				default:
				}
				warm(shard, states[i])
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	for _, shard := range shards {
		merge(shard)
	}
	return nil
}
