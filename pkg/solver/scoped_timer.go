package solver

import (
	"time"

	"github.com/rs/zerolog"
)

// ScopedTimer logs the elapsed wall-clock time of a phase of the solve
// (the finish-solver warmup, the fast lower bound, the outer search) at
// debug level when it is stopped. Construct with newScopedTimer at the
// start of a phase and call Stop when it ends; forgetting to call Stop
// simply means nothing is logged, there is no finalizer magic.
type ScopedTimer struct {
	log   zerolog.Logger
	name  string
	start time.Time
}

func newScopedTimer(log zerolog.Logger, name string) *ScopedTimer {
	return &ScopedTimer{log: log, name: name, start: time.Now()}
}

// Stop logs the elapsed duration since the timer was created.
func (t *ScopedTimer) Stop() {
	t.log.Debug().
		Str("phase", t.name).
		Dur("elapsed", time.Since(t.start)).
		Msg("phase complete")
}
