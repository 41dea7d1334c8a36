package solver

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtomicFlag_StartsUnset(t *testing.T) {
	f := NewAtomicFlag()
	assert.False(t, f.IsSet())
}

func TestAtomicFlag_SetIsObservedAfterward(t *testing.T) {
	f := NewAtomicFlag()
	f.Set()
	assert.True(t, f.IsSet())
}

func TestAtomicFlag_SetIsIdempotent(t *testing.T) {
	f := NewAtomicFlag()
	f.Set()
	f.Set()
	assert.True(t, f.IsSet())
}

func TestAtomicFlag_ConcurrentSetIsRaceFree(t *testing.T) {
	f := NewAtomicFlag()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Set()
		}()
	}
	wg.Wait()
	assert.True(t, f.IsSet())
}
