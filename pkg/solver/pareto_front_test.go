package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitrdm/raphael-go/pkg/craftsim"
)

func TestInsertionFront_DominatedValueIsRejected(t *testing.T) {
	f := NewInsertionFront()
	key := insertionKey{progress: 100}
	strong := insertionValue{cp: 100, durability: 40, quality: 500, unreliableQuality: 500}
	weak := insertionValue{cp: 50, durability: 20, quality: 250, unreliableQuality: 250}

	assert.True(t, f.Insert(key, strong))
	assert.False(t, f.Insert(key, weak), "a value dominated on every axis must be rejected")
	assert.Equal(t, 1, f.Len())
}

func TestInsertionFront_DominatingValueEvictsTheOldOne(t *testing.T) {
	f := NewInsertionFront()
	key := insertionKey{progress: 100}
	weak := insertionValue{cp: 50, durability: 20, quality: 250, unreliableQuality: 250}
	strong := insertionValue{cp: 100, durability: 40, quality: 500, unreliableQuality: 500}

	assert.True(t, f.Insert(key, weak))
	assert.True(t, f.Insert(key, strong))
	assert.Equal(t, 1, f.Len(), "the dominated entry must be evicted once a strictly better one arrives")
}

func TestInsertionFront_IncomparableValuesBothSurvive(t *testing.T) {
	f := NewInsertionFront()
	key := insertionKey{progress: 100}
	a := insertionValue{cp: 100, durability: 10, quality: 100, unreliableQuality: 100}
	b := insertionValue{cp: 10, durability: 100, quality: 100, unreliableQuality: 100}

	assert.True(t, f.Insert(key, a))
	assert.True(t, f.Insert(key, b))
	assert.Equal(t, 2, f.Len(), "neither value dominates the other on every axis, so both survive")
}

func TestInsertionFront_DifferentKeysNeverPruneEachOther(t *testing.T) {
	f := NewInsertionFront()
	strong := insertionValue{cp: 100, durability: 40, quality: 500, unreliableQuality: 500}
	weak := insertionValue{cp: 1, durability: 1, quality: 1, unreliableQuality: 1}

	assert.True(t, f.Insert(insertionKey{progress: 100}, strong))
	assert.True(t, f.Insert(insertionKey{progress: 50, combo: craftsim.ComboSynthesisBegin}, weak),
		"a distinct insertionKey is never comparable against another key's bucket")
	assert.Equal(t, 2, f.Len())
}

func TestInsertionFront_IdenticalValueIsRejectedAsDuplicate(t *testing.T) {
	f := NewInsertionFront()
	key := insertionKey{progress: 100}
	v := insertionValue{cp: 10, durability: 10, quality: 10, unreliableQuality: 10}

	assert.True(t, f.Insert(key, v))
	assert.False(t, f.Insert(key, v), "re-inserting an identical value should not grow the bucket")
	assert.Equal(t, 1, f.Len())
}
