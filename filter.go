package kaisou

import (
	"reflect"
	"unsafe"
)

// queryCache tracks the archetypes matching a component mask. It rescans only
// when the world has created new archetypes since the last scan.
type queryCache struct {
	world            *World
	matchingArches   []*archetype
	cachedEntities   []Entity
	mask             bitmask256
	archetypeVersion uint32
	entitiesVersion  uint32
	entitiesValid    bool
}

func newQueryCache(w *World, mask bitmask256) queryCache {
	return queryCache{world: w, mask: mask}
}

// IsStale reports whether archetypes were added after the last scan.
func (q *queryCache) IsStale() bool {
	return q.archetypeVersion != q.world.archetypes.archetypeVersion
}

func (q *queryCache) updateMatching() {
	q.matchingArches = q.matchingArches[:0]
	for _, a := range q.world.archetypes.archetypes {
		if a.mask.contains(q.mask) {
			q.matchingArches = append(q.matchingArches, a)
		}
	}
	q.archetypeVersion = q.world.archetypes.archetypeVersion
	q.entitiesValid = false
}

// Len returns the number of entities currently matching.
func (q *queryCache) Len() int {
	if q.IsStale() {
		q.updateMatching()
	}
	n := 0
	for _, a := range q.matchingArches {
		n += a.size
	}
	return n
}

// Entities returns every matching entity. The slice is owned by the cache and
// is rebuilt after the next structural change; copy it to keep it.
func (q *queryCache) Entities() []Entity {
	if q.IsStale() {
		q.updateMatching()
	}
	if q.entitiesValid && q.entitiesVersion == q.world.mutationVersion {
		return q.cachedEntities
	}
	q.cachedEntities = q.cachedEntities[:0]
	for _, a := range q.matchingArches {
		for _, c := range a.chunks {
			q.cachedEntities = append(q.cachedEntities, c.entityIDs[:c.size]...)
		}
	}
	q.entitiesVersion = q.world.mutationVersion
	q.entitiesValid = true
	return q.cachedEntities
}

// Filter iterates every entity that has a T, chunk by chunk.
//
//	f := kaisou.NewFilter[Position](w)
//	for f.Next() {
//	    pos := f.Get()
//	    _ = f.Entity()
//	}
//
// Structural changes during iteration are not supported; collect entities
// first (see Entities) when the loop body adds or removes components.
type Filter[T any] struct {
	queryCache
	curChunk    *chunk
	curArch     *archetype
	curMatchIdx int
	curChunkIdx int
	curIdx      int
	compID      uint8
}

// NewFilter returns a Filter over entities carrying a T.
func NewFilter[T any](w *World) *Filter[T] {
	id := w.getCompTypeID(reflect.TypeFor[T]())
	var m bitmask256
	m.set(id)
	f := &Filter[T]{queryCache: newQueryCache(w, m), compID: id}
	f.updateMatching()
	f.Reset()
	return f
}

// Reset rewinds the filter, picking up archetypes created since the last run.
func (f *Filter[T]) Reset() {
	if f.IsStale() {
		f.updateMatching()
	}
	f.curMatchIdx = -1
	f.curChunkIdx = 0
	f.curIdx = -1
	f.curArch = nil
	f.curChunk = nil
}

// Next advances to the next matching entity and reports whether there is one.
func (f *Filter[T]) Next() bool {
	if f.curChunk != nil {
		f.curIdx++
		if f.curIdx < f.curChunk.size {
			return true
		}
		f.curChunkIdx++
	}
	for {
		if f.curArch != nil && f.curChunkIdx < len(f.curArch.chunks) {
			c := f.curArch.chunks[f.curChunkIdx]
			if c.size > 0 {
				f.curChunk = c
				f.curIdx = 0
				return true
			}
			f.curChunkIdx++
			continue
		}
		f.curMatchIdx++
		if f.curMatchIdx >= len(f.matchingArches) {
			f.curChunk = nil
			return false
		}
		f.curArch = f.matchingArches[f.curMatchIdx]
		f.curChunkIdx = 0
	}
}

// Entity returns the current entity. Only valid after Next returned true.
func (f *Filter[T]) Entity() Entity {
	return f.curChunk.entityIDs[f.curIdx]
}

// Get returns the current entity's T. Only valid after Next returned true.
func (f *Filter[T]) Get() *T {
	return (*T)(unsafe.Add(f.curChunk.compPointers[f.compID], uintptr(f.curIdx)*f.curArch.compSizes[f.compID]))
}
