package kaisou

import (
	"fmt"
	"reflect"
	"unsafe"
)

// MaxComponentTypes is the number of distinct component types one World can
// hold. Every hierarchy kind in use costs one of them.
const MaxComponentTypes = 256

// ChunkSize is the number of entities stored per archetype chunk.
const ChunkSize = 1024

// Entity is a generation-checked handle. The ID is recycled after removal; the
// Version changes on every reuse so stale handles stop validating.
//
// The zero Entity is never live and is used as the "no entity" value in
// hierarchy links.
type Entity struct {
	ID      uint32
	Version uint32
}

// NilEntity is the zero handle. It never refers to a live entity.
var NilEntity Entity

// IsZero reports whether e is the nil handle.
func (e Entity) IsZero() bool {
	return e.Version == 0
}

// String implements fmt.Stringer.
func (e Entity) String() string {
	if e.IsZero() {
		return "Entity(nil)"
	}
	return fmt.Sprintf("Entity(%d:v%d)", e.ID, e.Version)
}

// entityMeta locates a live entity inside the archetype storage.
type entityMeta struct {
	archetypeIndex int    // index in World.archetypes
	chunkIndex     int    // index in archetype.chunks
	index          int    // slot inside the chunk
	version        uint32 // 0 while the ID is free
}

// compSpec bundles a component type's ID, reflect.Type and size.
type compSpec struct {
	typ  reflect.Type
	size uintptr
	id   uint8
}

// chunk holds fixed-size storage for ChunkSize entities of one archetype.
type chunk struct {
	entityIDs    [ChunkSize]Entity
	compPointers [MaxComponentTypes]unsafe.Pointer
	size         int
}

// archetype holds storage for one unique component set.
type archetype struct {
	chunks    []*chunk
	compOrder []uint8
	compSizes [MaxComponentTypes]uintptr
	mask      bitmask256
	index     int
	size      int
}

type componentRegistry struct {
	compIDToType   [MaxComponentTypes]reflect.Type
	compTypeMap    map[reflect.Type]uint8
	compIDToSize   [MaxComponentTypes]uintptr
	nextCompTypeID uint16
}

type entityRegistry struct {
	freeIDs       []uint32
	metas         []entityMeta
	capacity      int
	nextEntityVer uint32
	live          int
}

type archetypeRegistry struct {
	maskToArcIndex   map[bitmask256]int
	archetypes       []*archetype
	archetypeVersion uint32 // bumped whenever an archetype is created
}

// World owns every entity and component. It is not safe for concurrent
// mutation; callers serialise writes themselves.
type World struct {
	resources       *Resources
	archetypes      archetypeRegistry
	entities        entityRegistry
	components      componentRegistry
	mutationVersion uint32 // bumped on every structural change
}

// NewWorld creates a World with room for initialCapacity entities before the
// first reallocation.
func NewWorld(initialCapacity int) *World {
	if initialCapacity < 0 {
		initialCapacity = 0
	}
	w := &World{
		resources: &Resources{},
		components: componentRegistry{
			compTypeMap: make(map[reflect.Type]uint8, 16),
		},
		entities: entityRegistry{
			capacity:      initialCapacity,
			freeIDs:       make([]uint32, initialCapacity),
			metas:         make([]entityMeta, initialCapacity),
			nextEntityVer: 1,
		},
		archetypes: archetypeRegistry{
			maskToArcIndex: make(map[bitmask256]int),
			archetypes:     make([]*archetype, 0, 16),
		},
	}
	for i := range w.entities.freeIDs {
		w.entities.freeIDs[i] = uint32(initialCapacity - 1 - i)
	}
	for i := range w.entities.metas {
		w.entities.metas[i] = deadMeta()
	}
	w.getOrCreateArchetype(bitmask256{}, nil)
	return w
}

func deadMeta() entityMeta {
	return entityMeta{archetypeIndex: -1, chunkIndex: -1, index: -1}
}

// Resources returns the world's resource store.
func (w *World) Resources() *Resources {
	return w.resources
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.entities.live
}

// IsValid reports whether e refers to a live entity of this world.
func (w *World) IsValid(e Entity) bool {
	if int(e.ID) >= len(w.entities.metas) {
		return false
	}
	meta := w.entities.metas[e.ID]
	return meta.version != 0 && meta.version == e.Version
}

// ClearEntities removes every entity while keeping archetypes and chunk
// capacity for reuse. All outstanding handles become stale.
func (w *World) ClearEntities() {
	for i := range w.entities.metas {
		w.entities.metas[i] = deadMeta()
	}
	w.entities.freeIDs = w.entities.freeIDs[:0]
	for i := w.entities.capacity - 1; i >= 0; i-- {
		w.entities.freeIDs = append(w.entities.freeIDs, uint32(i))
	}
	for _, a := range w.archetypes.archetypes {
		a.chunks = a.chunks[:0]
		a.size = 0
	}
	w.entities.live = 0
	w.mutationVersion++
}

// CreateEntity creates an entity with no components.
func (w *World) CreateEntity() Entity {
	return w.createEntity(w.archetypes.archetypes[0])
}

// CreateEntities creates count component-less entities.
func (w *World) CreateEntities(count int) []Entity {
	if count <= 0 {
		return nil
	}
	ents := make([]Entity, count)
	a := w.archetypes.archetypes[0]
	for i := range ents {
		ents[i] = w.createEntity(a)
	}
	return ents
}

// RemoveEntity destroys e. Stale handles are ignored.
func (w *World) RemoveEntity(e Entity) {
	if !w.IsValid(e) {
		return
	}
	meta := &w.entities.metas[e.ID]
	w.removeFromArchetype(w.archetypes.archetypes[meta.archetypeIndex], meta)
	*meta = deadMeta()
	w.entities.freeIDs = append(w.entities.freeIDs, e.ID)
	w.entities.live--
	w.mutationVersion++
}

// RemoveEntities destroys every entity in ents.
func (w *World) RemoveEntities(ents []Entity) {
	for _, e := range ents {
		w.RemoveEntity(e)
	}
}

// getCompTypeID registers t on first use and returns its component ID.
func (w *World) getCompTypeID(t reflect.Type) uint8 {
	if id, ok := w.components.compTypeMap[t]; ok {
		return id
	}
	if w.components.nextCompTypeID >= MaxComponentTypes {
		panic(fmt.Sprintf("kaisou: cannot register %s: component type limit (%d) reached", t, MaxComponentTypes))
	}
	id := uint8(w.components.nextCompTypeID)
	w.components.compTypeMap[t] = id
	w.components.compIDToType[id] = t
	w.components.compIDToSize[id] = t.Size()
	w.components.nextCompTypeID++
	return id
}

// specFor returns the storage spec of a registered component ID.
func (w *World) specFor(id uint8) compSpec {
	return compSpec{id: id, typ: w.components.compIDToType[id], size: w.components.compIDToSize[id]}
}

// getOrCreateArchetype returns the archetype for mask, creating it from specs
// when it does not exist yet.
func (w *World) getOrCreateArchetype(mask bitmask256, specs []compSpec) *archetype {
	if idx, ok := w.archetypes.maskToArcIndex[mask]; ok {
		return w.archetypes.archetypes[idx]
	}
	a := &archetype{
		index:     len(w.archetypes.archetypes),
		mask:      mask,
		chunks:    make([]*chunk, 0, 4),
		compOrder: make([]uint8, len(specs)),
	}
	for i, sp := range specs {
		a.compOrder[i] = sp.id
		a.compSizes[sp.id] = sp.size
	}
	w.archetypes.archetypes = append(w.archetypes.archetypes, a)
	w.archetypes.maskToArcIndex[mask] = a.index
	w.archetypes.archetypeVersion++
	return a
}

// archetypeWith returns the archetype holding a's components plus id.
func (w *World) archetypeWith(a *archetype, id uint8) *archetype {
	mask := a.mask
	mask.set(id)
	if idx, ok := w.archetypes.maskToArcIndex[mask]; ok {
		return w.archetypes.archetypes[idx]
	}
	specs := make([]compSpec, 0, len(a.compOrder)+1)
	for _, cid := range a.compOrder {
		specs = append(specs, w.specFor(cid))
	}
	specs = append(specs, w.specFor(id))
	return w.getOrCreateArchetype(mask, specs)
}

// archetypeWithout returns the archetype holding a's components minus id.
func (w *World) archetypeWithout(a *archetype, id uint8) *archetype {
	mask := a.mask
	mask.unset(id)
	if idx, ok := w.archetypes.maskToArcIndex[mask]; ok {
		return w.archetypes.archetypes[idx]
	}
	specs := make([]compSpec, 0, len(a.compOrder))
	for _, cid := range a.compOrder {
		if cid != id {
			specs = append(specs, w.specFor(cid))
		}
	}
	return w.getOrCreateArchetype(mask, specs)
}

// newChunk allocates typed backing arrays for every component of a.
func (w *World) newChunk(a *archetype) *chunk {
	c := &chunk{}
	for _, cid := range a.compOrder {
		typ := w.components.compIDToType[cid]
		c.compPointers[cid] = reflect.MakeSlice(reflect.SliceOf(typ), ChunkSize, ChunkSize).UnsafePointer()
	}
	return c
}

// tailChunk returns a's last chunk, appending a fresh one when it is full.
func (w *World) tailChunk(a *archetype) *chunk {
	if len(a.chunks) == 0 || a.chunks[len(a.chunks)-1].size == ChunkSize {
		a.chunks = append(a.chunks, w.newChunk(a))
	}
	return a.chunks[len(a.chunks)-1]
}

// expand grows the entity registry by at least additional IDs.
func (w *World) expand(additional int) {
	oldCap := w.entities.capacity
	newCap := max(oldCap*2, oldCap+additional, 1)
	delta := newCap - oldCap
	for range delta {
		w.entities.metas = append(w.entities.metas, deadMeta())
	}
	for i := range delta {
		w.entities.freeIDs = append(w.entities.freeIDs, uint32(newCap-1-i))
	}
	w.entities.capacity = newCap
}

// createEntity pops a free ID and places the entity at the end of a.
func (w *World) createEntity(a *archetype) Entity {
	if len(w.entities.freeIDs) == 0 {
		w.expand(1)
	}
	last := len(w.entities.freeIDs) - 1
	id := w.entities.freeIDs[last]
	w.entities.freeIDs = w.entities.freeIDs[:last]
	c := w.tailChunk(a)
	meta := &w.entities.metas[id]
	meta.archetypeIndex = a.index
	meta.chunkIndex = len(a.chunks) - 1
	meta.index = c.size
	meta.version = w.entities.nextEntityVer
	w.entities.nextEntityVer++
	if w.entities.nextEntityVer == 0 {
		w.entities.nextEntityVer = 1
	}
	ent := Entity{ID: id, Version: meta.version}
	c.entityIDs[c.size] = ent
	c.size++
	a.size++
	w.entities.live++
	w.mutationVersion++
	return ent
}

// slot returns the address of component id for the entity at index in c.
func slot(a *archetype, c *chunk, id uint8, index int) unsafe.Pointer {
	return unsafe.Add(c.compPointers[id], uintptr(index)*a.compSizes[id])
}

// moveTo relocates the entity described by meta into target, carrying over
// every component both archetypes share. Slots for components new to the
// entity hold their zero value.
func (w *World) moveTo(e Entity, meta *entityMeta, target *archetype) {
	src := w.archetypes.archetypes[meta.archetypeIndex]
	srcChunk := src.chunks[meta.chunkIndex]
	dstChunk := w.tailChunk(target)
	idx := dstChunk.size
	dstChunk.entityIDs[idx] = e
	dstChunk.size++
	target.size++
	for _, cid := range src.compOrder {
		if !target.mask.containsBit(cid) {
			continue
		}
		copyComponent(w.components.compIDToType[cid], slot(target, dstChunk, cid, idx), slot(src, srcChunk, cid, meta.index))
	}
	w.removeFromArchetype(src, meta)
	meta.archetypeIndex = target.index
	meta.chunkIndex = len(target.chunks) - 1
	meta.index = idx
}

// removeFromArchetype drops the entity's slot from a by swapping the chunk's
// last entity into it. The entity ID and version are left alone.
func (w *World) removeFromArchetype(a *archetype, meta *entityMeta) {
	chunkIdx := meta.chunkIndex
	c := a.chunks[chunkIdx]
	idx := meta.index
	lastIdx := c.size - 1
	if idx < lastIdx {
		lastEnt := c.entityIDs[lastIdx]
		c.entityIDs[idx] = lastEnt
		for _, cid := range a.compOrder {
			copyComponent(w.components.compIDToType[cid], slot(a, c, cid, idx), slot(a, c, cid, lastIdx))
		}
		w.entities.metas[lastEnt.ID].index = idx
	}
	for _, cid := range a.compOrder {
		zeroComponent(w.components.compIDToType[cid], slot(a, c, cid, lastIdx))
	}
	c.entityIDs[lastIdx] = NilEntity
	c.size--
	a.size--
	if c.size == 0 {
		lastChunkIdx := len(a.chunks) - 1
		if chunkIdx < lastChunkIdx {
			a.chunks[chunkIdx] = a.chunks[lastChunkIdx]
			moved := a.chunks[chunkIdx]
			for j := 0; j < moved.size; j++ {
				w.entities.metas[moved.entityIDs[j].ID].chunkIndex = chunkIdx
			}
		}
		a.chunks[lastChunkIdx] = nil
		a.chunks = a.chunks[:lastChunkIdx]
	}
	w.mutationVersion++
}

// copyComponent copies one value of typ from src to dst. reflect keeps the
// copy visible to the garbage collector for pointer-bearing components.
func copyComponent(typ reflect.Type, dst, src unsafe.Pointer) {
	if typ.Size() == 0 {
		return
	}
	reflect.NewAt(typ, dst).Elem().Set(reflect.NewAt(typ, src).Elem())
}

// zeroComponent resets the value of typ at p.
func zeroComponent(typ reflect.Type, p unsafe.Pointer) {
	if typ.Size() == 0 {
		return
	}
	reflect.NewAt(typ, p).Elem().SetZero()
}
