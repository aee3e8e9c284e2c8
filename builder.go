package kaisou

import "reflect"

// Builder creates entities that start life with a single component of type T.
// It resolves the target archetype once, so entity creation skips the
// archetype moves SetComponent would cause.
type Builder[T any] struct {
	world  *World
	arch   *archetype
	compID uint8
}

// NewBuilder returns a Builder for entities carrying a T.
func NewBuilder[T any](w *World) *Builder[T] {
	id := w.getCompTypeID(reflect.TypeFor[T]())
	var mask bitmask256
	mask.set(id)
	arch := w.getOrCreateArchetype(mask, []compSpec{w.specFor(id)})
	return &Builder[T]{world: w, arch: arch, compID: id}
}

// NewEntity creates an entity whose T is the zero value.
func (b *Builder[T]) NewEntity() Entity {
	return b.world.createEntity(b.arch)
}

// NewEntityWith creates an entity whose T is val.
func (b *Builder[T]) NewEntityWith(val T) Entity {
	e := b.world.createEntity(b.arch)
	*b.Get(e) = val
	return e
}

// NewEntities creates count entities whose T is val and returns them.
func (b *Builder[T]) NewEntities(count int, val T) []Entity {
	if count <= 0 {
		return nil
	}
	ents := make([]Entity, count)
	for i := range ents {
		ents[i] = b.NewEntityWith(val)
	}
	return ents
}

// Get returns e's T, or nil when e is stale or has no T.
func (b *Builder[T]) Get(e Entity) *T {
	return (*T)(b.world.component(e, b.compID))
}

// Set stores val as e's T, adding the component when missing.
func (b *Builder[T]) Set(e Entity, val T) bool {
	p := b.world.addComponent(e, b.compID)
	if p == nil {
		return false
	}
	*(*T)(p) = val
	return true
}
