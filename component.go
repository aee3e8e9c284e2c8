package kaisou

import (
	"reflect"
	"unsafe"
)

// GetComponent returns a pointer to e's component of type T, or nil when e is
// stale or lacks the component.
//
// The pointer addresses chunk storage directly. Any structural change to the
// world (creating or removing entities, adding or removing components) may
// move the value, so do not keep it across such calls.
func GetComponent[T any](w *World, e Entity) *T {
	return (*T)(w.component(e, w.getCompTypeID(reflect.TypeFor[T]())))
}

// HasComponent reports whether e is live and has a component of type T.
func HasComponent[T any](w *World, e Entity) bool {
	return w.component(e, w.getCompTypeID(reflect.TypeFor[T]())) != nil
}

// SetComponent stores val as e's component of type T, adding the component
// (and moving e to another archetype) when it is missing. Stale handles are
// ignored; the result reports whether the value was stored.
func SetComponent[T any](w *World, e Entity, val T) bool {
	p := w.addComponent(e, w.getCompTypeID(reflect.TypeFor[T]()))
	if p == nil {
		return false
	}
	*(*T)(p) = val
	return true
}

// RemoveComponent removes e's component of type T. It reports whether a
// component was removed.
func RemoveComponent[T any](w *World, e Entity) bool {
	return w.removeComponent(e, w.getCompTypeID(reflect.TypeFor[T]()))
}

// component returns the address of component id on e, or nil.
func (w *World) component(e Entity, id uint8) unsafe.Pointer {
	if !w.IsValid(e) {
		return nil
	}
	meta := w.entities.metas[e.ID]
	a := w.archetypes.archetypes[meta.archetypeIndex]
	if !a.mask.containsBit(id) {
		return nil
	}
	return slot(a, a.chunks[meta.chunkIndex], id, meta.index)
}

// addComponent makes sure e carries component id and returns its address.
// A newly added component holds its zero value.
func (w *World) addComponent(e Entity, id uint8) unsafe.Pointer {
	if !w.IsValid(e) {
		return nil
	}
	meta := &w.entities.metas[e.ID]
	a := w.archetypes.archetypes[meta.archetypeIndex]
	if !a.mask.containsBit(id) {
		target := w.archetypeWith(a, id)
		w.moveTo(e, meta, target)
		a = target
	}
	return slot(a, a.chunks[meta.chunkIndex], id, meta.index)
}

// removeComponent drops component id from e.
func (w *World) removeComponent(e Entity, id uint8) bool {
	if !w.IsValid(e) {
		return false
	}
	meta := &w.entities.metas[e.ID]
	a := w.archetypes.archetypes[meta.archetypeIndex]
	if !a.mask.containsBit(id) {
		return false
	}
	w.moveTo(e, meta, w.archetypeWithout(a, id))
	return true
}
