package kaisou

import "reflect"

// Resources stores world-global values, at most one per dynamic type. IDs of
// removed resources are reused.
type Resources struct {
	items   []any
	types   map[reflect.Type]int
	freeIDs []int
}

// Add stores res and returns its ID. It panics on nil or when a resource of
// the same type is already present.
func (r *Resources) Add(res any) int {
	if res == nil {
		panic("kaisou: cannot add nil resource")
	}
	t := reflect.TypeOf(res)
	if r.types == nil {
		r.types = make(map[reflect.Type]int)
	}
	if _, ok := r.types[t]; ok {
		panic("kaisou: resource of type " + t.String() + " already exists")
	}
	var id int
	if n := len(r.freeIDs); n > 0 {
		id = r.freeIDs[n-1]
		r.freeIDs = r.freeIDs[:n-1]
		r.items[id] = res
	} else {
		r.items = append(r.items, res)
		id = len(r.items) - 1
	}
	r.types[t] = id
	return id
}

// Has reports whether id holds a resource.
func (r *Resources) Has(id int) bool {
	return id >= 0 && id < len(r.items) && r.items[id] != nil
}

// Get returns the resource stored under id, or nil.
func (r *Resources) Get(id int) any {
	if !r.Has(id) {
		return nil
	}
	return r.items[id]
}

// Remove deletes the resource stored under id.
func (r *Resources) Remove(id int) {
	if !r.Has(id) {
		return
	}
	delete(r.types, reflect.TypeOf(r.items[id]))
	r.items[id] = nil
	r.freeIDs = append(r.freeIDs, id)
}

// Clear removes every resource.
func (r *Resources) Clear() {
	clear(r.items)
	r.items = r.items[:0]
	clear(r.types)
	r.freeIDs = r.freeIDs[:0]
}

// HasResource reports whether a *T is stored, and under which ID (-1 if not).
func HasResource[T any](r *Resources) (bool, int) {
	if id, ok := r.types[reflect.TypeFor[*T]()]; ok {
		return true, id
	}
	return false, -1
}

// GetResource returns the stored *T and its ID, or nil and -1.
func GetResource[T any](r *Resources) (*T, int) {
	if id, ok := r.types[reflect.TypeFor[*T]()]; ok {
		return r.items[id].(*T), id
	}
	return nil, -1
}
