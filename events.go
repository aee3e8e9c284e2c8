package kaisou

// Attached is published after Child was linked under Parent in hierarchy K.
// PrevParent is the parent Child was moved away from, or NilEntity.
type Attached[K any] struct {
	Child      Entity
	Parent     Entity
	PrevParent Entity
}

// Detached is published after Child was unlinked from Parent in hierarchy K.
type Detached[K any] struct {
	Child  Entity
	Parent Entity
}
