package kaisou

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResources(t *testing.T) {
	type testStruct1 struct{}
	type testStruct2 struct{}

	t.Run("Add and Get", func(t *testing.T) {
		r := &Resources{}
		res1 := &testStruct1{}
		assert.Equal(t, 0, r.Add(res1))
		assert.Same(t, res1, r.Get(0))
	})

	t.Run("Has", func(t *testing.T) {
		r := &Resources{}
		r.Add(&testStruct1{})
		assert.True(t, r.Has(0))
		assert.False(t, r.Has(1))
		assert.False(t, r.Has(-1))
	})

	t.Run("Add same type panics", func(t *testing.T) {
		r := &Resources{}
		r.Add(&testStruct1{})
		assert.Panics(t, func() { r.Add(&testStruct1{}) })
	})

	t.Run("Add nil panics", func(t *testing.T) {
		r := &Resources{}
		assert.Panics(t, func() { r.Add(nil) })
	})

	t.Run("Remove reuses ids", func(t *testing.T) {
		r := &Resources{}
		id0 := r.Add(&testStruct1{})
		id1 := r.Add(&testStruct2{})
		r.Remove(id0)
		r.Remove(id1)
		assert.False(t, r.Has(id0))
		assert.Nil(t, r.Get(id1))

		assert.Equal(t, id1, r.Add(&testStruct1{}))
		assert.Equal(t, id0, r.Add(&testStruct2{}))
	})

	t.Run("Remove non-existent", func(t *testing.T) {
		r := &Resources{}
		assert.NotPanics(t, func() { r.Remove(0) })
	})

	t.Run("Clear", func(t *testing.T) {
		r := &Resources{}
		r.Add(&testStruct1{})
		r.Add(&testStruct2{})
		r.Clear()
		assert.Empty(t, r.items)
		assert.Empty(t, r.types)
		assert.Empty(t, r.freeIDs)
		assert.False(t, r.Has(0))
		assert.NotPanics(t, func() { r.Add(&testStruct1{}) })
	})

	t.Run("Typed access", func(t *testing.T) {
		r := &Resources{}
		ok, id := HasResource[testStruct1](r)
		assert.False(t, ok)
		assert.Equal(t, -1, id)

		res := &testStruct1{}
		r.Add(res)
		got, id := GetResource[testStruct1](r)
		require.NotNil(t, got)
		assert.Same(t, res, got)
		assert.Equal(t, 0, id)

		missing, id := GetResource[testStruct2](r)
		assert.Nil(t, missing)
		assert.Equal(t, -1, id)
	})
}

func TestWorldCachesHierarchyAsResource(t *testing.T) {
	type scene struct{}
	w := NewWorld(4)
	h := HierarchyOf[scene](w)
	assert.Same(t, h, HierarchyOf[scene](w))

	got, _ := GetResource[Hierarchy[scene]](w.Resources())
	assert.Same(t, h, got)
}
