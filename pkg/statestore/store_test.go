package statestore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nextcore/tuicore/pkg/reconciler"
	"github.com/nextcore/tuicore/pkg/statestore"
)

func TestUseState_PersistsAcrossRenders(t *testing.T) {
	store := statestore.NewStore()
	id := reconciler.InstanceID(1)

	st := store.BeginRender(id)
	cell := st.UseState(0)
	assert.Equal(t, 0, cell.Value)
	cell.Value = 5

	st2 := store.BeginRender(id)
	cell2 := st2.UseState(0)
	assert.Equal(t, 5, cell2.Value, "state cell must be revisited positionally, not reinitialized")
}

func TestUseEffect_RunsOnceWhenDepsUnchanged(t *testing.T) {
	store := statestore.NewStore()
	id := reconciler.InstanceID(1)
	runs := 0

	for i := 0; i < 3; i++ {
		st := store.BeginRender(id)
		st.UseEffect(func() func() {
			runs++
			return nil
		}, []any{"fixed"})
		store.FlushEffects()
	}

	assert.Equal(t, 1, runs)
}

func TestUseEffect_RerunsOnDepsChange(t *testing.T) {
	store := statestore.NewStore()
	id := reconciler.InstanceID(1)
	runs := 0

	for i := 0; i < 3; i++ {
		st := store.BeginRender(id)
		st.UseEffect(func() func() {
			runs++
			return nil
		}, []any{i})
		store.FlushEffects()
	}

	assert.Equal(t, 3, runs)
}

func TestTeardown_RunsCleanup(t *testing.T) {
	store := statestore.NewStore()
	id := reconciler.InstanceID(1)
	cleaned := false

	st := store.BeginRender(id)
	st.UseEffect(func() func() {
		return func() { cleaned = true }
	}, nil)
	store.FlushEffects()

	store.Teardown(id)
	assert.True(t, cleaned)
}

func TestTeardown_DeferredByExitAnimation(t *testing.T) {
	store := statestore.NewStore()
	id := reconciler.InstanceID(1)
	cleaned := false

	st := store.BeginRender(id)
	st.UseEffect(func() func() {
		return func() { cleaned = true }
	}, nil)
	store.FlushEffects()

	store.MarkDeferred(id)
	store.Teardown(id)
	assert.False(t, cleaned, "cleanup must wait for the exit animation to complete")

	store.DeferredCleanup(id)
	assert.True(t, cleaned)
}
