package reconciler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextcore/tuicore/pkg/reconciler"
	"github.com/nextcore/tuicore/pkg/tuierrors"
	"github.com/nextcore/tuicore/pkg/vtree"
)

func node(kind vtree.Kind, key any) *vtree.VNode {
	return &vtree.VNode{Kind: kind, Key: key}
}

// Keyed reorder with a mixed unkeyed sibling, run across two real reconciles
// so the prev instances carry slot ids ReconcileChildren itself assigned
// (rather than hand-set ones), matching spec.md §8 scenario 3: a keyed
// sibling appearing, moving, or disappearing shifts a positional unkeyed
// sibling's slot id too, so that sibling remounts rather than being reused.
func TestReconcile_KeyedReorderWithMixedUnkeyed(t *testing.T) {
	alloc := reconciler.NewAllocator()

	mount, err := reconciler.ReconcileChildren(1, nil, []*vtree.VNode{
		node(vtree.KindText, "a"), // A -> k:a
		node(vtree.KindText, nil), // plain1, unkeyed -> i:1
		node(vtree.KindText, "b"), // B -> k:b
	}, alloc)
	require.NoError(t, err)
	require.Len(t, mount.New, 3)
	aID, plain1ID, bID := mount.New[0], mount.New[1], mount.New[2]

	prev := make([]*reconciler.Instance, len(mount.NextChildren))
	for i, c := range mount.NextChildren {
		prev[i] = &reconciler.Instance{ID: c.InstanceID, SlotID: c.SlotID, Kind: vtree.KindText}
	}

	next := []*vtree.VNode{
		node(vtree.KindText, nil), // plain0, unkeyed -> i:0, not i:1: no longer plain1's slot
		node(vtree.KindText, "b"), // B2
		node(vtree.KindText, "a"), // A2
	}

	result, err := reconciler.ReconcileChildren(1, prev, next, alloc)
	require.NoError(t, err)

	assert.Equal(t, []reconciler.InstanceID{bID, aID}, result.Reused)
	assert.Len(t, result.New, 1, "plain0 takes slot i:0, which nothing in prev holds, so it mounts fresh")
	assert.Equal(t, []reconciler.InstanceID{plain1ID}, result.Unmounted, "plain1 held slot i:1, which next no longer assigns to anything")
}

func TestReconcile_DuplicateKeyIsFatal(t *testing.T) {
	alloc := reconciler.NewAllocator()
	next := []*vtree.VNode{
		node(vtree.KindText, "x"),
		node(vtree.KindText, "x"),
	}
	_, err := reconciler.ReconcileChildren(7, nil, next, alloc)
	require.Error(t, err)
	var engErr *tuierrors.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, tuierrors.KindDuplicateKey, engErr.Code)
	assert.Contains(t, engErr.Message, "parent instance 7")
	assert.Contains(t, engErr.Message, "indices 0 and 1")
}

func TestReconcile_KindMismatchForcesRemount(t *testing.T) {
	alloc := reconciler.NewAllocator()
	old := &reconciler.Instance{ID: alloc.Allocate(), SlotID: "k:same", Kind: vtree.KindText}
	next := []*vtree.VNode{node(vtree.KindRow, "same")}

	result, err := reconciler.ReconcileChildren(1, []*reconciler.Instance{old}, next, alloc)
	require.NoError(t, err)
	assert.Len(t, result.New, 1)
	assert.Equal(t, []reconciler.InstanceID{old.ID}, result.Unmounted)
}

// A hole claims no slot id of its own, but it still occupies its position in
// next, so the unkeyed sibling after it keeps the index matching its own
// position, not a shifted-down one.
func TestReconcile_HoleDoesNotShiftSubsequentIndices(t *testing.T) {
	alloc := reconciler.NewAllocator()
	first := &reconciler.Instance{ID: alloc.Allocate(), SlotID: "i:0", Kind: vtree.KindText}
	second := &reconciler.Instance{ID: alloc.Allocate(), SlotID: "i:1", Kind: vtree.KindText}
	prev := []*reconciler.Instance{first, second}

	next := []*vtree.VNode{nil, node(vtree.KindText, nil)}
	result, err := reconciler.ReconcileChildren(1, prev, next, alloc)
	require.NoError(t, err)

	// the surviving unkeyed child sits at position 1 in next, so it gets slot
	// "i:1" and reuses `second`'s instance; `first` (slot "i:0") is unmounted.
	assert.Equal(t, []reconciler.InstanceID{second.ID}, result.Reused)
	assert.Equal(t, []reconciler.InstanceID{first.ID}, result.Unmounted)
}

func TestReconcile_Deterministic(t *testing.T) {
	alloc1 := reconciler.NewAllocator()
	alloc2 := reconciler.NewAllocator()
	prevFor := func(alloc *reconciler.Allocator) []*reconciler.Instance {
		return []*reconciler.Instance{
			{ID: alloc.Allocate(), SlotID: "k:a", Kind: vtree.KindText},
			{ID: alloc.Allocate(), SlotID: "k:b", Kind: vtree.KindText},
		}
	}
	next := []*vtree.VNode{node(vtree.KindText, "b"), node(vtree.KindText, "c")}

	r1, err1 := reconciler.ReconcileChildren(1, prevFor(alloc1), next, alloc1)
	r2, err2 := reconciler.ReconcileChildren(1, prevFor(alloc2), next, alloc2)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, r1, r2)
}
