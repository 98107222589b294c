package reconciler

import (
	"github.com/nextcore/tuicore/pkg/tuierrors"
	"github.com/nextcore/tuicore/pkg/vtree"
)

// ChildKind tags whether a reconciled child slot was reused or freshly allocated.
type ChildKind int

const (
	ChildReused ChildKind = iota
	ChildNew
)

func (k ChildKind) String() string {
	if k == ChildReused {
		return "reused"
	}
	return "new"
}

// ChildResult is one entry of Result.NextChildren.
type ChildResult struct {
	InstanceID InstanceID
	SlotID string
	Kind ChildKind
}

// Result is the outcome of reconciling one parent's children.
type Result struct {
	NextChildren []ChildResult
	Reused []InstanceID
	New []InstanceID
	Unmounted []InstanceID
}

// ReconcileChildren matches parentID's previous child instances against the
// next VNode list, allocating new instance ids from alloc as needed.
//
// next may contain nil holes; a hole unmounts whatever previously occupied
// that position without claiming a slot id of its own. Every other entry's
// unkeyed slot id is its own index in next, so a hole still shifts the
// indices of unkeyed siblings after it, same as a keyed sibling would.
func ReconcileChildren(parentID InstanceID, prev []*Instance, next []*vtree.VNode, alloc *Allocator) (Result, error) {
	// 1. Scan next children, detect duplicate keyed slot ids.
	seen := make(map[string]int, len(next))
	for i, n := range next {
		if n == nil {
			continue
		}
		if n.Key == nil || !vtree.Comparable(n.Key) {
			continue
		}
		slot := KeyedSlotID(n.Key)
		if first, dup := seen[slot]; dup {
			return Result{}, tuierrors.DuplicateKey(int64(parentID), len(next), first, i)
		}
		seen[slot] = i
	}

	// 2. Build a map from prev slot id to prev instance.
	prevBySlot := make(map[string]*Instance, len(prev))
	for _, p := range prev {
		prevBySlot[p.SlotID] = p
	}

	result := Result{
		NextChildren: make([]ChildResult, 0, len(next)),
	}

	for i, n := range next {
		if n == nil {
			continue // hole: consumes no slot, no index
		}
		if !n.Kind.Valid() {
			return Result{}, tuierrors.UnknownKind(n.Kind.String())
		}

		// The index an unkeyed child's slot id carries is its own position
		// in next, not a count among unkeyed siblings only — a keyed sibling
		// appearing, moving, or disappearing shifts it just the same (§4.1's
		// tie-breaking rule).
		slot := slotIDFor(n, i)

		if existing, ok := prevBySlot[slot]; ok && existing.Kind == n.Kind {
			existing.Node = n
			delete(prevBySlot, slot)
			result.NextChildren = append(result.NextChildren, ChildResult{
				InstanceID: existing.ID, SlotID: slot, Kind: ChildReused,
			})
			result.Reused = append(result.Reused, existing.ID)
			continue
		}

		id := alloc.Allocate()
		result.NextChildren = append(result.NextChildren, ChildResult{
			InstanceID: id, SlotID: slot, Kind: ChildNew,
		})
		result.New = append(result.New, id)
	}

	// 4. Any prev instance whose slot id does not appear in next is unmounted.
	// Iterate prev in its original order (not the map) so the result is
	// deterministic across runs with identical inputs.
	for _, p := range prev {
		if _, stillPending := prevBySlot[p.SlotID]; stillPending {
			result.Unmounted = append(result.Unmounted, p.ID)
		}
	}

	return result, nil
}
