package engine

import (
	"fmt"

	"github.com/nextcore/tuicore/pkg/anim"
	"github.com/nextcore/tuicore/pkg/layout"
	"github.com/nextcore/tuicore/pkg/reconciler"
	"github.com/nextcore/tuicore/pkg/statestore"
	"github.com/nextcore/tuicore/pkg/tuierrors"
	"github.com/nextcore/tuicore/pkg/vtree"
)

// lineageKey identifies a child slot by its parent instance and slot id, the
// granularity exit-transition cancellation and teardown bookkeeping key on.
func lineageKey(parentID reconciler.InstanceID, slotID string) string {
	return fmt.Sprintf("%d:%s", parentID, slotID)
}

// treeBuilder recursively reconciles a whole VTree against the previously
// committed instance tree. pkg/reconciler only matches one parent's
// immediate children per call (§4.1); composing that into a full-tree walk,
// plus exit-transition retention and deferred-state bookkeeping, is the
// frame orchestrator's job.
type treeBuilder struct {
	alloc  *reconciler.Allocator
	states *statestore.Store
	exits  *anim.ExitRegistry
	rectOf func(reconciler.InstanceID) (layout.Rect, bool)
	nowMs  float64
}

func (b *treeBuilder) buildRoot(prev *reconciler.Instance, next *vtree.VNode) (*reconciler.Instance, error) {
	return b.buildNode(0, "root", prev, next)
}

func (b *treeBuilder) buildNode(parentID reconciler.InstanceID, slotID string, prev *reconciler.Instance, next *vtree.VNode) (*reconciler.Instance, error) {
	if next == nil {
		if prev != nil {
			b.retire(parentID, slotID, prev)
		}
		return nil, nil
	}
	if !next.Kind.Valid() {
		return nil, tuierrors.UnknownKind(next.Kind.String())
	}

	var id reconciler.InstanceID
	var prevChildren []*reconciler.Instance
	if prev != nil && prev.Kind == next.Kind {
		id = prev.ID
		prevChildren = prev.Children
	} else {
		if prev != nil {
			b.retire(parentID, slotID, prev)
		}
		id = b.alloc.Allocate()
	}

	inst := &reconciler.Instance{ID: id, ParentID: parentID, SlotID: slotID, Kind: next.Kind, Node: next}
	children, err := b.buildChildren(id, prevChildren, next.Children)
	if err != nil {
		return nil, err
	}
	inst.Children = children
	return inst, nil
}

func (b *treeBuilder) buildChildren(parentID reconciler.InstanceID, prevChildren []*reconciler.Instance, nextNodes []*vtree.VNode) ([]*reconciler.Instance, error) {
	result, err := reconciler.ReconcileChildren(parentID, prevChildren, nextNodes, b.alloc)
	if err != nil {
		return nil, err
	}

	prevByID := make(map[reconciler.InstanceID]*reconciler.Instance, len(prevChildren))
	for _, p := range prevChildren {
		prevByID[p.ID] = p
	}

	for _, id := range result.Unmounted {
		if p, ok := prevByID[id]; ok {
			b.retire(parentID, p.SlotID, p)
		}
	}
	// A slot reappearing this frame (freshly allocated, same parent+slot id
	// as an in-flight exit) cancels that exit outright (§4.6, §8 scenario 6).
	for _, cr := range result.NextChildren {
		if cr.Kind == reconciler.ChildNew {
			b.exits.CancelForLineage(lineageKey(parentID, cr.SlotID))
		}
	}

	out := make([]*reconciler.Instance, 0, len(result.NextChildren))
	idx := 0
	for _, n := range nextNodes {
		if n == nil {
			continue
		}
		cr := result.NextChildren[idx]
		idx++
		var prevChild *reconciler.Instance
		if cr.Kind == reconciler.ChildReused {
			prevChild = prevByID[cr.InstanceID]
		}
		child, err := b.buildNode(parentID, cr.SlotID, prevChild, n)
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

// retire decides whether an unmounted instance begins an exit transition or
// tears down immediately, and recurses into its whole subtree either way.
func (b *treeBuilder) retire(parentID reconciler.InstanceID, slotID string, inst *reconciler.Instance) {
	key := lineageKey(parentID, slotID)
	if b.beginExit(inst, key) {
		return
	}
	b.teardown(inst)
}

func (b *treeBuilder) beginExit(inst *reconciler.Instance, key string) bool {
	if inst == nil || inst.Node == nil {
		return false
	}
	durationMs := vtree.LayoutPropsOf(inst.Node.Props).ExitTransitionMs
	if durationMs <= 0 {
		return false
	}
	rect, ok := b.rectOf(inst.ID)
	if !ok {
		return false
	}
	b.deferState(inst)
	inst.PendingExit = true
	b.exits.Begin(inst.ID, key, rect, inst, float64(durationMs), b.nowMs)
	return true
}

func (b *treeBuilder) deferState(inst *reconciler.Instance) {
	if inst == nil {
		return
	}
	b.states.MarkDeferred(inst.ID)
	for _, c := range inst.Children {
		b.deferState(c)
	}
}

func (b *treeBuilder) teardown(inst *reconciler.Instance) {
	if inst == nil {
		return
	}
	for _, c := range inst.Children {
		b.teardown(c)
	}
	b.states.Teardown(inst.ID)
}

// teardownDeferred runs the cleanup thunks an exit transition held open,
// once that transition has finished.
func teardownDeferred(states *statestore.Store, inst *reconciler.Instance) {
	if inst == nil {
		return
	}
	for _, c := range inst.Children {
		teardownDeferred(states, c)
	}
	states.DeferredCleanup(inst.ID)
}
