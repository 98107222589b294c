package engine

import (
	"fmt"

	"github.com/nextcore/tuicore/pkg/focusmgr"
	"github.com/nextcore/tuicore/pkg/reconciler"
)

// focusableIDFor mirrors focusmgr's own stableID convention (user-set
// VNode.ID when present, else "#focusable:<instanceId>"), so the engine can
// translate a hit-tested InstanceID into the FocusableID focusmgr.State
// tracks without focusmgr needing to export its internal naming scheme.
func focusableIDFor(inst *reconciler.Instance) focusmgr.FocusableID {
	if inst.Node != nil && inst.Node.ID != "" {
		return focusmgr.FocusableID(inst.Node.ID)
	}
	return focusmgr.FocusableID(fmt.Sprintf("#focusable:%d", inst.ID))
}

// instanceIndex flattens a committed instance tree for id-based lookups
// (mouse routing results, cursor placement) that the LayoutTree walk alone
// can't answer cheaply.
type instanceIndex map[reconciler.InstanceID]*reconciler.Instance

func indexInstances(root *reconciler.Instance) instanceIndex {
	idx := instanceIndex{}
	var walk func(*reconciler.Instance)
	walk = func(inst *reconciler.Instance) {
		if inst == nil {
			return
		}
		idx[inst.ID] = inst
		for _, c := range inst.Children {
			walk(c)
		}
	}
	walk(root)
	return idx
}

// focusableIndex maps every focusable instance's FocusableID back to its
// InstanceID, the inverse of what CollectCommitMeta records.
func focusableIndex(idx instanceIndex) map[focusmgr.FocusableID]reconciler.InstanceID {
	out := make(map[focusmgr.FocusableID]reconciler.InstanceID, len(idx))
	for id, inst := range idx {
		if inst.Node != nil && inst.Node.Kind.IsFocusable() {
			out[focusableIDFor(inst)] = id
		}
	}
	return out
}
