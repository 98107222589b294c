package input

import (
	"github.com/nextcore/tuicore/pkg/reconciler"
	"github.com/nextcore/tuicore/pkg/vtree"
)

// LayerEntry is one modal/layer instance eligible to close on Escape, in
// commit order (innermost/most-recently-mounted last).
type LayerEntry struct {
	InstanceID    reconciler.InstanceID
	CloseOnEscape bool
	OnClose       func()
}

// CollectLayers walks the committed instance tree depth-first and returns
// every modal/layer node in encounter order; the last entry is the
// topmost (innermost) overlay and is first in line for Escape.
func CollectLayers(root *reconciler.Instance) []LayerEntry {
	var out []LayerEntry
	var walk func(inst *reconciler.Instance)
	walk = func(inst *reconciler.Instance) {
		if inst == nil || inst.Node == nil {
			return
		}
		switch inst.Node.Kind {
		case vtree.KindModal:
			if p, ok := inst.Node.Props.(vtree.ModalProps); ok {
				out = append(out, LayerEntry{InstanceID: inst.ID, CloseOnEscape: p.CloseOnEscape, OnClose: p.OnClose})
			}
		case vtree.KindLayer:
			if p, ok := inst.Node.Props.(vtree.LayerProps); ok {
				out = append(out, LayerEntry{InstanceID: inst.ID, CloseOnEscape: p.CloseOnEscape, OnClose: p.OnClose})
			}
		}
		for _, c := range inst.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}

// RouteEscape finds the topmost (last) layer with CloseOnEscape set and
// invokes its OnClose, reporting whether any layer consumed the key. This
// runs before the focused widget's own key router and the chord matcher,
// per the §4.4 dispatch order.
func RouteEscape(layers []LayerEntry) bool {
	for i := len(layers) - 1; i >= 0; i-- {
		if layers[i].CloseOnEscape {
			if layers[i].OnClose != nil {
				layers[i].OnClose()
			}
			return true
		}
	}
	return false
}
