package reconciler

import (
	"fmt"

	"github.com/nextcore/tuicore/pkg/vtree"
)

// KeyedSlotID returns "k:<key>" for a comparable, non-nil key.
func KeyedSlotID(key any) string {
	return fmt.Sprintf("k:%v", key)
}

// IndexedSlotID returns "i:<index>" for an unkeyed child, where index is its
// own position in the next list (not a count among unkeyed siblings) — a
// keyed sibling appearing, moving, or disappearing shifts it too.
func IndexedSlotID(index int) string {
	return fmt.Sprintf("i:%d", index)
}

// slotIDFor computes the slot id a next-list VNode would occupy; index is
// its position in the full next list (skipping nothing, keyed or not).
func slotIDFor(node *vtree.VNode, index int) string {
	if node.Key != nil && vtree.Comparable(node.Key) {
		return KeyedSlotID(node.Key)
	}
	return IndexedSlotID(index)
}
