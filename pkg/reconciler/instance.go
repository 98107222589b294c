// Package reconciler maps successive VNode trees onto stable Instance ids,
// diffing by an explicit per-child slot id (key-or-index) with fatal
// duplicate-key detection.
package reconciler

import "github.com/nextcore/tuicore/pkg/vtree"

// InstanceID is a positive, monotonically allocated id, unique within an
// engine run and never reused.
type InstanceID int64

// Instance is a runtime shadow of a VNode.
type Instance struct {
	ID InstanceID
	ParentID InstanceID // 0 for the root
	SlotID string // "k:<key>" or "i:<index>", fixed at creation time
	Kind vtree.Kind
	Node *vtree.VNode
	Children []*Instance

	// PendingExit is set when this instance was unmounted but its VNode
	// declared an exit transition; the animation scheduler owns
	// final teardown via a cleanup thunk.
	PendingExit bool
}

// Allocator hands out strictly increasing instance ids.
type Allocator struct {
	next InstanceID
}

// NewAllocator returns an Allocator starting at 1 (0 is reserved for "no parent").
func NewAllocator() *Allocator {
	return &Allocator{next: 1}
}

// Allocate returns the next unused instance id.
func (a *Allocator) Allocate() InstanceID {
	id := a.next
	a.next++
	return id
}
