// Package layout implements the deterministic two-pass cell-grid solver:
// measure, then place, against an integer cell grid with no floating point
// anywhere in the hot path.
package layout

import (
	"github.com/nextcore/tuicore/pkg/reconciler"
	"github.com/nextcore/tuicore/pkg/vtree"
)

// Rect is an integer cell rectangle.
type Rect struct {
	X, Y, W, H int32
}

// Axis selects the main-axis direction for a stack.
type Axis int

const (
	AxisRow Axis = iota
	AxisColumn
)

func (a Axis) Cross() Axis {
	if a == AxisRow {
		return AxisColumn
	}
	return AxisRow
}

// Infinite is the sentinel used for an unbounded constraint dimension.
const Infinite = 1 << 30

// Constraints bounds a node's resolvable width/height in cells.
type Constraints struct {
	MinW, MaxW int
	MinH, MaxH int
}

// Clamp fits v within [min, max].
func Clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if max >= 0 && v > max {
		return max
	}
	return v
}

// Meta carries overflow metadata for a scrollable container.
type Meta struct {
	ScrollX, ScrollY int32
	ContentW, ContentH int32
	ViewportW, ViewportH int32
}

// Node mirrors the instance tree with a resolved rect per node.
type Node struct {
	InstanceID reconciler.InstanceID
	Kind vtree.Kind
	Rect Rect
	Meta *Meta
	Children []*Node
}
