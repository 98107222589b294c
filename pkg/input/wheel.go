package input

import "github.com/nextcore/tuicore/pkg/layout"

// LinesPerWheelTick is the number of content lines one wheel-notch scrolls a
// container by. The spec leaves the exact step count an implementation
// choice, not a contract (§9 Open Questions); three matches the teacher
// pack's terminal reference (other_examples/perles) and most TUI toolkits.
const LinesPerWheelTick = 3

// WheelResult names the container that consumed a wheel event and its
// updated scroll offsets; Consumed is false if no ancestor had room to
// scroll in the requested direction.
type WheelResult struct {
	Consumed         bool
	Node             *layout.Node
	ScrollX, ScrollY int32
}

// RouteWheel walks the LayoutTree path under (x,y) from the hit leaf up to
// the root, and lets the nearest ancestor whose overflow metadata has room
// to scroll in the wheel's direction consume the event. Parent containers
// above the consuming ancestor are left untouched.
func RouteWheel(root *layout.Node, x, y int32, wheelX, wheelY int32) WheelResult {
	path := Path(root, x, y)
	for i := len(path) - 1; i >= 0; i-- {
		n := path[i]
		if n.Meta == nil {
			continue
		}
		dx, okX := scrollDelta(wheelX, n.Meta.ScrollX, n.Meta.ContentW, n.Meta.ViewportW)
		dy, okY := scrollDelta(wheelY, n.Meta.ScrollY, n.Meta.ContentH, n.Meta.ViewportH)
		if !okX && !okY {
			continue
		}
		newX := layout.Clamp(int(n.Meta.ScrollX)+dx, 0, maxScroll(n.Meta.ContentW, n.Meta.ViewportW))
		newY := layout.Clamp(int(n.Meta.ScrollY)+dy, 0, maxScroll(n.Meta.ContentH, n.Meta.ViewportH))
		n.Meta.ScrollX = int32(newX)
		n.Meta.ScrollY = int32(newY)
		return WheelResult{Consumed: true, Node: n, ScrollX: int32(newX), ScrollY: int32(newY)}
	}
	return WheelResult{}
}

// scrollDelta returns the cell delta for one axis's wheel component and
// whether this axis has any room left to move in that direction.
func scrollDelta(wheel int32, scroll, content, viewport int32) (int, bool) {
	if wheel == 0 {
		return 0, false
	}
	max := maxScroll(content, viewport)
	if max <= 0 {
		return 0, false
	}
	delta := int(wheel) * LinesPerWheelTick
	if delta > 0 && int(scroll) >= max {
		return 0, false
	}
	if delta < 0 && scroll <= 0 {
		return 0, false
	}
	return delta, true
}

func maxScroll(content, viewport int32) int {
	m := int(content - viewport)
	if m < 0 {
		return 0
	}
	return m
}
