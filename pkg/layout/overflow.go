package layout

import "github.com/nextcore/tuicore/pkg/vtree"

// computeOverflowMeta derives content/viewport sizes and clamps the declared
// scroll offset to [0, max(0, content-viewport)] per axis.
func computeOverflowMeta(lp vtree.LayoutProps, viewportW, viewportH int, children []*Node) *Meta {
	contentW, contentH := viewportW, viewportH
	for _, c := range children {
		right := int(c.Rect.X) + int(c.Rect.W)
		bottom := int(c.Rect.Y) + int(c.Rect.H)
		if right > contentW {
			contentW = right
		}
		if bottom > contentH {
			contentH = bottom
		}
	}

	maxScrollX := contentW - viewportW
	if maxScrollX < 0 {
		maxScrollX = 0
	}
	maxScrollY := contentH - viewportH
	if maxScrollY < 0 {
		maxScrollY = 0
	}

	scrollX := Clamp(lp.ScrollX, 0, maxScrollX)
	scrollY := Clamp(lp.ScrollY, 0, maxScrollY)

	return &Meta{
		ScrollX: int32(scrollX),
		ScrollY: int32(scrollY),
		ContentW: int32(contentW),
		ContentH: int32(contentH),
		ViewportW: int32(viewportW),
		ViewportH: int32(viewportH),
	}
}

// applyScrollShift shifts every descendant rect by -scroll so downstream
// consumers (paint, hit-test, focus) never need to know about scroll offset
// themselves.
func applyScrollShift(meta *Meta, children []*Node) {
	if meta == nil || (meta.ScrollX == 0 && meta.ScrollY == 0) {
		return
	}
	for _, c := range children {
		shiftNode(c, -meta.ScrollX, -meta.ScrollY)
	}
}

func shiftNode(n *Node, dx, dy int32) {
	n.Rect.X += dx
	n.Rect.Y += dy
	for _, c := range n.Children {
		shiftNode(c, dx, dy)
	}
}
