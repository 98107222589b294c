package layout

import (
	"github.com/nextcore/tuicore/pkg/reconciler"
	"github.com/nextcore/tuicore/pkg/tuierrors"
	"github.com/nextcore/tuicore/pkg/vtree"
)

// childRef is one child of a container being solved: its instance (for id and
// further recursion) plus a resolved view of the VNode for convenience.
type childRef struct {
	inst *reconciler.Instance
	node *vtree.VNode
}

// solver carries the (x,y) origin for the node currently being positioned;
// each recursive call constructs a fresh solver for its own origin, since the
// algorithm is a pure function of its inputs with no shared mutable state.
type solver struct {
	originX, originY int
	defaultAxis Axis
}

// Layout runs the deterministic two-pass solver over root and its descendants,
// producing a resolved rect for every instance in the tree.
// mainAxis supplies the default stacking direction for a generic/box root
// with more than one child; Row/Column/Grid roots use their own kind instead.
func Layout(root *reconciler.Instance, x, y, maxW, maxH int, mainAxis Axis) (*Node, error) {
	if root == nil {
		return nil, nil
	}
	if err := vtree.ValidateTree(root.Node); err != nil {
		return nil, err
	}
	s := &solver{originX: x, originY: y, defaultAxis: mainAxis}
	rect := Rect{X: int32(x), Y: int32(y), W: int32(maxW), H: int32(maxH)}
	return s.layoutChildAt(&childRef{inst: root, node: root.Node}, rect)
}

// layoutChildAt lays out ref fully within the given allocated rect, which
// is used as its border box. Margin is not applied anywhere in this
// package: neither this function nor its callers subtract it.
func (s *solver) layoutChildAt(ref *childRef, rect Rect) (*Node, error) {
	node := ref.node
	lp := layoutPropsOf(node.Props)

	contentX := int(rect.X) + lp.Padding.Left
	contentY := int(rect.Y) + lp.Padding.Top
	if lp.Border.ConsumesLeft() {
		contentX++
	}
	if lp.Border.ConsumesTop() {
		contentY++
	}
	contentW := int(rect.W) - lp.Padding.Left - lp.Padding.Right
	contentH := int(rect.H) - lp.Padding.Top - lp.Padding.Bottom
	if lp.Border.ConsumesLeft() {
		contentW--
	}
	if lp.Border.ConsumesRight() {
		contentW--
	}
	if lp.Border.ConsumesTop() {
		contentH--
	}
	if lp.Border.ConsumesBottom() {
		contentH--
	}
	if contentW < 0 {
		contentW = 0
	}
	if contentH < 0 {
		contentH = 0
	}

	childSolver := &solver{originX: contentX, originY: contentY, defaultAxis: s.defaultAxis}

	children := make([]*childRef, 0, len(node.Children))
	for _, c := range node.Children {
		if c == nil {
			continue
		}
		children = append(children, &childRef{node: c})
	}
	// Bind each childRef to its matching reconciled instance by position;
	// the reconciler guarantees ref.inst.Children is ordered to match node.Children
	// (both reflect the same committed next-children list).
	for i, c := range children {
		if i < len(ref.inst.Children) {
			c.inst = ref.inst.Children[i]
		}
	}

	var childNodes []*Node
	var err error
	switch node.Kind {
	case vtree.KindRow:
		childNodes, err = childSolver.solveStack(AxisRow, lp, contentW, contentH, children)
	case vtree.KindGrid, vtree.KindTable:
		childNodes, err = childSolver.solveGrid(node, contentW, contentH, children)
	case vtree.KindColumn:
		childNodes, err = childSolver.solveStack(AxisColumn, lp, contentW, contentH, children)
	case vtree.KindText:
		// Leaf: no children to lay out, even if the application attached any.
		childNodes = nil
	default:
		// Generic/box kinds default to a single-axis stack using the
		// caller-provided mainAxis.
		childNodes, err = childSolver.solveStack(s.defaultAxis, lp, contentW, contentH, children)
	}
	if err != nil {
		return nil, err
	}

	result := &Node{
		Kind: node.Kind,
		Rect: rect,
	}
	if ref.inst != nil {
		result.InstanceID = ref.inst.ID
	}
	result.Children = childNodes

	if node.Kind.IsScrollable() || lp.Overflow != vtree.OverflowVisible {
		result.Meta = computeOverflowMeta(lp, contentW, contentH, childNodes)
		applyScrollShift(result.Meta, childNodes)
	}

	return result, nil
}

func (s *solver) layoutAbsoluteChild(c *childRef, parentContentW, parentContentH int) (*Node, error) {
	lp := layoutPropsOf(c.node.Props)
	inset := lp.AbsoluteInset

	x, w := resolveAbsoluteAxis(inset.Left, inset.Right, lp.AbsoluteWidth, parentContentW)
	y, h := resolveAbsoluteAxis(inset.Top, inset.Bottom, lp.AbsoluteHeight, parentContentH)

	rect := Rect{
		X: int32(s.originX + x),
		Y: int32(s.originY + y),
		W: int32(w),
		H: int32(h),
	}
	return s.layoutChildAt(c, rect)
}

// resolveAbsoluteAxis resolves one axis of an absolutely positioned child:
// when both opposite sides are set and size is implicit, size derives from
// their span.
func resolveAbsoluteAxis(near, far *int, explicitSize *vtree.Size, parentInner int) (offset, size int) {
	switch {
	case near != nil && far != nil:
		offset = *near
		size = parentInner - *near - *far
		if explicitSize != nil {
			size = ResolveSize(*explicitSize, parentInner, size)
		}
	case near != nil:
		offset = *near
		if explicitSize != nil {
			size = ResolveSize(*explicitSize, parentInner, 0)
		}
	case far != nil:
		if explicitSize != nil {
			size = ResolveSize(*explicitSize, parentInner, 0)
		}
		offset = parentInner - *far - size
	default:
		if explicitSize != nil {
			size = ResolveSize(*explicitSize, parentInner, 0)
		}
	}
	if size < 0 {
		size = 0
	}
	return offset, size
}

// measureNatural measures ref's natural size without constraining mainAxis,
// bounded only by the parent's cross axis.
func (s *solver) measureNatural(ref *childRef, crossBound int, mainAxis Axis) (w, h int) {
	node := ref.node
	lp := layoutPropsOf(node.Props)

	if tp, ok := textOf(node.Props); ok {
		maxW := 0
		if mainAxis == AxisColumn {
			maxW = crossBound
		}
		tw, th := MeasureText(tp.Content, tp.Wrap, maxW)
		return applyExplicitOrNatural(lp, tw, th)
	}

	if len(node.Children) == 0 {
		return applyExplicitOrNatural(lp, 0, 0)
	}

	// Containers measure by recursively summing/maxing children's natural
	// sizes along their own axis; Infinite stands in for "unconstrained".
	var axis Axis
	switch node.Kind {
	case vtree.KindRow:
		axis = AxisRow
	case vtree.KindColumn:
		axis = AxisColumn
	default:
		axis = mainAxis
	}

	total, maxCross := 0, 0
	count := 0
	for _, c := range node.Children {
		if c == nil {
			continue
		}
		count++
		cw, ch := s.measureNatural(&childRef{node: c}, crossBound, axis)
		main, cross := cw, ch
		if axis == AxisColumn {
			main, cross = ch, cw
		}
		total += main
		if cross > maxCross {
			maxCross = cross
		}
	}
	if count > 1 {
		total += lp.Gap * (count - 1)
	}
	if axis == AxisRow {
		return applyExplicitOrNatural(lp, total, maxCross)
	}
	return applyExplicitOrNatural(lp, maxCross, total)
}

func applyExplicitOrNatural(lp vtree.LayoutProps, naturalW, naturalH int) (int, int) {
	w, h := naturalW, naturalH
	if lp.Width.Mode != vtree.SizeAuto && lp.Width.Mode != vtree.SizeFull {
		w = ResolveSize(lp.Width, 0, naturalW)
	}
	if lp.Height.Mode != vtree.SizeAuto && lp.Height.Mode != vtree.SizeFull {
		h = ResolveSize(lp.Height, 0, naturalH)
	}
	wKnown := lp.Width.Mode == vtree.SizeCells || lp.Width.Mode == vtree.SizePercent
	hKnown := lp.Height.Mode == vtree.SizeCells || lp.Height.Mode == vtree.SizePercent
	w, h = ResolveAspect(lp.AspectRatio, w, h, wKnown, hKnown)
	w = Clamp(w, lp.MinWidth, orUnbounded(lp.MaxWidth))
	h = Clamp(h, lp.MinHeight, orUnbounded(lp.MaxHeight))
	return w, h
}

func orUnbounded(max int) int {
	if max <= 0 {
		return -1 // Clamp treats max<0 as "no cap"
	}
	return max
}

// InvalidConstraints reports a fatal layout error for malformed root constraints.
func InvalidConstraints(detail string) error {
	return tuierrors.InvalidProps("constraints", detail)
}
