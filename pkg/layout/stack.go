package layout

import "github.com/nextcore/tuicore/pkg/vtree"

// childFrame collects everything the stack solver needs about one child
// across its measure/basis/grow/shrink/cross passes.
type childFrame struct {
	ref *childRef
	lp vtree.LayoutProps
	mainSize int
	crossSize int
	minMain int
	maxMain int // 0 means unbounded, matching DistributeClamped's convention
}

// solveStack lays out children of a row/column container along mainAxis,
// implementing the measure/basis/grow/shrink/cross/justify passes. containerLP is the
// container's own resolved LayoutProps, which is where Gap and Justify come
// from — not from any child.
func (s *solver) solveStack(mainAxis Axis, containerLP vtree.LayoutProps, contentW, contentH int, children []*childRef) ([]*Node, error) {
	mainBound, crossBound := contentW, contentH
	if mainAxis == AxisColumn {
		mainBound, crossBound = contentH, contentW
	}

	frames := make([]*childFrame, 0, len(children))
	var absoluteChildren []*childRef

	for _, c := range children {
		lp := layoutPropsOf(c.node.Props)
		if lp.Position == vtree.PositionAbsolute {
			absoluteChildren = append(absoluteChildren, c)
			continue
		}
		frames = append(frames, &childFrame{ref: c, lp: lp})
	}

	// 1. Measure every child with unconstrained main axis, parent's cross bound.
	naturalMain := make([]int, len(frames))
	naturalCross := make([]int, len(frames))
	for i, f := range frames {
		mw, mh := s.measureNatural(f.ref, crossBound, mainAxis)
		if mainAxis == AxisRow {
			naturalMain[i], naturalCross[i] = mw, mh
		} else {
			naturalMain[i], naturalCross[i] = mh, mw
		}
	}

	// 2. Basis phase.
	gap := containerLP.Gap
	totalGap := 0
	if len(frames) > 1 {
		totalGap = gap * (len(frames) - 1)
	}

	for i, f := range frames {
		basis := naturalMain[i]
		if f.lp.FlexBasis != nil {
			basis = ResolveSize(*f.lp.FlexBasis, mainBound, naturalMain[i])
		} else if explicitMain, ok := explicitMainSize(f.lp, mainAxis); ok {
			basis = ResolveSize(explicitMain, mainBound, naturalMain[i])
		}
		minMain, maxMain := mainMinMax(f.lp, mainAxis)
		f.minMain = minMain
		f.maxMain = maxMain
		f.mainSize = Clamp(basis, minMain, orUnbounded(maxMain))
	}

	totalMain := totalGap
	for _, f := range frames {
		totalMain += f.mainSize
	}
	free := mainBound - totalMain

	// 3. Grow phase.
	if free > 0 {
		weights := make([]int, len(frames))
		caps := make([]int, len(frames))
		anyFlex := false
		for i, f := range frames {
			weights[i] = f.lp.Flex
			if f.lp.Flex > 0 {
				anyFlex = true
			}
			if f.maxMain > 0 {
				c := f.maxMain - f.mainSize
				if c < 0 {
					c = 0
				}
				caps[i] = c
			} else {
				caps[i] = 0 // unbounded, per DistributeClamped's convention
			}
		}
		if anyFlex {
			grown := DistributeClamped(free, weights, caps)
			for i, f := range frames {
				f.mainSize += grown[i]
			}
		}
	}

	// 4. Shrink phase.
	if free < 0 {
		overflow := -free
		weights := make([]int, len(frames))
		caps := make([]int, len(frames))
		anyShrink := false
		for i, f := range frames {
			weights[i] = f.lp.FlexShrink
			if f.lp.FlexShrink > 0 {
				anyShrink = true
			}
			c := f.mainSize - f.minMain
			if c < 0 {
				c = 0
			}
			caps[i] = c
		}
		if anyShrink {
			shrink := DistributeClamped(overflow, weights, caps)
			for i, f := range frames {
				f.mainSize -= shrink[i]
				if f.mainSize < f.minMain {
					f.mainSize = f.minMain
				}
			}
		}
	}

	// 5. Cross axis.
	for i, f := range frames {
		align := f.lp.Align
		crossExplicit, hasCross := explicitCrossSize(f.lp, mainAxis)
		switch {
		case hasCross:
			f.crossSize = ResolveSize(crossExplicit, crossBound, naturalCross[i])
		case align == vtree.AlignStretch:
			f.crossSize = crossBound
		default:
			f.crossSize = naturalCross[i]
		}
		if f.crossSize > crossBound {
			f.crossSize = crossBound
		}
	}

	// Recompute total main after grow/shrink for justify.
	totalMain = totalGap
	for _, f := range frames {
		totalMain += f.mainSize
	}
	remaining := mainBound - totalMain
	if remaining < 0 {
		remaining = 0
	}

	leading, between := justifySpacing(containerLP.Justify, remaining, len(frames), gap)

	// Place children.
	nodes := make([]*Node, 0, len(children))
	mainCursor := leading
	for i, f := range frames {
		crossOffset := crossAlignOffset(f.lp.Align, crossBound, f.crossSize)
		var rect Rect
		if mainAxis == AxisRow {
			rect = Rect{
				X: int32(s.originX + mainCursor),
				Y: int32(s.originY + crossOffset),
				W: int32(f.mainSize),
				H: int32(f.crossSize),
			}
		} else {
			rect = Rect{
				X: int32(s.originX + crossOffset),
				Y: int32(s.originY + mainCursor),
				W: int32(f.crossSize),
				H: int32(f.mainSize),
			}
		}
		childNode, err := s.layoutChildAt(f.ref, rect)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, childNode)
		mainCursor += f.mainSize
		if i < len(frames)-1 {
			mainCursor += gap + between
		}
	}

	// Absolute children: positioned against the parent content rect, don't
	// participate in flow sizing.
	for _, c := range absoluteChildren {
		node, err := s.layoutAbsoluteChild(c, contentW, contentH)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	return nodes, nil
}

func explicitMainSize(lp vtree.LayoutProps, axis Axis) (vtree.Size, bool) {
	var sz vtree.Size
	if axis == AxisRow {
		sz = lp.Width
	} else {
		sz = lp.Height
	}
	if sz.Mode == vtree.SizeAuto {
		return sz, false
	}
	return sz, true
}

func explicitCrossSize(lp vtree.LayoutProps, axis Axis) (vtree.Size, bool) {
	var sz vtree.Size
	if axis == AxisRow {
		sz = lp.Height
	} else {
		sz = lp.Width
	}
	if sz.Mode == vtree.SizeAuto {
		return sz, false
	}
	return sz, true
}

func mainMinMax(lp vtree.LayoutProps, axis Axis) (min, max int) {
	if axis == AxisRow {
		return lp.MinWidth, lp.MaxWidth
	}
	return lp.MinHeight, lp.MaxHeight
}

func crossAlignOffset(align vtree.Align, bound, size int) int {
	switch align {
	case vtree.AlignCenter:
		return (bound - size) / 2
	case vtree.AlignEnd:
		return bound - size
	default:
		return 0
	}
}

// justifySpacing computes leading padding and the extra per-gap spacing for
// MainAxisAlignment-equivalent justify modes, using the
// same deterministic Distribute rule for integer gap distribution.
func justifySpacing(justify vtree.Justify, remaining, count int, baseGap int) (leading, betweenExtra int) {
	if count == 0 {
		return 0, 0
	}
	switch justify {
	case vtree.JustifyCenter:
		return remaining / 2, 0
	case vtree.JustifyEnd:
		return remaining, 0
	case vtree.JustifyBetween:
		if count <= 1 {
			return 0, 0
		}
		shares := Distribute(remaining, onesOf(count-1))
		return 0, shares[0]
	case vtree.JustifyAround:
		shares := Distribute(remaining, onesOf(count))
		half := shares[0] / 2
		return half, shares[0] - half
	case vtree.JustifyEvenly:
		shares := Distribute(remaining, onesOf(count+1))
		return shares[0], shares[0]
	default: // JustifyStart
		return 0, 0
	}
}

func onesOf(n int) []int {
	if n <= 0 {
		return nil
	}
	w := make([]int, n)
	for i := range w {
		w[i] = 1
	}
	return w
}
