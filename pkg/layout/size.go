package layout

import "github.com/nextcore/tuicore/pkg/vtree"

// ResolveSize turns a vtree.Size spec into a concrete cell count, given the
// parent's inner size and the node's measured natural size.
func ResolveSize(spec vtree.Size, parentInner, natural int) int {
	switch spec.Mode {
	case vtree.SizeFull:
		return parentInner
	case vtree.SizeCells:
		return spec.Cells
	case vtree.SizePercent:
		return (parentInner * spec.Percent) / 100 // floored per the contract
	default: // vtree.SizeAuto
		return natural
	}
}

// ResolveAspect derives the unset dimension from the set one when exactly one
// of w/h is known and aspectRatio is positive.
func ResolveAspect(aspectRatio float64, w, h int, wKnown, hKnown bool) (int, int) {
	if aspectRatio <= 0 || (wKnown && hKnown) || (!wKnown && !hKnown) {
		return w, h
	}
	if wKnown {
		return w, int(float64(w) / aspectRatio)
	}
	return int(float64(h) * aspectRatio), h
}
