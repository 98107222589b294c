// Package input implements the frame-driven input router: the layer/overlay
// escape router, per-kind widget routers, the keybinding chord matcher,
// mouse hit-testing and click/double-click state machine, and wheel
// hit-testing through nested scroll containers.
package input

import "github.com/nextcore/tuicore/pkg/layout"

// HitTest walks the LayoutTree and returns the deepest (topmost-painted)
// node whose rect contains (x,y). Later-declared siblings paint over
// earlier ones, so among overlapping children at the same depth the last
// match wins.
func HitTest(root *layout.Node, x, y int32) *layout.Node {
	if root == nil || !contains(root.Rect, x, y) {
		return nil
	}
	var best *layout.Node
	for _, c := range root.Children {
		if hit := HitTest(c, x, y); hit != nil {
			best = hit
		}
	}
	if best != nil {
		return best
	}
	return root
}

// Path returns every node from root to the deepest hit at (x,y), root first.
func Path(root *layout.Node, x, y int32) []*layout.Node {
	if root == nil || !contains(root.Rect, x, y) {
		return nil
	}
	path := []*layout.Node{root}
	for i := len(root.Children) - 1; i >= 0; i-- {
		if sub := Path(root.Children[i], x, y); sub != nil {
			path = append(path, sub...)
			break
		}
	}
	return path
}

func contains(r layout.Rect, x, y int32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
