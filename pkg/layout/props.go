package layout

import "github.com/nextcore/tuicore/pkg/vtree"

// layoutPropsOf extracts the common LayoutProps embedded in a node's
// kind-specific Props. Returns the zero value for nodes with nil Props.
func layoutPropsOf(props vtree.Props) vtree.LayoutProps {
	return vtree.LayoutPropsOf(props)
}

func textOf(props vtree.Props) (vtree.TextProps, bool) {
	p, ok := props.(vtree.TextProps)
	return p, ok
}

func gridOf(props vtree.Props) (vtree.GridProps, bool) {
	p, ok := props.(vtree.GridProps)
	return p, ok
}
