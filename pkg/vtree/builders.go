package vtree

// Builder helpers provide plain functions returning *VNode in place of a
// per-kind literal constructor, since VNode here is a single tagged struct
// rather than one Go type per kind.

// Text creates a text leaf.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Props: TextProps{Content: content}}
}

// Row creates a horizontal flex stack.
func Row(props RowProps, children...*VNode) *VNode {
	return &VNode{Kind: KindRow, Props: props, Children: children}
}

// Column creates a vertical flex stack.
func Column(props ColumnProps, children...*VNode) *VNode {
	return &VNode{Kind: KindColumn, Props: props, Children: children}
}

// Box creates a plain decorated container around at most one child.
func Box(props BoxProps, child *VNode) *VNode {
	var children []*VNode
	if child != nil {
		children = []*VNode{child}
	}
	return &VNode{Kind: KindBox, Props: props, Children: children}
}

// Keyed returns a copy of node carrying the given sibling key.
func Keyed(key any, node *VNode) *VNode {
	if node == nil {
		return nil
	}
	clone := *node
	clone.Key = key
	return &clone
}

// WithID returns a copy of node carrying the given user-stable id.
func WithID(id string, node *VNode) *VNode {
	if node == nil {
		return nil
	}
	clone := *node
	clone.ID = id
	return &clone
}
