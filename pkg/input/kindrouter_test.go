package input_test

import (
	"testing"

	"github.com/nextcore/tuicore/pkg/input"
	"github.com/nextcore/tuicore/pkg/vtree"
	"github.com/stretchr/testify/require"
)

func TestRouteTabsCyclesWithWrap(t *testing.T) {
	var selected int
	node := &vtree.VNode{
		Kind: vtree.KindTabs,
		Props: vtree.TabsProps{
			Labels:    []string{"a", "b", "c"},
			ActiveIdx: 2,
			OnChange:  func(i int) { selected = i },
		},
	}
	handled := input.Route(input.KeyRight, node)
	require.True(t, handled)
	require.Equal(t, 0, selected)
}

func TestRouteVirtualListClampsAtEnds(t *testing.T) {
	var selected int
	node := &vtree.VNode{
		Kind: vtree.KindVirtualList,
		Props: vtree.VirtualListProps{
			ItemCount: 5, RowHeight: 1, SelectedIdx: 0,
			OnSelect: func(i int) { selected = i },
		},
	}
	input.Route(input.KeyUp, node)
	require.Equal(t, 0, selected)
}

func TestRouteDropdownOpensOnEnter(t *testing.T) {
	var opened bool
	node := &vtree.VNode{
		Kind: vtree.KindDropdown,
		Props: vtree.DropdownProps{
			Options: []string{"x", "y"}, SelectedIdx: 0,
			OnOpenChange: func(v bool) { opened = v },
		},
	}
	handled := input.Route(input.KeyEnter, node)
	require.True(t, handled)
	require.True(t, opened)
}

func TestRouteTreeExpandsOnRight(t *testing.T) {
	var toggled string
	node := &vtree.VNode{
		Kind: vtree.KindTree,
		Props: vtree.TreeProps{
			Nodes:      []vtree.TreeNodeState{{ID: "a", HasKids: true, Expanded: false}},
			SelectedID: "a",
			OnToggle:   func(id string) { toggled = id },
		},
	}
	handled := input.Route(input.KeyRight, node)
	require.True(t, handled)
	require.Equal(t, "a", toggled)
}
