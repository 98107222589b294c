package vtree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nextcore/tuicore/pkg/vtree"
)

func TestValidate_UnknownKind(t *testing.T) {
	node := &vtree.VNode{Kind: vtree.Kind(9999)}
	err := vtree.Validate(node)
	assert.Error(t, err)
}

func TestValidate_NegativePadding(t *testing.T) {
	node := vtree.Box(vtree.BoxProps{
		LayoutProps: vtree.LayoutProps{Padding: vtree.Edges{Top: -1}},
	}, nil)
	err := vtree.Validate(node)
	assert.Error(t, err)
}

func TestValidate_ValidTree(t *testing.T) {
	tree := vtree.Row(vtree.RowProps{}, vtree.Text("hello"), vtree.Text("world"))
	assert.NoError(t, vtree.ValidateTree(tree))
}

func TestValidate_DropdownSelectedIdxOutOfRange(t *testing.T) {
	node := &vtree.VNode{Kind: vtree.KindDropdown, Props: vtree.DropdownProps{
		Options:     []string{"a", "b"},
		SelectedIdx: 5,
	}}
	assert.Error(t, vtree.Validate(node))
}

func TestValidate_NilPropagation(t *testing.T) {
	assert.NoError(t, vtree.ValidateTree(nil))
}

func TestComparable(t *testing.T) {
	assert.True(t, vtree.Comparable("a"))
	assert.True(t, vtree.Comparable(42))
	assert.False(t, vtree.Comparable([]int{1, 2}))
	assert.True(t, vtree.Comparable(nil))
}
