package focusmgr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextcore/tuicore/pkg/focusmgr"
	"github.com/nextcore/tuicore/pkg/reconciler"
	"github.com/nextcore/tuicore/pkg/vtree"
)

func button(id string) *reconciler.Instance {
	return &reconciler.Instance{
		ID:   reconciler.InstanceID(len(id) + 1000),
		Kind: vtree.KindButton,
		Node: &vtree.VNode{Kind: vtree.KindButton, ID: id, Props: vtree.ButtonProps{Label: id}},
	}
}

func zone(id string, tabIndex int, nav vtree.ZoneNavigation, columns int, wrap bool, children ...*reconciler.Instance) *reconciler.Instance {
	return &reconciler.Instance{
		ID:   reconciler.InstanceID(len(id) + 2000),
		Kind: vtree.KindFocusZone,
		Node: &vtree.VNode{
			Kind: vtree.KindFocusZone,
			ID:   id,
			Props: vtree.FocusZoneProps{
				TabIndex: tabIndex, Navigation: nav, Columns: columns, WrapAround: wrap,
			},
		},
		Children: children,
	}
}

func root(children ...*reconciler.Instance) *reconciler.Instance {
	return &reconciler.Instance{
		ID:       1,
		Kind:     vtree.KindBox,
		Node:     &vtree.VNode{Kind: vtree.KindBox},
		Children: children,
	}
}

func TestFinalize_FallsBackToFirstFocusableOnEmptyState(t *testing.T) {
	tree := root(zone("toolbar", 0, vtree.ZoneNavigationLinear, 0, true, button("a"), button("b")))
	meta := focusmgr.CollectCommitMeta(tree)

	s := focusmgr.New()
	s.Finalize(meta)

	assert.Equal(t, focusmgr.FocusableID("a"), s.FocusedID)
	assert.Equal(t, focusmgr.ZoneID("toolbar"), s.ActiveZoneID)
}

func TestFinalize_KeepsFocusWhenStillPresent(t *testing.T) {
	tree := root(zone("toolbar", 0, vtree.ZoneNavigationLinear, 0, true, button("a"), button("b")))
	meta := focusmgr.CollectCommitMeta(tree)
	s := focusmgr.New()
	s.Finalize(meta)
	require.Equal(t, focusmgr.FocusableID("a"), s.FocusedID)

	s.RequestFocus("b")
	s.Finalize(meta)
	assert.Equal(t, focusmgr.FocusableID("b"), s.FocusedID)

	// Same committed tree again, no pending request: focus on "b" survives.
	s.Finalize(meta)
	assert.Equal(t, focusmgr.FocusableID("b"), s.FocusedID)
}

func TestFinalize_PendingFocusIgnoredWhenTargetMissing(t *testing.T) {
	tree := root(zone("toolbar", 0, vtree.ZoneNavigationLinear, 0, true, button("a")))
	meta := focusmgr.CollectCommitMeta(tree)
	s := focusmgr.New()
	s.Finalize(meta)

	s.RequestFocus("does-not-exist")
	s.Finalize(meta)
	assert.Equal(t, focusmgr.FocusableID("a"), s.FocusedID)
}

func TestMoveLinear_WrapsOnlyWhenWrapAroundSet(t *testing.T) {
	treeWrap := root(zone("z", 0, vtree.ZoneNavigationLinear, 0, true, button("a"), button("b"), button("c")))
	s := focusmgr.New()
	s.Finalize(focusmgr.CollectCommitMeta(treeWrap))
	require.Equal(t, focusmgr.FocusableID("a"), s.FocusedID)

	assert.True(t, s.MoveLinear(-1))
	assert.Equal(t, focusmgr.FocusableID("c"), s.FocusedID) // wrapped backward past the start

	treeNoWrap := root(zone("z", 0, vtree.ZoneNavigationLinear, 0, false, button("a"), button("b"), button("c")))
	s2 := focusmgr.New()
	s2.Finalize(focusmgr.CollectCommitMeta(treeNoWrap))
	assert.False(t, s2.MoveLinear(-1)) // no wraparound: stays put, reports no movement
	assert.Equal(t, focusmgr.FocusableID("a"), s2.FocusedID)
}

func TestMoveGrid_StepsByColumnsOnVerticalMove(t *testing.T) {
	tree := root(zone("grid", 0, vtree.ZoneNavigationGrid, 3, false,
		button("0"), button("1"), button("2"),
		button("3"), button("4"), button("5"),
	))
	s := focusmgr.New()
	s.Finalize(focusmgr.CollectCommitMeta(tree))
	require.Equal(t, focusmgr.FocusableID("0"), s.FocusedID)

	assert.True(t, s.MoveGrid(1, 0))
	assert.Equal(t, focusmgr.FocusableID("1"), s.FocusedID)

	assert.True(t, s.MoveGrid(0, 1))
	assert.Equal(t, focusmgr.FocusableID("4"), s.FocusedID)

	assert.False(t, s.MoveGrid(0, 1)) // would land past the last row: clamped, not wrapped
}

func TestCycleZone_OrdersByTabIndexThenFirstEncountered(t *testing.T) {
	tree := root(
		zone("second", 5, vtree.ZoneNavigationLinear, 0, false, button("s1")),
		zone("first", 1, vtree.ZoneNavigationLinear, 0, false, button("f1")),
		zone("tied", 1, vtree.ZoneNavigationLinear, 0, false, button("t1")),
	)
	s := focusmgr.New()
	s.Finalize(focusmgr.CollectCommitMeta(tree))
	require.Equal(t, focusmgr.ZoneID("second"), s.ActiveZoneID) // first zone encountered, before reorder by tab

	assert.True(t, s.CycleZone(true))
	assert.Equal(t, focusmgr.ZoneID("first"), s.ActiveZoneID) // tabIndex 1, first-encountered among ties

	assert.True(t, s.CycleZone(true))
	assert.Equal(t, focusmgr.ZoneID("tied"), s.ActiveZoneID) // tabIndex 1, second among ties

	assert.True(t, s.CycleZone(true))
	assert.Equal(t, focusmgr.ZoneID("second"), s.ActiveZoneID) // tabIndex 5, wraps back around
}

func trap(id string, active bool, initial, returnTo string, children ...*reconciler.Instance) *reconciler.Instance {
	return &reconciler.Instance{
		ID:   reconciler.InstanceID(len(id) + 3000),
		Kind: vtree.KindFocusTrap,
		Node: &vtree.VNode{
			Kind: vtree.KindFocusTrap,
			ID:   id,
			Props: vtree.FocusTrapProps{
				Active: active, InitialFocus: initial, ReturnFocusTo: returnTo,
			},
		},
		Children: children,
	}
}

func TestFinalize_TrapActivationFocusesInitialFocusAndOverridesPending(t *testing.T) {
	background := zone("bg", 0, vtree.ZoneNavigationLinear, 0, true, button("bg1"))
	s := focusmgr.New()
	s.Finalize(focusmgr.CollectCommitMeta(root(background)))
	require.Equal(t, focusmgr.FocusableID("bg1"), s.FocusedID)

	dialog := trap("dialog", true, "confirm", "bg1", button("cancel"), button("confirm"))
	s.RequestFocus("cancel") // a pending request racing the trap activation
	s.Finalize(focusmgr.CollectCommitMeta(root(background, dialog)))

	assert.Equal(t, focusmgr.FocusableID("confirm"), s.FocusedID) // trap's initialFocus wins
	assert.Equal(t, focusmgr.ZoneID("dialog"), s.ActiveZoneID)
	assert.Equal(t, []focusmgr.ZoneID{"dialog"}, s.TrapStack)
}

func TestFinalize_TrapDeactivationRestoresReturnFocusTo(t *testing.T) {
	background := zone("bg", 0, vtree.ZoneNavigationLinear, 0, true, button("bg1"))
	dialogActive := trap("dialog", true, "confirm", "bg1", button("cancel"), button("confirm"))
	s := focusmgr.New()
	s.Finalize(focusmgr.CollectCommitMeta(root(background, dialogActive)))
	require.Equal(t, focusmgr.FocusableID("confirm"), s.FocusedID)

	dialogClosed := trap("dialog", false, "confirm", "bg1")
	s.Finalize(focusmgr.CollectCommitMeta(root(background, dialogClosed)))

	assert.Equal(t, focusmgr.FocusableID("bg1"), s.FocusedID)
	assert.Empty(t, s.TrapStack)
}
