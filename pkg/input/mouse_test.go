package input_test

import (
	"testing"
	"time"

	"github.com/nextcore/tuicore/pkg/input"
	"github.com/nextcore/tuicore/pkg/layout"
	"github.com/nextcore/tuicore/pkg/reconciler"
	"github.com/nextcore/tuicore/pkg/wire"
	"github.com/stretchr/testify/require"
)

func button(id reconciler.InstanceID) *layout.Node {
	return &layout.Node{InstanceID: id, Rect: layout.Rect{X: 0, Y: 0, W: 5, H: 1}}
}

func TestMousePressSetsPendingFocusAndPressed(t *testing.T) {
	r := input.NewMouseRouter()
	tree := button(9)
	res := r.Route(tree, wire.Event{MouseKind: wire.MousePress, X: 1, Y: 0, Buttons: wire.ButtonLeft}, time.Now())
	require.Equal(t, input.ActionPress, res.Action)
	require.Equal(t, reconciler.InstanceID(9), res.TargetID)
	require.True(t, res.HasNextFocused)
	require.Equal(t, reconciler.InstanceID(9), res.NextFocusedID)
}

func TestMouseRightClickIsContextMenu(t *testing.T) {
	r := input.NewMouseRouter()
	tree := button(9)
	res := r.Route(tree, wire.Event{MouseKind: wire.MousePress, X: 1, Y: 0, Buttons: wire.ButtonRight}, time.Now())
	require.Equal(t, input.ActionContextMenu, res.Action)
}

func TestMouseDoubleClickWithinWindow(t *testing.T) {
	r := input.NewMouseRouter()
	tree := button(9)
	now := time.Now()

	r.Route(tree, wire.Event{MouseKind: wire.MousePress, X: 1, Y: 0, Buttons: wire.ButtonLeft}, now)
	first := r.Route(tree, wire.Event{MouseKind: wire.MouseRelease, X: 1, Y: 0}, now)
	require.False(t, first.DoubleClick)

	r.Route(tree, wire.Event{MouseKind: wire.MousePress, X: 1, Y: 0, Buttons: wire.ButtonLeft}, now.Add(100*time.Millisecond))
	second := r.Route(tree, wire.Event{MouseKind: wire.MouseRelease, X: 1, Y: 0}, now.Add(100*time.Millisecond))
	require.True(t, second.DoubleClick)
}

func TestMouseDoubleClickExpiresAfterWindow(t *testing.T) {
	r := input.NewMouseRouter()
	tree := button(9)
	now := time.Now()

	r.Route(tree, wire.Event{MouseKind: wire.MousePress, X: 1, Y: 0, Buttons: wire.ButtonLeft}, now)
	r.Route(tree, wire.Event{MouseKind: wire.MouseRelease, X: 1, Y: 0}, now)

	late := now.Add(input.DoubleClickWindow + time.Millisecond)
	r.Route(tree, wire.Event{MouseKind: wire.MousePress, X: 1, Y: 0, Buttons: wire.ButtonLeft}, late)
	res := r.Route(tree, wire.Event{MouseKind: wire.MouseRelease, X: 1, Y: 0}, late)
	require.False(t, res.DoubleClick)
}
