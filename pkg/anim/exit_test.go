package anim_test

import (
	"testing"

	"github.com/nextcore/tuicore/pkg/anim"
	"github.com/nextcore/tuicore/pkg/layout"
	"github.com/nextcore/tuicore/pkg/reconciler"
	"github.com/stretchr/testify/require"
)

func TestExitTransitionCancelsOnReappearance(t *testing.T) {
	r := anim.NewExitRegistry()
	rect := layout.Rect{X: 0, Y: 0, W: 10, H: 1}
	r.Begin(reconciler.InstanceID(7), "parent/k", rect, nil, 200, 10)
	require.True(t, r.Active())

	cancelled, ok := r.CancelForLineage("parent/k")
	require.True(t, ok)
	require.Equal(t, reconciler.InstanceID(7), cancelled)
	require.False(t, r.Active())
}

func TestExitTransitionDifferentLineageDoesNotCancel(t *testing.T) {
	r := anim.NewExitRegistry()
	rect := layout.Rect{X: 0, Y: 0, W: 10, H: 1}
	r.Begin(reconciler.InstanceID(7), "parentA/k", rect, nil, 200, 10)

	_, ok := r.CancelForLineage("parentB/k")
	require.False(t, ok)
	require.True(t, r.Active())
}

func TestExitTransitionFinishesAfterDuration(t *testing.T) {
	r := anim.NewExitRegistry()
	rect := layout.Rect{X: 0, Y: 0, W: 10, H: 1}
	r.Begin(reconciler.InstanceID(1), "k", rect, nil, 200, 0)

	require.Empty(t, r.Step(100))
	finished := r.Step(250)
	require.Equal(t, []reconciler.InstanceID{1}, finished)
	require.False(t, r.Active())
}
