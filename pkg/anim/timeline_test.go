package anim_test

import (
	"math"
	"testing"

	"github.com/nextcore/tuicore/pkg/anim"
	"github.com/stretchr/testify/require"
)

func TestTimelineSamplesLinearSegment(t *testing.T) {
	tl := &anim.Timeline{Segments: []anim.Segment{{From: 0, To: 10, DurationMs: 100, Easing: anim.Linear}}}
	require.Equal(t, 0.0, tl.Sample(0))
	require.InDelta(t, 5.0, tl.Sample(50), 1e-9)
	require.Equal(t, 10.0, tl.Sample(100))
}

func TestTimelineLoopsModuloTotal(t *testing.T) {
	tl := &anim.Timeline{
		Segments: []anim.Segment{{From: 0, To: 10, DurationMs: 100, Easing: anim.Linear}},
		Loop:     true,
	}
	require.InDelta(t, 5.0, tl.Sample(150), 1e-9)
}

func TestTimelineZeroDurationResolvesImmediately(t *testing.T) {
	tl := &anim.Timeline{Segments: []anim.Segment{{From: 0, To: 1, DurationMs: 0}}}
	require.Equal(t, 1.0, tl.Sample(0))
	require.True(t, tl.Done(0))
}

func TestTimelineNonFiniteElapsedResolvesToInitial(t *testing.T) {
	tl := &anim.Timeline{Segments: []anim.Segment{{From: 3, To: 9, DurationMs: 100}}}
	require.Equal(t, 3.0, tl.Sample(math.NaN()))
	require.Equal(t, 3.0, tl.Sample(math.Inf(1)))
}

func TestTimelineDoneAfterTotal(t *testing.T) {
	tl := &anim.Timeline{Segments: []anim.Segment{{From: 0, To: 1, DurationMs: 100}}}
	require.False(t, tl.Done(99))
	require.True(t, tl.Done(100))
	require.Equal(t, 1.0, tl.Sample(250))
}
