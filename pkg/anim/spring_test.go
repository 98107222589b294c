package anim_test

import (
	"testing"

	"github.com/nextcore/tuicore/pkg/anim"
	"github.com/stretchr/testify/require"
)

func TestSpringSettlesAtTarget(t *testing.T) {
	cfg := anim.SpringConfig{Stiffness: 170, Damping: 26, Mass: 1, RestDelta: 0.001, RestSpeed: 0.001, MaxDeltaMs: 1.0 / 60}
	s := anim.NewSpring(cfg, 0, 1)
	for range 600 {
		if s.AtRest() {
			break
		}
		s.Step(16)
	}
	require.True(t, s.AtRest())
	require.InDelta(t, 1.0, s.Value, 0.01)
}

func TestSpringInvalidConfigSnaps(t *testing.T) {
	s := anim.NewSpring(anim.SpringConfig{Mass: 0}, 0, 5)
	s.Step(16)
	require.Equal(t, 5.0, s.Value)
	require.Equal(t, 0.0, s.Velocity)
	require.True(t, s.AtRest())
}

func TestSpringRetarget(t *testing.T) {
	cfg := anim.SpringConfig{Stiffness: 170, Damping: 26, Mass: 1, RestDelta: 0.01, RestSpeed: 0.01, MaxDeltaMs: 1.0 / 60}
	s := anim.NewSpring(cfg, 0, 1)
	s.Step(50)
	mid := s.Value
	s.SetTarget(2)
	require.Equal(t, mid, s.Value, "retargeting must not jump the value")
	require.Equal(t, 2.0, s.Target)
}
