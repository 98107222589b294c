package input_test

import (
	"testing"

	"github.com/nextcore/tuicore/pkg/input"
	"github.com/stretchr/testify/require"
)

func TestChordProgression(t *testing.T) {
	m := input.NewChordMatcher(map[string]input.Bindings{
		"default": {"g g": "hit"},
	}, "default")

	r1 := m.Feed("g")
	require.False(t, r1.Matched)
	require.Equal(t, "g", m.PendingChord())
	require.True(t, r1.Invalidate)

	r2 := m.Feed("g")
	require.True(t, r2.Matched)
	require.Equal(t, "hit", r2.Action)
	require.Equal(t, "", m.PendingChord())
}

func TestChordNonPrefixClearsPending(t *testing.T) {
	m := input.NewChordMatcher(map[string]input.Bindings{
		"default": {"g g": "hit"},
	}, "default")
	m.Feed("g")
	r := m.Feed("x")
	require.False(t, r.Matched)
	require.Equal(t, "", m.PendingChord())
	require.True(t, r.Invalidate)
}

func TestChordFallsBackToDefaultMode(t *testing.T) {
	m := input.NewChordMatcher(map[string]input.Bindings{
		"default": {"ctrl+s": "save"},
		"insert":  {},
	}, "default")
	m.SetMode("insert")
	r := m.Feed("ctrl+s")
	require.True(t, r.Matched)
	require.Equal(t, "save", r.Action)
}
