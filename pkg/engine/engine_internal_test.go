package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextcore/tuicore/pkg/reconciler"
	"github.com/nextcore/tuicore/pkg/tuierrors"
	"github.com/nextcore/tuicore/pkg/vtree"
)

type noopBackend struct{ caps Caps }

func (b *noopBackend) Start() error                           { return nil }
func (b *noopBackend) Stop()                                  {}
func (b *noopBackend) Dispose()                               {}
func (b *noopBackend) GetCaps() Caps                          { return b.caps }
func (b *noopBackend) PollEvents() (*BackendEventBatch, bool) { return nil, false }
func (b *noopBackend) RequestFrame(drawlist []byte) error     { return nil }
func (b *noopBackend) PostUserEvent(tag string, payload any)  {}

type blankState struct{}

// TestRender_UpdateDuringViewIsFatal exercises the UPDATE_DURING_RENDER guard
// (§5, §7): a view function must be a pure projection of state, so calling
// Update from inside it is rejected rather than silently queued or applied.
func TestRender_UpdateDuringViewIsFatal(t *testing.T) {
	var updateErr error
	var eng *Engine[blankState]
	cfg := Config[blankState]{Backend: &noopBackend{caps: Caps{Cols: 10, Rows: 5}}}
	eng = NewEngine(cfg, func(s blankState) *vtree.VNode {
		updateErr = eng.Update(func(s blankState) blankState { return s })
		return vtree.Text("x")
	})

	err := eng.render(0)
	require.NoError(t, err, "the malformed Update call must not itself fail the render")

	require.Error(t, updateErr)
	var ee *tuierrors.EngineError
	require.ErrorAs(t, updateErr, &ee)
	assert.Equal(t, tuierrors.KindUpdateDuringRender, ee.Code)
}

// TestStart_ReentrantCallIsFatal covers the REENTRANT_CALL guard: Start must
// refuse a second invocation on an already-started engine rather than spin
// up a second turn loop alongside the first.
func TestStart_ReentrantCallIsFatal(t *testing.T) {
	cfg := Config[blankState]{Backend: &noopBackend{caps: Caps{Cols: 10, Rows: 5}}}
	eng := NewEngine(cfg, func(s blankState) *vtree.VNode { return vtree.Text("x") })

	eng.started = true // simulate a Start already in flight, without blocking this goroutine on the real loop

	err := eng.Start()
	require.Error(t, err)
	var ee *tuierrors.EngineError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, tuierrors.KindReentrantCall, ee.Code)
}

// TestApplyScrollOverrides_OverridesOnlyMatchingInstance confirms the
// wheel-scroll persistence mechanism only rewrites the VNode it targets,
// leaving every other node (including ones the override map has no entry
// for) untouched.
func TestApplyScrollOverrides_OverridesOnlyMatchingInstance(t *testing.T) {
	overrides := map[reconciler.InstanceID]scrollOverride{
		2: {x: 3, y: 7},
	}
	get := func(id reconciler.InstanceID) (int, int, bool) {
		o, ok := overrides[id]
		return o.x, o.y, ok
	}

	child := &reconciler.Instance{
		ID:   2,
		Node: &vtree.VNode{Kind: vtree.KindBox, Props: vtree.BoxProps{}},
	}
	untouched := &reconciler.Instance{
		ID:   3,
		Node: &vtree.VNode{Kind: vtree.KindBox, Props: vtree.BoxProps{}},
	}
	root := &reconciler.Instance{
		ID:       1,
		Node:     &vtree.VNode{Kind: vtree.KindColumn, Props: vtree.ColumnProps{}},
		Children: []*reconciler.Instance{child, untouched},
	}

	out := applyScrollOverrides(root, get)

	got := out.Children[0].Node.Props.(vtree.BoxProps)
	assert.Equal(t, 3, got.ScrollX)
	assert.Equal(t, 7, got.ScrollY)

	stillZero := out.Children[1].Node.Props.(vtree.BoxProps)
	assert.Equal(t, 0, stillZero.ScrollX)
	assert.Equal(t, 0, stillZero.ScrollY)
}
