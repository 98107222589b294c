package engine_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextcore/tuicore/pkg/engine"
	"github.com/nextcore/tuicore/pkg/vtree"
	"github.com/nextcore/tuicore/pkg/wire"
)

// scriptedBackend replays a fixed sequence of encoded event batches, one per
// PollEvents call, and records every requested drawlist.
type scriptedBackend struct {
	caps   engine.Caps
	queue  [][]byte
	pos    int
	frames [][]byte
}

func (b *scriptedBackend) Start() error { return nil }
func (b *scriptedBackend) Stop()        {}
func (b *scriptedBackend) Dispose()     {}

func (b *scriptedBackend) GetCaps() engine.Caps { return b.caps }

func (b *scriptedBackend) PollEvents() (*engine.BackendEventBatch, bool) {
	if b.pos >= len(b.queue) {
		return nil, false
	}
	buf := b.queue[b.pos]
	b.pos++
	return &engine.BackendEventBatch{Bytes: buf}, true
}

func (b *scriptedBackend) RequestFrame(drawlist []byte) error {
	b.frames = append(b.frames, drawlist)
	return nil
}

func (b *scriptedBackend) PostUserEvent(tag string, payload any) {}

func keyBatch(code uint32) []byte {
	return wire.Encode(wire.Batch{Events: []wire.Event{
		{Kind: wire.KindKey, KeyCode: code, Action: wire.KeyDown},
	}})
}

func resizeBatch(cols, rows int) []byte {
	return wire.Encode(wire.Batch{Events: []wire.Event{
		{Kind: wire.KindResize, Cols: uint32(cols), Rows: uint32(rows)},
	}})
}

type counterState struct {
	N int
}

func counterView(eng *engine.Engine[counterState]) engine.ViewFunc[counterState] {
	return func(s counterState) *vtree.VNode {
		return vtree.Column(vtree.ColumnProps{},
			vtree.Text(fmt.Sprintf("%d", s.N)),
			&vtree.VNode{
				Kind: vtree.KindButton,
				ID:   "inc",
				Props: vtree.ButtonProps{
					Label: "+",
					OnPress: func() {
						eng.Update(func(s counterState) counterState {
							s.N++
							return s
						})
					},
				},
			},
			&vtree.VNode{
				Kind:  vtree.KindButton,
				ID:    "quit",
				Props: vtree.ButtonProps{Label: "q", OnPress: eng.Stop},
			},
		)
	}
}

// TestEngine_ArrowEnterRoutesToButtonAndUpdatesState exercises focus
// navigation (Down moves to the next focusable in the zone) and the
// focused-widget direct-callback path (Enter presses the focused Button),
// end to end through Start. The root zone's Finalize fallback already
// focuses the first focusable (here, "inc") as of the first committed
// frame, so Enter presses it directly.
func TestEngine_ArrowEnterRoutesToButtonAndUpdatesState(t *testing.T) {
	backend := &scriptedBackend{
		caps: engine.Caps{Cols: 20, Rows: 10},
		queue: [][]byte{
			resizeBatch(20, 10),
			keyBatch(wire.KeyCodeEnter), // "inc" already focused: press it
			keyBatch(wire.KeyCodeDown),  // move focus to "quit"
			keyBatch(wire.KeyCodeSpace), // press it, stopping the engine
		},
	}

	var eng *engine.Engine[counterState]
	eng = engine.NewEngine(engine.Config[counterState]{Backend: backend}, nil)
	eng.SetView(counterView(eng))

	require.NoError(t, eng.Start())
	assert.Equal(t, 1, eng.State().N)
	assert.NotEmpty(t, backend.frames)
}

// TestEngine_BatchedUpdatesApplyOnceInOrder confirms that multiple Update
// calls queued from callbacks fired within the same event batch are applied
// exactly once each, in request order, rather than per-event. "inc" is
// already focused as of the first committed frame (see the test above), so
// both presses land on it directly.
func TestEngine_BatchedUpdatesApplyOnceInOrder(t *testing.T) {
	multiPress := wire.Encode(wire.Batch{Events: []wire.Event{
		{Kind: wire.KindKey, KeyCode: wire.KeyCodeEnter, Action: wire.KeyDown}, // press "inc"
		{Kind: wire.KindKey, KeyCode: wire.KeyCodeEnter, Action: wire.KeyDown}, // press it again
	}})

	backend := &scriptedBackend{
		caps: engine.Caps{Cols: 20, Rows: 10},
		queue: [][]byte{
			resizeBatch(20, 10),
			multiPress,
			keyBatch(wire.KeyCodeDown),  // focus "quit"
			keyBatch(wire.KeyCodeSpace), // stop
		},
	}

	var eng *engine.Engine[counterState]
	eng = engine.NewEngine(engine.Config[counterState]{Backend: backend}, nil)
	eng.SetView(counterView(eng))

	require.NoError(t, eng.Start())
	assert.Equal(t, 2, eng.State().N, "two queued Update calls from one batch must both land, exactly once each")
}

// TestEngine_FocusChangeFiresAfterFrameIsRequested checks the §4.7 step-7
// ordering: OnFocusChange subscribers run only after RequestFrame has
// already been called for the frame that reflects the new focus, not
// mid-commit. The very first committed frame already produces a focus
// change (Finalize's empty-state fallback settles on "inc"), so that frame
// alone is enough to exercise the ordering.
func TestEngine_FocusChangeFiresAfterFrameIsRequested(t *testing.T) {
	backend := &scriptedBackend{
		caps: engine.Caps{Cols: 20, Rows: 10},
		queue: [][]byte{
			resizeBatch(20, 10),
			keyBatch(wire.KeyCodeDown),  // move focus to "quit"
			keyBatch(wire.KeyCodeSpace), // press it, stopping the engine
		},
	}

	var eng *engine.Engine[counterState]
	eng = engine.NewEngine(engine.Config[counterState]{Backend: backend}, nil)
	eng.SetView(counterView(eng))

	var framesAtFirstFocusChange int
	unsub := eng.OnFocusChange(func(engine.FocusChangeEvent) {
		if framesAtFirstFocusChange == 0 {
			framesAtFirstFocusChange = len(backend.frames)
		}
	})
	defer unsub()

	require.NoError(t, eng.Start())
	require.Greater(t, framesAtFirstFocusChange, 0, "a frame must already have been requested by the time OnFocusChange fires")
}
