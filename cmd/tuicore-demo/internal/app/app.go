// Package app is the demo application exercised by tuicore-demo: a small
// counter with two buttons and a text field, wired through pkg/engine the
// way a real tuicore application would be.
package app

import (
	"fmt"

	"github.com/nextcore/tuicore/pkg/engine"
	"github.com/nextcore/tuicore/pkg/vtree"
	"github.com/nextcore/tuicore/pkg/wire"
)

// State is the demo's whole application state.
type State struct {
	Count int
	Step  int
	Note  string
}

// New returns the engine configuration for the counter demo, seeded from
// start/step.
func New(start, step int) engine.Config[State] {
	return engine.Config[State]{
		InitialState: State{Count: start, Step: step, Note: "ready"},
	}
}

// View builds the VTree for the current state. It is pure: every mutation
// goes through eng.Update from a callback prop, never directly.
func View(eng *engine.Engine[State]) engine.ViewFunc[State] {
	return func(s State) *vtree.VNode {
		return vtree.Column(vtree.ColumnProps{
			LayoutProps: vtree.LayoutProps{
				Width:   vtree.Full(),
				Height:  vtree.Full(),
				Padding: vtree.Edges{Top: 1, Right: 2, Bottom: 1, Left: 2},
				Gap:     1,
			},
		},
			vtree.Text(fmt.Sprintf("count: %d", s.Count)),
			vtree.Text(s.Note),
			vtree.Row(vtree.RowProps{LayoutProps: vtree.LayoutProps{Gap: 2}},
				&vtree.VNode{
					Kind: vtree.KindButton,
					ID:   "decrement",
					Props: vtree.ButtonProps{
						Label: "-",
						OnPress: func() {
							eng.Update(func(s State) State {
								s.Count -= s.Step
								s.Note = "decremented"
								return s
							})
						},
					},
				},
				&vtree.VNode{
					Kind: vtree.KindButton,
					ID:   "increment",
					Props: vtree.ButtonProps{
						Label: "+",
						OnPress: func() {
							eng.Update(func(s State) State {
								s.Count += s.Step
								s.Note = "incremented"
								return s
							})
						},
					},
				},
				&vtree.VNode{
					Kind: vtree.KindButton,
					ID:   "quit",
					Props: vtree.ButtonProps{
						Label:   "quit",
						OnPress: eng.Stop,
					},
				},
			),
		)
	}
}

// Script returns a canned sequence of encoded event batches that drive the
// demo through a resize, arrow-key focus moves, activations, and a press of
// the quit button — enough to exercise reconciliation, layout, focus, and
// input routing in one run. The first committed frame already focuses
// "decrement", the first focusable.
func Script(cols, rows int) [][]byte {
	key := func(code uint32) []byte {
		return wire.Encode(wire.Batch{Events: []wire.Event{
			{Kind: wire.KindKey, KeyCode: code, Action: wire.KeyDown},
		}})
	}
	resize := wire.Encode(wire.Batch{Events: []wire.Event{
		{Kind: wire.KindResize, Cols: uint32(cols), Rows: uint32(rows)},
	}})

	return [][]byte{
		resize,
		key(wire.KeyCodeDown),  // focus "increment"
		key(wire.KeyCodeEnter), // activate it
		key(wire.KeyCodeEnter), // activate it again
		key(wire.KeyCodeDown),  // focus "quit"
		key(wire.KeyCodeSpace), // activate it, stopping the engine
	}
}
