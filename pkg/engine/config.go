package engine

import (
	"log/slog"

	"github.com/nextcore/tuicore/pkg/input"
	"github.com/nextcore/tuicore/pkg/vtree"
)

// ViewFunc is the application's pure view function: state in, VTree out.
// It must not read or write anything the engine doesn't hand it and must
// not call any Engine method — doing so is the UPDATE_DURING_RENDER case
// §4.7/§5 make fatal.
type ViewFunc[S any] func(state S) *vtree.VNode

// Config is the enumerated configuration surface of §6: initial state, the
// backend collaborator, an initial theme token, and the engine's own knobs.
type Config[S any] struct {
	InitialState S
	Backend      Backend
	Theme        any

	// ThemeTransitionFrames is stored on the Config as given; the engine
	// does not read it.
	ThemeTransitionFrames int

	// Logger receives diagnostic logging: event batches that fail to decode
	// and batches the backend reports as dropped. Defaults to
	// slog.Default() when nil — the one ambient concern this module keeps
	// on the standard library (see DESIGN.md).
	Logger *slog.Logger

	// KeyBindings/Modes seed the chord matcher; applications may instead
	// call Keys/Modes after construction.
	KeyBindings input.Bindings
	Modes       map[string]input.Bindings

	// onRender, set internally by tests, runs after every committed frame.
	onRender func()
}

func (c *Config[S]) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
