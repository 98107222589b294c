package engine

import (
	"sync"
	"time"

	"github.com/nextcore/tuicore/pkg/anim"
	"github.com/nextcore/tuicore/pkg/drawlist"
	"github.com/nextcore/tuicore/pkg/focusmgr"
	"github.com/nextcore/tuicore/pkg/input"
	"github.com/nextcore/tuicore/pkg/layout"
	"github.com/nextcore/tuicore/pkg/reconciler"
	"github.com/nextcore/tuicore/pkg/statestore"
	"github.com/nextcore/tuicore/pkg/tuierrors"
	"github.com/nextcore/tuicore/pkg/vtree"
	"github.com/nextcore/tuicore/pkg/wire"
)

// FocusChangeEvent is delivered to OnFocusChange subscribers whenever
// Finalize settles on a different focused instance than the previous frame.
type FocusChangeEvent struct {
	PrevID focusmgr.FocusableID
	NextID focusmgr.FocusableID
}

// Engine drives one application's turn loop (§4.7): decode, route, update,
// reconcile, commit, layout, paint. S is the application's own state type;
// the engine never reaches inside it, only ever replaces it wholesale via
// the functions the view's callback props queue through Update.
type Engine[S any] struct {
	cfg  Config[S]
	view ViewFunc[S]

	clock Clock

	mu    sync.Mutex
	state S

	alloc  *reconciler.Allocator
	states *statestore.Store
	focus  *focusmgr.State
	exits  *anim.ExitRegistry
	sched  *anim.Scheduler
	chord  *input.ChordMatcher
	modes  map[string]input.Bindings
	mouse  *input.MouseRouter
	paint  *painter

	instRoot   *reconciler.Instance
	layoutRoot *layout.Node
	instIdx    instanceIndex
	focusIdxOf map[focusmgr.FocusableID]reconciler.InstanceID
	lastRects  map[reconciler.InstanceID]layout.Rect
	scrollOverrides map[reconciler.InstanceID]scrollOverride

	cols, rows int

	actions map[string]func()

	onEvent       []func(wire.Event)
	onFocusChange []func(FocusChangeEvent)
	onDraw        []func([]byte)

	themeDirty bool
	lastTickMs float64

	startTime time.Time

	started, stopped, disposed bool

	inBatch        bool
	committing     bool
	pendingUpdates []func(S) S
}

// NewEngine constructs an Engine from cfg and the application's view
// function. The engine does not start consuming backend events until Start
// is called.
func NewEngine[S any](cfg Config[S], view ViewFunc[S]) *Engine[S] {
	byMode := map[string]input.Bindings{}
	for k, v := range cfg.Modes {
		byMode[k] = v
	}
	defaultMode := "default"
	if _, ok := byMode[defaultMode]; !ok {
		byMode[defaultMode] = cfg.KeyBindings
	}

	e := &Engine[S]{
		cfg:        cfg,
		view:       view,
		clock:      realClock{},
		state:      cfg.InitialState,
		alloc:      reconciler.NewAllocator(),
		states:     statestore.NewStore(),
		focus:      focusmgr.New(),
		exits:      anim.NewExitRegistry(),
		sched:      anim.NewScheduler(),
		chord:      input.NewChordMatcher(byMode, defaultMode),
		modes:      byMode,
		mouse:      input.NewMouseRouter(),
		paint:      newPainter(drawlist.NewBuilder()),
		lastRects:  map[reconciler.InstanceID]layout.Rect{},
		actions:    map[string]func(){},
		focusIdxOf: map[focusmgr.FocusableID]reconciler.InstanceID{},
	}
	if caps := cfg.Backend; caps != nil {
		c := caps.GetCaps()
		e.cols, e.rows = c.Cols, c.Rows
	}
	return e
}

// SetClock overrides the engine's time source; intended for tests.
func (e *Engine[S]) SetClock(c Clock) { e.clock = c }

// Keys replaces the default mode's chord bindings, keeping any other modes
// registered via Modes intact.
func (e *Engine[S]) Keys(bindings input.Bindings) {
	e.modes["default"] = bindings
	e.chord = input.NewChordMatcher(e.modes, "default")
}

// Modes replaces the full mode table, keeping "default" as the fallback mode.
func (e *Engine[S]) Modes(byMode map[string]input.Bindings) {
	e.modes = byMode
	if _, ok := e.modes["default"]; !ok {
		e.modes["default"] = nil
	}
	e.chord = input.NewChordMatcher(e.modes, "default")
}

// SetMode switches the active chord-matcher mode (e.g. "default" vs "vim:normal").
func (e *Engine[S]) SetMode(mode string) { e.chord.SetMode(mode) }

// PendingChord returns the in-progress chord sequence, or "" if none.
func (e *Engine[S]) PendingChord() string { return e.chord.PendingChord() }

// BindAction registers the function a chord's bound action name invokes.
func (e *Engine[S]) BindAction(name string, fn func()) { e.actions[name] = fn }

// GetBindings returns the chord bindings for mode, or for the "default" mode
// when mode is "".
func (e *Engine[S]) GetBindings(mode string) input.Bindings {
	if mode == "" {
		mode = "default"
	}
	return e.modes[mode]
}

// SetView replaces the application's view function.
func (e *Engine[S]) SetView(fn ViewFunc[S]) { e.view = fn }

// SetTheme replaces the active theme token, invalidating the view so the
// next turn re-renders under it.
func (e *Engine[S]) SetTheme(theme any) {
	e.cfg.Theme = theme
	e.themeDirty = true
}

// Draw subscribes cb to run with every built drawlist, after RequestFrame.
// Returns an unsubscribe function.
func (e *Engine[S]) Draw(cb func([]byte)) func() {
	e.onDraw = append(e.onDraw, cb)
	idx := len(e.onDraw) - 1
	return func() {
		if idx < len(e.onDraw) {
			e.onDraw[idx] = nil
		}
	}
}

// OnEvent subscribes cb to every decoded input event, after core routing.
// Returns an unsubscribe function.
func (e *Engine[S]) OnEvent(cb func(wire.Event)) func() {
	e.onEvent = append(e.onEvent, cb)
	idx := len(e.onEvent) - 1
	return func() {
		if idx < len(e.onEvent) {
			e.onEvent[idx] = nil
		}
	}
}

// OnFocusChange subscribes cb to be invoked whenever the focused instance
// changes across a commit. Returns an unsubscribe function.
func (e *Engine[S]) OnFocusChange(cb func(FocusChangeEvent)) func() {
	e.onFocusChange = append(e.onFocusChange, cb)
	idx := len(e.onFocusChange) - 1
	return func() {
		if idx < len(e.onFocusChange) {
			e.onFocusChange[idx] = nil
		}
	}
}

// State returns the application's current state, for diagnostics/tests.
func (e *Engine[S]) State() S {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Update queues a state transition. If called from inside the view
// function (committing == true, detected because Update is reachable only
// from an OnPress/OnChange-style callback a view closure captured), it
// is fatal per §5 — the view function must be a pure projection, never a
// mutator of the state it was handed.
func (e *Engine[S]) Update(fn func(S) S) error {
	if e.committing {
		return tuierrors.UpdateDuringRender("Update")
	}
	if e.inBatch {
		e.pendingUpdates = append(e.pendingUpdates, fn)
		return nil
	}
	e.mu.Lock()
	e.state = fn(e.state)
	e.mu.Unlock()
	return nil
}

// Start runs the engine's single logical thread (§5): it starts the
// backend, then repeatedly polls for an event batch and turns it, without
// blocking the caller's goroutine across backend I/O beyond what PollEvents
// itself blocks for. Start returns when Stop is called or the backend
// reports a fatal error.
func (e *Engine[S]) Start() error {
	if e.started {
		return tuierrors.ReentrantCall("Start")
	}
	e.started = true
	e.startTime = e.clock.Now()

	if err := e.cfg.Backend.Start(); err != nil {
		return tuierrors.Platform(err.Error())
	}

	for !e.stopped {
		batch, ok := e.cfg.Backend.PollEvents()
		if !ok {
			if err := e.turn(nil); err != nil {
				return err
			}
			continue
		}
		if err := e.turn(batch); err != nil {
			return err
		}
	}
	return nil
}

// Stop requests the Start loop exit after its current turn.
func (e *Engine[S]) Stop() {
	e.stopped = true
	if e.cfg.Backend != nil {
		e.cfg.Backend.Stop()
	}
}

// Dispose releases the backend. Call after Start returns.
func (e *Engine[S]) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	if e.cfg.Backend != nil {
		e.cfg.Backend.Dispose()
	}
}

func (e *Engine[S]) elapsedMs() float64 {
	return float64(e.clock.Now().Sub(e.startTime).Milliseconds())
}

// turn runs one pass of the §4.7 orchestration loop. batch may be nil, for
// an animation-only tick with no new input.
func (e *Engine[S]) turn(batch *BackendEventBatch) error {
	if batch != nil && batch.Release != nil {
		defer batch.Release()
	}

	dirty := false

	if batch != nil {
		decoded, err := wire.Decode(batch.Bytes)
		if err != nil {
			e.cfg.logger().Warn("dropping malformed event batch", "error", err)
		} else {
			e.inBatch = true
			for _, ev := range decoded.Events {
				if e.routeEvent(ev) {
					dirty = true
				}
				for _, cb := range e.onEvent {
					if cb != nil {
						cb(ev)
					}
				}
			}
			for _, fn := range e.pendingUpdates {
				e.mu.Lock()
				e.state = fn(e.state)
				e.mu.Unlock()
				dirty = true
			}
			e.pendingUpdates = nil
			e.inBatch = false
		}
		if batch.DroppedBatches > 0 {
			e.cfg.logger().Warn("backend dropped event batches", "count", batch.DroppedBatches)
		}
	}

	nowMs := e.elapsedMs()
	dtMs := nowMs - e.lastTickMs
	e.lastTickMs = nowMs
	tracksActive := e.sched.StepAll(dtMs, nowMs)

	subtrees := make(map[reconciler.InstanceID]*reconciler.Instance, len(e.exits.Entries()))
	for _, entry := range e.exits.Entries() {
		subtrees[entry.InstanceID] = entry.Subtree
	}
	for _, id := range e.exits.Step(nowMs) {
		if subtree := subtrees[id]; subtree != nil {
			teardownDeferred(e.states, subtree)
		}
		dirty = true
	}
	if tracksActive || e.exits.Active() || e.themeDirty {
		dirty = true
	}

	if !dirty && e.instRoot != nil {
		return nil
	}

	e.themeDirty = false
	return e.render(nowMs)
}

// render runs the re-view -> reconcile -> commit -> layout -> paint portion
// of a turn, guarded against reentrant calls into the public API from
// within the view function or a commit-phase callback (§5, §7).
func (e *Engine[S]) render(nowMs float64) error {
	e.committing = true
	defer func() { e.committing = false }()

	e.mu.Lock()
	state := e.state
	e.mu.Unlock()

	next := e.view(state)

	builder := &treeBuilder{
		alloc:  e.alloc,
		states: e.states,
		exits:  e.exits,
		nowMs:  nowMs,
		rectOf: func(id reconciler.InstanceID) (layout.Rect, bool) {
			r, ok := e.lastRects[id]
			return r, ok
		},
	}
	inst, err := builder.buildRoot(e.instRoot, next)
	if err != nil {
		if ee, ok := err.(*tuierrors.EngineError); ok {
			return ee
		}
		return tuierrors.Wrap(tuierrors.KindInvalidProps, err, "reconcile")
	}
	e.instRoot = inst

	e.instIdx = indexInstances(e.instRoot)
	e.focusIdxOf = focusableIndex(e.instIdx)

	prevFocused := e.focus.FocusedID
	meta := focusmgr.CollectCommitMeta(e.instRoot)
	e.focus.Finalize(meta)

	if e.instRoot != nil {
		e.instRoot = applyScrollOverrides(e.instRoot, e.scrollOverride)
	}

	lroot, err := layout.Layout(e.instRoot, 0, 0, e.cols, e.rows, layout.AxisColumn)
	if err != nil {
		return tuierrors.Wrap(tuierrors.KindInvalidProps, err, "layout")
	}
	e.layoutRoot = lroot
	e.lastRects = collectRects(e.layoutRoot)

	cursorInst, hasCursor := e.cursorTarget()
	bytes := e.paint.paint(e.layoutRoot, e.instRoot, e.exits, cursorInst, hasCursor)

	if e.cfg.Backend != nil {
		if err := e.cfg.Backend.RequestFrame(bytes); err != nil {
			return tuierrors.Platform(err.Error())
		}
	}
	for _, cb := range e.onDraw {
		if cb != nil {
			cb(bytes)
		}
	}

	// Step 7 (§4.7): apply pending focus change and notify subscribers only
	// now that the frame reflecting it has actually been committed and
	// requested, not mid-commit when layout/paint haven't run yet.
	if e.focus.FocusedID != prevFocused {
		for _, cb := range e.onFocusChange {
			if cb != nil {
				cb(FocusChangeEvent{PrevID: prevFocused, NextID: e.focus.FocusedID})
			}
		}
	}

	if e.cfg.onRender != nil {
		e.cfg.onRender()
	}
	return nil
}

func (e *Engine[S]) cursorTarget() (reconciler.InstanceID, bool) {
	id, ok := e.focusIdxOf[e.focus.FocusedID]
	if !ok {
		return 0, false
	}
	inst, ok := e.instIdx[id]
	if !ok || inst.Node == nil {
		return 0, false
	}
	if _, ok := inst.Node.Props.(vtree.InputProps); !ok {
		return 0, false
	}
	return id, true
}

func collectRects(n *layout.Node) map[reconciler.InstanceID]layout.Rect {
	out := map[reconciler.InstanceID]layout.Rect{}
	var walk func(*layout.Node)
	walk = func(n *layout.Node) {
		if n == nil {
			return
		}
		out[n.InstanceID] = n.Rect
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

func (e *Engine[S]) focusedInstance() (*reconciler.Instance, bool) {
	id, ok := e.focusIdxOf[e.focus.FocusedID]
	if !ok {
		return nil, false
	}
	inst, ok := e.instIdx[id]
	return inst, ok
}

// routeEvent dispatches one decoded event per the §4.4 order: layer escape,
// focused-widget kind router / direct button-input handling, chord
// matcher, focus navigation fallback, then mouse/wheel routing. Returns
// whether anything changed that warrants a re-render.
func (e *Engine[S]) routeEvent(ev wire.Event) bool {
	switch ev.Kind {
	case wire.KindResize:
		e.cols, e.rows = int(ev.Cols), int(ev.Rows)
		return true
	case wire.KindKey:
		return e.routeKey(ev)
	case wire.KindMouse:
		return e.routeMouse(ev)
	default:
		return false
	}
}

func (e *Engine[S]) routeKey(ev wire.Event) bool {
	if ev.Action == wire.KeyUp {
		return false
	}
	name := keyName(ev)
	if name == "" {
		return false
	}

	if name == input.KeyEscape {
		if input.RouteEscape(input.CollectLayers(e.instRoot)) {
			return true
		}
	}

	if focused, ok := e.focusedInstance(); ok {
		if e.routeFocusedWidget(focused, name) {
			return true
		}
		if focused.Node != nil && input.Route(name, focused.Node) {
			return true
		}
	}

	before := e.chord.PendingChord()
	result := e.chord.Feed(name)
	if result.Matched {
		if fn, ok := e.actions[result.Action]; ok {
			fn()
		}
		return true
	}
	if result.Invalidate || before != e.chord.PendingChord() {
		return true
	}

	return e.navigateFocus(name)
}

// routeFocusedWidget handles the two kinds pkg/input's Routers table
// deliberately leaves out (KindButton, KindInput): their behavior is a
// direct callback invocation, not a navigation/selection state machine.
func (e *Engine[S]) routeFocusedWidget(inst *reconciler.Instance, name string) bool {
	if inst == nil || inst.Node == nil {
		return false
	}
	switch p := inst.Node.Props.(type) {
	case vtree.ButtonProps:
		if p.Disabled {
			return false
		}
		if name == input.KeySpace || name == input.KeyEnter {
			if p.OnPress != nil {
				p.OnPress()
			}
			return true
		}
		return false

	case vtree.InputProps:
		if p.Disabled {
			return false
		}
		switch name {
		case input.KeyEnter:
			if p.OnSubmit != nil {
				p.OnSubmit(p.Value)
			}
			return true
		case input.KeyBackspace:
			if p.CursorPos > 0 && p.OnChange != nil {
				r := []rune(p.Value)
				i := p.CursorPos
				p.OnChange(string(r[:i-1]) + string(r[i:]))
			}
			return true
		case input.KeyDelete:
			r := []rune(p.Value)
			if p.CursorPos < len(r) && p.OnChange != nil {
				i := p.CursorPos
				p.OnChange(string(r[:i]) + string(r[i+1:]))
			}
			return true
		default:
			if len([]rune(name)) != 1 {
				return false
			}
			if p.OnChange != nil {
				r := []rune(p.Value)
				i := p.CursorPos
				if i > len(r) {
					i = len(r)
				}
				p.OnChange(string(r[:i]) + name + string(r[i:]))
			}
			return true
		}
	}
	return false
}

func (e *Engine[S]) navigateFocus(name string) bool {
	switch name {
	case input.KeyTab:
		return e.focus.CycleZone(true)
	case "shift+" + input.KeyTab:
		return e.focus.CycleZone(false)
	}
	zone, ok := e.focus.ActiveZone()
	if !ok {
		return false
	}
	if zone.Navigation == vtree.ZoneNavigationGrid {
		switch name {
		case input.KeyLeft:
			return e.focus.MoveGrid(-1, 0)
		case input.KeyRight:
			return e.focus.MoveGrid(1, 0)
		case input.KeyUp:
			return e.focus.MoveGrid(0, -1)
		case input.KeyDown:
			return e.focus.MoveGrid(0, 1)
		}
		return false
	}
	switch name {
	case input.KeyUp, input.KeyLeft:
		return e.focus.MoveLinear(-1)
	case input.KeyDown, input.KeyRight:
		return e.focus.MoveLinear(1)
	}
	return false
}

func (e *Engine[S]) routeMouse(ev wire.Event) bool {
	if e.layoutRoot == nil {
		return false
	}
	if ev.MouseKind == wire.MouseWheel {
		res := input.RouteWheel(e.layoutRoot, ev.X, ev.Y, ev.WheelX, ev.WheelY)
		if !res.Consumed {
			return false
		}
		e.setScrollOverride(res.Node.InstanceID, res.ScrollX, res.ScrollY)
		return true
	}

	now := e.clock.Now()
	res := e.mouse.Route(e.layoutRoot, ev, now)
	changed := false
	if res.HasNextFocused {
		if inst, ok := e.instIdx[res.NextFocusedID]; ok && inst.Node != nil && inst.Node.Kind.IsFocusable() {
			e.focus.RequestFocus(focusableIDFor(inst))
			changed = true
		}
	}
	if res.Action == input.ActionPress {
		if inst, ok := e.instIdx[res.TargetID]; ok && inst.Node != nil {
			if bp, ok := inst.Node.Props.(vtree.ButtonProps); ok && !bp.Disabled && bp.OnPress != nil {
				bp.OnPress()
				changed = true
			}
		}
	}
	if res.Action == input.ActionRelease {
		changed = true
	}
	return changed
}

// scrollOverride holds the last wheel-routed scroll offset per instance.
// overflow/scrollX/scrollY are declared as plain LayoutProps (§3), but
// wheel-driven scrolling is engine-owned runtime state the view function
// never recomputes on its own, so it is threaded back onto the next
// reconciled tree rather than stored on the VNode the application returned.
type scrollOverride struct {
	x, y int
}

func (e *Engine[S]) setScrollOverride(id reconciler.InstanceID, x, y int32) {
	if e.scrollOverrides == nil {
		e.scrollOverrides = map[reconciler.InstanceID]scrollOverride{}
	}
	e.scrollOverrides[id] = scrollOverride{x: int(x), y: int(y)}
}

func (e *Engine[S]) scrollOverride(id reconciler.InstanceID) (int, int, bool) {
	o, ok := e.scrollOverrides[id]
	return o.x, o.y, ok
}

// applyScrollOverrides walks inst, replacing each node's VNode with a
// shallow copy carrying its engine-tracked scroll override, if any, so
// layout sees the last wheel-routed position instead of the view
// function's own (typically zero) default.
func applyScrollOverrides(inst *reconciler.Instance, get func(reconciler.InstanceID) (int, int, bool)) *reconciler.Instance {
	if inst == nil || inst.Node == nil {
		return inst
	}
	if x, y, ok := get(inst.ID); ok {
		n := *inst.Node
		n.Props = vtree.WithScroll(n.Props, x, y)
		inst.Node = &n
	}
	for _, c := range inst.Children {
		applyScrollOverrides(c, get)
	}
	return inst
}

