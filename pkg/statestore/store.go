// Package statestore holds per-instance local state as an ordered, append-only
// vector of hook cells, visited positionally on each render, rather than
// tying rebuild triggers to a class-style State object. Local state is
// addressed by instance id plus call order rather than by an embedded base
// struct.
package statestore

import "github.com/nextcore/tuicore/pkg/reconciler"

// CellKind distinguishes the hook cell shapes.
type CellKind int

const (
	CellState CellKind = iota
	CellRef
	CellEffect
	CellMemo
)

// Cell is one entry of an instance's hook vector.
type Cell struct {
	Kind CellKind

	// State cell.
	Value any

	// Ref cell.
	RefValue any

	// Effect cell.
	EffectFn func() (cleanup func())
	EffectDeps []any
	EffectCleanup func()
	EffectRan bool

	// Memo cell.
	MemoValue any
	MemoDeps []any
}

// InstanceState is one instance's hook vector plus pending cleanups deferred
// by an in-flight exit animation.
type InstanceState struct {
	Cells []*Cell
	cursor int
	PendingEffects []*Cell
	DeferCleanup bool // true while an exit animation holds teardown open
}

// Store indexes InstanceState by instance id; instances are arena-allocated
// and never move, so a flat map suffices.
type Store struct {
	states map[reconciler.InstanceID]*InstanceState
}

// NewStore creates an empty state store.
func NewStore() *Store {
	return &Store{states: make(map[reconciler.InstanceID]*InstanceState)}
}

// BeginRender resets an instance's hook cursor to 0 before its render
// function runs; cells are then revisited positionally.
func (s *Store) BeginRender(id reconciler.InstanceID) *InstanceState {
	st, ok := s.states[id]
	if !ok {
		st = &InstanceState{}
		s.states[id] = st
	}
	st.cursor = 0
	return st
}

// nextCell returns the cell at the current cursor position, appending a new
// cell if this is the first render to reach this position.
func (st *InstanceState) nextCell(kind CellKind) (*Cell, bool) {
	isNew := st.cursor >= len(st.Cells)
	if isNew {
		st.Cells = append(st.Cells, &Cell{Kind: kind})
	}
	cell := st.Cells[st.cursor]
	st.cursor++
	return cell, isNew
}

// UseState returns the cell at the current position, initializing it to
// initial on first render. Returns the cell so callers can read/write Value.
func (st *InstanceState) UseState(initial any) *Cell {
	cell, isNew := st.nextCell(CellState)
	if isNew {
		cell.Value = initial
	}
	return cell
}

// UseRef returns a ref cell that is never reset across renders.
func (st *InstanceState) UseRef(initial any) *Cell {
	cell, isNew := st.nextCell(CellRef)
	if isNew {
		cell.RefValue = initial
	}
	return cell
}

// depsChanged reports whether two dependency lists differ (length or any
// element by ==, per React-style shallow comparison).
func depsChanged(a, b []any) bool {
	if len(a) != len(b) {
		return true
	}
	for i := range a {
		if a[i] != b[i] {
			return true
		}
	}
	return false
}

// UseEffect registers fn to run after commit if deps changed since the last
// render (or on first render). The returned cleanup from a prior run is
// invoked before fn runs again, or on unmount.
func (st *InstanceState) UseEffect(fn func() (cleanup func()), deps []any) {
	cell, isNew := st.nextCell(CellEffect)
	cell.EffectFn = fn
	if isNew || depsChanged(cell.EffectDeps, deps) {
		cell.EffectDeps = deps
		cell.EffectRan = false
		st.PendingEffects = append(st.PendingEffects, cell)
	}
}

// UseMemo recomputes compute() only when deps changed since the last render.
func (st *InstanceState) UseMemo(compute func() any, deps []any) any {
	cell, isNew := st.nextCell(CellMemo)
	if isNew || depsChanged(cell.MemoDeps, deps) {
		cell.MemoValue = compute()
		cell.MemoDeps = deps
	}
	return cell.MemoValue
}

// FlushEffects runs every pending effect's function, invoking any previous
// cleanup first, after commit.
func (s *Store) FlushEffects() {
	for _, st := range s.states {
		for _, cell := range st.PendingEffects {
			if cell.EffectCleanup != nil {
				cell.EffectCleanup()
				cell.EffectCleanup = nil
			}
			if cell.EffectFn != nil {
				cell.EffectCleanup = cell.EffectFn()
			}
			cell.EffectRan = true
		}
		st.PendingEffects = nil
	}
}

// Teardown releases an instance's local state and runs cleanups, unless
// deferred by an in-flight exit animation.
func (s *Store) Teardown(id reconciler.InstanceID) {
	st, ok := s.states[id]
	if !ok {
		return
	}
	if st.DeferCleanup {
		return
	}
	s.runCleanups(st)
	delete(s.states, id)
}

// DeferredCleanup runs an instance's cleanup thunks once its exit animation
// completes, then releases the state.
func (s *Store) DeferredCleanup(id reconciler.InstanceID) {
	st, ok := s.states[id]
	if !ok {
		return
	}
	s.runCleanups(st)
	delete(s.states, id)
}

func (s *Store) runCleanups(st *InstanceState) {
	for _, cell := range st.Cells {
		if cell.Kind == CellEffect && cell.EffectCleanup != nil {
			cell.EffectCleanup()
			cell.EffectCleanup = nil
		}
	}
}

// MarkDeferred flags an instance's state as held open by an exit animation.
func (s *Store) MarkDeferred(id reconciler.InstanceID) {
	if st, ok := s.states[id]; ok {
		st.DeferCleanup = true
	}
}
