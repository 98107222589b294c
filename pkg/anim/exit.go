package anim

import (
	"github.com/nextcore/tuicore/pkg/layout"
	"github.com/nextcore/tuicore/pkg/reconciler"
)

// ExitEntry is a retained, still-rendering node whose VNode was unmounted
// but declared an exit transition. The frame orchestrator keeps painting
// it at its last-known Rect, fully opaque, until the track finishes, then
// finalizes teardown. Opacity is interpolated for the entry, but the
// painter does not use it, and position and size are not animated.
type ExitEntry struct {
	InstanceID reconciler.InstanceID
	LineageKey string
	Rect       layout.Rect
	// Subtree is the frozen instance (with its own children) as last
	// committed, retained so the orchestrator can keep painting it and can
	// release every descendant's deferred local state once the exit finishes.
	Subtree    *reconciler.Instance
	track      *Track
	durationMs float64
}

// Opacity returns the entry's current interpolated opacity (1 at the start
// of the exit, 0 once it completes).
func (e *ExitEntry) Opacity(nowMs float64) float64 {
	return e.track.Value(nowMs)
}

// AtRest reports whether the exit transition has finished.
func (e *ExitEntry) AtRest(nowMs float64) bool {
	return e.track.AtRest(nowMs)
}

// ExitRegistry holds every instance currently mid-exit-transition, keyed by
// both instance id (for Step/teardown) and lineage key (so a re-appearance
// of the same key in the same parent lineage can cancel the matching exit;
// the same key reappearing under a different parent lineage must not).
type ExitRegistry struct {
	byInstance map[reconciler.InstanceID]*ExitEntry
	byLineage  map[string]reconciler.InstanceID
}

// NewExitRegistry returns an empty registry.
func NewExitRegistry() *ExitRegistry {
	return &ExitRegistry{
		byInstance: map[reconciler.InstanceID]*ExitEntry{},
		byLineage:  map[string]reconciler.InstanceID{},
	}
}

// Begin starts an exit transition for a just-unmounted instance: retains
// rect, fades opacity 1->0 over durationMs starting at nowMs.
func (r *ExitRegistry) Begin(id reconciler.InstanceID, lineageKey string, rect layout.Rect, subtree *reconciler.Instance, durationMs float64, nowMs float64) *ExitEntry {
	tl := &Timeline{Segments: []Segment{{From: 1, To: 0, DurationMs: durationMs, Easing: EaseOut}}}
	entry := &ExitEntry{
		InstanceID: id,
		LineageKey: lineageKey,
		Rect:       rect,
		Subtree:    subtree,
		track:      NewTimelineTrack(tl, nowMs),
		durationMs: durationMs,
	}
	r.byInstance[id] = entry
	r.byLineage[lineageKey] = id
	return entry
}

// CancelForLineage cancels any exit in progress for lineageKey, reporting
// the cancelled instance id if one existed. Called when reconciliation
// allocates a new instance at the same lineage+key this frame.
func (r *ExitRegistry) CancelForLineage(lineageKey string) (reconciler.InstanceID, bool) {
	id, ok := r.byLineage[lineageKey]
	if !ok {
		return 0, false
	}
	delete(r.byLineage, lineageKey)
	delete(r.byInstance, id)
	return id, true
}

// Step advances every in-flight exit by steps implied in Value/AtRest
// lookups (Timeline tracks are pure functions of elapsed time, so no
// per-tick mutation is needed) and returns instances whose exit just
// finished, for final teardown.
func (r *ExitRegistry) Step(nowMs float64) []reconciler.InstanceID {
	var finished []reconciler.InstanceID
	for id, entry := range r.byInstance {
		if entry.AtRest(nowMs) {
			finished = append(finished, id)
			delete(r.byInstance, id)
			delete(r.byLineage, entry.LineageKey)
		}
	}
	return finished
}

// Active reports whether any exit transition is in flight.
func (r *ExitRegistry) Active() bool {
	return len(r.byInstance) > 0
}

// Entries returns every in-flight exit entry, for the drawlist builder to
// render alongside the live committed tree.
func (r *ExitRegistry) Entries() []*ExitEntry {
	out := make([]*ExitEntry, 0, len(r.byInstance))
	for _, e := range r.byInstance {
		out = append(out, e)
	}
	return out
}

// Get returns the in-flight entry for id, if any.
func (r *ExitRegistry) Get(id reconciler.InstanceID) (*ExitEntry, bool) {
	e, ok := r.byInstance[id]
	return e, ok
}
