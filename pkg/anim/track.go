package anim

// Track is one active animation attached to an instance: either a Spring or
// a Timeline, never both. A non-nil Track on an instance asks the frame
// orchestrator for a follow-up render until it reports AtRest.
type Track struct {
	Spring   *Spring
	Timeline *Timeline
	startMs  float64
	started  bool
}

// NewSpringTrack wraps a Spring as a Track.
func NewSpringTrack(s *Spring) *Track { return &Track{Spring: s} }

// NewTimelineTrack wraps a Timeline as a Track, anchoring elapsed time to
// nowMs so Sample/AtRest compute relative to when the track was created.
func NewTimelineTrack(tl *Timeline, nowMs float64) *Track {
	return &Track{Timeline: tl, startMs: nowMs, started: true}
}

// Step advances the track by dtMs (for a Spring) or to absolute nowMs (for a
// Timeline, whose elapsed is computed from its start time).
func (t *Track) Step(dtMs, nowMs float64) {
	switch {
	case t.Spring != nil:
		t.Spring.Step(dtMs)
	case t.Timeline != nil:
		if !t.started {
			t.startMs = nowMs
			t.started = true
		}
	}
}

// Value returns the track's current scalar value at nowMs.
func (t *Track) Value(nowMs float64) float64 {
	switch {
	case t.Spring != nil:
		return t.Spring.Value
	case t.Timeline != nil:
		return t.Timeline.Sample(nowMs - t.startMs)
	default:
		return 0
	}
}

// AtRest reports whether this track has finished and no longer needs
// follow-up frames.
func (t *Track) AtRest(nowMs float64) bool {
	switch {
	case t.Spring != nil:
		return t.Spring.AtRest()
	case t.Timeline != nil:
		return t.Timeline.Done(nowMs - t.startMs)
	default:
		return true
	}
}

// Scheduler holds every active track in the engine, keyed by an arbitrary
// caller-assigned track id (an instance id plus a per-instance slot such as
// "opacity" or "x", since one instance may animate several properties at
// once). A render is requested whenever Scheduler reports at least one
// active track; rendering quiesces once StepAll drains the set to empty.
type Scheduler struct {
	tracks map[string]*Track
}

// NewScheduler returns an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{tracks: map[string]*Track{}}
}

// Set installs or replaces the track at key.
func (s *Scheduler) Set(key string, t *Track) {
	s.tracks[key] = t
}

// Get returns the track at key, or nil.
func (s *Scheduler) Get(key string) *Track {
	return s.tracks[key]
}

// Remove discards the track at key.
func (s *Scheduler) Remove(key string) {
	delete(s.tracks, key)
}

// StepAll advances every track by dtMs (current time nowMs), removing any
// that have reached rest, and reports whether any track is still active
// (i.e. whether the orchestrator must request another frame).
func (s *Scheduler) StepAll(dtMs, nowMs float64) (active bool) {
	for key, t := range s.tracks {
		t.Step(dtMs, nowMs)
		if t.AtRest(nowMs) {
			delete(s.tracks, key)
			continue
		}
		active = true
	}
	return active
}

// Active reports whether any track is currently running, without stepping.
func (s *Scheduler) Active() bool {
	return len(s.tracks) > 0
}
