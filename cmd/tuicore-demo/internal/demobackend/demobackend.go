// Package demobackend implements a non-interactive engine.Backend: a
// scripted queue of event batches replayed one per turn, with each
// requested frame logged instead of painted to a real terminal. Wiring an
// actual ANSI/terminal backend is explicitly out of scope (see SPEC_FULL.md
// §1's Non-goals); this is the stand-in that still exercises the engine's
// full turn loop end to end.
package demobackend

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/nextcore/tuicore/pkg/engine"
	"github.com/nextcore/tuicore/pkg/wire"
)

// Scripted is a Backend that delivers a fixed sequence of pre-encoded event
// batches, one per PollEvents call, then reports no more events. Frames it
// is asked to display are handed to onFrame instead of drawn anywhere.
type Scripted struct {
	log *slog.Logger

	caps engine.Caps

	queue   [][]byte
	pos     int
	userEvs [][]byte

	onFrame func(runID string, seq int, drawlist []byte)
	frameSeq int
	runID    string

	stopped bool
}

// New builds a Scripted backend with the given terminal capability record
// and the events to replay, in order. onFrame (may be nil) is invoked with
// every drawlist RequestFrame receives.
func New(log *slog.Logger, cols, rows int, batches [][]byte, onFrame func(runID string, seq int, drawlist []byte)) *Scripted {
	return &Scripted{
		log: log,
		caps: engine.Caps{
			Cols:       cols,
			Rows:       rows,
			ColorDepth: 24,
		},
		queue:   batches,
		onFrame: onFrame,
		runID:   uuid.NewString(),
	}
}

func (b *Scripted) Start() error {
	b.log.Info("demo backend started", "run_id", b.runID, "cols", b.caps.Cols, "rows", b.caps.Rows)
	return nil
}

func (b *Scripted) Stop() {
	b.stopped = true
	b.log.Info("demo backend stopped", "run_id", b.runID, "frames", b.frameSeq)
}

func (b *Scripted) Dispose() {}

func (b *Scripted) GetCaps() engine.Caps { return b.caps }

// PollEvents hands back the next scripted batch, then any pending
// PostUserEvent-injected batches, then (nil, false) once both are drained —
// at which point the caller should Stop the engine.
func (b *Scripted) PollEvents() (*engine.BackendEventBatch, bool) {
	if b.pos < len(b.queue) {
		buf := b.queue[b.pos]
		b.pos++
		return &engine.BackendEventBatch{Bytes: buf}, true
	}
	if len(b.userEvs) > 0 {
		buf := b.userEvs[0]
		b.userEvs = b.userEvs[1:]
		return &engine.BackendEventBatch{Bytes: buf}, true
	}
	return nil, false
}

// Done reports whether the scripted queue and any injected events have both
// been fully drained.
func (b *Scripted) Done() bool {
	return b.pos >= len(b.queue) && len(b.userEvs) == 0
}

func (b *Scripted) RequestFrame(drawlist []byte) error {
	b.frameSeq++
	b.log.Debug("frame requested", "run_id", b.runID, "seq", b.frameSeq, "bytes", len(drawlist))
	if b.onFrame != nil {
		b.onFrame(b.runID, b.frameSeq, drawlist)
	}
	return nil
}

// PostUserEvent encodes tag/payload as a single-event KindText batch carrying
// the tag's first rune, enough to exercise the redelivery path without a
// real application-event wire kind to spend on a demo.
func (b *Scripted) PostUserEvent(tag string, payload any) {
	r := rune(0)
	for _, c := range tag {
		r = c
		break
	}
	b.log.Debug("user event posted", "run_id", b.runID, "tag", tag, "payload", payload)
	buf := wire.Encode(wire.Batch{Events: []wire.Event{{Kind: wire.KindText, Codepoint: r}}})
	b.userEvs = append(b.userEvs, buf)
}
