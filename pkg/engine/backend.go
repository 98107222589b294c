// Package engine ties the reconciler, layout solver, focus manager, input
// router, animation scheduler, and drawlist builder into the single
// deterministic per-frame turn described by the frame orchestrator, and
// exposes the public runtime API applications drive.
package engine

// Caps is the terminal capability record a Backend reports at startup.
type Caps struct {
	Cols, Rows int
	ColorDepth int // 1 (mono), 4, 8, or 24 bits per channel-group
	CursorShapes []string

	KittyImages bool
	Sixel       bool
	ITermImages bool
	Hyperlinks  bool

	// CellPixelW/CellPixelH are 0 when the backend cannot detect them.
	CellPixelW, CellPixelH int
}

// BackendEventBatch is one lazily-released batch of encoded ZREV bytes.
type BackendEventBatch struct {
	Bytes          []byte
	DroppedBatches int
	Release        func()
}

// Backend is the collaborator the core drives: it owns the terminal I/O,
// delivers decoded-at-the-wire event batches, and displays drawlists this
// engine produces. The core never talks to a terminal directly.
type Backend interface {
	Start() error
	Stop()
	Dispose()

	GetCaps() Caps

	// PollEvents returns the next available batch, or (nil, false) when none
	// is pending right now; the engine calls this once per turn without
	// blocking, per §5's cooperative-scheduling model.
	PollEvents() (*BackendEventBatch, bool)

	// RequestFrame hands the backend a built drawlist to display; it returns
	// once the frame is displayed or queued.
	RequestFrame(drawlist []byte) error

	// PostUserEvent injects an application-defined event into the backend's
	// own event stream, to be redelivered through PollEvents.
	PostUserEvent(tag string, payload any)
}
