// Package tuierrors provides the structured error taxonomy fatal errors in
// the tuicore engine are reported through.
package tuierrors

import (
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"
)

// Kind identifies the category of a fatal engine error.
type Kind int

const (
	// KindUnknown is the zero value, used only for errors constructed without a kind.
	KindUnknown Kind = iota
	// KindDuplicateKey: two siblings share a key during reconciliation.
	KindDuplicateKey
	// KindInvalidProps: a VNode's props failed validation or layout resolution.
	KindInvalidProps
	// KindUpdateDuringRender: a state-mutating API was invoked from within the view function.
	KindUpdateDuringRender
	// KindReentrantCall: a public API was invoked while the core was committing a frame.
	KindReentrantCall
	// KindUnsupported: an engine pin mismatch or unavailable backend feature was requested.
	KindUnsupported
	// KindPlatform: backend initialization failed (no TTY, etc).
	KindPlatform
	// KindPanic: a recovered panic. The engine does not recover panics, so
	// no code in this module reports this kind.
	KindPanic
)

func (k Kind) String() string {
	switch k {
	case KindDuplicateKey:
		return "DUPLICATE_KEY"
	case KindInvalidProps:
		return "INVALID_PROPS"
	case KindUpdateDuringRender:
		return "UPDATE_DURING_RENDER"
	case KindReentrantCall:
		return "REENTRANT_CALL"
	case KindUnsupported:
		return "UNSUPPORTED"
	case KindPlatform:
		return "PLATFORM"
	case KindPanic:
		return "PANIC"
	default:
		return "UNKNOWN"
	}
}

// EngineError is the fatal error type surfaced to callers of the public API.
// It carries a deterministic, human-readable detail string per kind so that
// snapshot/golden tests can assert on it without formatting ambiguity.
type EngineError struct {
	Code Kind
	Message string
	Cause error
	Timestamp time.Time
}

func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Cause
}

// New constructs an EngineError with a stack-carrying cause via pkg/errors.
func New(code Kind, format string, args...any) *EngineError {
	return &EngineError{
		Code: code,
		Message: fmt.Sprintf(format, args...),
		Cause: pkgerrors.New(fmt.Sprintf(format, args...)),
		Timestamp: time.Now(),
	}
}

// Wrap attaches a stack trace to err and tags it with code.
func Wrap(code Kind, err error, op string) *EngineError {
	if err == nil {
		return nil
	}
	return &EngineError{
		Code: code,
		Message: op,
		Cause: pkgerrors.Wrap(err, op),
		Timestamp: time.Now(),
	}
}

// DuplicateKey builds the deterministic detail string for a duplicate-key
// reconcile failure, naming the parent instance id, child count, and the
// two colliding indices.
func DuplicateKey(parentInstanceID int64, childCount, firstIndex, secondIndex int) *EngineError {
	return New(KindDuplicateKey,
		"parent instance %d has %d children: duplicate key at indices %d and %d",
		parentInstanceID, childCount, firstIndex, secondIndex)
}

// InvalidProps builds the deterministic detail string for a prop validation failure.
func InvalidProps(property, expected string) *EngineError {
	return New(KindInvalidProps, "property %q: expected %s", property, expected)
}

// UnknownKind reports a VNode kind outside the closed set.
func UnknownKind(kind string) *EngineError {
	return New(KindInvalidProps, "unknown VNode kind %q", kind)
}

// UpdateDuringRender reports a state mutation requested from inside the view function.
func UpdateDuringRender(api string) *EngineError {
	return New(KindUpdateDuringRender, "%s called from within view()", api)
}

// ReentrantCall reports a public API invocation during commit.
func ReentrantCall(api string) *EngineError {
	return New(KindReentrantCall, "%s called re-entrantly during commit", api)
}

// Unsupported reports an engine/backend capability mismatch.
func Unsupported(detail string) *EngineError {
	return New(KindUnsupported, "%s", detail)
}

// Platform reports a backend initialization failure.
func Platform(detail string) *EngineError {
	return New(KindPlatform, "%s", detail)
}

// PanicError represents a recovered panic, captured with a pkg/errors stack trace.
type PanicError struct {
	Op string
	Value any
	StackTrace string
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// CaptureStack renders a stack trace for the panic currently being recovered,
// using pkg/errors' formatting instead of a hand-rolled runtime.Callers walk.
func CaptureStack() string {
	return fmt.Sprintf("%+v", pkgerrors.New("stack"))
}

// BoundaryError describes an error raised in a subtree during one frame
// phase. No code in this module constructs one: the engine does not recover
// panics, and a KindErrorBoundary node neither catches errors in its subtree
// nor calls its Fallback.
type BoundaryError struct {
	Phase string // "build", "layout", "route", "paint"
	NodeKind string
	Recovered any
	Err error
	StackTrace string
	Timestamp time.Time
}

func (e *BoundaryError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s (%s): %v", e.NodeKind, e.Phase, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s (%s): %v", e.NodeKind, e.Phase, e.Err)
	}
	return fmt.Sprintf("unknown error in %s (%s)", e.NodeKind, e.Phase)
}

func (e *BoundaryError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives non-fatal diagnostics and boundary-caught errors.
// Fatal kinds (DuplicateKey, InvalidProps, UpdateDuringRender, ReentrantCall,
// Unsupported, Platform) bypass error boundaries and are instead
// returned directly from the triggering public API call.
type ErrorHandler interface {
	HandleBoundaryError(err *BoundaryError)
}
