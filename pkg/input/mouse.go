package input

import (
	"time"

	"github.com/nextcore/tuicore/pkg/layout"
	"github.com/nextcore/tuicore/pkg/reconciler"
	"github.com/nextcore/tuicore/pkg/wire"
)

// DoubleClickWindow is the maximum gap between two press-release pairs on
// the same target for the second to count as a double-click.
const DoubleClickWindow = 500 * time.Millisecond

// RoutedAction tags what a mouse event resolved to.
type RoutedAction int

const (
	ActionNone RoutedAction = iota
	ActionPress
	ActionRelease
	ActionContextMenu
)

// MouseResult is the outcome of routing one mouse event.
type MouseResult struct {
	Action          RoutedAction
	TargetID        reconciler.InstanceID
	HasNextFocused  bool
	NextFocusedID   reconciler.InstanceID
	HasNextPressed  bool
	NextPressedID   reconciler.InstanceID
	DoubleClick     bool
}

// MouseRouter tracks press/release state across events to recognize
// double-clicks and report a pending focus change on press.
type MouseRouter struct {
	pressedID     reconciler.InstanceID
	hasPressed    bool
	lastClickID   reconciler.InstanceID
	lastClickAt   time.Time
	hasLastClick  bool
}

// NewMouseRouter returns an idle router.
func NewMouseRouter() *MouseRouter {
	return &MouseRouter{}
}

// Route resolves one mouse event against the committed LayoutTree. now is
// the event's timestamp, used for double-click detection.
func (r *MouseRouter) Route(root *layout.Node, ev wire.Event, now time.Time) MouseResult {
	target := HitTest(root, ev.X, ev.Y)
	var targetID reconciler.InstanceID
	if target != nil {
		targetID = target.InstanceID
	}

	switch ev.MouseKind {
	case wire.MousePress:
		if ev.Buttons&wire.ButtonRight != 0 {
			return MouseResult{Action: ActionContextMenu, TargetID: targetID}
		}
		r.pressedID = targetID
		r.hasPressed = true
		return MouseResult{
			Action: ActionPress, TargetID: targetID,
			HasNextFocused: true, NextFocusedID: targetID,
			HasNextPressed: true, NextPressedID: targetID,
		}

	case wire.MouseRelease:
		wasPressed := r.hasPressed && r.pressedID == targetID
		r.hasPressed = false

		double := wasPressed && r.hasLastClick && r.lastClickID == targetID &&
			now.Sub(r.lastClickAt) <= DoubleClickWindow
		if wasPressed {
			if double {
				// Consume the pair so a third click starts a fresh streak
				// rather than chaining into a triple-click double-fire.
				r.hasLastClick = false
			} else {
				r.lastClickID = targetID
				r.lastClickAt = now
				r.hasLastClick = true
			}
		}

		return MouseResult{
			Action: ActionRelease, TargetID: targetID,
			HasNextPressed: true, NextPressedID: 0,
			DoubleClick: double,
		}

	default:
		return MouseResult{Action: ActionNone, TargetID: targetID}
	}
}

// ResetPressOnMoveAway clears tracked press state if a differently-targeted
// press interrupts a pending release (e.g. pointer grabbed by another
// widget), per the spec's "no intervening press on a different focusable"
// double-click rule.
func (r *MouseRouter) ResetPressOnMoveAway(targetID reconciler.InstanceID) {
	if r.hasPressed && r.pressedID != targetID {
		r.hasPressed = false
		r.hasLastClick = false
	}
}
