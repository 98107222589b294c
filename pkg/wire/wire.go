// Package wire implements the ZREV v1 event batch codec: a 24-byte header
// followed by a stream of typed event records, fixed-size for key, text,
// resize, mouse, and focus, and length-prefixed for paste and composition.
// This is the wire format a Backend
// delivers through pollEvents and the format pkg/input decodes each turn.
package wire

import (
	"github.com/nextcore/tuicore/pkg/tuierrors"
)

// Magic identifies a ZREV v1 event batch: ASCII "ZREV" read little-endian.
const Magic uint32 = 0x5645525A

// Version is the only batch version this codec emits or accepts.
const Version uint32 = 1

// HeaderSize is the fixed size of the batch header in bytes.
const HeaderSize = 24

// Kind tags each event record in the stream.
type Kind uint8

const (
	KindKey Kind = iota + 1
	KindText
	KindResize
	KindMouse
	KindFocus
	KindPaste
	KindComposition
)

// KeyAction distinguishes a key record's press state.
type KeyAction uint8

const (
	KeyDown KeyAction = iota
	KeyUp
	KeyRepeat
)

// Mods is a bitmask of held modifier keys.
type Mods uint8

const (
	ModShift Mods = 1 << iota
	ModAlt
	ModCtrl
	ModSuper
)

// KeyCode values for keys without a printable rune: Enter/Tab/Escape/Space
// and Backspace reuse their familiar ASCII control codes; the rest occupy a
// private-use block above the Unicode range (0xE000), the same convention
// termbox/tcell-style terminal backends use so a printable codepoint can
// never collide with a named key. Printable keys are carried as their own
// rune value in KeyCode.
const (
	KeyCodeBackspace uint32 = 8
	KeyCodeTab       uint32 = 9
	KeyCodeEnter     uint32 = 13
	KeyCodeEscape    uint32 = 27
	KeyCodeSpace     uint32 = 32
	KeyCodeDelete    uint32 = 127
)

const (
	KeyCodeUp uint32 = 0xE000 + iota
	KeyCodeDown
	KeyCodeLeft
	KeyCodeRight
	KeyCodeHome
	KeyCodeEnd
	KeyCodePageUp
	KeyCodePageDown
)

// MouseKind distinguishes the shape of a mouse record.
type MouseKind uint8

const (
	MouseMove MouseKind = iota
	MousePress
	MouseRelease
	MouseWheel
)

// Buttons is a bitmask of held mouse buttons: left=1, middle=2, right=4.
type Buttons uint8

const (
	ButtonLeft   Buttons = 1
	ButtonMiddle Buttons = 2
	ButtonRight  Buttons = 4
)

// Event is the decoded, in-memory form of one wire record.
type Event struct {
	Kind Kind

	TimeMs uint64

	// Key
	KeyCode uint32
	Mods    Mods
	Action  KeyAction

	// Text
	Codepoint rune

	// Resize
	Cols, Rows uint32

	// Mouse
	X, Y               int32
	MouseKind          MouseKind
	Buttons            Buttons
	WheelX, WheelY     int32

	// Focus
	Gained bool

	// Paste / Composition
	Bytes []byte
}

func invalid(detail string) error {
	return tuierrors.InvalidProps("wire", detail)
}
