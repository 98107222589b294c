package engine

import (
	"strings"
	"unicode"

	"github.com/nextcore/tuicore/pkg/input"
	"github.com/nextcore/tuicore/pkg/wire"
)

// keyName translates a decoded KindKey event's numeric code into the
// textual identifier pkg/input's routers and chord matcher key on. The
// numeric<->name mapping is glue between the wire codec and the pure
// input algorithms, not a core routing concern (see pkg/input/kindrouter.go).
func keyName(ev wire.Event) string {
	base, ok := namedKeys[ev.KeyCode]
	if !ok {
		if ev.KeyCode == 0 || ev.KeyCode > unicode.MaxRune {
			return ""
		}
		base = strings.ToLower(string(rune(ev.KeyCode)))
	}

	var prefix strings.Builder
	if ev.Mods&wire.ModCtrl != 0 {
		prefix.WriteString("ctrl+")
	}
	if ev.Mods&wire.ModAlt != 0 {
		prefix.WriteString("alt+")
	}
	if ev.Mods&wire.ModSuper != 0 {
		prefix.WriteString("super+")
	}
	if ev.Mods&wire.ModShift != 0 && len(base) != 1 {
		prefix.WriteString("shift+")
	}
	return prefix.String() + base
}

var namedKeys = map[uint32]string{
	wire.KeyCodeUp:       input.KeyUp,
	wire.KeyCodeDown:     input.KeyDown,
	wire.KeyCodeLeft:     input.KeyLeft,
	wire.KeyCodeRight:    input.KeyRight,
	wire.KeyCodeEnter:    input.KeyEnter,
	wire.KeyCodeEscape:   input.KeyEscape,
	wire.KeyCodeSpace:    input.KeySpace,
	wire.KeyCodeHome:     input.KeyHome,
	wire.KeyCodeEnd:      input.KeyEnd,
	wire.KeyCodePageUp:   input.KeyPageUp,
	wire.KeyCodePageDown: input.KeyPageDown,
	wire.KeyCodeTab:       input.KeyTab,
	wire.KeyCodeBackspace: input.KeyBackspace,
	wire.KeyCodeDelete:    input.KeyDelete,
}
