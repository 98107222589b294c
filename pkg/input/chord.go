package input

import "strings"

// Bindings maps a chord (space-separated key sequence, e.g. "g g" or
// "ctrl+s") to an application-defined action name, for one keybinding mode.
type Bindings map[string]string

// ChordMatcher holds a pendingChord sequence that grows on each key, fires
// the bound action on an exact match, and clears on anything that is
// neither a match nor a strict prefix of some binding.
type ChordMatcher struct {
	byMode  map[string]Bindings
	mode    string
	def     string
	pending []string
}

// NewChordMatcher builds a matcher over mode->Bindings, with defaultMode
// consulted as a fallback whenever the active mode has no match.
func NewChordMatcher(byMode map[string]Bindings, defaultMode string) *ChordMatcher {
	return &ChordMatcher{byMode: byMode, mode: defaultMode, def: defaultMode}
}

// SetMode switches the active keybinding mode; does not clear pendingChord.
func (m *ChordMatcher) SetMode(mode string) {
	m.mode = mode
}

// PendingChord returns the in-progress chord sequence joined by spaces, or
// "" if no chord is pending.
func (m *ChordMatcher) PendingChord() string {
	if len(m.pending) == 0 {
		return ""
	}
	return strings.Join(m.pending, " ")
}

// FeedResult is the outcome of matching one key event.
type FeedResult struct {
	Action     string
	Matched    bool
	Invalidate bool // pendingChord transitioned non-null<->any or null<->non-null
}

// Feed appends key to the pending sequence and resolves it against the
// active mode's bindings, falling back to the default mode's bindings when
// the active mode has no exact match. Exact matches in either mode are
// checked before prefixes, so a default-mode exact match wins over an
// active-mode prefix.
func (m *ChordMatcher) Feed(key string) FeedResult {
	wasPending := len(m.pending) > 0
	candidate := append(append([]string{}, m.pending...), key)
	seq := strings.Join(candidate, " ")

	if action, ok := m.exactMatch(seq); ok {
		m.pending = nil
		return FeedResult{Action: action, Matched: true, Invalidate: true}
	}
	if m.isPrefix(seq) {
		m.pending = candidate
		return FeedResult{Invalidate: true}
	}
	m.pending = nil
	return FeedResult{Invalidate: wasPending}
}

func (m *ChordMatcher) exactMatch(seq string) (string, bool) {
	if b, ok := m.byMode[m.mode]; ok {
		if action, ok := b[seq]; ok {
			return action, true
		}
	}
	if m.mode != m.def {
		if b, ok := m.byMode[m.def]; ok {
			if action, ok := b[seq]; ok {
				return action, true
			}
		}
	}
	return "", false
}

func (m *ChordMatcher) isPrefix(seq string) bool {
	if isPrefixOfAny(m.byMode[m.mode], seq) {
		return true
	}
	if m.mode != m.def && isPrefixOfAny(m.byMode[m.def], seq) {
		return true
	}
	return false
}

func isPrefixOfAny(b Bindings, seq string) bool {
	for chord := range b {
		if chord == seq {
			continue // exact matches are handled separately
		}
		if strings.HasPrefix(chord, seq+" ") {
			return true
		}
	}
	return false
}
