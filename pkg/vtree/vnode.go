package vtree

// VNode is an immutable node produced by the application's view function:
// a description the reconciler diffs between frames, as a single tagged
// struct rather than one Go type per kind.
type VNode struct {
	Kind Kind
	ID string // optional user-stable handle
	Key any // optional sibling-scoped identity hint; must be comparable if non-nil
	Props Props
	Children []*VNode // may contain nil entries ("holes") which unmount the occupant slot
}

// Props is an opaque, kind-specific property bag. Each kind's concrete Props
// type implements Validate, run once at layout entry.
type Props interface {
	// Validate checks the prop values are well-formed, returning a
	// deterministic detail string describing the first violation.
	Validate() error
}

// KeyOf returns node's key, or nil if node is nil or unkeyed.
func KeyOf(node *VNode) any {
	if node == nil {
		return nil
	}
	return node.Key
}

// Comparable reports whether v can be used as a Go map key (required to
// participate in keyed slot matching; non-comparable keys, e.g. slices or
// funcs, fall back to being treated as unkeyed by the reconciler).
func Comparable(v any) bool {
	if v == nil {
		return true
	}
	defer func() { recover() }()
	switch v.(type) {
	case string, int, int32, int64, uint, uint32, uint64, float32, float64, bool:
		return true
	default:
		// Best-effort: anything else must prove comparability by being used
		// as a map key without panicking. The reconciler wraps this check.
		return isComparableType(v)
	}
}

func isComparableType(v any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	m := map[any]struct{}{}
	m[v] = struct{}{}
	return true
}
