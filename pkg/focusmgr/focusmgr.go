// Package focusmgr tracks which instance holds focus across frames: a set of
// zones forming a containment graph, plus a LIFO trap stack, restructured
// from a single global linear/directional scope into explicit zones each
// with their own navigation mode, tab order, and trap nesting.
package focusmgr

import (
	"fmt"
	"sort"

	"github.com/nextcore/tuicore/pkg/reconciler"
	"github.com/nextcore/tuicore/pkg/vtree"
)

// FocusableID identifies a focusable instance: its VNode.ID when the
// application set one, else a stable fallback derived from its InstanceID.
type FocusableID string

// ZoneID identifies a focus zone the same way. RootZoneID is the implicit
// zone every focusable not wrapped in an explicit FocusZone belongs to.
type ZoneID string

const RootZoneID ZoneID = ""

// Zone mirrors one FocusZone (or the implicit root) as of the last commit.
type Zone struct {
	ID           ZoneID
	TabIndex     int
	Navigation   vtree.ZoneNavigation
	Columns      int
	WrapAround   bool
	FocusableIDs []FocusableID // ordered by commit-time appearance
	LastFocusedID FocusableID
	ParentZoneID ZoneID
}

// Trap mirrors one FocusTrap as of the last commit.
type Trap struct {
	ZoneID        ZoneID
	Active        bool
	InitialFocus  FocusableID
	ReturnFocusTo FocusableID
}

// CommitMeta is the focus-relevant shape of a newly committed instance tree.
type CommitMeta struct {
	Zones     map[ZoneID]*Zone
	ZoneOrder []ZoneID // first-encountered order, used for tabIndex tie-breaks
	Traps     []*Trap
}

// CollectCommitMeta walks a committed instance tree depth-first (the same
// order VNode children were declared) and extracts zones, their focusable
// members, and traps. Call this once per commit, before Finalize.
func CollectCommitMeta(root *reconciler.Instance) *CommitMeta {
	w := &walker{zones: map[ZoneID]*Zone{}}
	w.zones[RootZoneID] = &Zone{ID: RootZoneID, Navigation: vtree.ZoneNavigationLinear}
	w.order = append(w.order, RootZoneID)
	w.walk(root, RootZoneID)
	return &CommitMeta{Zones: w.zones, ZoneOrder: w.order, Traps: w.traps}
}

type walker struct {
	zones map[ZoneID]*Zone
	order []ZoneID
	traps []*Trap
}

func (w *walker) walk(inst *reconciler.Instance, zoneID ZoneID) {
	if inst == nil || inst.Node == nil {
		return
	}
	node := inst.Node
	current := zoneID

	switch node.Kind {
	case vtree.KindFocusZone:
		if p, ok := node.Props.(vtree.FocusZoneProps); ok {
			id := stableID(node.ID, inst.ID, "zone")
			w.upsertZone(&Zone{
				ID: id, TabIndex: p.TabIndex, Navigation: p.Navigation,
				Columns: p.Columns, WrapAround: p.WrapAround, ParentZoneID: zoneID,
			})
			current = id
		}
	case vtree.KindFocusTrap:
		if p, ok := node.Props.(vtree.FocusTrapProps); ok {
			id := stableID(node.ID, inst.ID, "trap")
			w.upsertZone(&Zone{ID: id, Navigation: vtree.ZoneNavigationLinear, ParentZoneID: zoneID})
			w.traps = append(w.traps, &Trap{
				ZoneID: id, Active: p.Active,
				InitialFocus: FocusableID(p.InitialFocus), ReturnFocusTo: FocusableID(p.ReturnFocusTo),
			})
			current = id
		}
	}

	if node.Kind.IsFocusable() {
		fid := stableID(node.ID, inst.ID, "focusable")
		z := w.zones[current]
		z.FocusableIDs = append(z.FocusableIDs, fid)
	}

	for _, c := range inst.Children {
		w.walk(c, current)
	}
}

func (w *walker) upsertZone(z *Zone) {
	if existing, ok := w.zones[z.ID]; ok {
		existing.TabIndex = z.TabIndex
		existing.Navigation = z.Navigation
		existing.Columns = z.Columns
		existing.WrapAround = z.WrapAround
		existing.ParentZoneID = z.ParentZoneID
		return
	}
	w.zones[z.ID] = z
	w.order = append(w.order, z.ID)
}

func stableID(explicit string, id reconciler.InstanceID, kind string) FocusableID {
	if explicit != "" {
		return FocusableID(explicit)
	}
	return FocusableID(fmt.Sprintf("#%s:%d", kind, id))
}

// hasFocusable reports whether id belongs to any zone in meta.
func (m *CommitMeta) hasFocusable(id FocusableID) (ZoneID, bool) {
	for _, zid := range m.ZoneOrder {
		z := m.Zones[zid]
		for _, f := range z.FocusableIDs {
			if f == id {
				return zid, true
			}
		}
	}
	return "", false
}

// firstFocusable returns the first focusable in traversal order: the active
// zone first, then the rest of the zones in first-encountered order.
func (m *CommitMeta) firstFocusable(preferZone ZoneID) (FocusableID, ZoneID, bool) {
	if z, ok := m.Zones[preferZone]; ok && len(z.FocusableIDs) > 0 {
		return z.FocusableIDs[0], preferZone, true
	}
	for _, zid := range m.ZoneOrder {
		z := m.Zones[zid]
		if len(z.FocusableIDs) > 0 {
			return z.FocusableIDs[0], zid, true
		}
	}
	return "", "", false
}

// State is the focus state carried across frames: which instance is
// focused, which zone is active, the zone table, the trap stack, each
// zone's last-focused member, and any pending focus request.
type State struct {
	FocusedID    FocusableID
	ActiveZoneID ZoneID

	zones             map[ZoneID]*Zone
	zoneOrder         []ZoneID
	TrapStack         []ZoneID
	LastFocusedByZone map[ZoneID]FocusableID

	pendingSet   bool
	pendingClear bool
	pendingID    FocusableID

	activeTraps map[ZoneID]bool
}

// New returns an empty focus state with no focused instance.
func New() *State {
	return &State{
		zones:             map[ZoneID]*Zone{},
		LastFocusedByZone: map[ZoneID]FocusableID{},
		activeTraps:       map[ZoneID]bool{},
	}
}

// RequestFocus queues a pending focus change to id, applied at the next Finalize.
func (s *State) RequestFocus(id FocusableID) {
	s.pendingSet = true
	s.pendingClear = false
	s.pendingID = id
}

// ClearFocus queues a pending focus clear, applied at the next Finalize.
func (s *State) ClearFocus() {
	s.pendingSet = false
	s.pendingClear = true
}

// Finalize reconciles state against meta per the per-frame algorithm: rebuild
// zone tables; apply a newly-activated trap's focus target if one exists,
// overriding any pending request; else apply a pending request if its target
// still exists; else keep the previous focus if it still exists; else fall
// back to the first focusable in traversal order.
func (s *State) Finalize(meta *CommitMeta) {
	prevFocused := s.FocusedID
	prevActiveZone := s.ActiveZoneID

	s.zones = meta.Zones
	s.zoneOrder = meta.ZoneOrder
	for id, z := range s.zones {
		if last, ok := s.LastFocusedByZone[id]; ok {
			z.LastFocusedID = last
		}
	}

	newlyActive, newlyInactive := s.diffTraps(meta.Traps)
	pendingZone, pendingOK := meta.hasFocusable(s.pendingID)

	switch {
	case len(newlyActive) > 0:
		trap := newlyActive[0]
		s.TrapStack = append(s.TrapStack, trap.ZoneID)
		s.ActiveZoneID = trap.ZoneID
		target := trap.InitialFocus
		if _, ok := meta.hasFocusable(target); !ok || target == "" {
			target, _, _ = meta.firstFocusable(trap.ZoneID)
		}
		s.setFocused(target, trap.ZoneID)

	case len(newlyInactive) > 0:
		s.popTrap(newlyInactive[0].ZoneID)
		restore := newlyInactive[0].ReturnFocusTo
		if restore == "" {
			restore = s.zones[s.ActiveZoneID].LastFocusedID
		}
		if _, ok := meta.hasFocusable(restore); ok {
			s.setFocused(restore, s.zoneOf(meta, restore))
		} else if id, zid, ok := meta.firstFocusable(s.ActiveZoneID); ok {
			s.setFocused(id, zid)
		} else {
			s.setFocused("", s.ActiveZoneID)
		}

	case s.pendingSet && pendingOK:
		s.setFocused(s.pendingID, pendingZone)

	case s.pendingClear || (s.pendingSet && s.pendingID == ""):
		s.setFocused("", prevActiveZone)

	default:
		if zid, ok := meta.hasFocusable(prevFocused); ok && prevFocused != "" {
			s.setFocused(prevFocused, zid)
		} else if id, zid, ok := meta.firstFocusable(prevActiveZone); ok {
			s.setFocused(id, zid)
		} else {
			s.setFocused("", prevActiveZone)
		}
	}

	s.pendingSet = false
	s.pendingClear = false
}

func (s *State) setFocused(id FocusableID, zone ZoneID) {
	s.FocusedID = id
	if zone != "" || id != "" {
		s.ActiveZoneID = zone
	}
	if id != "" {
		s.LastFocusedByZone[zone] = id
		if z, ok := s.zones[zone]; ok {
			z.LastFocusedID = id
		}
	}
}

func (s *State) zoneOf(meta *CommitMeta, id FocusableID) ZoneID {
	zid, _ := meta.hasFocusable(id)
	return zid
}

func (s *State) currentTrapOrRoot() ZoneID {
	if len(s.TrapStack) > 0 {
		return s.TrapStack[len(s.TrapStack)-1]
	}
	return RootZoneID
}

func (s *State) popTrap(zoneID ZoneID) {
	for i := len(s.TrapStack) - 1; i >= 0; i-- {
		if s.TrapStack[i] == zoneID {
			s.TrapStack = append(s.TrapStack[:i], s.TrapStack[i+1:]...)
			break
		}
	}
	s.ActiveZoneID = s.currentTrapOrRoot()
}

// diffTraps compares this commit's trap list against last frame's active set,
// returning traps that just turned on and traps that just turned off.
func (s *State) diffTraps(traps []*Trap) (newlyActive, newlyInactive []*Trap) {
	seen := map[ZoneID]bool{}
	for _, t := range traps {
		seen[t.ZoneID] = true
		wasActive := s.activeTraps[t.ZoneID]
		if t.Active && !wasActive {
			newlyActive = append(newlyActive, t)
		} else if !t.Active && wasActive {
			newlyInactive = append(newlyInactive, t)
		}
	}
	for zid := range s.activeTraps {
		if !seen[zid] {
			newlyInactive = append(newlyInactive, &Trap{ZoneID: zid})
		}
	}
	s.activeTraps = map[ZoneID]bool{}
	for _, t := range traps {
		if t.Active {
			s.activeTraps[t.ZoneID] = true
		}
	}
	return newlyActive, newlyInactive
}

// ActiveZone returns a copy of the active zone's metadata, so a caller (the
// input router) can decide between linear and grid traversal without this
// package exposing its internal zone table.
func (s *State) ActiveZone() (Zone, bool) {
	z, ok := s.zones[s.ActiveZoneID]
	if !ok {
		return Zone{}, false
	}
	return *z, true
}

// MoveLinear steps focus by delta within the active zone's focusable list,
// wrapping only when the zone's WrapAround is set.
func (s *State) MoveLinear(delta int) bool {
	z, ok := s.zones[s.ActiveZoneID]
	if !ok || len(z.FocusableIDs) == 0 {
		return false
	}
	idx := indexOf(z.FocusableIDs, s.FocusedID)
	if idx < 0 {
		s.setFocused(z.FocusableIDs[0], z.ID)
		return true
	}
	next := idx + delta
	count := len(z.FocusableIDs)
	if z.WrapAround {
		next = ((next % count) + count) % count
	} else {
		if next < 0 || next >= count {
			return false
		}
	}
	s.setFocused(z.FocusableIDs[next], z.ID)
	return true
}

// MoveGrid steps focus by ±1 column or ±columns rows within a grid-navigation
// zone, clamped to the focusable list bounds (no wraparound).
func (s *State) MoveGrid(deltaCol, deltaRow int) bool {
	z, ok := s.zones[s.ActiveZoneID]
	if !ok || z.Navigation != vtree.ZoneNavigationGrid || z.Columns < 1 || len(z.FocusableIDs) == 0 {
		return false
	}
	idx := indexOf(z.FocusableIDs, s.FocusedID)
	if idx < 0 {
		s.setFocused(z.FocusableIDs[0], z.ID)
		return true
	}
	next := idx + deltaCol + deltaRow*z.Columns
	if next < 0 || next >= len(z.FocusableIDs) {
		return false
	}
	s.setFocused(z.FocusableIDs[next], z.ID)
	return true
}

// CycleZone moves the active zone forward or backward by ascending tabIndex,
// ties broken by first-encountered zone order; wraps around the zone list.
// While a trap is active, cycling is confined to the top trap's zone.
func (s *State) CycleZone(forward bool) bool {
	candidates := s.tabOrderZones()
	if len(candidates) == 0 {
		return false
	}
	idx := -1
	for i, zid := range candidates {
		if zid == s.ActiveZoneID {
			idx = i
			break
		}
	}
	if idx < 0 {
		idx = 0
	} else if forward {
		idx = (idx + 1) % len(candidates)
	} else {
		idx = ((idx-1)%len(candidates) + len(candidates)) % len(candidates)
	}
	target := s.zones[candidates[idx]]
	id := target.LastFocusedID
	if _, ok := indexOfOK(target.FocusableIDs, id); !ok {
		if len(target.FocusableIDs) == 0 {
			return false
		}
		id = target.FocusableIDs[0]
	}
	s.setFocused(id, target.ID)
	return true
}

func (s *State) tabOrderZones() []ZoneID {
	var pool []ZoneID
	if len(s.TrapStack) > 0 {
		pool = []ZoneID{s.TrapStack[len(s.TrapStack)-1]}
	} else {
		pool = s.zoneOrder
	}
	type entry struct {
		id    ZoneID
		tab   int
		order int
	}
	entries := make([]entry, 0, len(pool))
	orderIdx := map[ZoneID]int{}
	for i, zid := range s.zoneOrder {
		orderIdx[zid] = i
	}
	for _, zid := range pool {
		z, ok := s.zones[zid]
		if !ok || len(z.FocusableIDs) == 0 {
			continue
		}
		entries = append(entries, entry{id: zid, tab: z.TabIndex, order: orderIdx[zid]})
	}
	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].tab != entries[b].tab {
			return entries[a].tab < entries[b].tab
		}
		return entries[a].order < entries[b].order
	})
	out := make([]ZoneID, len(entries))
	for i, e := range entries {
		out[i] = e.id
	}
	return out
}

func indexOf(ids []FocusableID, id FocusableID) int {
	for i, f := range ids {
		if f == id {
			return i
		}
	}
	return -1
}

func indexOfOK(ids []FocusableID, id FocusableID) (int, bool) {
	i := indexOf(ids, id)
	return i, i >= 0
}
