package input

import "github.com/nextcore/tuicore/pkg/vtree"

// Key names used by the default per-kind routers below. These match the
// textual key identifiers a Backend is expected to deliver in practice
// (e.g. "up", "down", "enter"); exact key-code-to-name mapping is a backend
// concern, not core.
const (
	KeyUp       = "up"
	KeyDown     = "down"
	KeyLeft     = "left"
	KeyRight    = "right"
	KeyEnter    = "enter"
	KeyEscape   = "escape"
	KeySpace    = "space"
	KeyHome     = "home"
	KeyEnd      = "end"
	KeyPageUp   = "pageup"
	KeyPageDown = "pagedown"
	KeyTab      = "tab"
	KeyBackspace = "backspace"
	KeyDelete    = "delete"
)

// KindRouter is a pure function mapping one key event against a focused
// node's props to a bool reporting whether it handled the key (and, by
// side effect through the node's own callback props, what happened).
type KindRouter func(key string, node *vtree.VNode) (handled bool)

// Routers indexes the per-kind default routers by vtree.Kind.
var Routers = map[vtree.Kind]KindRouter{
	vtree.KindDropdown:    routeDropdown,
	vtree.KindTree:        routeTree,
	vtree.KindVirtualList: routeVirtualList,
	vtree.KindTabs:        routeTabs,
}

// Route dispatches key to the registered router for node's kind, if any.
func Route(key string, node *vtree.VNode) bool {
	if node == nil {
		return false
	}
	r, ok := Routers[node.Kind]
	if !ok {
		return false
	}
	return r(key, node)
}

func routeDropdown(key string, node *vtree.VNode) bool {
	p, ok := node.Props.(vtree.DropdownProps)
	if !ok {
		return false
	}
	switch key {
	case KeyDown:
		if !p.Open {
			if p.OnOpenChange != nil {
				p.OnOpenChange(true)
			}
			return true
		}
		if len(p.Options) == 0 {
			return true
		}
		next := p.SelectedIdx + 1
		if next >= len(p.Options) {
			next = len(p.Options) - 1
		}
		if p.OnSelect != nil {
			p.OnSelect(next)
		}
		return true
	case KeyUp:
		if !p.Open || len(p.Options) == 0 {
			return p.Open
		}
		next := p.SelectedIdx - 1
		if next < 0 {
			next = 0
		}
		if p.OnSelect != nil {
			p.OnSelect(next)
		}
		return true
	case KeyEnter, KeySpace:
		if p.OnOpenChange != nil {
			p.OnOpenChange(!p.Open)
		}
		return true
	case KeyEscape:
		if p.Open && p.OnOpenChange != nil {
			p.OnOpenChange(false)
			return true
		}
		return false
	}
	return false
}

func routeTree(key string, node *vtree.VNode) bool {
	p, ok := node.Props.(vtree.TreeProps)
	if !ok {
		return false
	}
	idx := indexOfTreeNode(p.Nodes, p.SelectedID)
	switch key {
	case KeyDown:
		if idx < 0 || idx >= len(p.Nodes)-1 {
			return idx >= 0
		}
		if p.OnSelect != nil {
			p.OnSelect(p.Nodes[idx+1].ID)
		}
		return true
	case KeyUp:
		if idx <= 0 {
			return idx == 0
		}
		if p.OnSelect != nil {
			p.OnSelect(p.Nodes[idx-1].ID)
		}
		return true
	case KeyRight:
		if idx < 0 {
			return false
		}
		n := p.Nodes[idx]
		if n.HasKids && !n.Expanded && p.OnToggle != nil {
			p.OnToggle(n.ID)
			return true
		}
		return false
	case KeyLeft:
		if idx < 0 {
			return false
		}
		n := p.Nodes[idx]
		if n.HasKids && n.Expanded && p.OnToggle != nil {
			p.OnToggle(n.ID)
			return true
		}
		return false
	case KeyEnter, KeySpace:
		if idx < 0 {
			return false
		}
		n := p.Nodes[idx]
		if n.HasKids && p.OnToggle != nil {
			p.OnToggle(n.ID)
		}
		return true
	}
	return false
}

func indexOfTreeNode(nodes []vtree.TreeNodeState, id string) int {
	for i, n := range nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func routeVirtualList(key string, node *vtree.VNode) bool {
	p, ok := node.Props.(vtree.VirtualListProps)
	if !ok || p.ItemCount == 0 {
		return false
	}
	next := p.SelectedIdx
	switch key {
	case KeyDown:
		next++
	case KeyUp:
		next--
	case KeyPageDown:
		next += 10
	case KeyPageUp:
		next -= 10
	case KeyHome:
		next = 0
	case KeyEnd:
		next = p.ItemCount - 1
	default:
		return false
	}
	if next < 0 {
		next = 0
	}
	if next >= p.ItemCount {
		next = p.ItemCount - 1
	}
	if p.OnSelect != nil {
		p.OnSelect(next)
	}
	return true
}

func routeTabs(key string, node *vtree.VNode) bool {
	p, ok := node.Props.(vtree.TabsProps)
	if !ok || len(p.Labels) == 0 {
		return false
	}
	next := p.ActiveIdx
	switch key {
	case KeyRight:
		next = (next + 1) % len(p.Labels)
	case KeyLeft:
		next = ((next-1)%len(p.Labels) + len(p.Labels)) % len(p.Labels)
	default:
		return false
	}
	if p.OnChange != nil {
		p.OnChange(next)
	}
	return true
}
