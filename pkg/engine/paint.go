package engine

import (
	"sort"
	"strings"

	"github.com/nextcore/tuicore/pkg/anim"
	"github.com/nextcore/tuicore/pkg/drawlist"
	"github.com/nextcore/tuicore/pkg/layout"
	"github.com/nextcore/tuicore/pkg/reconciler"
	"github.com/nextcore/tuicore/pkg/vtree"
)

// painter walks a committed LayoutTree alongside its InstanceTree and emits
// drawlist commands. Visual chrome (colors, borders, theme tokens) is a
// widget-level concern the core spec explicitly puts out of scope (§1); this
// only emits the structural primitives the codec defines: text content and
// the text cursor.
type painter struct {
	b *drawlist.Builder
}

func newPainter(b *drawlist.Builder) *painter {
	return &painter{b: b}
}

// paint renders the live tree, then any in-flight exit ghosts on top in a
// deterministic (ascending instance id) order, then positions the cursor for
// a focused KindInput instance, if any.
func (p *painter) paint(lroot *layout.Node, iroot *reconciler.Instance, exits *anim.ExitRegistry, cursorInstance reconciler.InstanceID, hasCursor bool) []byte {
	p.b.Reset()
	p.b.Clear()
	p.walk(lroot, iroot)
	p.paintExitGhosts(exits)
	if hasCursor {
		p.paintCursorFor(lroot, iroot, cursorInstance)
	}
	return p.b.Build()
}

func (p *painter) walk(ln *layout.Node, inst *reconciler.Instance) {
	if ln == nil {
		return
	}
	p.paintNode(ln, inst)
	for i, lc := range ln.Children {
		var ic *reconciler.Instance
		if inst != nil && i < len(inst.Children) {
			ic = inst.Children[i]
		}
		p.walk(lc, ic)
	}
}

func (p *painter) paintNode(ln *layout.Node, inst *reconciler.Instance) {
	if inst == nil || inst.Node == nil {
		return
	}
	switch n := inst.Node.Props.(type) {
	case vtree.TextProps:
		p.paintText(ln.Rect, n.Content, n.Wrap)
	case vtree.ButtonProps:
		p.paintText(ln.Rect, n.Label, false)
	case vtree.InputProps:
		content := n.Value
		if content == "" {
			content = n.Placeholder
		}
		p.paintText(ln.Rect, content, false)
	}
}

func (p *painter) paintText(rect layout.Rect, content string, wrap bool) {
	if content == "" {
		return
	}
	lines := strings.Split(content, "\n")
	y := rect.Y
	for _, line := range lines {
		rows := []string{line}
		if wrap && rect.W > 0 {
			rows = layout.WrapLine(line, int(rect.W))
		}
		for _, row := range rows {
			if y >= rect.Y+rect.H {
				return
			}
			raw := []byte(row)
			id := p.b.InternString(row)
			p.b.DrawText(rect.X, y, id, 0, uint32(len(raw)))
			y++
		}
	}
}

// paintExitGhosts renders the top node of every in-flight exit subtree at
// its frozen rect. The codec has no alpha-blended primitive, so an exit
// track's interpolated opacity has no command to carry it; ghosts paint
// fully opaque at their frozen position for the transition's duration.
func (p *painter) paintExitGhosts(exits *anim.ExitRegistry) {
	entries := exits.Entries()
	sort.Slice(entries, func(i, j int) bool { return entries[i].InstanceID < entries[j].InstanceID })
	for _, e := range entries {
		if e.Subtree == nil || e.Subtree.Node == nil {
			continue
		}
		p.paintNode(&layout.Node{Rect: e.Rect}, e.Subtree)
	}
}

func (p *painter) paintCursorFor(lroot *layout.Node, iroot *reconciler.Instance, target reconciler.InstanceID) {
	rect, inst, ok := findByInstanceID(lroot, iroot, target)
	if !ok || inst == nil || inst.Node == nil {
		return
	}
	ip, ok := inst.Node.Props.(vtree.InputProps)
	if !ok {
		return
	}
	p.b.SetCursor(rect.X+int32(ip.CursorPos), rect.Y, true, 0)
}

func findByInstanceID(ln *layout.Node, inst *reconciler.Instance, target reconciler.InstanceID) (layout.Rect, *reconciler.Instance, bool) {
	if ln == nil || inst == nil {
		return layout.Rect{}, nil, false
	}
	if inst.ID == target {
		return ln.Rect, inst, true
	}
	for i, lc := range ln.Children {
		if i >= len(inst.Children) {
			break
		}
		if rect, found, ok := findByInstanceID(lc, inst.Children[i], target); ok {
			return rect, found, true
		}
	}
	return layout.Rect{}, nil, false
}
