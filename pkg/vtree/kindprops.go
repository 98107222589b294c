package vtree

import "fmt"

// TextProps is the Props for KindText.
type TextProps struct {
	LayoutProps
	Content string
	Wrap bool
}

func (p TextProps) Validate() error { return p.LayoutProps.Validate() }

// RowProps/ColumnProps are the Props for KindRow/KindColumn (flex stacks).
type RowProps struct{ LayoutProps }
type ColumnProps struct{ LayoutProps }

func (p RowProps) Validate() error { return p.LayoutProps.Validate() }
func (p ColumnProps) Validate() error { return p.LayoutProps.Validate() }

// BoxProps is the Props for KindBox (a plain decorated container, single child).
type BoxProps struct{ LayoutProps }

func (p BoxProps) Validate() error { return p.LayoutProps.Validate() }

// ButtonProps is the Props for KindButton.
type ButtonProps struct {
	LayoutProps
	Label string
	Disabled bool
	OnPress func()
}

func (p ButtonProps) Validate() error { return p.LayoutProps.Validate() }

// InputProps is the Props for KindInput (single-line text entry).
type InputProps struct {
	LayoutProps
	Value string
	Placeholder string
	CursorPos int
	Disabled bool
	OnChange func(string)
	OnSubmit func(string)
}

func (p InputProps) Validate() error {
	if err := p.LayoutProps.Validate(); err != nil {
		return err
	}
	if p.CursorPos < 0 || p.CursorPos > len(p.Value) {
		return fmt.Errorf("cursorPos out of range")
	}
	return nil
}

// Track is a single grid track definition.
type Track struct {
	Cells int // integer track width in cells
}

// GridProps is the Props for KindGrid.
type GridProps struct {
	LayoutProps
	Columns []Track
	Rows []Track
}

func (p GridProps) Validate() error {
	if err := p.LayoutProps.Validate(); err != nil {
		return err
	}
	for _, t := range p.Columns {
		if t.Cells < 0 {
			return fmt.Errorf("grid column track must be >= 0 cells")
		}
	}
	for _, t := range p.Rows {
		if t.Cells < 0 {
			return fmt.Errorf("grid row track must be >= 0 cells")
		}
	}
	return nil
}

// TableColumn describes one column of a table.
type TableColumn struct {
	Header string
	Width Size
}

// TableProps is the Props for KindTable.
type TableProps struct {
	LayoutProps
	Columns []TableColumn
	RowCount int
	SelectedRow int
}

func (p TableProps) Validate() error {
	if err := p.LayoutProps.Validate(); err != nil {
		return err
	}
	if p.RowCount < 0 {
		return fmt.Errorf("rowCount must be >= 0")
	}
	return nil
}

// TreeNodeState describes one visible row of a flattened tree widget.
type TreeNodeState struct {
	ID string
	Depth int
	Expanded bool
	HasKids bool
}

// TreeProps is the Props for KindTree.
type TreeProps struct {
	LayoutProps
	Nodes []TreeNodeState
	SelectedID string
	OnToggle func(id string)
	OnSelect func(id string)
}

func (p TreeProps) Validate() error { return p.LayoutProps.Validate() }

// VirtualListProps is the Props for KindVirtualList: only a window of items
// around the viewport is ever materialized by the application, but the core
// only needs the total count and row height to route wheel/key events and
// compute scroll metadata.
type VirtualListProps struct {
	LayoutProps
	ItemCount int
	RowHeight int // cells per row, >= 1
	SelectedIdx int
	OnSelect func(index int)
}

func (p VirtualListProps) Validate() error {
	if err := p.LayoutProps.Validate(); err != nil {
		return err
	}
	if p.ItemCount < 0 {
		return fmt.Errorf("itemCount must be >= 0")
	}
	if p.RowHeight < 1 {
		return fmt.Errorf("rowHeight must be >= 1")
	}
	return nil
}

// Navigation modes for a focus zone.
type ZoneNavigation int

const (
	ZoneNavigationLinear ZoneNavigation = iota
	ZoneNavigationGrid
)

// FocusZoneProps is the Props for KindFocusZone.
type FocusZoneProps struct {
	LayoutProps
	TabIndex int
	Navigation ZoneNavigation
	Columns int // valid when Navigation == ZoneNavigationGrid
	WrapAround bool
}

func (p FocusZoneProps) Validate() error {
	if err := p.LayoutProps.Validate(); err != nil {
		return err
	}
	if p.Navigation == ZoneNavigationGrid && p.Columns < 1 {
		return fmt.Errorf("focusZone columns must be >= 1 in grid navigation")
	}
	return nil
}

// FocusTrapProps is the Props for KindFocusTrap.
type FocusTrapProps struct {
	LayoutProps
	Active bool
	InitialFocus string // focusable id, optional
	ReturnFocusTo string // focusable id, optional
}

func (p FocusTrapProps) Validate() error { return p.LayoutProps.Validate() }

// ModalProps/LayerProps are the Props for KindModal/KindLayer: stacked
// overlays participating in the LIFO escape router.
type ModalProps struct {
	LayoutProps
	CloseOnEscape bool
	OnClose func()
}

func (p ModalProps) Validate() error { return p.LayoutProps.Validate() }

type LayerProps struct {
	LayoutProps
	CloseOnEscape bool
	OnClose func()
}

func (p LayerProps) Validate() error { return p.LayoutProps.Validate() }

// DropdownProps is the Props for KindDropdown.
type DropdownProps struct {
	LayoutProps
	Options []string
	SelectedIdx int
	Open bool
	OnOpenChange func(bool)
	OnSelect func(index int)
}

func (p DropdownProps) Validate() error {
	if err := p.LayoutProps.Validate(); err != nil {
		return err
	}
	if p.SelectedIdx < -1 || (len(p.Options) > 0 && p.SelectedIdx >= len(p.Options)) {
		return fmt.Errorf("selectedIdx out of range")
	}
	return nil
}

// TabsProps is the Props for KindTabs.
type TabsProps struct {
	LayoutProps
	Labels []string
	ActiveIdx int
	OnChange func(index int)
}

func (p TabsProps) Validate() error {
	if err := p.LayoutProps.Validate(); err != nil {
		return err
	}
	if len(p.Labels) > 0 && (p.ActiveIdx < 0 || p.ActiveIdx >= len(p.Labels)) {
		return fmt.Errorf("activeIdx out of range")
	}
	return nil
}

// AccordionProps is the Props for KindAccordion.
type AccordionProps struct {
	LayoutProps
	Sections []string
	OpenIdx int // -1 means all collapsed
	OnToggle func(index int)
}

func (p AccordionProps) Validate() error { return p.LayoutProps.Validate() }

// TransitionProps covers KindTransitionFade/KindTransitionSlide.
type TransitionProps struct {
	LayoutProps
	DurationMs int
}

func (p TransitionProps) Validate() error {
	if err := p.LayoutProps.Validate(); err != nil {
		return err
	}
	if p.DurationMs < 0 {
		return fmt.Errorf("durationMs must be >= 0")
	}
	return nil
}

// ChartProps is the Props for KindChart. Rendering of the actual series is a
// widget-level (out of scope) concern; the core only needs sizing.
type ChartProps struct {
	LayoutProps
	Series [][]float64
}

func (p ChartProps) Validate() error { return p.LayoutProps.Validate() }

// GenericProps is the Props type for every kind in the "generic pass-through"
// set: validated and laid out like a
// box, with no specialized behavior.
type GenericProps struct {
	LayoutProps
	Fields map[string]any
}

func (p GenericProps) Validate() error { return p.LayoutProps.Validate() }

// ErrorBoundaryProps is the Props for KindErrorBoundary.
type ErrorBoundaryProps struct {
	LayoutProps
	Fallback func(err error) *VNode
}

func (p ErrorBoundaryProps) Validate() error { return p.LayoutProps.Validate() }
