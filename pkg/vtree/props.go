package vtree

import "fmt"

// Size is a resolved-or-unresolved width/height spec.
// Exactly one of the fields is meaningful per Mode.
type SizeMode int

const (
	SizeAuto SizeMode = iota // natural size
	SizeFull // parent inner size
	SizeCells // explicit integer cell count
	SizePercent // percentage of parent inner size, floored
)

type Size struct {
	Mode SizeMode
	Cells int // valid when Mode == SizeCells
	Percent int // valid when Mode == SizePercent, 0-100+ (not clamped here)
}

func Auto() Size { return Size{Mode: SizeAuto} }
func Full() Size { return Size{Mode: SizeFull} }
func Cells(n int) Size { return Size{Mode: SizeCells, Cells: n} }
func Percent(pct int) Size { return Size{Mode: SizePercent, Percent: pct} }
func (s Size) IsZero() bool { return s.Mode == SizeAuto && s.Cells == 0 && s.Percent == 0 }

// Align and Justify enums for stack layout.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

type Justify int

const (
	JustifyStart Justify = iota
	JustifyCenter
	JustifyEnd
	JustifyBetween
	JustifyAround
	JustifyEvenly
)

// Overflow controls how a container handles children exceeding its bounds.
type Overflow int

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
)

// BorderStyle enumerates supported border glyph sets.
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderSingle
	BorderDouble
	BorderRounded
	BorderHeavy
	BorderDashed
	BorderHeavyDashed
)

// Edges holds four independent per-side non-negative integers, used for both
// margin and padding.
type Edges struct {
	Top, Right, Bottom, Left int
}

// ResolveEdges applies per-side override precedence: all < axis < specific side.
func ResolveEdges(all, x, y, top, right, bottom, left *int) (Edges, error) {
	e := Edges{}
	set := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	if all != nil {
		e.Top, e.Right, e.Bottom, e.Left = *all, *all, *all, *all
	}
	if x != nil {
		e.Right, e.Left = *x, *x
	}
	if y != nil {
		e.Top, e.Bottom = *y, *y
	}
	set(&e.Top, top)
	set(&e.Right, right)
	set(&e.Bottom, bottom)
	set(&e.Left, left)
	if e.Top < 0 || e.Right < 0 || e.Bottom < 0 || e.Left < 0 {
		return e, fmt.Errorf("negative edge value")
	}
	return e, nil
}

// Border describes a node's border: style plus per-side suppression.
type Border struct {
	Style BorderStyle
	SuppressTop, SuppressRight bool
	SuppressBottom, SuppressLeft bool
}

// Consumes reports whether this side consumes a cell.
func (b Border) ConsumesTop() bool { return b.Style != BorderNone && !b.SuppressTop }
func (b Border) ConsumesRight() bool { return b.Style != BorderNone && !b.SuppressRight }
func (b Border) ConsumesBottom() bool { return b.Style != BorderNone && !b.SuppressBottom }
func (b Border) ConsumesLeft() bool { return b.Style != BorderNone && !b.SuppressLeft }

// PositionMode selects in-flow vs absolute positioning.
type PositionMode int

const (
	PositionStatic PositionMode = iota
	PositionAbsolute
)

// AbsoluteInset holds optional top/right/bottom/left offsets against the
// parent content rect. A nil pointer means "not set".
type AbsoluteInset struct {
	Top, Right, Bottom, Left *int
}

// LayoutProps is the common layout geometry every kind carries.
// Kind-specific Props embed this and add kind-only fields (e.g. Text.Content,
// Button.OnPress).
type LayoutProps struct {
	Width, Height Size
	MinWidth, MinHeight int
	MaxWidth, MaxHeight int // 0 means unbounded (∞ default)
	Flex int // grow weight, >= 0
	FlexShrink int // >= 0, default 0
	FlexBasis *Size
	AspectRatio float64 // 0 means unset

	Margin Edges
	Padding Edges
	Border Border

	Gap int // non-negative, between siblings/cells

	Align Align
	Justify Justify

	Overflow Overflow
	ScrollX, ScrollY int

	Position PositionMode
	AbsoluteInset AbsoluteInset
	AbsoluteWidth *Size
	AbsoluteHeight *Size

	GridColumn, GridRow int // 1-based; 0 means auto-placed
	ColSpan, RowSpan int // >= 1

	ExitTransitionMs int // > 0 enables exit animation for this node
}

// LayoutPropsOf extracts the common LayoutProps embedded in a node's
// kind-specific Props. Returns the zero value for nil or unrecognized Props,
// so callers outside this package (layout, engine) never need their own
// copy of the kind switch.
func LayoutPropsOf(props Props) LayoutProps {
	switch p := props.(type) {
	case TextProps:
		return p.LayoutProps
	case RowProps:
		return p.LayoutProps
	case ColumnProps:
		return p.LayoutProps
	case BoxProps:
		return p.LayoutProps
	case ButtonProps:
		return p.LayoutProps
	case InputProps:
		return p.LayoutProps
	case GridProps:
		return p.LayoutProps
	case TableProps:
		return p.LayoutProps
	case TreeProps:
		return p.LayoutProps
	case VirtualListProps:
		return p.LayoutProps
	case FocusZoneProps:
		return p.LayoutProps
	case FocusTrapProps:
		return p.LayoutProps
	case ModalProps:
		return p.LayoutProps
	case LayerProps:
		return p.LayoutProps
	case DropdownProps:
		return p.LayoutProps
	case TabsProps:
		return p.LayoutProps
	case AccordionProps:
		return p.LayoutProps
	case TransitionProps:
		return p.LayoutProps
	case ChartProps:
		return p.LayoutProps
	case GenericProps:
		return p.LayoutProps
	case ErrorBoundaryProps:
		return p.LayoutProps
	default:
		return LayoutProps{}
	}
}

// WithScroll returns a copy of props with its embedded LayoutProps'
// ScrollX/ScrollY overridden. Wheel routing is engine-owned runtime state
// (§4.4), not something the view function recomputes every frame, so the
// frame orchestrator threads the last-routed scroll position back onto a
// freshly reconciled VNode this way before handing the tree to layout.
func WithScroll(props Props, x, y int) Props {
	switch p := props.(type) {
	case TextProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	case RowProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	case ColumnProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	case BoxProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	case ButtonProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	case InputProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	case GridProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	case TableProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	case TreeProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	case VirtualListProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	case FocusZoneProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	case FocusTrapProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	case ModalProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	case LayerProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	case DropdownProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	case TabsProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	case AccordionProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	case TransitionProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	case ChartProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	case GenericProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	case ErrorBoundaryProps:
		p.ScrollX, p.ScrollY = x, y
		return p
	default:
		return props
	}
}

// Validate checks the common geometry invariants.
func (p LayoutProps) Validate() error {
	if p.MinWidth < 0 || p.MinHeight < 0 {
		return fmt.Errorf("minWidth/minHeight must be >= 0")
	}
	if p.MaxWidth < 0 || p.MaxHeight < 0 {
		return fmt.Errorf("maxWidth/maxHeight must be >= 0")
	}
	if p.Flex < 0 || p.FlexShrink < 0 {
		return fmt.Errorf("flex/flexShrink must be >= 0")
	}
	if p.Gap < 0 {
		return fmt.Errorf("gap must be >= 0")
	}
	if p.AspectRatio < 0 {
		return fmt.Errorf("aspectRatio must be > 0")
	}
	if p.Margin.Top < 0 || p.Margin.Right < 0 || p.Margin.Bottom < 0 || p.Margin.Left < 0 {
		return fmt.Errorf("margin sides must be >= 0")
	}
	if p.Padding.Top < 0 || p.Padding.Right < 0 || p.Padding.Bottom < 0 || p.Padding.Left < 0 {
		return fmt.Errorf("padding sides must be >= 0")
	}
	if p.ColSpan < 0 || p.RowSpan < 0 {
		return fmt.Errorf("colSpan/rowSpan must be >= 1 when set")
	}
	if p.ScrollX < 0 || p.ScrollY < 0 {
		return fmt.Errorf("scrollX/scrollY must be >= 0")
	}
	return nil
}
