package layout

import "github.com/nextcore/tuicore/pkg/vtree"

// gridPlacement is one resolved cell assignment in the auto-placement grid.
type gridPlacement struct {
	ref *childRef
	col, row int
	colSpan, rowSpan int
}

// solveGrid lays out the children of a grid/table container onto a track
// grid of integer cell widths/heights. Row-major auto-placement puts each
// unpositioned child in the cell after the previous auto-placed child;
// cells taken by explicitly placed children or by row spans are not
// skipped, so an auto-placed child can overlap them. Explicit
// GridColumn/GridRow (1-based) children are placed directly. Spans are
// clamped so a child never extends past the last track.
func (s *solver) solveGrid(node *vtree.VNode, contentW, contentH int, children []*childRef) ([]*Node, error) {
	lp := layoutPropsOf(node.Props)
	colTracks, rowTracks := tracksOf(node)

	numCols := len(colTracks)
	if numCols == 0 {
		numCols = 1
	}

	var flow []*childRef
	var absoluteChildren []*childRef
	for _, c := range children {
		clp := layoutPropsOf(c.node.Props)
		if clp.Position == vtree.PositionAbsolute {
			absoluteChildren = append(absoluteChildren, c)
			continue
		}
		flow = append(flow, c)
	}

	placements := make([]gridPlacement, len(flow))
	cursorCol, cursorRow := 0, 0
	for i, c := range flow {
		clp := layoutPropsOf(c.node.Props)
		colSpan := clp.ColSpan
		if colSpan < 1 {
			colSpan = 1
		}
		rowSpan := clp.RowSpan
		if rowSpan < 1 {
			rowSpan = 1
		}
		if colSpan > numCols {
			colSpan = numCols
		}

		col, row := cursorCol, cursorRow
		explicit := clp.GridColumn > 0 || clp.GridRow > 0
		if clp.GridColumn > 0 {
			col = clp.GridColumn - 1
		}
		if clp.GridRow > 0 {
			row = clp.GridRow - 1
		}
		if col+colSpan > numCols {
			col = numCols - colSpan
			if col < 0 {
				col = 0
			}
		}

		placements[i] = gridPlacement{ref: c, col: col, row: row, colSpan: colSpan, rowSpan: rowSpan}

		if !explicit {
			cursorCol = col + colSpan
			if cursorCol >= numCols {
				cursorCol = 0
				cursorRow++
			}
		}
	}

	numRows := len(rowTracks)
	for _, p := range placements {
		if p.row+p.rowSpan > numRows {
			numRows = p.row + p.rowSpan
		}
	}
	if numRows == 0 {
		numRows = 1
	}

	colWidths := resolveTrackSizes(colTracks, numCols, contentW, lp.Gap)
	rowHeights := resolveAutoRowHeights(rowTracks, numRows, colWidths, placements, s, lp.Gap, contentH)

	colStart := prefixOffsets(colWidths, lp.Gap)
	rowStart := prefixOffsets(rowHeights, lp.Gap)

	nodes := make([]*Node, 0, len(children))
	for _, p := range placements {
		x := colStart[p.col]
		y := rowStart[p.row]
		w := spanSize(colWidths, p.col, p.colSpan, lp.Gap)
		h := spanSize(rowHeights, p.row, p.rowSpan, lp.Gap)

		rect := Rect{
			X: int32(s.originX + x),
			Y: int32(s.originY + y),
			W: int32(w),
			H: int32(h),
		}
		childNode, err := s.layoutChildAt(p.ref, rect)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, childNode)
	}

	for _, c := range absoluteChildren {
		childNode, err := s.layoutAbsoluteChild(c, contentW, contentH)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, childNode)
	}

	return nodes, nil
}

// tracksOf extracts the declared column/row tracks from a grid or table node.
func tracksOf(node *vtree.VNode) (cols, rows []vtree.Track) {
	switch p := node.Props.(type) {
	case vtree.GridProps:
		return p.Columns, p.Rows
	case vtree.TableProps:
		cols := make([]vtree.Track, len(p.Columns))
		for i, c := range p.Columns {
			if c.Width.Mode == vtree.SizeCells {
				cols[i] = vtree.Track{Cells: c.Width.Cells}
			}
		}
		return cols, nil
	default:
		return nil, nil
	}
}

// resolveTrackSizes returns n track sizes: explicit ones use their declared
// cell width; any remaining space (after explicit tracks and gaps) is split
// evenly across tracks left at zero, using the same deterministic remainder
// rule as flex distribution.
func resolveTrackSizes(tracks []vtree.Track, n, contentLen, gap int) []int {
	sizes := make([]int, n)
	autoIdx := make([]int, 0, n)
	used := 0
	for i := 0; i < n; i++ {
		if i < len(tracks) && tracks[i].Cells > 0 {
			sizes[i] = tracks[i].Cells
			used += sizes[i]
		} else {
			autoIdx = append(autoIdx, i)
		}
	}
	if n > 1 {
		used += gap * (n - 1)
	}
	remaining := contentLen - used
	if remaining < 0 {
		remaining = 0
	}
	if len(autoIdx) > 0 {
		shares := Distribute(remaining, onesOf(len(autoIdx)))
		for j, idx := range autoIdx {
			sizes[idx] = shares[j]
		}
	}
	return sizes
}

// resolveAutoRowHeights sizes declared row tracks literally; rows with no
// declared height take the tallest natural height among the cells assigned
// to them (measured against their column's resolved width).
func resolveAutoRowHeights(tracks []vtree.Track, n int, colWidths []int, placements []gridPlacement, s *solver, gap, contentH int) []int {
	sizes := make([]int, n)
	declared := make([]bool, n)
	for i := 0; i < n && i < len(tracks); i++ {
		if tracks[i].Cells > 0 {
			sizes[i] = tracks[i].Cells
			declared[i] = true
		}
	}
	for _, p := range placements {
		if p.row >= n || declared[p.row] {
			continue
		}
		crossBound := spanSize(colWidths, p.col, p.colSpan, gap)
		_, natH := s.measureNatural(p.ref, crossBound, AxisRow)
		if natH > sizes[p.row] {
			sizes[p.row] = natH
		}
	}
	return sizes
}

func prefixOffsets(sizes []int, gap int) []int {
	offsets := make([]int, len(sizes))
	cursor := 0
	for i, sz := range sizes {
		offsets[i] = cursor
		cursor += sz + gap
	}
	return offsets
}

func spanSize(sizes []int, start, span, gap int) int {
	total := 0
	for i := start; i < start+span && i < len(sizes); i++ {
		total += sizes[i]
	}
	if span > 1 {
		total += gap * (span - 1)
	}
	return total
}
