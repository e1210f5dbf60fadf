package xlgrid

// Selection is the rectangle spanned by a drag gesture's anchor and active
// corner. It is a value: Begin, Extend and End return an updated copy and never
// modify the receiver.
//
// The cells are kept in selection order, row-major from the rectangle's
// top-left cell to its bottom-right cell whichever way the drag went. Interest
// aggregates take their operands positionally from this order.
type Selection struct {
	anchor   Position
	active   Position
	cells    []Position
	dragging bool
}

// Begin starts a new gesture at p, discarding any prior selection.
func (s Selection) Begin(p Position) Selection {
	return Selection{
		anchor:   p,
		active:   p,
		cells:    []Position{p},
		dragging: true,
	}
}

// Extend moves the active corner to p and rebuilds the rectangle.
// It is a no-op when no gesture is in progress.
func (s Selection) Extend(p Position) Selection {
	if !s.dragging {
		return s
	}
	s.active = p
	s.cells = walk(s.anchor, p)
	return s
}

// End finishes the gesture and returns the sink, the active corner at release.
// The rectangle stays selected until the next Begin.
func (s Selection) End() (Selection, Position) {
	s.dragging = false
	return s, s.active
}

// walk lists the rectangle spanned by from and to in row-major order.
func walk(from, to Position) []Position {
	r := Span(from, to)
	out := make([]Position, 0, r.Area())
	for row := r.First.Row; row <= r.Last.Row; row++ {
		for col := r.First.Col; col <= r.Last.Col; col++ {
			out = append(out, Position{Row: row, Col: col})
		}
	}
	return out
}

// Contains reports whether p is selected. It tests the anchor/active rectangle
// directly rather than scanning the cell list.
func (s Selection) Contains(p Position) bool {
	if s.IsEmpty() {
		return false
	}
	return s.Rect().Contains(p)
}

// Rect returns the selected rectangle.
func (s Selection) Rect() Rect {
	return Span(s.anchor, s.active)
}

// Positions returns a copy of the selected cells in selection order.
func (s Selection) Positions() []Position {
	return append([]Position(nil), s.cells...)
}

// Len returns the number of selected cells.
func (s Selection) Len() int { return len(s.cells) }

// IsEmpty reports whether nothing has been selected yet.
func (s Selection) IsEmpty() bool { return len(s.cells) == 0 }

// Anchor returns the position where the gesture started.
func (s Selection) Anchor() Position { return s.anchor }

// Active returns the most recently hovered position.
func (s Selection) Active() Position { return s.active }

// Dragging reports whether a gesture is in progress.
func (s Selection) Dragging() bool { return s.dragging }

// String formats the selection as "A1:C5", or "" when empty.
func (s Selection) String() string {
	if s.IsEmpty() {
		return ""
	}
	return s.Rect().String()
}
