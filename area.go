package xlgrid

import "fmt"

// Rect is an axis-aligned rectangle of cells. First is the top-left corner and
// Last the bottom-right; both are inclusive.
type Rect struct {
	First Position `json:"first"`
	Last  Position `json:"last"`
}

// Span returns the rectangle spanned by two opposite corners in any order.
func Span(a, b Position) Rect {
	return Rect{
		First: Position{Row: min(a.Row, b.Row), Col: min(a.Col, b.Col)},
		Last:  Position{Row: max(a.Row, b.Row), Col: max(a.Col, b.Col)},
	}
}

// Contains returns true if the position lies within the rectangle.
func (r Rect) Contains(p Position) bool {
	return p.Row >= r.First.Row && p.Row <= r.Last.Row &&
		p.Col >= r.First.Col && p.Col <= r.Last.Col
}

// Size returns the dimensions of the rectangle.
func (r Rect) Size() Size {
	return Size{
		Width:  r.Last.Col - r.First.Col + 1,
		Height: r.Last.Row - r.First.Row + 1,
	}
}

// Area returns the number of cells in the rectangle.
func (r Rect) Area() int {
	s := r.Size()
	return s.Width * s.Height
}

// String formats the Rect as "A1:C5", or "A1" for a single cell.
func (r Rect) String() string {
	if r.First == r.Last {
		return r.First.String()
	}
	return r.First.String() + ":" + r.Last.String()
}

// Size represents width (columns) and height (rows).
type Size struct {
	Width  int
	Height int
}

// String formats the Size as "(WxH)".
func (s Size) String() string {
	return fmt.Sprintf("(%dx%d)", s.Width, s.Height)
}
