package xlgrid

import "fmt"

// Grid is a fixed-size matrix of cell text. Every cell starts empty.
// A Grid is not safe for concurrent use.
type Grid struct {
	rows  int
	cols  int
	cells [][]string
}

// NewGrid creates an empty rows x cols grid.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%dx%d: %w", rows, cols, ErrInvalidSize)
	}
	cells := make([][]string, rows)
	for r := range cells {
		cells[r] = make([]string, cols)
	}
	return &Grid{rows: rows, cols: cols, cells: cells}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether p addresses a cell of this grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

func (g *Grid) check(p Position) error {
	if !g.InBounds(p) {
		return &RangeError{Pos: p, Rows: g.rows, Cols: g.cols}
	}
	return nil
}

// Get returns the text of the cell at p.
func (g *Grid) Get(p Position) (string, error) {
	if err := g.check(p); err != nil {
		return "", err
	}
	return g.cells[p.Row][p.Col], nil
}

// Set overwrites the cell at p with text. The text is stored as-is.
func (g *Grid) Set(p Position, text string) error {
	if err := g.check(p); err != nil {
		return err
	}
	g.cells[p.Row][p.Col] = text
	return nil
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{rows: g.rows, cols: g.cols, cells: g.Values()}
}

// Values returns a copy of all cell text, indexed [row][col].
func (g *Grid) Values() [][]string {
	out := make([][]string, g.rows)
	for r, row := range g.cells {
		out[r] = append([]string(nil), row...)
	}
	return out
}
