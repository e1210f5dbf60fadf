package xlgrid

import "fmt"

// State is one step of a grid session: the cell values and the current
// selection. States are values; each transition returns a new State and leaves
// the receiver untouched, so earlier states stay valid. Cells are copied on
// write. The zero State is not usable; create one with NewState.
type State struct {
	grid *Grid
	sel  Selection
}

// NewState creates a session over an empty rows x cols grid with nothing selected.
func NewState(rows, cols int) (State, error) {
	g, err := NewGrid(rows, cols)
	if err != nil {
		return State{}, err
	}
	return State{grid: g}, nil
}

// Commit describes one write-back performed at the end of a drag.
type Commit struct {
	Sink      Position  `json:"sink"`
	Range     Rect      `json:"range"`
	Aggregate Aggregate `json:"aggregate"`
	Value     string    `json:"value"`
	Previous  string    `json:"previous"`
}

// String formats the commit as "C3 = sum(A1:C3) = 10.00".
func (c Commit) String() string {
	return fmt.Sprintf("%s = %s(%s) = %s", c.Sink, c.Aggregate, c.Range, c.Value)
}

// Get returns the text of the cell at p.
func (s State) Get(p Position) (string, error) { return s.grid.Get(p) }

// Rows returns the number of grid rows.
func (s State) Rows() int { return s.grid.Rows() }

// Cols returns the number of grid columns.
func (s State) Cols() int { return s.grid.Cols() }

// Values returns a copy of all cell text, indexed [row][col].
func (s State) Values() [][]string { return s.grid.Values() }

// Selection returns the current selection.
func (s State) Selection() Selection { return s.sel }

// Dragging reports whether a drag gesture is in progress.
func (s State) Dragging() bool { return s.sel.Dragging() }

// Begin starts a drag at p. A position outside the grid leaves s unchanged.
func (s State) Begin(p Position) State {
	if !s.grid.InBounds(p) {
		return s
	}
	s.sel = s.sel.Begin(p)
	return s
}

// Extend moves the drag's active corner to p. Without a drag, or when p is
// outside the grid, it returns s unchanged.
func (s State) Extend(p Position) State {
	if !s.grid.InBounds(p) {
		return s
	}
	s.sel = s.sel.Extend(p)
	return s
}

// SetCell returns a State with the cell at p set to text.
func (s State) SetCell(p Position, text string) (State, error) {
	if err := s.grid.check(p); err != nil {
		return s, err
	}
	g := s.grid.Clone()
	g.cells[p.Row][p.Col] = text
	s.grid = g
	return s, nil
}

// End finishes the drag: it computes a over the final selection and writes the
// result into the sink, the active corner at release. The sink may lie inside
// the selection, in which case its old value contributes to the result it is
// overwritten with.
//
// Without a drag End returns ErrNotDragging. If the write is rejected the
// returned State has still left the drag.
func (s State) End(a Aggregate) (State, Commit, error) {
	if !s.sel.Dragging() {
		return s, Commit{}, ErrNotDragging
	}
	sel, sink := s.sel.End()
	s.sel = sel

	value, err := Compute(a, s.grid, sel.cells)
	if err != nil {
		return s, Commit{}, err
	}
	prev, err := s.grid.Get(sink)
	if err != nil {
		return s, Commit{}, fmt.Errorf("write back %s: %w", a, err)
	}
	next, err := s.SetCell(sink, value)
	if err != nil {
		return s, Commit{}, fmt.Errorf("write back %s: %w", a, err)
	}
	return next, Commit{
		Sink:      sink,
		Range:     sel.Rect(),
		Aggregate: a,
		Value:     value,
		Previous:  prev,
	}, nil
}

// Aggregate evaluates a over the current selection.
func (s State) Aggregate(a Aggregate) (string, error) {
	return Compute(a, s.grid, s.sel.cells)
}

// Summary evaluates all aggregates over the current selection.
func (s State) Summary() Summary {
	return Summarize(s.grid, s.sel.cells)
}
