package xlgrid

import (
	"errors"
	"fmt"
	"log/slog"
)

// DragState is the controller's gesture state.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

// String returns "idle" or "dragging".
func (d DragState) String() string {
	if d == Dragging {
		return "dragging"
	}
	return "idle"
}

// Controller drives a grid session from pointer and edit events. Each event
// replaces the current State; when a drag ends, one aggregate of the selection
// is written into the sink cell. This is a single write per gesture, not a live
// formula: later edits to the selected cells do not update the sink.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	state State
	opts  *Options
}

// NewController creates a controller over an empty rows x cols grid.
func NewController(rows, cols int, opts ...Option) (*Controller, error) {
	s, err := NewState(rows, cols)
	if err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Controller{state: s, opts: o}, nil
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// DragState reports whether a gesture is in progress.
func (c *Controller) DragState() DragState {
	if c.state.Dragging() {
		return Dragging
	}
	return Idle
}

// WriteBack returns the aggregate written when a drag ends.
func (c *Controller) WriteBack() Aggregate { return c.opts.writeBack }

// Get returns the text of the cell at p.
func (c *Controller) Get(p Position) (string, error) { return c.state.Get(p) }

// Selected reports whether p is in the current selection.
func (c *Controller) Selected(p Position) bool { return c.state.Selection().Contains(p) }

// Summary computes all aggregates over the current selection.
func (c *Controller) Summary() Summary { return c.state.Summary() }

// Begin starts a drag at p, discarding the previous selection. A position
// outside the grid is rejected with a *RangeError and nothing changes.
func (c *Controller) Begin(p Position) error {
	if err := c.state.grid.check(p); err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	c.state = c.state.Begin(p)
	c.opts.logger.Debug("drag begin", slog.String("anchor", p.String()))
	return nil
}

// Extend moves the active corner to p while dragging; otherwise it does
// nothing. A position outside the grid is rejected with a *RangeError and the
// drag continues with its previous selection.
func (c *Controller) Extend(p Position) error {
	if !c.state.Dragging() {
		return nil
	}
	if err := c.state.grid.check(p); err != nil {
		return fmt.Errorf("extend: %w", err)
	}
	c.state = c.state.Extend(p)
	c.opts.logger.Debug("drag extend",
		slog.String("active", p.String()),
		slog.Int("cells", c.state.Selection().Len()))
	return nil
}

// End finishes the drag and commits the write-back aggregate into the sink.
// It returns ErrNotDragging when idle. The controller is idle afterwards even
// when the write is rejected.
func (c *Controller) End() (Commit, error) {
	next, commit, err := c.state.End(c.opts.writeBack)
	c.state = next
	if err != nil {
		if !errors.Is(err, ErrNotDragging) {
			c.opts.logger.Warn("write back rejected", slog.Any("error", err))
		}
		return Commit{}, err
	}
	c.opts.logger.Debug("write back",
		slog.String("sink", commit.Sink.String()),
		slog.String("range", commit.Range.String()),
		slog.String("aggregate", commit.Aggregate.String()),
		slog.String("value", commit.Value),
		slog.String("previous", commit.Previous))
	for _, l := range c.opts.listeners {
		l.AfterCommit(commit, c.state)
	}
	return commit, nil
}

// Edit sets the cell at p to text, regardless of any drag in progress.
func (c *Controller) Edit(p Position, text string) error {
	next, err := c.state.SetCell(p, text)
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	c.state = next
	return nil
}
