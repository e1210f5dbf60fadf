package xlgrid

import (
	"errors"
	"fmt"
)

// ErrOutOfRange indicates a position outside the grid dimensions.
var ErrOutOfRange = errors.New("position out of range")

// ErrInvalidSize indicates a grid constructed with a non-positive dimension.
var ErrInvalidSize = errors.New("invalid grid size")

// ErrNotDragging is returned when a drag is ended without one in progress.
var ErrNotDragging = errors.New("no drag in progress")

// ErrLabelRange indicates a column index that has no column label.
var ErrLabelRange = errors.New("column index has no label")

// ErrUnknownAggregate indicates an aggregate name that is not recognized.
var ErrUnknownAggregate = errors.New("unknown aggregate")

// ErrUnknownEvent indicates an event kind the controller cannot dispatch.
var ErrUnknownEvent = errors.New("unknown event")

// RangeError reports an access to a position outside a Rows x Cols grid.
type RangeError struct {
	Pos  Position
	Rows int
	Cols int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("position (%d,%d) outside %dx%d grid", e.Pos.Row, e.Pos.Col, e.Rows, e.Cols)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}
