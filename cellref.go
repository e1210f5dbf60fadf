package xlgrid

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Position addresses a single cell. Row and Col are 0-based.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// At creates a Position from a row and column.
func At(row, col int) Position {
	return Position{Row: row, Col: col}
}

// ParsePosition parses an A1-style cell name like "B3" or "$C$10".
func ParsePosition(s string) (Position, error) {
	name := strings.ReplaceAll(strings.TrimSpace(s), "$", "")
	if name == "" {
		return Position{}, fmt.Errorf("empty cell reference")
	}
	col, row, err := excelize.CellNameToCoordinates(name)
	if err != nil {
		return Position{}, fmt.Errorf("invalid cell reference %q: %w", s, err)
	}
	return Position{Row: row - 1, Col: col - 1}, nil
}

// String formats the Position as an A1-style name, falling back to "(row,col)"
// when the position has no such name.
func (p Position) String() string {
	if p.Row < 0 || p.Col < 0 {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	name, err := excelize.CoordinatesToCellName(p.Col+1, p.Row+1)
	if err != nil {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return name
}

// ColumnLabel maps a 0-based column index to its display label using
// spreadsheet-style base-26 letters: 0→"A", 25→"Z", 26→"AA", 27→"AB".
// Indexes below zero or past the widest spreadsheet column return ErrLabelRange.
func ColumnLabel(index int) (string, error) {
	if index < 0 || index >= excelize.MaxColumns {
		return "", fmt.Errorf("column %d: %w", index, ErrLabelRange)
	}
	name, err := excelize.ColumnNumberToName(index + 1)
	if err != nil {
		return "", fmt.Errorf("column %d: %w", index, ErrLabelRange)
	}
	return name, nil
}

// ColumnLabels returns the labels for columns 0..n-1.
func ColumnLabels(n int) ([]string, error) {
	labels := make([]string, n)
	for i := range labels {
		l, err := ColumnLabel(i)
		if err != nil {
			return nil, err
		}
		labels[i] = l
	}
	return labels, nil
}
