package xlgrid

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// CellReader is the read side of a grid.
type CellReader interface {
	Get(p Position) (string, error)
}

// Aggregate identifies one of the fixed reductions over a selection.
type Aggregate int

const (
	AggregateSum Aggregate = iota
	AggregateProduct
	AggregateSimpleInterest
	AggregateCompoundInterest
)

// String returns the aggregate's name as accepted by ParseAggregate.
func (a Aggregate) String() string {
	switch a {
	case AggregateSum:
		return "sum"
	case AggregateProduct:
		return "product"
	case AggregateSimpleInterest:
		return "simple-interest"
	case AggregateCompoundInterest:
		return "compound-interest"
	default:
		return fmt.Sprintf("aggregate(%d)", int(a))
	}
}

// ParseAggregate maps a name like "sum" or "compound-interest" to its Aggregate.
func ParseAggregate(name string) (Aggregate, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sum":
		return AggregateSum, nil
	case "product", "multiple":
		return AggregateProduct, nil
	case "simple-interest", "simple_interest", "si":
		return AggregateSimpleInterest, nil
	case "compound-interest", "compound_interest", "ci":
		return AggregateCompoundInterest, nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownAggregate)
}

// MarshalText encodes the aggregate by name.
func (a Aggregate) MarshalText() ([]byte, error) {
	if a < AggregateSum || a > AggregateCompoundInterest {
		return nil, fmt.Errorf("marshal %s: %w", a, ErrUnknownAggregate)
	}
	return []byte(a.String()), nil
}

// UnmarshalText decodes an aggregate name.
func (a *Aggregate) UnmarshalText(text []byte) error {
	v, err := ParseAggregate(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Compute evaluates the aggregate over cells, in the given order.
func Compute(a Aggregate, g CellReader, cells []Position) (string, error) {
	switch a {
	case AggregateSum:
		return Sum(g, cells), nil
	case AggregateProduct:
		return Product(g, cells), nil
	case AggregateSimpleInterest:
		return SimpleInterest(g, cells), nil
	case AggregateCompoundInterest:
		return CompoundInterest(g, cells), nil
	}
	return "", fmt.Errorf("compute %s: %w", a, ErrUnknownAggregate)
}

// Summary holds all four aggregates for display.
type Summary struct {
	Sum              string `json:"sum"`
	Product          string `json:"product"`
	SimpleInterest   string `json:"simpleInterest"`
	CompoundInterest string `json:"compoundInterest"`
}

// Summarize computes every aggregate over cells.
func Summarize(g CellReader, cells []Position) Summary {
	return Summary{
		Sum:              Sum(g, cells),
		Product:          Product(g, cells),
		SimpleInterest:   SimpleInterest(g, cells),
		CompoundInterest: CompoundInterest(g, cells),
	}
}

// Sum adds every cell that parses as a number. Non-numeric cells are skipped.
func Sum(g CellReader, cells []Position) string {
	total, n := 0.0, 0
	for _, p := range cells {
		if v, ok := number(g, p); ok {
			total += v
			n++
		}
	}
	if n == 0 {
		return zeroResult
	}
	return FormatResult(total)
}

// Product multiplies every cell that parses as a non-zero number. Zero cells
// are left out instead of collapsing the product to zero.
func Product(g CellReader, cells []Position) string {
	product, n := 1.0, 0
	for _, p := range cells {
		if v, ok := number(g, p); ok && v != 0 {
			product *= v
			n++
		}
	}
	if n == 0 {
		return zeroResult
	}
	return FormatResult(product)
}

// SimpleInterest reads principal, rate and time from the first three cells and
// returns principal × rate × time / 100.
func SimpleInterest(g CellReader, cells []Position) string {
	return interest(simpleInterestFormula, g, cells)
}

// CompoundInterest reads principal, rate and time from the first three cells and
// returns principal × (1 + rate/100)^time − principal.
func CompoundInterest(g CellReader, cells []Position) string {
	return interest(compoundInterestFormula, g, cells)
}

func interest(f *formula, g CellReader, cells []Position) string {
	if len(cells) < 3 {
		return zeroResult
	}
	var operands [3]float64
	for i := range operands {
		if v, ok := number(g, cells[i]); ok {
			operands[i] = v
		}
	}
	return FormatResult(f.eval(operands[0], operands[1], operands[2]))
}

// number reads and parses one cell. Unreadable cells count as non-numeric.
func number(g CellReader, p Position) (float64, bool) {
	text, err := g.Get(p)
	if err != nil {
		return 0, false
	}
	return ParseNumber(text)
}

const zeroResult = "0.00"

var numberPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// ParseNumber parses the longest numeric prefix of text after leading
// whitespace: "12abc" is 12 and " 3.5 " is 3.5. It reports false when text
// does not start with a number.
func ParseNumber(text string) (float64, bool) {
	m := numberPrefix.FindString(strings.TrimLeftFunc(text, unicode.IsSpace))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return v, true // overflow to ±Inf, underflow to 0
		}
		return 0, false
	}
	return v, true
}

// FormatResult formats v with exactly two decimals.
func FormatResult(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return zeroResult
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
