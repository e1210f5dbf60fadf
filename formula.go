package xlgrid

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Interest formulas over the three positional operands of a selection.
var (
	simpleInterestFormula   = mustCompileFormula("principal * rate * periods / 100")
	compoundInterestFormula = mustCompileFormula("principal * (1 + rate / 100) ** periods - principal")
)

// formula is an arithmetic expression over principal, rate and periods,
// compiled once with expr-lang/expr.
type formula struct {
	source  string
	program *vm.Program
}

func formulaEnv(principal, rate, periods float64) map[string]any {
	return map[string]any{
		"principal": principal,
		"rate":      rate,
		"periods":   periods,
	}
}

func compileFormula(source string) (*formula, error) {
	program, err := expr.Compile(source, expr.Env(formulaEnv(0, 0, 0)), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("compile formula %q: %w", source, err)
	}
	return &formula{source: source, program: program}, nil
}

func mustCompileFormula(source string) *formula {
	f, err := compileFormula(source)
	if err != nil {
		panic(err)
	}
	return f
}

// eval runs the formula. It returns NaN if evaluation fails.
func (f *formula) eval(principal, rate, periods float64) float64 {
	out, err := expr.Run(f.program, formulaEnv(principal, rate, periods))
	if err != nil {
		return math.NaN()
	}
	v, ok := out.(float64)
	if !ok {
		return math.NaN()
	}
	return v
}
