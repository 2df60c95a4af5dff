// Package breakeven solves for the taxable income that produces a target
// net income after payroll deductions.
package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/cadpay/internal/calculation"
	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver finds break-even incomes with the deduction engine
type Solver struct {
	Engine  *calculation.Engine
	Options SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(engine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		Engine:  engine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine *calculation.Engine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// Solve bisects on taxable income. Net income rises with taxable income
// because no combined marginal rate reaches 100%, so the search brackets
// the target by doubling and then halves the bracket until it is narrower
// than the tolerance. The reported income is the upper end, whose net is
// at least the target.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.TargetNet.IsZero() {
		deductions, err := s.Engine.PayrollDeductions(decimal.Zero, req.Jurisdiction, req.Year)
		if err != nil {
			return nil, s.wrap("solve", "failed to calculate deductions", err)
		}
		return &Result{Request: req, Success: true, ConvergenceInfo: "Zero target", GrossIncome: decimal.Zero, Deductions: deductions}, nil
	}

	lo := req.TargetNet
	hi := req.TargetNet.Mul(two)
	iterations := 0

	hiResult, err := s.net(hi, req)
	if err != nil {
		return nil, err
	}
	for hiResult.NetIncome.LessThan(req.TargetNet) {
		iterations++
		if iterations >= s.Options.MaxIterations {
			return s.exhausted(req, iterations, hi, hiResult), nil
		}
		lo = hi
		hi = hi.Mul(two)
		if hiResult, err = s.net(hi, req); err != nil {
			return nil, err
		}
	}

	for hi.Sub(lo).GreaterThan(s.Options.Tolerance) {
		iterations++
		if iterations >= s.Options.MaxIterations {
			return s.exhausted(req, iterations, hi, hiResult), nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two)
		midResult, err := s.net(mid, req)
		if err != nil {
			return nil, err
		}
		if midResult.NetIncome.LessThan(req.TargetNet) {
			lo = mid
		} else {
			hi, hiResult = mid, midResult
		}
	}

	s.Engine.Logger.Debugf("break-even %s %d target=%s gross=%s iterations=%d",
		req.Jurisdiction, req.Year, req.TargetNet, hi, iterations)

	return &Result{
		Request:         req,
		Success:         true,
		Iterations:      iterations,
		ConvergenceInfo: fmt.Sprintf("Converged within $%s", s.Options.Tolerance.StringFixed(2)),
		GrossIncome:     hi,
		Deductions:      hiResult,
	}, nil
}

// exhausted reports the current upper bound when the iteration budget runs
// out in either phase
func (s *Solver) exhausted(req Request, iterations int, hi decimal.Decimal, hiResult *domain.PayrollDeductionsResult) *Result {
	s.Engine.Logger.Warnf("break-even %s %d target=%s stopped after %d iterations at %s",
		req.Jurisdiction, req.Year, req.TargetNet, iterations, hi)
	return &Result{
		Request:         req,
		Iterations:      iterations,
		ConvergenceInfo: fmt.Sprintf("Max iterations (%d) reached", s.Options.MaxIterations),
		GrossIncome:     hi,
		Deductions:      hiResult,
	}
}

func (s *Solver) net(income decimal.Decimal, req Request) (*domain.PayrollDeductionsResult, error) {
	result, err := s.Engine.PayrollDeductions(income, req.Jurisdiction, req.Year)
	if err != nil {
		return nil, s.wrap("solve", "failed to calculate deductions", err)
	}
	return result, nil
}

func (s *Solver) wrap(op, msg string, err error) error {
	return &BreakEvenError{Operation: op, Message: msg, Cause: err}
}
