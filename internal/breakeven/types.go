package breakeven

import (
	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/shopspring/decimal"
)

// Request asks for the taxable income whose net income after payroll
// deductions reaches TargetNet
type Request struct {
	TargetNet    decimal.Decimal     `json:"targetNet"`
	Jurisdiction domain.Jurisdiction `json:"jurisdiction"`
	Year         domain.TaxYear      `json:"year"`
}

// Result is the break-even taxable income for one request
type Result struct {
	Request         Request                         `json:"request"`
	Success         bool                            `json:"success"`
	Iterations      int                             `json:"iterations"`
	ConvergenceInfo string                          `json:"convergenceInfo"`
	GrossIncome     decimal.Decimal                 `json:"grossIncome"`
	Deductions      *domain.PayrollDeductionsResult `json:"deductions"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	Tolerance     decimal.Decimal // Width of the final income bracket
	MaxIterations int
}

// DefaultSolverOptions returns cent-level tolerance
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromFloat(0.01),
		MaxIterations: 200,
	}
}

// Validate checks the request can be solved
func (r Request) Validate() error {
	if r.TargetNet.LessThan(decimal.Zero) {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "target net income cannot be negative",
			Cause:     domain.ErrNegativeIncome,
		}
	}
	if !r.Jurisdiction.Valid() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "unknown jurisdiction " + string(r.Jurisdiction),
			Cause:     domain.ErrUnknownJurisdiction,
		}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
