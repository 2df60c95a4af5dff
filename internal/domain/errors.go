package domain

import "errors"

var (
	// ErrUnknownTaxYear is returned when the loaded tables carry no data for a year
	ErrUnknownTaxYear = errors.New("unknown tax year")
	// ErrUnknownJurisdiction is returned for codes outside the supported set
	// or missing from a year's provincial table
	ErrUnknownJurisdiction = errors.New("unknown jurisdiction")
	// ErrNegativeIncome rejects negative taxable income
	ErrNegativeIncome = errors.New("income cannot be negative")
	// ErrInvalidSchedule marks a bracket schedule that breaks ordering rules
	ErrInvalidSchedule = errors.New("invalid tax bracket schedule")
	// ErrInvalidRule marks a contribution or premium rule with impossible values
	ErrInvalidRule = errors.New("invalid rate rule")
)
