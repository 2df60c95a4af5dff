package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxYear identifies a set of tables. It marshals as text so it can key
// maps in both YAML and JSON table files.
type TaxYear int

func (y TaxYear) String() string { return strconv.Itoa(int(y)) }

// ParseTaxYear parses a four digit year
func ParseTaxYear(s string) (TaxYear, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTaxYear, s)
	}
	if n < 1900 || n > 9999 {
		return 0, fmt.Errorf("%w: %d", ErrUnknownTaxYear, n)
	}
	return TaxYear(n), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (y *TaxYear) UnmarshalText(text []byte) error {
	parsed, err := ParseTaxYear(string(text))
	if err != nil {
		return err
	}
	*y = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (y TaxYear) MarshalText() ([]byte, error) {
	return []byte(y.String()), nil
}

// UnmarshalJSON accepts both 2025 and "2025"
func (y *TaxYear) UnmarshalJSON(data []byte) error {
	return y.UnmarshalText([]byte(strings.Trim(string(data), `"`)))
}

// MarshalJSON writes the year as a bare number
func (y TaxYear) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(y))
}

// TaxBracket is one marginal slice of a schedule. A nil upper bound marks
// the unbounded top bracket.
type TaxBracket struct {
	IncomeUpToInclusive *decimal.Decimal `yaml:"incomeUpToInclusive" json:"incomeUpToInclusive"`
	Rate                decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Schedule is an ordered sequence of brackets by ascending threshold
type Schedule []TaxBracket

// Validate checks ordering: thresholds strictly increase and exactly one
// bracket, the last, is unbounded
func (s Schedule) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: no brackets", ErrInvalidSchedule)
	}
	previous := decimal.Zero
	for i, b := range s {
		if b.Rate.LessThan(decimal.Zero) || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: bracket %d rate %s outside [0,1]", ErrInvalidSchedule, i, b.Rate)
		}
		last := i == len(s)-1
		if b.IncomeUpToInclusive == nil {
			if !last {
				return fmt.Errorf("%w: unbounded bracket %d is not last", ErrInvalidSchedule, i)
			}
			continue
		}
		if last {
			return fmt.Errorf("%w: last bracket must be unbounded", ErrInvalidSchedule)
		}
		if !b.IncomeUpToInclusive.GreaterThan(previous) {
			return fmt.Errorf("%w: bracket %d threshold %s does not exceed %s", ErrInvalidSchedule, i, b.IncomeUpToInclusive, previous)
		}
		previous = *b.IncomeUpToInclusive
	}
	return nil
}

// ContributionRule is a CPP/QPP two-tier capped contribution scheme
type ContributionRule struct {
	BasicExemption   decimal.Decimal `yaml:"basicExemption" json:"basicExemption"`
	PrimaryCeiling   decimal.Decimal `yaml:"primaryCeiling" json:"primaryCeiling"`     // YMPE
	PrimaryRate      decimal.Decimal `yaml:"primaryRate" json:"primaryRate"`
	SecondaryCeiling decimal.Decimal `yaml:"secondaryCeiling" json:"secondaryCeiling"` // YAMPE
	SecondaryRate    decimal.Decimal `yaml:"secondaryRate" json:"secondaryRate"`
}

// Validate checks the exemption and ceilings are ordered and rates are fractions
func (r ContributionRule) Validate() error {
	if r.BasicExemption.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: basic exemption cannot be negative", ErrInvalidRule)
	}
	if !r.PrimaryCeiling.GreaterThan(r.BasicExemption) {
		return fmt.Errorf("%w: primary ceiling must exceed basic exemption", ErrInvalidRule)
	}
	if r.SecondaryCeiling.LessThan(r.PrimaryCeiling) {
		return fmt.Errorf("%w: secondary ceiling cannot be below primary ceiling", ErrInvalidRule)
	}
	if !isFraction(r.PrimaryRate) || !isFraction(r.SecondaryRate) {
		return fmt.Errorf("%w: contribution rates must be between 0 and 1", ErrInvalidRule)
	}
	return nil
}

// PremiumRule is an EI/QPIP capped-earnings premium
type PremiumRule struct {
	InsurableEarningsCeiling decimal.Decimal `yaml:"insurableEarningsCeiling" json:"insurableEarningsCeiling"`
	Rate                     decimal.Decimal `yaml:"rate" json:"rate"`
}

// Validate checks the ceiling is positive and the rate is a fraction
func (r PremiumRule) Validate() error {
	if !r.InsurableEarningsCeiling.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: insurable earnings ceiling must be positive", ErrInvalidRule)
	}
	if !isFraction(r.Rate) {
		return fmt.Errorf("%w: premium rate must be between 0 and 1", ErrInvalidRule)
	}
	return nil
}

// ContributionRules holds the standard and Quebec pension regimes
type ContributionRules struct {
	Standard ContributionRule `yaml:"standard" json:"standard"`
	Quebec   ContributionRule `yaml:"quebec" json:"quebec"`
}

// StandardPremiumRules applies outside Quebec: EI only
type StandardPremiumRules struct {
	EI PremiumRule `yaml:"ei" json:"ei"`
}

// QuebecPremiumRules carries the reduced EI rate and QPIP
type QuebecPremiumRules struct {
	EI   PremiumRule `yaml:"ei" json:"ei"`
	QPIP PremiumRule `yaml:"qpip" json:"qpip"`
}

// PremiumRules holds the insurance premium regimes
type PremiumRules struct {
	Standard StandardPremiumRules `yaml:"standard" json:"standard"`
	Quebec   QuebecPremiumRules   `yaml:"quebec" json:"quebec"`
}

// YearTables is every rate table needed for one tax year
type YearTables struct {
	Federal    Schedule                  `yaml:"federal" json:"federal"`
	Provincial map[Jurisdiction]Schedule `yaml:"provincial" json:"provincial"`
	CppQpp     ContributionRules         `yaml:"cppQpp" json:"cppQpp"`
	EiQpip     PremiumRules              `yaml:"eiQpip" json:"eiQpip"`
}

// Schedule returns the provincial schedule for j
func (yt YearTables) Schedule(j Jurisdiction) (Schedule, error) {
	s, ok := yt.Provincial[j]
	if !ok {
		return nil, fmt.Errorf("%w: no provincial brackets for %s", ErrUnknownJurisdiction, j)
	}
	return s, nil
}

// ContributionRule selects the CPP or QPP rule for j
func (yt YearTables) ContributionRule(j Jurisdiction) ContributionRule {
	if j.IsQuebec() {
		return yt.CppQpp.Quebec
	}
	return yt.CppQpp.Standard
}

// TaxTables maps each tax year to its tables. Loaded once and never mutated.
type TaxTables map[TaxYear]YearTables

// Year returns the tables for y
func (t TaxTables) Year(y TaxYear) (YearTables, error) {
	yt, ok := t[y]
	if !ok {
		return YearTables{}, fmt.Errorf("%w: %d", ErrUnknownTaxYear, y)
	}
	return yt, nil
}

// Years returns the available years in ascending order
func (t TaxTables) Years() []TaxYear {
	years := make([]TaxYear, 0, len(t))
	for y := range t {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool { return years[i] < years[j] })
	return years
}

// Latest returns the most recent year, or zero for empty tables
func (t TaxTables) Latest() TaxYear {
	years := t.Years()
	if len(years) == 0 {
		return 0
	}
	return years[len(years)-1]
}

func isFraction(d decimal.Decimal) bool {
	return !d.LessThan(decimal.Zero) && !d.GreaterThan(decimal.NewFromInt(1))
}
