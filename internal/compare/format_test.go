package compare

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/shopspring/decimal"
)

func sampleComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		Income:           decimal.NewFromInt(20000),
		Year:             2025,
		BaseJurisdiction: domain.Alberta,
		BaseResult: &ComparisonResult{
			Jurisdiction:  domain.Alberta,
			Name:          "Alberta",
			NetIncome:     decimal.RequireFromString("14190.25"),
			TotalTax:      decimal.NewFromInt(4500),
			EffectiveRate: decimal.RequireFromString("0.2904875"),
			MarginalRate:  decimal.RequireFromString("0.225"),
		},
		AlternativeResults: []ComparisonResult{
			{
				Jurisdiction:    domain.Ontario,
				Name:            "Ontario",
				NetIncome:       decimal.RequireFromString("14780.25"),
				TotalTax:        decimal.NewFromInt(3910),
				EffectiveRate:   decimal.RequireFromString("0.2609875"),
				MarginalRate:    decimal.RequireFromString("0.1955"),
				NetDiffFromBase: decimal.NewFromInt(590),
				NetPctFromBase:  decimal.RequireFromString("4.16"),
				TaxDiffFromBase: decimal.NewFromInt(-590),
			},
		},
		Recommendations: []string{
			"Highest Net Income: Ontario keeps $590.00 more than Alberta",
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.Format(sampleComparisonSet())

	if result == "" {
		t.Fatal("Expected formatted output, got empty string")
	}

	for _, want := range []string{
		"JURISDICTION COMPARISON",
		"Taxable income: $20,000.00",
		"Tax year:       2025",
		"Alberta (base)",
		"$14,190.25",
		"22.50%",
		"Ontario",
		"COMPARISON TO BASE",
		"net +$590.00 (4.2%), tax -$590.00",
		"RECOMMENDATIONS",
		"- Highest Net Income: Ontario",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in output:\n%s", want, result)
		}
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	formatter := &TableFormatter{}

	compSet := sampleComparisonSet()
	compSet.AlternativeResults = nil
	compSet.Recommendations = nil

	result := formatter.Format(compSet)

	if !strings.Contains(result, "Alberta (base)") {
		t.Error("Expected base jurisdiction in table")
	}
	if strings.Contains(result, "Ontario") {
		t.Error("Should not have alternative jurisdictions in output")
	}
	if strings.Contains(result, "COMPARISON TO BASE") || strings.Contains(result, "RECOMMENDATIONS") {
		t.Error("Should not have delta or recommendation sections")
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	formatter := &TableFormatter{}

	compSet := sampleComparisonSet()
	compSet.AlternativeResults = append(compSet.AlternativeResults, ComparisonResult{
		Jurisdiction: domain.Yukon,
		Name:         "Yukon",
	})

	got := formatter.FormatCompact(compSet)
	want := "Base: AB | ON: +$590.00 | YT: ="
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestTableFormatter_truncate(t *testing.T) {
	formatter := &TableFormatter{}

	if got := formatter.truncate("Ontario", 10); got != "Ontario" {
		t.Errorf("Expected no truncation, got %q", got)
	}
	if got := formatter.truncate("Newfoundland and Labrador (base)", 20); got != "Newfoundland and ..." {
		t.Errorf("Unexpected truncation %q", got)
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	compSet := sampleComparisonSet()

	compact, err := (&JSONFormatter{}).Format(compSet)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.Contains(compact, "\n") {
		t.Error("Expected compact JSON on one line")
	}

	pretty, err := (&JSONFormatter{Pretty: true}).Format(compSet)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(pretty, "\n  \"income\": \"20000\"") {
		t.Errorf("Expected indented income field, got:\n%s", pretty)
	}

	var decoded ComparisonSet
	if err := json.Unmarshal([]byte(compact), &decoded); err != nil {
		t.Fatalf("Failed to decode output: %v", err)
	}
	if decoded.BaseJurisdiction != domain.Alberta {
		t.Errorf("Expected base AB, got %s", decoded.BaseJurisdiction)
	}
	if len(decoded.AlternativeResults) != 1 || !decoded.AlternativeResults[0].NetDiffFromBase.Equal(decimal.NewFromInt(590)) {
		t.Errorf("Unexpected alternatives %+v", decoded.AlternativeResults)
	}
}
