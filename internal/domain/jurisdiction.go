package domain

import (
	"fmt"
	"strings"
)

// Jurisdiction is a Canadian province or territory code
type Jurisdiction string

const (
	Alberta                 Jurisdiction = "AB"
	BritishColumbia         Jurisdiction = "BC"
	Manitoba                Jurisdiction = "MB"
	NewBrunswick            Jurisdiction = "NB"
	NewfoundlandAndLabrador Jurisdiction = "NL"
	NovaScotia              Jurisdiction = "NS"
	Ontario                 Jurisdiction = "ON"
	PrinceEdwardIsland      Jurisdiction = "PE"
	Quebec                  Jurisdiction = "QC"
	Saskatchewan            Jurisdiction = "SK"
	NorthwestTerritories    Jurisdiction = "NT"
	Nunavut                 Jurisdiction = "NU"
	Yukon                   Jurisdiction = "YT"
)

// Jurisdictions lists every supported code in display order
var Jurisdictions = []Jurisdiction{
	Alberta,
	BritishColumbia,
	Manitoba,
	NewBrunswick,
	NewfoundlandAndLabrador,
	NovaScotia,
	Ontario,
	PrinceEdwardIsland,
	Quebec,
	Saskatchewan,
	NorthwestTerritories,
	Nunavut,
	Yukon,
}

var jurisdictionNames = map[Jurisdiction]string{
	Alberta:                 "Alberta",
	BritishColumbia:         "British Columbia",
	Manitoba:                "Manitoba",
	NewBrunswick:            "New Brunswick",
	NewfoundlandAndLabrador: "Newfoundland and Labrador",
	NovaScotia:              "Nova Scotia",
	Ontario:                 "Ontario",
	PrinceEdwardIsland:      "Prince Edward Island",
	Quebec:                  "Quebec",
	Saskatchewan:            "Saskatchewan",
	NorthwestTerritories:    "Northwest Territories",
	Nunavut:                 "Nunavut",
	Yukon:                   "Yukon",
}

// ParseJurisdiction accepts a code (any case) or a full province/territory name
func ParseJurisdiction(s string) (Jurisdiction, error) {
	trimmed := strings.TrimSpace(s)
	code := Jurisdiction(strings.ToUpper(trimmed))
	if _, ok := jurisdictionNames[code]; ok {
		return code, nil
	}
	for j, name := range jurisdictionNames {
		if strings.EqualFold(name, trimmed) {
			return j, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownJurisdiction, s)
}

// Name returns the display name, or the raw code when it is not recognised
func (j Jurisdiction) Name() string {
	if name, ok := jurisdictionNames[j]; ok {
		return name
	}
	return string(j)
}

// Valid reports whether j is one of the supported codes
func (j Jurisdiction) Valid() bool {
	_, ok := jurisdictionNames[j]
	return ok
}

// IsQuebec reports whether the Quebec pension and insurance regime applies
func (j Jurisdiction) IsQuebec() bool {
	return j == Quebec
}

func (j Jurisdiction) String() string { return string(j) }

// UnmarshalText validates codes coming from table files and request bodies
func (j *Jurisdiction) UnmarshalText(text []byte) error {
	parsed, err := ParseJurisdiction(string(text))
	if err != nil {
		return err
	}
	*j = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (j Jurisdiction) MarshalText() ([]byte, error) {
	return []byte(j), nil
}
