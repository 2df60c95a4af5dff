package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultTables(t *testing.T) {
	tables, err := DefaultTables()
	require.NoError(t, err)

	assert.Contains(t, tables.Years(), domain.TaxYear(2025))
	yt, err := tables.Year(2025)
	require.NoError(t, err)

	assert.Len(t, yt.Federal, 5)
	for _, j := range domain.Jurisdictions {
		schedule, err := yt.Schedule(j)
		require.NoError(t, err, "jurisdiction %s", j)
		assert.NotEmpty(t, schedule)
	}
	assert.Nil(t, yt.Federal[len(yt.Federal)-1].IncomeUpToInclusive)
	assert.True(t, yt.Federal[0].Rate.Equal(decimal.RequireFromString("0.145")))
	assert.True(t, yt.CppQpp.Quebec.PrimaryRate.GreaterThan(yt.CppQpp.Standard.PrimaryRate))
	assert.True(t, yt.EiQpip.Quebec.EI.Rate.LessThan(yt.EiQpip.Standard.EI.Rate))

	again, err := DefaultTables()
	require.NoError(t, err)
	assert.Equal(t, tables, again)
}

func TestTableLoader_LoadFromFile(t *testing.T) {
	loader := NewTableLoader()

	_, err := loader.LoadFromFile(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, defaultTablesSource, 0o644))
	tables, err := loader.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, domain.TaxYear(2025), tables.Latest())
}

func TestTableLoader_ParseJSON(t *testing.T) {
	tables, err := DefaultTables()
	require.NoError(t, err)

	data, err := json.Marshal(tables)
	require.NoError(t, err)

	parsed, err := NewTableLoader().Parse(data)
	require.NoError(t, err)

	want, _ := tables.Year(2025)
	got, err := parsed.Year(2025)
	require.NoError(t, err)
	require.Len(t, got.Federal, len(want.Federal))
	for i := range want.Federal {
		assert.True(t, want.Federal[i].Rate.Equal(got.Federal[i].Rate))
	}
	assert.True(t, got.CppQpp.Standard.PrimaryCeiling.Equal(want.CppQpp.Standard.PrimaryCeiling))
}

func TestTableLoader_ParseErrors(t *testing.T) {
	tables, err := DefaultTables()
	require.NoError(t, err)

	// mutate a deep copy via YAML
	clone := func(t *testing.T) domain.TaxTables {
		data, err := yaml.Marshal(tables)
		require.NoError(t, err)
		var c domain.TaxTables
		require.NoError(t, yaml.Unmarshal(data, &c))
		return c
	}
	reencode := func(t *testing.T, c domain.TaxTables) []byte {
		data, err := yaml.Marshal(c)
		require.NoError(t, err)
		return data
	}

	tests := []struct {
		name    string
		data    func(t *testing.T) []byte
		wantErr string
	}{
		{
			name:    "invalid yaml",
			data:    func(t *testing.T) []byte { return []byte("2025: [unclosed") },
			wantErr: "failed to parse tables",
		},
		{
			name:    "empty",
			data:    func(t *testing.T) []byte { return []byte("{}") },
			wantErr: "no tax years defined",
		},
		{
			name:    "unknown jurisdiction key",
			data:    func(t *testing.T) []byte { return []byte("2025:\n  provincial:\n    XX: []\n") },
			wantErr: "failed to parse tables",
		},
		{
			name: "missing jurisdiction",
			data: func(t *testing.T) []byte {
				c := clone(t)
				delete(c[2025].Provincial, domain.Yukon)
				return reencode(t, c)
			},
			wantErr: "provincial brackets missing for YT",
		},
		{
			name: "unordered federal brackets",
			data: func(t *testing.T) []byte {
				c := clone(t)
				yt := c[2025]
				yt.Federal[0], yt.Federal[1] = yt.Federal[1], yt.Federal[0]
				c[2025] = yt
				return reencode(t, c)
			},
			wantErr: "federal brackets",
		},
		{
			name: "invalid QPIP rule",
			data: func(t *testing.T) []byte {
				c := clone(t)
				yt := c[2025]
				yt.EiQpip.Quebec.QPIP.Rate = decimal.NewFromInt(2)
				c[2025] = yt
				return reencode(t, c)
			},
			wantErr: "QPIP rule",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTableLoader().Parse(tt.data(t))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), "error %q should contain %q", err, tt.wantErr)
		})
	}
}
