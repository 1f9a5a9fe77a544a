package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ghg-emissions-engine/internal/fuel"
)

func TestUpdateTable(t *testing.T) {
	updated, err := updateTable(fuel.DefaultTable(), "electricity", gridFactors{CO2: 0.4594, CH4: 0.000005, N2O: 0.0000025})
	require.NoError(t, err)

	reg, err := fuel.NewRegistry(updated)
	require.NoError(t, err)
	assert.Equal(t, fuel.Default().Len(), reg.Len())

	def, err := reg.Lookup("ELECTRICITY")
	require.NoError(t, err)
	assert.Equal(t, fuel.ElectricityFactors{CO2: 0.4594, CH4: 0.000005, N2O: 0.0000025}, def.Factors)

	diesel, err := reg.Lookup("DIESEL")
	require.NoError(t, err)
	want, err := fuel.Default().Lookup("DIESEL")
	require.NoError(t, err)
	assert.Equal(t, want, diesel, "other entries are unchanged")

	assert.Contains(t, string(updated), "# Purchased electricity", "comments are kept")
}

func TestUpdateTable_Errors(t *testing.T) {
	factors := gridFactors{CO2: 0.5, CH4: 0, N2O: 0}

	_, err := updateTable(fuel.DefaultTable(), "NOPE", factors)
	assert.ErrorContains(t, err, "not found")

	_, err = updateTable(fuel.DefaultTable(), "DIESEL", factors)
	assert.ErrorContains(t, err, "is not an ELECTRICITY entry")

	_, err = updateTable([]byte("other: 1\n"), "ELECTRICITY", factors)
	assert.ErrorContains(t, err, "no fuels list")

	_, err = updateTable([]byte("fuels: [\n"), "ELECTRICITY", factors)
	assert.ErrorContains(t, err, "failed to parse table")
}

func TestValidateFactors(t *testing.T) {
	require.NoError(t, validateFactors(gridFactors{CO2: 0.4653, CH4: 0.0000054, N2O: 0.0000027}))

	err := validateFactors(gridFactors{CO2: 2.5, CH4: notSet, N2O: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "co2: factor 2.5 is outside valid range")
	assert.Contains(t, err.Error(), "ch4: not set")
	assert.NotContains(t, err.Error(), "n2o")
}

func TestLoadSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"co2": 0.46, "n2o": 0.000003}`), 0o600))

	f, err := loadSource(path)
	require.NoError(t, err)
	assert.Equal(t, gridFactors{CO2: 0.46, CH4: notSet, N2O: 0.000003}, f)

	require.NoError(t, os.WriteFile(path, []byte(`[1, 2]`), 0o600))
	_, err = loadSource(path)
	assert.ErrorContains(t, err, "failed to decode")
}
