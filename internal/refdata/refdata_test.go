package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTablesResolve(t *testing.T) {
	tables := Default()

	id, ok := tables.BankID("ICICI Bank")
	require.True(t, ok)
	assert.Equal(t, "B001", id)

	id, ok = tables.MerchantID("Uber")
	require.True(t, ok)
	assert.Equal(t, "M001", id)

	assert.True(t, tables.ValidState("Uber", "Mumbai"))
	assert.False(t, tables.ValidState("Uber", "Berlin"))
}

func TestValidate_AllValidCombinations(t *testing.T) {
	tables := Default()

	for _, bank := range tables.Banks() {
		for _, merchant := range tables.Merchants() {
			for _, state := range tables.States(merchant) {
				resolved, verr := tables.Validate(bank, merchant, state)
				require.Nil(t, verr, "bank=%s merchant=%s state=%s", bank, merchant, state)
				assert.NotEmpty(t, resolved.BankID)
				assert.NotEmpty(t, resolved.MerchantID)
			}
		}
	}
}

func TestValidate_FirstFailureWins(t *testing.T) {
	tables := Default()

	// Unknown bank is reported even when merchant is also unknown
	_, verr := tables.Validate("Monopoly Bank", "Nope Mart", "Atlantis")
	require.NotNil(t, verr)
	assert.Equal(t, "bank", verr.Field)
	assert.Equal(t, "Monopoly Bank", verr.Value)

	_, verr = tables.Validate("SBI", "Nope Mart", "Atlantis")
	require.NotNil(t, verr)
	assert.Equal(t, "merchant_name", verr.Field)

	_, verr = tables.Validate("SBI", "Uber", "Berlin")
	require.NotNil(t, verr)
	assert.Equal(t, "merchant_state", verr.Field)
	assert.Contains(t, verr.Error(), "Berlin")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reference.json")
	content := `{
		"banks": {"Test Bank": "B900"},
		"merchants": {"Test Mart": "M900"},
		"merchant_states": {"Test Mart": ["Springfield"]}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	tables, err := LoadFile(path)
	require.NoError(t, err)

	id, ok := tables.BankID("Test Bank")
	require.True(t, ok)
	assert.Equal(t, "B900", id)
	assert.True(t, tables.ValidState("Test Mart", "Springfield"))

	// Defaults are fully replaced
	_, ok = tables.BankID("SBI")
	assert.False(t, ok)
}

func TestLoadFile_RejectsMerchantWithoutStates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reference.json")
	content := `{
		"banks": {"Test Bank": "B900"},
		"merchants": {"Test Mart": "M900"},
		"merchant_states": {}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid states")
}
