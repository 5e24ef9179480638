package projection

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"btc-ltv-planner/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLedgerCSV(t *testing.T) {
	in := model.SimulationInputs{BitcoinAmount: 1, BitcoinPriceStart: 100000, Years: 2, AnnualExpenses: 10000}
	res, err := New().Run(in, constantSchedule(10, 2))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteLedgerCSV(&buf, res.Ledger))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ledgerHeader, rows[0])
	assert.Equal(t, []string{"1", "10.00", "100000", "110000", "110000", "10000", "0", "10000", "100000", "10", "10000"}, rows[1])
	assert.Equal(t, "2", rows[2][0])
	assert.Equal(t, "121000", rows[2][3])
}

func TestWriteLedgerCSVFile_CreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "ledger.csv")
	ledger := []model.YearSnapshot{{Year: 1, BitcoinPriceStart: 1, BitcoinPriceEnd: 2}}
	require.NoError(t, WriteLedgerCSVFile(path, ledger))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "year,growth_rate")
}
