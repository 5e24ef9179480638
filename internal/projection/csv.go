package projection

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"btc-ltv-planner/internal/model"
)

var ledgerHeader = []string{
	"year",
	"growth_rate",
	"bitcoin_price_start",
	"bitcoin_price_end",
	"portfolio_value",
	"total_borrowed",
	"total_interest",
	"total_debt",
	"net_worth",
	"ltv_ratio",
	"annual_expenses",
}

// WriteLedgerCSV writes one header row and one row per snapshot.
func WriteLedgerCSV(out io.Writer, ledger []model.YearSnapshot) error {
	w := csv.NewWriter(out)
	if err := w.Write(ledgerHeader); err != nil {
		return err
	}

	for _, s := range ledger {
		row := []string{
			strconv.Itoa(s.Year),
			fmtFloat(s.GrowthRate, 2),
			fmtFloat(s.BitcoinPriceStart, 0),
			fmtFloat(s.BitcoinPriceEnd, 0),
			fmtFloat(s.PortfolioValue, 0),
			fmtFloat(s.TotalBorrowed, 0),
			fmtFloat(s.TotalInterest, 0),
			fmtFloat(s.TotalDebt, 0),
			fmtFloat(s.NetWorth, 0),
			fmtFloat(s.LTVRatio, 0),
			fmtFloat(s.AnnualExpensesThisYear, 0),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteLedgerCSVFile writes the ledger to path, creating parent directories.
func WriteLedgerCSVFile(path string, ledger []model.YearSnapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return WriteLedgerCSV(f, ledger)
}

func fmtFloat(x float64, prec int) string {
	return strconv.FormatFloat(x, 'f', prec, 64)
}
