// Package cli renders projection output for the terminal.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"btc-ltv-planner/internal/analysis"
	"btc-ltv-planner/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	ColorBorder = lipgloss.Color("#575653")
	ColorAccent = lipgloss.Color("#3AA99F")
	ColorText   = lipgloss.Color("#FFFCF0")
	ColorMuted  = lipgloss.Color("#6F6E69")
	ColorRed    = lipgloss.Color("#D14D41")
	ColorOrange = lipgloss.Color("#DA702C")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	warnStyle   = lipgloss.NewStyle().Foreground(ColorOrange).Padding(0, 1)
	breachStyle = lipgloss.NewStyle().Foreground(ColorRed).Padding(0, 1)
)

// RenderTitle renders a boxed title.
func RenderTitle(title string) string {
	return titleStyle.Render(title)
}

// RenderLedger renders the projection ledger as a table. Rows whose LTV exceeds
// maxLTV are highlighted; pass 0 to disable highlighting.
func RenderLedger(ledger []model.YearSnapshot, maxLTV float64) string {
	headers := []string{"Year", "Growth %", "BTC Price", "Portfolio", "Borrowed", "Interest", "Debt", "Net Worth", "LTV %", "Expenses"}
	rows := make([][]string, 0, len(ledger))
	for _, s := range ledger {
		rows = append(rows, []string{
			strconv.Itoa(s.Year),
			FormatRate(s.GrowthRate),
			FormatMoney(s.BitcoinPriceEnd),
			FormatMoney(s.PortfolioValue),
			FormatMoney(s.TotalBorrowed),
			FormatMoney(s.TotalInterest),
			FormatMoney(s.TotalDebt),
			FormatMoney(s.NetWorth),
			strconv.FormatFloat(s.LTVRatio, 'f', 0, 64),
			FormatMoney(s.AnnualExpensesThisYear),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(ledger) {
				s := ledger[row]
				switch {
				case s.NetWorth < 0:
					return breachStyle
				case maxLTV > 0 && s.LTVRatio > maxLTV:
					return warnStyle
				}
			}
			return cellStyle
		})
	return t.String()
}

// RenderSchedule renders a growth schedule as a two-column table.
func RenderSchedule(schedule []model.GrowthScheduleEntry) string {
	rows := make([][]string, 0, len(schedule))
	for _, e := range schedule {
		rows = append(rows, []string{strconv.Itoa(e.Year), FormatRate(e.Rate)})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers("Year", "Growth %").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

// RenderSummary renders the headline figures of a projection.
func RenderSummary(expenses float64, s analysis.Summary) string {
	lines := [][2]string{
		{"Annual expenses (year 1)", FormatMoney(expenses)},
		{"Final BTC price", FormatMoney(s.FinalPrice)},
		{"Final portfolio", FormatMoney(s.FinalPortfolioValue)},
		{"Final debt", FormatMoney(s.FinalDebt)},
		{"Final net worth", FormatMoney(s.FinalNetWorth)},
		{"Total interest", FormatMoney(s.TotalInterest)},
		{"Peak LTV", fmt.Sprintf("%.0f%% (year %d)", s.PeakLTV, s.PeakLTVYear)},
		{"Price CAGR", fmt.Sprintf("%.2f%%", s.PriceCAGR)},
	}
	if s.InsolventYear > 0 {
		lines = append(lines, [2]string{"Net worth negative from", fmt.Sprintf("year %d", s.InsolventYear)})
	}

	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-26s", l[0])), l[1])
	}
	return b.String()
}

// FormatMoney renders a whole-unit currency amount with thousands separators.
func FormatMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 0, 64)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-$" + s
	}
	return "$" + s
}

func FormatRate(r float64) string {
	return strconv.FormatFloat(r, 'f', 2, 64)
}
