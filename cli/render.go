package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fincalc/domain"
)

var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	goodStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// separatorRow in Table.Rows draws a horizontal rule.
const separatorRow = "---"

// Table is a bordered text table. The first column is left-aligned and the
// rest are right-aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	rule := func(left, mid, right string) string {
		var b strings.Builder
		b.WriteString(left)
		for i, w := range widths {
			b.WriteString(strings.Repeat("─", w+2))
			if i < numCols-1 {
				b.WriteString(mid)
			}
		}
		b.WriteString(right)
		return dimStyle.Render(b.String()) + "\n"
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}
	b.WriteString(rule("╭", "┬", "╮"))

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
		b.WriteString(rule("├", "┼", "┤"))
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == separatorRow {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}
		b.WriteString(dimStyle.Render("│"))
		for i := range numCols {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if i == 0 {
				b.WriteString(valueStyle.Render(" " + cell + pad + " "))
			} else {
				b.WriteString(valueStyle.Render(" " + pad + cell + " "))
			}
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
	}

	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}

func RenderMortgage(c domain.MortgageCalculation) string {
	var b strings.Builder
	b.WriteString(RenderTitle("MORTGAGE") + "\n\n")

	pmi := mutedStyle.Render("not required")
	if c.RequiresPMI {
		pmi = warnStyle.Render("required")
	}
	b.WriteString(RenderTable(Table{
		Title:   "Loan",
		Headers: []string{"Item", "Amount"},
		Rows: [][]string{
			{"Loan amount", FormatMoney(c.LoanAmount)},
			{"Loan-to-value", FormatPercent(c.LoanToValue)},
			{"Term", FormatTerm(c.NumPayments)},
			{"Total interest", FormatMoney(c.TotalInterest)},
			{"Total cost", FormatMoney(c.TotalCost)},
		},
	}))
	b.WriteString("  PMI " + pmi + "\n\n")

	bd := c.Breakdown
	b.WriteString(RenderTable(Table{
		Title:   "First month",
		Headers: []string{"Component", "Amount"},
		Rows: [][]string{
			{"Principal", FormatMoney(bd.Principal)},
			{"Interest", FormatMoney(bd.Interest)},
			{"Property tax", FormatMoney(bd.Taxes)},
			{"Insurance", FormatMoney(bd.Insurance)},
			{"PMI", FormatMoney(bd.PMI)},
			{"HOA", FormatMoney(bd.HOA)},
			{separatorRow},
			{"Monthly payment", FormatMoney(c.TotalMonthlyPayment)},
		},
	}))
	return b.String()
}

func RenderCarLoan(c domain.CarLoanCalculation) string {
	var b strings.Builder
	b.WriteString(RenderTitle("CAR LOAN") + "\n\n")

	rows := [][]string{
		{"Taxable amount", FormatMoney(c.TaxableAmount)},
		{"Sales tax", FormatMoney(c.SalesTax)},
		{"Total price", FormatMoney(c.TotalAmount)},
	}
	if c.PaidInCash {
		b.WriteString(RenderTable(Table{Headers: []string{"Item", "Amount"}, Rows: rows}))
		b.WriteString("  " + goodStyle.Render("Paid in full, nothing to finance.") + "\n")
		return b.String()
	}

	rows = append(rows,
		[]string{separatorRow},
		[]string{"Amount financed", FormatMoney(c.LoanAmount)},
		[]string{"Term", FormatTerm(c.NumPayments)},
		[]string{"Monthly payment", FormatMoney(c.MonthlyPayment)},
		[]string{"  principal", FormatMoney(c.Breakdown.Principal)},
		[]string{"  interest", FormatMoney(c.Breakdown.Interest)},
		[]string{"Total interest", FormatMoney(c.TotalInterest)},
		[]string{"Total cost", FormatMoney(c.TotalCost)},
	)
	b.WriteString(RenderTable(Table{Headers: []string{"Item", "Amount"}, Rows: rows}))
	return b.String()
}

// RenderSchedule renders every step-th entry plus the final one.
func RenderSchedule(entries []domain.AmortizationEntry, step int) string {
	if step < 1 {
		step = 1
	}
	rows := make([][]string, 0, len(entries)/step+1)
	for i, e := range entries {
		if (i+1)%step != 0 && i != len(entries)-1 {
			continue
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.Month),
			FormatMoney(e.Payment),
			FormatMoney(e.Principal),
			FormatMoney(e.Interest),
			FormatMoney(e.Balance),
			FormatMoney(e.TotalInterest),
		})
	}
	return RenderTable(Table{
		Title:   "Amortization schedule",
		Headers: []string{"Month", "Payment", "Principal", "Interest", "Balance", "Interest paid"},
		Rows:    rows,
	})
}

func RenderEntitlement(st domain.EntitlementStatus) string {
	tier := string(st.SubscriptionType)
	if st.IsTrialActive && !st.IsPro {
		tier = fmt.Sprintf("%s (%d days left)", tier, st.DaysLeft)
	}
	return RenderTable(Table{
		Title:   "Subscription",
		Headers: []string{"Item", "Value"},
		Rows: [][]string{
			{"Plan", tier},
			{"AI tips today", RenderQuota(st.Quota)},
		},
	})
}

// RenderQuota formats usage as "2 of 3" or "5 (unlimited)".
func RenderQuota(q domain.UsageQuota) string {
	if q.Unlimited {
		return fmt.Sprintf("%d (unlimited)", q.DailyCount)
	}
	return fmt.Sprintf("%d of %d", q.DailyCount, q.DailyLimit)
}
