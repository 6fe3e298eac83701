// Package budget computes planned-versus-actual performance.
//
// Planned figures convert between frequencies with fixed multipliers
// (Weekly 52, Bi-weekly 26, Monthly 12, Yearly 1); actuals are summed from
// categorized transactions over either a single calendar month or the
// whole period since tracking began. Ignored transactions never count.
package budget

import (
	"fmt"
	"strings"
	"time"

	"household-budget-engine/internal/models"
	"household-budget-engine/internal/money"
)

// ViewMode selects the reporting window.
type ViewMode string

const (
	ViewMonth  ViewMode = "month"
	ViewPeriod ViewMode = "period"
)

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses "YYYY-M" or "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-1", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// Contains reports whether t falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Plan is the household budget plan: recurring figures plus the date
// tracking began, which anchors whole-period math.
type Plan struct {
	Figures     []*models.PlannedFigure `json:"figures"`
	PeriodStart time.Time               `json:"period_start"`
}

// FiguresOfType returns the plan's figures with the given type.
func (p *Plan) FiguresOfType(t models.CategoryType) []*models.PlannedFigure {
	var out []*models.PlannedFigure
	for _, f := range p.Figures {
		if f.Type == t {
			out = append(out, f)
		}
	}
	return out
}

// FilterByPeriod returns the transactions inside the reporting window.
// Month view keeps one calendar month; period view keeps everything on or
// after the period start, with no upper bound, so post-dated entries are
// reported rather than silently dropped.
func FilterByPeriod(txs []*models.Transaction, mode ViewMode, sel Month, periodStart time.Time) []*models.Transaction {
	var out []*models.Transaction
	for _, tx := range txs {
		switch mode {
		case ViewMonth:
			if sel.Contains(tx.Date) {
				out = append(out, tx)
			}
		case ViewPeriod:
			if !tx.Date.Before(periodStart) {
				out = append(out, tx)
			}
		}
	}
	return out
}

// MonthsElapsed counts calendar months from the period start through now,
// inclusive of both endpoints. The minimum is one: a period that started
// this month still covers one month of plan.
func MonthsElapsed(periodStart, now time.Time) int64 {
	months := int64(now.Year()-periodStart.Year())*12 +
		int64(now.Month()-periodStart.Month()) + 1
	if months < 1 {
		return 1
	}
	return months
}

// PlannedMonthly sums the monthly equivalents of the given figures.
func PlannedMonthly(figures []*models.PlannedFigure) money.Money {
	total := money.Zero()
	for _, f := range figures {
		total = total.Add(f.Monthly())
	}
	return total
}

// PlannedYearly sums the yearly totals of the given figures.
func PlannedYearly(figures []*models.PlannedFigure) money.Money {
	total := money.Zero()
	for _, f := range figures {
		total = total.Add(f.Yearly())
	}
	return total
}

// PlannedForPeriod scales the monthly plan by the number of elapsed
// months.
func PlannedForPeriod(figures []*models.PlannedFigure, months int64) money.Money {
	return PlannedMonthly(figures).MulInt(months)
}

// Synonym groups: a planned figure named with one member matches
// transaction text containing any other member.
var figureSynonyms = [][]string{
	{"salary", "payroll"},
	{"freelance", "contract"},
}

// matchesFigure reports whether a transaction corresponds to a planned
// figure: its category name equals the figure's name, its description
// contains the name, or the two share a synonym group.
func matchesFigure(tx *models.Transaction, figure *models.PlannedFigure) bool {
	if tx.Category != nil && strings.EqualFold(tx.Category.Name, figure.Name) {
		return true
	}

	desc := strings.ToLower(tx.Description)
	name := strings.ToLower(figure.Name)

	if strings.Contains(desc, name) {
		return true
	}

	for _, group := range figureSynonyms {
		nameInGroup := false
		for _, term := range group {
			if strings.Contains(name, term) {
				nameInGroup = true
				break
			}
		}
		if !nameInGroup {
			continue
		}
		for _, term := range group {
			if strings.Contains(desc, term) {
				return true
			}
		}
	}

	return false
}

// ActualIncome sums positive transactions attributable to the plan's
// income figures. Ignored transactions are skipped; inflows with no
// matching figure are unplanned income and stay out of the line.
func ActualIncome(txs []*models.Transaction, figures []*models.PlannedFigure) money.Money {
	total := money.Zero()
	for _, tx := range txs {
		if tx.IsIgnored() || !tx.Amount.IsPositive() {
			continue
		}
		for _, f := range figures {
			if matchesFigure(tx, f) {
				total = total.Add(tx.Amount)
				break
			}
		}
	}
	return total
}

// ActualExpenses sums the magnitudes of outflows attributable to the
// plan's expense figures, matched the same way income is.
func ActualExpenses(txs []*models.Transaction, figures []*models.PlannedFigure) money.Money {
	total := money.Zero()
	for _, tx := range txs {
		if tx.IsIgnored() || !tx.Amount.IsNegative() {
			continue
		}
		for _, f := range figures {
			if matchesFigure(tx, f) {
				total = total.Add(tx.Amount.Abs())
				break
			}
		}
	}
	return total
}

// Savings vocabulary used to recognize savings activity in descriptions.
var savingsKeywords = []string{"savings", "emergency fund", "investment"}

// ActualSavings sums the magnitudes of transactions that represent money
// set aside: transactions in savings categories, or whose description
// matches the savings vocabulary or a savings figure's name.
func ActualSavings(txs []*models.Transaction, figures []*models.PlannedFigure) money.Money {
	total := money.Zero()
	for _, tx := range txs {
		if tx.IsIgnored() {
			continue
		}
		if isSavings(tx, figures) {
			total = total.Add(tx.Amount.Abs())
		}
	}
	return total
}

func isSavings(tx *models.Transaction, figures []*models.PlannedFigure) bool {
	if tx.Category != nil {
		return tx.Category.Type == models.TypeSavings
	}

	desc := strings.ToLower(tx.Description)
	for _, kw := range savingsKeywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	for _, f := range figures {
		if strings.Contains(desc, strings.ToLower(f.Name)) {
			return true
		}
	}
	return false
}

// Line pairs a planned amount with the matching actual.
type Line struct {
	Planned money.Money `json:"planned"`
	Actual  money.Money `json:"actual"`
}

// Variance is actual minus planned.
func (l Line) Variance() money.Money {
	return l.Actual.Sub(l.Planned)
}

// Performance is the planned-versus-actual summary for a reporting window.
type Performance struct {
	Mode     ViewMode `json:"mode"`
	Window   string   `json:"window"`
	Months   int64    `json:"months"`
	Income   Line     `json:"income"`
	Expenses Line     `json:"expenses"`
	Savings  Line     `json:"savings"`
}

// Net returns actual income minus actual expenses.
func (p *Performance) Net() money.Money {
	return p.Income.Actual.Sub(p.Expenses.Actual)
}

// CalculatePerformance computes the planned-versus-actual summary for the
// selected window.
func CalculatePerformance(plan *Plan, txs []*models.Transaction, mode ViewMode, sel Month, now time.Time) *Performance {
	window := FilterByPeriod(txs, mode, sel, plan.PeriodStart)

	months := int64(1)
	label := sel.String()
	if mode == ViewPeriod {
		months = MonthsElapsed(plan.PeriodStart, now)
		label = fmt.Sprintf("%s to %s",
			plan.PeriodStart.Format("2006-01-02"), now.Format("2006-01-02"))
	}

	income := plan.FiguresOfType(models.TypeIncome)
	expenses := plan.FiguresOfType(models.TypeExpense)
	savings := plan.FiguresOfType(models.TypeSavings)

	return &Performance{
		Mode:   mode,
		Window: label,
		Months: months,
		Income: Line{
			Planned: PlannedForPeriod(income, months),
			Actual:  ActualIncome(window, income),
		},
		Expenses: Line{
			Planned: PlannedForPeriod(expenses, months),
			Actual:  ActualExpenses(window, expenses),
		},
		Savings: Line{
			Planned: PlannedForPeriod(savings, months),
			Actual:  ActualSavings(window, savings),
		},
	}
}

// CategoryTotal is spending attributed to one category.
type CategoryTotal struct {
	Category *models.Category `json:"category"`
	Total    money.Money      `json:"total"`
	Count    int              `json:"count"`
}

// CategoryTotals sums outflow magnitudes per category over the given
// transactions, in first-seen order. Uncategorized spending is grouped
// under a nil category at the end.
func CategoryTotals(txs []*models.Transaction) []*CategoryTotal {
	var order []string
	byID := make(map[string]*CategoryTotal)
	var uncategorized *CategoryTotal

	for _, tx := range txs {
		if tx.IsIgnored() || !tx.Amount.IsNegative() {
			continue
		}

		if tx.Category == nil {
			if uncategorized == nil {
				uncategorized = &CategoryTotal{}
			}
			uncategorized.Total = uncategorized.Total.Add(tx.Amount.Abs())
			uncategorized.Count++
			continue
		}

		ct, ok := byID[tx.Category.ID]
		if !ok {
			ct = &CategoryTotal{Category: tx.Category}
			byID[tx.Category.ID] = ct
			order = append(order, tx.Category.ID)
		}
		ct.Total = ct.Total.Add(tx.Amount.Abs())
		ct.Count++
	}

	out := make([]*CategoryTotal, 0, len(order)+1)
	for _, id := range order {
		out = append(out, byID[id])
	}
	if uncategorized != nil {
		out = append(out, uncategorized)
	}
	return out
}
