package models

import (
	"time"

	"github.com/cashfolio/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// MonthlyPoint is one month in a dashboard series.
type MonthlyPoint struct {
	Month   string          `json:"month" example:"2025-03"`
	Income  decimal.Decimal `json:"income" example:"2500"`
	Expense decimal.Decimal `json:"expense" example:"1730.50"`
}

// Dashboard summarizes the finances of one user.
type Dashboard struct {
	TotalBalance       decimal.Decimal `json:"totalBalance" example:"3509.31"`
	TotalIncome        decimal.Decimal `json:"totalIncome" example:"12500"`
	TotalExpense       decimal.Decimal `json:"totalExpense" example:"8990.69"`
	Net                decimal.Decimal `json:"net" example:"3509.31"`
	RecentTransactions []Transaction   `json:"recentTransactions"`
	MonthlySeries      []MonthlyPoint  `json:"monthlySeries"`
}

// BuildDashboard calculates the dashboard for a user: the sum of all account
// balances, the all-time income, expense and net sums, the five most recent
// transactions and a six month trailing income/expense series ending with
// the month of today.
func BuildDashboard(db *gorm.DB, userID uuid.UUID, today types.Date) (Dashboard, error) {
	dashboard := Dashboard{
		RecentTransactions: []Transaction{},
		MonthlySeries:      []MonthlyPoint{},
	}

	var balance decimal.NullDecimal
	err := db.Model(&Account{}).
		Where(&Account{UserID: userID}).
		Select("SUM(current_balance)").
		Scan(&balance).Error
	if err != nil {
		return Dashboard{}, err
	}
	dashboard.TotalBalance = balance.Decimal

	dashboard.TotalIncome, dashboard.TotalExpense, err = kindSums(db.Model(&Transaction{}).Where(&Transaction{UserID: userID}))
	if err != nil {
		return Dashboard{}, err
	}
	dashboard.Net = dashboard.TotalIncome.Sub(dashboard.TotalExpense)

	err = db.
		Where(&Transaction{UserID: userID}).
		Order("date(date) DESC, datetime(created_at) DESC").
		Limit(5).
		Find(&dashboard.RecentTransactions).Error
	if err != nil {
		return Dashboard{}, err
	}

	// Oldest month first
	now := today.Time()
	for offset := 5; offset >= 0; offset-- {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -offset, 0)
		next := first.AddDate(0, 1, 0)

		income, expense, err := kindSums(db.Model(&Transaction{}).
			Where(&Transaction{UserID: userID}).
			Where("date(transactions.date) >= date(?) AND date(transactions.date) < date(?)", first, next))
		if err != nil {
			return Dashboard{}, err
		}

		dashboard.MonthlySeries = append(dashboard.MonthlySeries, MonthlyPoint{
			Month:   first.Format("2006-01"),
			Income:  income,
			Expense: expense,
		})
	}

	return dashboard, nil
}

// kindSums returns the income and expense sums for a transaction query.
func kindSums(query *gorm.DB) (income, expense decimal.Decimal, err error) {
	var sum decimal.NullDecimal

	err = query.Session(&gorm.Session{}).
		Where("kind = ?", TransactionKindIncome).
		Select("SUM(amount)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	income = sum.Decimal

	err = query.Session(&gorm.Session{}).
		Where("kind = ?", TransactionKindExpense).
		Select("SUM(amount)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	expense = sum.Decimal

	return income, expense, nil
}

// BudgetItemReport is the breakdown for one budget item with its category.
type BudgetItemReport struct {
	Category        Category        `json:"category"`
	PlannedAmount   decimal.Decimal `json:"plannedAmount" example:"100"`
	ActualAmount    decimal.Decimal `json:"actualAmount" example:"47.12"`
	PercentageUsed  decimal.Decimal `json:"percentageUsed" example:"47.12"`
	RemainingAmount decimal.Decimal `json:"remainingAmount" example:"52.88"`
}

// TopCategory is one entry of the highest-spending categories of a budget.
type TopCategory struct {
	Category     Category        `json:"category"`
	ActualAmount decimal.Decimal `json:"actualAmount" example:"520"`

	// Percentage is the share of the total actual amount, 0 when nothing
	// was spent at all.
	Percentage decimal.Decimal `json:"percentage" example:"35.62"`
}

// DailySpendingPoint is the spending sum for a single day of the period.
type DailySpendingPoint struct {
	Date   types.Date      `json:"date" example:"2025-03-04"`
	Amount decimal.Decimal `json:"amount" example:"17.99"`
}

// BudgetReport is the full progress report for a budget.
type BudgetReport struct {
	Budget             Budget               `json:"budget"`
	Items              []BudgetItemReport   `json:"items"`
	TopCategories      []TopCategory        `json:"topCategories"`
	DailySpending      []DailySpendingPoint `json:"dailySpending"`
	TotalPlanned       decimal.Decimal      `json:"totalPlanned" example:"1500"`
	TotalActual        decimal.Decimal      `json:"totalActual" example:"1460.11"`
	ProgressPercentage decimal.Decimal      `json:"progressPercentage" example:"51.61"`
	DaysRemaining      int                  `json:"daysRemaining" example:"15"`
}

// Report builds the progress report for the budget. Actual amounts are
// refreshed first so that the report reflects the current transactions.
func (b *Budget) Report(db *gorm.DB, today types.Date) (BudgetReport, error) {
	err := b.RefreshActuals(db)
	if err != nil {
		return BudgetReport{}, err
	}

	report := BudgetReport{
		Budget:             *b,
		Items:              []BudgetItemReport{},
		TopCategories:      []TopCategory{},
		DailySpending:      []DailySpendingPoint{},
		TotalPlanned:       b.TotalPlanned(),
		TotalActual:        b.TotalActual(),
		ProgressPercentage: b.ProgressPercentage(today),
		DaysRemaining:      b.DaysRemaining(today),
	}

	categoryIDs := make([]uuid.UUID, 0, len(b.Items))
	for _, item := range b.Items {
		var category Category
		err := db.First(&category, item.CategoryID).Error
		if err != nil {
			return BudgetReport{}, err
		}

		report.Items = append(report.Items, BudgetItemReport{
			Category:        category,
			PlannedAmount:   item.PlannedAmount,
			ActualAmount:    item.ActualAmount,
			PercentageUsed:  item.PercentageUsed(),
			RemainingAmount: item.RemainingAmount(),
		})
		categoryIDs = append(categoryIDs, item.CategoryID)
	}

	// Top categories by actual amount, at most five
	byActual := slices.Clone(report.Items)
	slices.SortStableFunc(byActual, func(a, b BudgetItemReport) int {
		return b.ActualAmount.Cmp(a.ActualAmount)
	})
	for _, item := range byActual {
		if len(report.TopCategories) == 5 {
			break
		}

		percentage := decimal.Zero
		if report.TotalActual.IsPositive() {
			percentage = item.ActualAmount.Div(report.TotalActual).Mul(decimal.NewFromInt(100)).Round(2)
		}

		report.TopCategories = append(report.TopCategories, TopCategory{
			Category:     item.Category,
			ActualAmount: item.ActualAmount,
			Percentage:   percentage,
		})
	}

	report.DailySpending, err = dailySpending(db, b.UserID, categoryIDs, b.StartDate, b.EndDate)
	if err != nil {
		return BudgetReport{}, err
	}

	return report, nil
}

// dailySpending returns one point for every day in [from, to], 0 for days
// without transactions in the given categories.
func dailySpending(db *gorm.DB, userID uuid.UUID, categoryIDs []uuid.UUID, from, to types.Date) ([]DailySpendingPoint, error) {
	type row struct {
		Day    string
		Amount decimal.Decimal
	}

	var rows []row
	err := db.Model(&Transaction{}).
		Where(&Transaction{UserID: userID}).
		Where("category_id IN ?", categoryIDs).
		Where("date(transactions.date) >= date(?) AND date(transactions.date) <= date(?)", from, to).
		Select("date(transactions.date) AS day, SUM(amount) AS amount").
		Group("day").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		sums[r.Day] = r.Amount
	}

	points := make([]DailySpendingPoint, 0, from.DaysUntil(to))
	for day := from; !day.After(to); day = day.AddDays(1) {
		points = append(points, DailySpendingPoint{
			Date:   day,
			Amount: sums[day.String()],
		})
	}

	return points, nil
}

// CategoryBreakdown is the per-category sum of a transaction report.
type CategoryBreakdown struct {
	Category Category        `json:"category"`
	Amount   decimal.Decimal `json:"amount" example:"241.37"`
	Count    int             `json:"count" example:"7"`
}

// TransactionReportFilter narrows a transaction report. The zero value of a
// field means the report is not filtered by it.
type TransactionReportFilter struct {
	From      types.Date
	To        types.Date
	AccountID uuid.UUID
	Kind      TransactionKind
}

// TransactionReport lists transactions in a date range with totals and a
// per-category breakdown.
type TransactionReport struct {
	Transactions []Transaction       `json:"transactions"`
	TotalIncome  decimal.Decimal     `json:"totalIncome" example:"2500"`
	TotalExpense decimal.Decimal     `json:"totalExpense" example:"1730.50"`
	Net          decimal.Decimal     `json:"net" example:"769.50"`
	Categories   []CategoryBreakdown `json:"categories"`
}

// BuildTransactionReport builds a filtered transaction report for a user.
func BuildTransactionReport(db *gorm.DB, userID uuid.UUID, filter TransactionReportFilter) (TransactionReport, error) {
	report := TransactionReport{
		Transactions: []Transaction{},
		Categories:   []CategoryBreakdown{},
	}

	query := db.Model(&Transaction{}).Where(&Transaction{UserID: userID})
	if !filter.From.IsZero() {
		query = query.Where("date(transactions.date) >= date(?)", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("date(transactions.date) <= date(?)", filter.To)
	}
	if filter.AccountID != uuid.Nil {
		query = query.Where("account_id = ?", filter.AccountID)
	}
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}

	err := query.Session(&gorm.Session{}).
		Order("date(date) DESC, datetime(created_at) DESC").
		Find(&report.Transactions).Error
	if err != nil {
		return TransactionReport{}, err
	}

	sums := make(map[uuid.UUID]*CategoryBreakdown)
	order := []uuid.UUID{}
	for _, t := range report.Transactions {
		if t.Kind == TransactionKindIncome {
			report.TotalIncome = report.TotalIncome.Add(t.Amount)
		} else {
			report.TotalExpense = report.TotalExpense.Add(t.Amount)
		}

		breakdown, ok := sums[t.CategoryID]
		if !ok {
			breakdown = &CategoryBreakdown{}
			sums[t.CategoryID] = breakdown
			order = append(order, t.CategoryID)
		}
		breakdown.Amount = breakdown.Amount.Add(t.Amount)
		breakdown.Count++
	}
	report.Net = report.TotalIncome.Sub(report.TotalExpense)

	for _, id := range order {
		var category Category
		err := db.First(&category, id).Error
		if err != nil {
			return TransactionReport{}, err
		}

		breakdown := sums[id]
		breakdown.Category = category
		report.Categories = append(report.Categories, *breakdown)
	}

	slices.SortStableFunc(report.Categories, func(a, b CategoryBreakdown) int {
		return b.Amount.Cmp(a.Amount)
	})

	return report, nil
}
