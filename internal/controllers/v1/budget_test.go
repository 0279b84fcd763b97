package v1_test

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/cashfolio/backend/internal/controllers/v1"
	"github.com/cashfolio/backend/internal/models"
	"github.com/cashfolio/backend/internal/types"
	"github.com/cashfolio/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestBudgetCreate() {
	u := testUser(suite.T())
	groceries := createTestCategory(suite.T(), u, v1.CategoryEditable{Name: "Groceries"})
	leisure := createTestCategory(suite.T(), u, v1.CategoryEditable{Name: "Leisure"})

	budget := createTestBudget(suite.T(), u, v1.BudgetEditable{
		Name: "March 2026",
		Items: []v1.BudgetItemEditable{
			{CategoryID: groceries.Data.ID, PlannedAmount: decimal.NewFromFloat(300)},
			{CategoryID: leisure.Data.ID, PlannedAmount: decimal.NewFromFloat(150)},
		},
	})

	assert.Equal(suite.T(), "March 2026", budget.Data.Name)
	assert.True(suite.T(), budget.Data.TotalAmount.Equal(decimal.NewFromFloat(450)), "Total is %s", budget.Data.TotalAmount)
	assert.Len(suite.T(), budget.Data.Items, 2)
	assert.Contains(suite.T(), budget.Data.Links.Report, fmt.Sprintf("/v1/budgets/%s/report", budget.Data.ID))
}

func (suite *TestSuiteStandard) TestBudgetCreateInvalid() {
	u := testUser(suite.T())
	category := createTestCategory(suite.T(), u, v1.CategoryEditable{})

	tests := []struct {
		name     string
		editable v1.BudgetEditable
		status   int
	}{
		{
			"No items",
			v1.BudgetEditable{PeriodType: models.BudgetPeriodMonthly, StartDate: types.NewDate(2026, 1, 1), EndDate: types.NewDate(2026, 1, 31)},
			http.StatusBadRequest,
		},
		{
			"Invalid period type",
			v1.BudgetEditable{PeriodType: "weekly", StartDate: types.NewDate(2026, 1, 1), EndDate: types.NewDate(2026, 1, 31), Items: []v1.BudgetItemEditable{{CategoryID: category.Data.ID, PlannedAmount: decimal.NewFromFloat(100)}}},
			http.StatusBadRequest,
		},
		{
			"End before start",
			v1.BudgetEditable{PeriodType: models.BudgetPeriodMonthly, StartDate: types.NewDate(2026, 1, 31), EndDate: types.NewDate(2026, 1, 1), Items: []v1.BudgetItemEditable{{CategoryID: category.Data.ID, PlannedAmount: decimal.NewFromFloat(100)}}},
			http.StatusBadRequest,
		},
		{
			"Item references a category that does not exist",
			v1.BudgetEditable{PeriodType: models.BudgetPeriodMonthly, StartDate: types.NewDate(2026, 1, 1), EndDate: types.NewDate(2026, 1, 31), Items: []v1.BudgetItemEditable{{CategoryID: uuid.New(), PlannedAmount: decimal.NewFromFloat(100)}}},
			http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets", tt.editable, u.Headers)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetUpdateReplacesItems() {
	u := testUser(suite.T())
	groceries := createTestCategory(suite.T(), u, v1.CategoryEditable{Name: "Groceries"})
	leisure := createTestCategory(suite.T(), u, v1.CategoryEditable{Name: "Leisure"})

	budget := createTestBudget(suite.T(), u, v1.BudgetEditable{
		Items: []v1.BudgetItemEditable{
			{CategoryID: groceries.Data.ID, PlannedAmount: decimal.NewFromFloat(300)},
			{CategoryID: leisure.Data.ID, PlannedAmount: decimal.NewFromFloat(150)},
		},
	})

	kept := budget.Data.Items[0]

	var updated v1.BudgetResponse
	r := test.Request(suite.T(), http.MethodPatch, budget.Data.Links.Self, map[string]any{
		"note": "Tighter plan",
		"items": []map[string]any{
			{"id": kept.ID, "categoryId": kept.CategoryID, "plannedAmount": "400"},
		},
	}, u.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), "Tighter plan", updated.Data.Note)
	assert.Len(suite.T(), updated.Data.Items, 1)
	assert.Equal(suite.T(), kept.ID, updated.Data.Items[0].ID, "Existing item was recreated instead of updated")
	assert.True(suite.T(), updated.Data.Items[0].PlannedAmount.Equal(decimal.NewFromFloat(400)))
	assert.True(suite.T(), updated.Data.TotalAmount.Equal(decimal.NewFromFloat(400)))
}

func (suite *TestSuiteStandard) TestBudgetGetRefreshesActuals() {
	u := testUser(suite.T())
	account := createTestAccount(suite.T(), u, v1.AccountEditable{})
	groceries := createTestCategory(suite.T(), u, v1.CategoryEditable{Name: "Groceries"})

	budget := createTestBudget(suite.T(), u, v1.BudgetEditable{
		StartDate: types.NewDate(2026, 1, 1),
		EndDate:   types.NewDate(2026, 1, 31),
		Items: []v1.BudgetItemEditable{
			{CategoryID: groceries.Data.ID, PlannedAmount: decimal.NewFromFloat(300)},
		},
	})

	_ = createTestTransaction(suite.T(), u, v1.TransactionEditable{
		AccountID:  account.Data.ID,
		CategoryID: groceries.Data.ID,
		Amount:     decimal.NewFromFloat(120),
		Date:       types.NewDate(2026, 1, 10),
	})

	var refreshed v1.BudgetResponse
	r := test.Request(suite.T(), http.MethodGet, budget.Data.Links.Self, "", u.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &refreshed)

	assert.True(suite.T(), refreshed.Data.Items[0].ActualAmount.Equal(decimal.NewFromFloat(120)), "Actual is %s", refreshed.Data.Items[0].ActualAmount)
	assert.True(suite.T(), refreshed.Data.Items[0].PercentageUsed.Equal(decimal.NewFromFloat(40)), "Percentage is %s", refreshed.Data.Items[0].PercentageUsed)
	assert.True(suite.T(), refreshed.Data.Items[0].RemainingAmount.Equal(decimal.NewFromFloat(180)))
}

func (suite *TestSuiteStandard) TestBudgetsGetFiltered() {
	u := testUser(suite.T())
	category := createTestCategory(suite.T(), u, v1.CategoryEditable{})

	item := []v1.BudgetItemEditable{{CategoryID: category.Data.ID, PlannedAmount: decimal.NewFromFloat(100)}}

	_ = createTestBudget(suite.T(), u, v1.BudgetEditable{Name: "January", PeriodType: models.BudgetPeriodMonthly, StartDate: types.NewDate(2026, 1, 1), EndDate: types.NewDate(2026, 1, 31), Items: item})
	_ = createTestBudget(suite.T(), u, v1.BudgetEditable{Name: "Q1 savings", PeriodType: models.BudgetPeriodQuarterly, StartDate: types.NewDate(2026, 1, 1), EndDate: types.NewDate(2026, 3, 31), Archived: true, Items: item})

	tests := []struct {
		query string
		count int
	}{
		{"name=January", 1},
		{"periodType=quarterly", 1},
		{"archived=true", 1},
		{"archived=false", 1},
		{"", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			var list v1.BudgetListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets?%s", tt.query), "", u.Headers)
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &list)

			assert.Len(t, list.Data, tt.count, "Wrong number of budgets for query %q", tt.query)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetDelete() {
	u := testUser(suite.T())
	category := createTestCategory(suite.T(), u, v1.CategoryEditable{})

	budget := createTestBudget(suite.T(), u, v1.BudgetEditable{
		Items: []v1.BudgetItemEditable{{CategoryID: category.Data.ID, PlannedAmount: decimal.NewFromFloat(100)}},
	})

	r := test.Request(suite.T(), http.MethodDelete, budget.Data.Links.Self, "", u.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, budget.Data.Links.Self, "", u.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetReport() {
	u := testUser(suite.T())
	account := createTestAccount(suite.T(), u, v1.AccountEditable{})
	groceries := createTestCategory(suite.T(), u, v1.CategoryEditable{Name: "Groceries"})
	leisure := createTestCategory(suite.T(), u, v1.CategoryEditable{Name: "Leisure"})

	budget := createTestBudget(suite.T(), u, v1.BudgetEditable{
		StartDate: types.NewDate(2026, 1, 1),
		EndDate:   types.NewDate(2026, 1, 31),
		Items: []v1.BudgetItemEditable{
			{CategoryID: groceries.Data.ID, PlannedAmount: decimal.NewFromFloat(300)},
			{CategoryID: leisure.Data.ID, PlannedAmount: decimal.NewFromFloat(100)},
		},
	})

	_ = createTestTransaction(suite.T(), u, v1.TransactionEditable{
		AccountID:  account.Data.ID,
		CategoryID: groceries.Data.ID,
		Amount:     decimal.NewFromFloat(120),
		Date:       types.NewDate(2026, 1, 10),
	})

	var report v1.BudgetReportResponse
	r := test.Request(suite.T(), http.MethodGet, budget.Data.Links.Report, "", u.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &report)

	assert.True(suite.T(), report.Data.TotalPlanned.Equal(decimal.NewFromFloat(400)))
	assert.True(suite.T(), report.Data.TotalActual.Equal(decimal.NewFromFloat(120)))
	assert.Len(suite.T(), report.Data.Items, 2)
	assert.Len(suite.T(), report.Data.DailySpending, 31)

	assert.Len(suite.T(), report.Data.TopCategories, 1)
	assert.Equal(suite.T(), "Groceries", report.Data.TopCategories[0].Category.Name)
}

func (suite *TestSuiteStandard) TestBudgetReportPDF() {
	u := testUser(suite.T())
	category := createTestCategory(suite.T(), u, v1.CategoryEditable{})

	budget := createTestBudget(suite.T(), u, v1.BudgetEditable{
		Name:  "March 2026",
		Items: []v1.BudgetItemEditable{{CategoryID: category.Data.ID, PlannedAmount: decimal.NewFromFloat(100)}},
	})

	r := test.Request(suite.T(), http.MethodGet, budget.Data.Links.ReportPDF, "", u.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	assert.Equal(suite.T(), "application/pdf", r.Header().Get("Content-Type"))
	assert.Contains(suite.T(), r.Header().Get("Content-Disposition"), fmt.Sprintf("budget-report-%s.pdf", budget.Data.ID))
	assert.True(suite.T(), bytes.HasPrefix(r.Body.Bytes(), []byte("%PDF")), "Response does not look like a PDF")
}

func (suite *TestSuiteStandard) TestBudgetOwnership() {
	owner := testUser(suite.T())
	stranger := testUser(suite.T())
	category := createTestCategory(suite.T(), owner, v1.CategoryEditable{})

	budget := createTestBudget(suite.T(), owner, v1.BudgetEditable{
		Items: []v1.BudgetItemEditable{{CategoryID: category.Data.ID, PlannedAmount: decimal.NewFromFloat(100)}},
	})

	r := test.Request(suite.T(), http.MethodGet, budget.Data.Links.Report, "", stranger.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)
}
