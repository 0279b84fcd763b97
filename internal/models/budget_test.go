package models_test

import (
	"github.com/cashfolio/backend/internal/models"
	"github.com/cashfolio/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestBudgetInvalidPeriod() {
	err := models.CreateBudgetWithItems(models.DB, &models.Budget{
		UserID:     uuid.New(),
		Name:       "Weekly",
		PeriodType: "weekly",
		StartDate:  types.NewDate(2026, 1, 1),
		EndDate:    types.NewDate(2026, 1, 7),
	}, []models.BudgetItem{{PlannedAmount: decimal.NewFromFloat(10)}})

	suite.Assert().ErrorIs(err, models.ErrBudgetPeriodInvalid)
}

func (suite *TestSuiteStandard) TestBudgetEndBeforeStart() {
	err := models.CreateBudgetWithItems(models.DB, &models.Budget{
		UserID:     uuid.New(),
		Name:       "Backwards",
		PeriodType: models.BudgetPeriodMonthly,
		StartDate:  types.NewDate(2026, 2, 1),
		EndDate:    types.NewDate(2026, 1, 1),
	}, []models.BudgetItem{{PlannedAmount: decimal.NewFromFloat(10)}})

	suite.Assert().ErrorIs(err, models.ErrBudgetEndBeforeStart)
}

func (suite *TestSuiteStandard) TestBudgetRequiresItems() {
	err := models.CreateBudgetWithItems(models.DB, &models.Budget{
		UserID:     uuid.New(),
		Name:       "Empty",
		PeriodType: models.BudgetPeriodMonthly,
		StartDate:  types.NewDate(2026, 1, 1),
		EndDate:    types.NewDate(2026, 1, 31),
	}, nil)

	suite.Assert().ErrorIs(err, models.ErrBudgetNoItems)
}

func (suite *TestSuiteStandard) TestBudgetCreateComputesTotal() {
	userID := uuid.New()
	groceries := suite.createTestCategory(models.Category{UserID: userID, Kind: models.CategoryKindExpense})
	leisure := suite.createTestCategory(models.Category{UserID: userID, Kind: models.CategoryKindExpense})

	budget := suite.createTestBudget(models.Budget{
		UserID:    userID,
		StartDate: types.NewDate(2026, 1, 1),
		EndDate:   types.NewDate(2026, 1, 31),
	}, []models.BudgetItem{
		{CategoryID: groceries.ID, PlannedAmount: decimal.NewFromFloat(300)},
		{CategoryID: leisure.ID, PlannedAmount: decimal.NewFromFloat(150)},
	})

	suite.Assert().True(budget.TotalAmount.Equal(decimal.NewFromFloat(450)), "Total amount is wrong: %s", budget.TotalAmount)

	suite.Assert().Nil(budget.LoadItems(models.DB))
	suite.Assert().Len(budget.Items, 2)
}

func (suite *TestSuiteStandard) TestBudgetItemNegativePlannedAmount() {
	userID := uuid.New()
	category := suite.createTestCategory(models.Category{UserID: userID, Kind: models.CategoryKindExpense})

	err := models.CreateBudgetWithItems(models.DB, &models.Budget{
		UserID:     userID,
		Name:       "Negative",
		PeriodType: models.BudgetPeriodMonthly,
		StartDate:  types.NewDate(2026, 1, 1),
		EndDate:    types.NewDate(2026, 1, 31),
	}, []models.BudgetItem{
		{CategoryID: category.ID, PlannedAmount: decimal.NewFromFloat(-10)},
	})

	suite.Assert().ErrorIs(err, models.ErrPlannedAmountNegative)
}

func (suite *TestSuiteStandard) TestBudgetRefreshActuals() {
	userID := uuid.New()
	account := suite.createTestAccount(models.Account{UserID: userID, InitialBalance: decimal.NewFromFloat(1000)})
	groceries := suite.createTestCategory(models.Category{UserID: userID, Kind: models.CategoryKindExpense})

	budget := suite.createTestBudget(models.Budget{
		UserID:    userID,
		StartDate: types.NewDate(2026, 1, 1),
		EndDate:   types.NewDate(2026, 1, 31),
	}, []models.BudgetItem{
		{CategoryID: groceries.ID, PlannedAmount: decimal.NewFromFloat(300)},
	})

	// Inside the period
	_ = suite.createTestTransaction(models.Transaction{
		UserID:     userID,
		AccountID:  account.ID,
		CategoryID: groceries.ID,
		Kind:       models.TransactionKindExpense,
		Amount:     decimal.NewFromFloat(120),
		Date:       types.NewDate(2026, 1, 10),
	})

	// Outside the period, must not count
	_ = suite.createTestTransaction(models.Transaction{
		UserID:     userID,
		AccountID:  account.ID,
		CategoryID: groceries.ID,
		Kind:       models.TransactionKindExpense,
		Amount:     decimal.NewFromFloat(80),
		Date:       types.NewDate(2026, 2, 10),
	})

	suite.Assert().Nil(budget.RefreshActuals(models.DB))

	suite.Assert().Len(budget.Items, 1)
	suite.Assert().True(budget.Items[0].ActualAmount.Equal(decimal.NewFromFloat(120)), "Actual amount is wrong: %s", budget.Items[0].ActualAmount)
}

func (suite *TestSuiteStandard) TestBudgetUpdateReconcilesItems() {
	userID := uuid.New()
	groceries := suite.createTestCategory(models.Category{UserID: userID, Kind: models.CategoryKindExpense})
	leisure := suite.createTestCategory(models.Category{UserID: userID, Kind: models.CategoryKindExpense})
	travel := suite.createTestCategory(models.Category{UserID: userID, Kind: models.CategoryKindExpense})

	budget := suite.createTestBudget(models.Budget{
		UserID:    userID,
		StartDate: types.NewDate(2026, 1, 1),
		EndDate:   types.NewDate(2026, 1, 31),
	}, []models.BudgetItem{
		{CategoryID: groceries.ID, PlannedAmount: decimal.NewFromFloat(300)},
		{CategoryID: leisure.ID, PlannedAmount: decimal.NewFromFloat(150)},
	})

	suite.Assert().Nil(budget.LoadItems(models.DB))
	kept := budget.Items[0]

	// Keep the first item with a new amount, drop the second, add a third.
	err := models.UpdateBudgetWithItems(models.DB, &budget, models.Budget{
		Name: "Updated",
	}, []any{"Name"}, []models.BudgetItem{
		{DefaultModel: models.DefaultModel{ID: kept.ID}, CategoryID: kept.CategoryID, PlannedAmount: decimal.NewFromFloat(400)},
		{CategoryID: travel.ID, PlannedAmount: decimal.NewFromFloat(100)},
	})
	suite.Assert().Nil(err)

	suite.Assert().Equal("Updated", budget.Name)
	suite.Assert().True(budget.TotalAmount.Equal(decimal.NewFromFloat(500)), "Total amount is wrong: %s", budget.TotalAmount)
	suite.Assert().Len(budget.Items, 2)

	var count int64
	suite.Assert().Nil(models.DB.Model(&models.BudgetItem{}).Where("budget_id = ?", budget.ID).Count(&count).Error)
	suite.Assert().Equal(int64(2), count)

	// The kept item was updated in place.
	var item models.BudgetItem
	suite.Assert().Nil(models.DB.First(&item, kept.ID).Error)
	suite.Assert().True(item.PlannedAmount.Equal(decimal.NewFromFloat(400)))
}

func (suite *TestSuiteStandard) TestBudgetUpdateRejectsForeignItem() {
	userID := uuid.New()
	category := suite.createTestCategory(models.Category{UserID: userID, Kind: models.CategoryKindExpense})

	first := suite.createTestBudget(models.Budget{
		UserID:    userID,
		StartDate: types.NewDate(2026, 1, 1),
		EndDate:   types.NewDate(2026, 1, 31),
	}, []models.BudgetItem{
		{CategoryID: category.ID, PlannedAmount: decimal.NewFromFloat(100)},
	})

	second := suite.createTestBudget(models.Budget{
		UserID:    userID,
		StartDate: types.NewDate(2026, 2, 1),
		EndDate:   types.NewDate(2026, 2, 28),
	}, []models.BudgetItem{
		{CategoryID: category.ID, PlannedAmount: decimal.NewFromFloat(100)},
	})

	suite.Assert().Nil(first.LoadItems(models.DB))

	err := models.UpdateBudgetWithItems(models.DB, &second, models.Budget{}, []any{}, []models.BudgetItem{
		{DefaultModel: models.DefaultModel{ID: first.Items[0].ID}, CategoryID: category.ID, PlannedAmount: decimal.NewFromFloat(50)},
	})

	suite.Assert().ErrorIs(err, models.ErrBudgetItemWrongBudget)
}

func (suite *TestSuiteStandard) TestBudgetItemPercentageUsed() {
	item := models.BudgetItem{
		PlannedAmount: decimal.NewFromFloat(200),
		ActualAmount:  decimal.NewFromFloat(50),
	}
	suite.Assert().True(item.PercentageUsed().Equal(decimal.NewFromFloat(25)))

	// Overspent items are clamped to 100 and report no remaining amount
	item = models.BudgetItem{
		PlannedAmount: decimal.NewFromFloat(100),
		ActualAmount:  decimal.NewFromFloat(150),
	}
	suite.Assert().True(item.PercentageUsed().Equal(decimal.NewFromFloat(100)))
	suite.Assert().True(item.RemainingAmount().Equal(decimal.Zero))

	// Unplanned items report 0
	item = models.BudgetItem{
		ActualAmount: decimal.NewFromFloat(10),
	}
	suite.Assert().True(item.PercentageUsed().Equal(decimal.Zero))
}

func (suite *TestSuiteStandard) TestBudgetProgress() {
	budget := models.Budget{
		StartDate: types.NewDate(2026, 1, 1),
		EndDate:   types.NewDate(2026, 1, 31),
	}

	suite.Assert().True(budget.ProgressPercentage(types.NewDate(2025, 12, 20)).Equal(decimal.Zero))
	suite.Assert().True(budget.ProgressPercentage(types.NewDate(2026, 2, 1)).Equal(decimal.NewFromFloat(100)))
	suite.Assert().True(budget.ProgressPercentage(types.NewDate(2026, 1, 16)).Equal(decimal.NewFromFloat(51.61)), "Progress is wrong: %s", budget.ProgressPercentage(types.NewDate(2026, 1, 16)))

	suite.Assert().Equal(15, budget.DaysRemaining(types.NewDate(2026, 1, 16)))
	suite.Assert().Equal(0, budget.DaysRemaining(types.NewDate(2026, 2, 5)))
}
