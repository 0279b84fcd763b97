package models_test

import (
	"github.com/cashfolio/backend/internal/models"
	"github.com/cashfolio/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCashFlowRequiresLines() {
	err := models.CreateCashFlow(models.DB, &models.CashFlow{
		UserID: uuid.New(),
		Date:   types.Today(),
	}, nil)

	suite.Assert().ErrorIs(err, models.ErrCashFlowNoTransactions)
}

func (suite *TestSuiteStandard) TestCashFlowCreate() {
	userID := uuid.New()
	account := suite.createTestAccount(models.Account{UserID: userID, InitialBalance: decimal.NewFromFloat(100)})
	groceries := suite.createTestCategory(models.Category{UserID: userID, Kind: models.CategoryKindExpense})
	household := suite.createTestCategory(models.Category{UserID: userID, Kind: models.CategoryKindExpense})

	cashFlow := suite.createTestCashFlow(models.CashFlow{
		UserID:    userID,
		Date:      types.NewDate(2026, 3, 4),
		Reference: "Supermarket",
	}, []models.Transaction{
		{AccountID: account.ID, CategoryID: groceries.ID, Kind: models.TransactionKindExpense, Amount: decimal.NewFromFloat(30)},
		{AccountID: account.ID, CategoryID: household.ID, Kind: models.TransactionKindExpense, Amount: decimal.NewFromFloat(20)},
	})

	lines, err := cashFlow.Lines(models.DB)
	suite.Assert().Nil(err)
	suite.Assert().Len(lines, 2)

	// Lines without a date inherit the date of the cash flow.
	for _, line := range lines {
		suite.Assert().True(line.Date.Equal(cashFlow.Date), "Line date is %s, expected %s", line.Date, cashFlow.Date)
		suite.Assert().Equal(userID, line.UserID)
	}

	suite.Assert().True(suite.balanceOf(account.ID).Equal(decimal.NewFromFloat(50)), "Balance after batch is wrong: %s", suite.balanceOf(account.ID))
}

func (suite *TestSuiteStandard) TestCashFlowUpdateReplacesLines() {
	userID := uuid.New()
	first := suite.createTestAccount(models.Account{UserID: userID, InitialBalance: decimal.NewFromFloat(100)})
	second := suite.createTestAccount(models.Account{UserID: userID, InitialBalance: decimal.NewFromFloat(100)})
	category := suite.createTestCategory(models.Category{UserID: userID, Kind: models.CategoryKindExpense})

	cashFlow := suite.createTestCashFlow(models.CashFlow{
		UserID: userID,
		Date:   types.Today(),
	}, []models.Transaction{
		{AccountID: first.ID, CategoryID: category.ID, Kind: models.TransactionKindExpense, Amount: decimal.NewFromFloat(30)},
		{AccountID: second.ID, CategoryID: category.ID, Kind: models.TransactionKindExpense, Amount: decimal.NewFromFloat(20)},
	})

	err := models.UpdateCashFlow(models.DB, &cashFlow, models.CashFlow{
		Reference: "Corrected",
	}, []any{"Reference"}, []models.Transaction{
		{AccountID: first.ID, CategoryID: category.ID, Kind: models.TransactionKindExpense, Amount: decimal.NewFromFloat(50)},
	})
	suite.Assert().Nil(err)
	suite.Assert().Equal("Corrected", cashFlow.Reference)

	lines, err := cashFlow.Lines(models.DB)
	suite.Assert().Nil(err)
	suite.Assert().Len(lines, 1)

	suite.Assert().True(suite.balanceOf(first.ID).Equal(decimal.NewFromFloat(50)), "First account balance is wrong: %s", suite.balanceOf(first.ID))
	suite.Assert().True(suite.balanceOf(second.ID).Equal(decimal.NewFromFloat(100)), "Second account was not restored: %s", suite.balanceOf(second.ID))
}

func (suite *TestSuiteStandard) TestCashFlowDelete() {
	userID := uuid.New()
	account := suite.createTestAccount(models.Account{UserID: userID, InitialBalance: decimal.NewFromFloat(100)})
	category := suite.createTestCategory(models.Category{UserID: userID, Kind: models.CategoryKindExpense})

	cashFlow := suite.createTestCashFlow(models.CashFlow{
		UserID: userID,
		Date:   types.Today(),
	}, []models.Transaction{
		{AccountID: account.ID, CategoryID: category.ID, Kind: models.TransactionKindExpense, Amount: decimal.NewFromFloat(25)},
	})

	err := models.DeleteCashFlow(models.DB, &cashFlow)
	suite.Assert().Nil(err)

	suite.Assert().True(suite.balanceOf(account.ID).Equal(decimal.NewFromFloat(100)), "Balance was not restored: %s", suite.balanceOf(account.ID))

	var count int64
	suite.Assert().Nil(models.DB.Model(&models.Transaction{}).Where("cash_flow_id = ?", cashFlow.ID).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}
