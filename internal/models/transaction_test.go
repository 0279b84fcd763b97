package models_test

import (
	"github.com/cashfolio/backend/internal/models"
	"github.com/cashfolio/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestTransactionInvalidKind() {
	userID := uuid.New()
	account := suite.createTestAccount(models.Account{UserID: userID})
	category := suite.createTestCategory(models.Category{UserID: userID, Kind: models.CategoryKindExpense})

	err := models.CreateTransaction(models.DB, &models.Transaction{
		UserID:     userID,
		AccountID:  account.ID,
		CategoryID: category.ID,
		Kind:       "transfer",
		Amount:     decimal.NewFromFloat(10),
		Date:       types.Today(),
	})

	suite.Assert().ErrorIs(err, models.ErrTransactionKindInvalid)
}

func (suite *TestSuiteStandard) TestTransactionNegativeAmount() {
	userID := uuid.New()
	account := suite.createTestAccount(models.Account{UserID: userID})
	category := suite.createTestCategory(models.Category{UserID: userID, Kind: models.CategoryKindExpense})

	err := models.CreateTransaction(models.DB, &models.Transaction{
		UserID:     userID,
		AccountID:  account.ID,
		CategoryID: category.ID,
		Kind:       models.TransactionKindExpense,
		Amount:     decimal.NewFromFloat(-10),
		Date:       types.Today(),
	})

	suite.Assert().ErrorIs(err, models.ErrAmountNegative)
}

func (suite *TestSuiteStandard) TestTransactionDateRequired() {
	userID := uuid.New()
	account := suite.createTestAccount(models.Account{UserID: userID})
	category := suite.createTestCategory(models.Category{UserID: userID, Kind: models.CategoryKindExpense})

	err := models.CreateTransaction(models.DB, &models.Transaction{
		UserID:     userID,
		AccountID:  account.ID,
		CategoryID: category.ID,
		Kind:       models.TransactionKindExpense,
		Amount:     decimal.NewFromFloat(10),
	})

	suite.Assert().ErrorIs(err, models.ErrTransactionDateRequired)
}

func (suite *TestSuiteStandard) TestTransactionCategoryKindMismatch() {
	userID := uuid.New()
	account := suite.createTestAccount(models.Account{UserID: userID})
	salary := suite.createTestCategory(models.Category{UserID: userID, Kind: models.CategoryKindIncome})

	err := models.CreateTransaction(models.DB, &models.Transaction{
		UserID:     userID,
		AccountID:  account.ID,
		CategoryID: salary.ID,
		Kind:       models.TransactionKindExpense,
		Amount:     decimal.NewFromFloat(10),
		Date:       types.Today(),
	})

	suite.Assert().ErrorIs(err, models.ErrCategoryKindMismatch)
}

func (suite *TestSuiteStandard) TestTransactionMissingCategory() {
	userID := uuid.New()
	account := suite.createTestAccount(models.Account{UserID: userID})

	err := models.CreateTransaction(models.DB, &models.Transaction{
		UserID:     userID,
		AccountID:  account.ID,
		CategoryID: uuid.New(),
		Kind:       models.TransactionKindExpense,
		Amount:     decimal.NewFromFloat(10),
		Date:       types.Today(),
	})

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestTransactionUpdateMovesEffect() {
	userID := uuid.New()
	first := suite.createTestAccount(models.Account{UserID: userID, InitialBalance: decimal.NewFromFloat(100)})
	second := suite.createTestAccount(models.Account{UserID: userID, InitialBalance: decimal.NewFromFloat(100)})
	category := suite.createTestCategory(models.Category{UserID: userID, Kind: models.CategoryKindExpense})

	transaction := suite.createTestTransaction(models.Transaction{
		UserID:     userID,
		AccountID:  first.ID,
		CategoryID: category.ID,
		Kind:       models.TransactionKindExpense,
		Amount:     decimal.NewFromFloat(30),
	})

	suite.Assert().True(suite.balanceOf(first.ID).Equal(decimal.NewFromFloat(70)))

	err := models.UpdateTransaction(models.DB, &transaction, models.Transaction{
		AccountID: second.ID,
		Amount:    decimal.NewFromFloat(50),
	}, []any{"AccountID", "Amount"})
	suite.Assert().Nil(err)

	suite.Assert().True(suite.balanceOf(first.ID).Equal(decimal.NewFromFloat(100)), "Old account was not restored: %s", suite.balanceOf(first.ID))
	suite.Assert().True(suite.balanceOf(second.ID).Equal(decimal.NewFromFloat(50)), "New account does not carry the effect: %s", suite.balanceOf(second.ID))
}

func (suite *TestSuiteStandard) TestTransactionEffect() {
	income := models.Transaction{Kind: models.TransactionKindIncome, Amount: decimal.NewFromFloat(10)}
	expense := models.Transaction{Kind: models.TransactionKindExpense, Amount: decimal.NewFromFloat(10)}

	suite.Assert().True(income.Effect().Equal(decimal.NewFromFloat(10)))
	suite.Assert().True(expense.Effect().Equal(decimal.NewFromFloat(-10)))
}
