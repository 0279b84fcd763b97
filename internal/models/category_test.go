package models_test

import (
	"github.com/cashfolio/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCategoryInvalidKind() {
	category := models.Category{
		UserID: uuid.New(),
		Name:   "Weird",
		Kind:   "sideways",
	}

	err := models.DB.Create(&category).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryKindInvalid)
}

func (suite *TestSuiteStandard) TestCategoryTrimWhitespace() {
	category := suite.createTestCategory(models.Category{
		Name:  " Groceries ",
		Color: " #ff0000 ",
		Icon:  " cart ",
		Note:  " A note ",
	})

	suite.Assert().Equal("Groceries", category.Name)
	suite.Assert().Equal("#ff0000", category.Color)
	suite.Assert().Equal("cart", category.Icon)
	suite.Assert().Equal("A note", category.Note)
}

func (suite *TestSuiteStandard) TestCategoryDeleteInUse() {
	userID := uuid.New()
	account := suite.createTestAccount(models.Account{UserID: userID})
	category := suite.createTestCategory(models.Category{UserID: userID, Kind: models.CategoryKindExpense})

	_ = suite.createTestTransaction(models.Transaction{
		UserID:     userID,
		AccountID:  account.ID,
		CategoryID: category.ID,
		Kind:       models.TransactionKindExpense,
		Amount:     decimal.NewFromFloat(10),
	})

	err := models.DB.Delete(&category).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryInUse)

	// The category must still exist.
	suite.Assert().Nil(models.DB.First(&models.Category{}, category.ID).Error)
}

func (suite *TestSuiteStandard) TestCategoryDeleteUnused() {
	category := suite.createTestCategory(models.Category{Kind: models.CategoryKindIncome})

	err := models.DB.Delete(&category).Error
	suite.Assert().Nil(err)
}
