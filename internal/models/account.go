package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account represents an asset account, e.g. a bank account or a wallet.
type Account struct {
	DefaultModel
	UserID         uuid.UUID `gorm:"index;uniqueIndex:account_name_user_id"`
	Name           string    `gorm:"uniqueIndex:account_name_user_id"`
	AccountNumber  string
	Note           string
	InitialBalance decimal.Decimal `gorm:"type:DECIMAL(20,2)"`
	CurrentBalance decimal.Decimal `gorm:"type:DECIMAL(20,2)"`
	Archived       bool
}

// BeforeSave trims whitespace from all strings.
//
// On creation, the current balance always starts at the initial balance.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.AccountNumber = strings.TrimSpace(a.AccountNumber)
	a.Note = strings.TrimSpace(a.Note)

	return nil
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	a.CurrentBalance = a.InitialBalance
	return nil
}

// Owner returns the user the account belongs to.
func (a Account) Owner() uuid.UUID {
	return a.UserID
}

// Transactions returns all transactions for this account.
func (a Account) Transactions(db *gorm.DB) []Transaction {
	var transactions []Transaction

	db.Where(Transaction{AccountID: a.ID}).Find(&transactions)
	return transactions
}

// RecalculateBalance sets the current balance to the initial balance plus
// the effect of every transaction on the account. It is a repair operation,
// regular writes maintain the balance incrementally.
func (a *Account) RecalculateBalance(db *gorm.DB) error {
	var income, expense decimal.NullDecimal

	err := db.Model(&Transaction{}).
		Where(&Transaction{AccountID: a.ID, Kind: TransactionKindIncome}).
		Select("SUM(amount)").
		Scan(&income).Error
	if err != nil {
		return err
	}

	err = db.Model(&Transaction{}).
		Where(&Transaction{AccountID: a.ID, Kind: TransactionKindExpense}).
		Select("SUM(amount)").
		Scan(&expense).Error
	if err != nil {
		return err
	}

	balance := a.InitialBalance.Add(income.Decimal).Sub(expense.Decimal)
	return db.Model(a).Select("CurrentBalance").Updates(Account{CurrentBalance: balance}).Error
}
