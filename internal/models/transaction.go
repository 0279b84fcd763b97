package models

import (
	"fmt"
	"strings"

	"github.com/cashfolio/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionKind determines whether a transaction adds to or subtracts from
// the account balance.
type TransactionKind string

const (
	TransactionKindIncome  TransactionKind = "income"
	TransactionKindExpense TransactionKind = "expense"
)

// Transaction represents a single income or expense booking on an account.
type Transaction struct {
	DefaultModel
	UserID     uuid.UUID `gorm:"index"`
	Account    Account   `json:"-"`
	AccountID  uuid.UUID `gorm:"index"`
	Category   Category  `json:"-"`
	CategoryID uuid.UUID `gorm:"index"`

	// CashFlowID is set when the transaction is a line of a cash flow batch.
	CashFlowID *uuid.UUID `gorm:"index"`

	Kind      TransactionKind
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,2);check:amount_not_negative,amount >= 0"`
	Date      types.Date
	Reference string
	Note      string

	// Attachment is the opaque storage path of an uploaded receipt.
	Attachment string
}

// Owner returns the user the transaction belongs to.
func (t Transaction) Owner() uuid.UUID {
	return t.UserID
}

// BeforeSave validates the transaction and trims whitespace from all strings.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Reference = strings.TrimSpace(t.Reference)
	t.Note = strings.TrimSpace(t.Note)

	if t.Kind != TransactionKindIncome && t.Kind != TransactionKindExpense {
		return fmt.Errorf("%w: %s", ErrTransactionKindInvalid, t.Kind)
	}

	if t.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if t.Date.IsZero() {
		return ErrTransactionDateRequired
	}

	// Time components are irrelevant for bookings, truncate them so that
	// date comparisons behave consistently.
	t.Date = types.DateOf(t.Date.Time())

	return nil
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	return t.checkIntegrity(tx)
}

// BeforeUpdate verifies the state of the transaction before committing an
// update to the database.
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Transaction)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("CategoryID") || tx.Statement.Changed("Kind") {
		return (&toSave).checkIntegrity(tx)
	}

	return nil
}

// checkIntegrity verifies that the referenced category exists and matches the
// transaction kind.
func (t *Transaction) checkIntegrity(tx *gorm.DB) error {
	var category Category
	err := tx.First(&category, t.CategoryID).Error
	if err != nil {
		return err
	}

	if string(category.Kind) != string(t.Kind) {
		return fmt.Errorf("%w: the category %q is for %s", ErrCategoryKindMismatch, category.Name, category.Kind)
	}

	return nil
}

// Effect returns the signed impact of the transaction on its account balance.
func (t Transaction) Effect() decimal.Decimal {
	if t.Kind == TransactionKindExpense {
		return t.Amount.Neg()
	}

	return t.Amount
}
