package models

import (
	"strings"
	"time"

	"github.com/cashfolio/backend/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CashFlow groups multiple transactions that were booked together, e.g. all
// positions on a single receipt.
type CashFlow struct {
	DefaultModel
	UserID    uuid.UUID `gorm:"index"`
	Date      types.Date
	Reference string
	Note      string

	// Attachment is the opaque storage path of an uploaded document.
	Attachment string

	VerifiedByID *uuid.UUID
	VerifiedDate *time.Time

	Transactions []Transaction `json:"-"`
}

// BeforeSave trims whitespace from all strings.
func (c *CashFlow) BeforeSave(_ *gorm.DB) error {
	c.Reference = strings.TrimSpace(c.Reference)
	c.Note = strings.TrimSpace(c.Note)

	if c.Date.IsZero() {
		return ErrTransactionDateRequired
	}

	return nil
}

// Owner returns the user the cash flow belongs to.
func (c CashFlow) Owner() uuid.UUID {
	return c.UserID
}

// Lines returns all transactions of the cash flow.
func (c CashFlow) Lines(db *gorm.DB) ([]Transaction, error) {
	var transactions []Transaction

	err := db.Where(Transaction{CashFlowID: &c.ID}).Find(&transactions).Error
	return transactions, err
}

// CreateCashFlow books a cash flow with all its lines in one transaction.
//
// Every line inherits the owner and, when unset, the date of the cash flow.
func CreateCashFlow(db *gorm.DB, cashFlow *CashFlow, lines []Transaction) error {
	if len(lines) == 0 {
		return ErrCashFlowNoTransactions
	}

	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(cashFlow).Error
		if err != nil {
			return err
		}

		return createLines(tx, cashFlow, lines)
	})
}

// UpdateCashFlow updates the header fields of a cash flow and replaces all
// of its lines with the ones from the payload.
//
// Replacement reverses and deletes every existing line and then books the
// new ones, so account balances stay consistent even when lines move
// between accounts.
func UpdateCashFlow(db *gorm.DB, cashFlow *CashFlow, data CashFlow, fields []any, lines []Transaction) error {
	if len(lines) == 0 {
		return ErrCashFlowNoTransactions
	}

	return db.Transaction(func(tx *gorm.DB) error {
		err := deleteLines(tx, cashFlow)
		if err != nil {
			return err
		}

		err = tx.Model(cashFlow).Select("", fields...).Updates(data).Error
		if err != nil {
			return err
		}

		err = tx.First(cashFlow, cashFlow.ID).Error
		if err != nil {
			return err
		}

		return createLines(tx, cashFlow, lines)
	})
}

// DeleteCashFlow deletes a cash flow and all its lines, reversing their
// effect on the account balances.
func DeleteCashFlow(db *gorm.DB, cashFlow *CashFlow) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := deleteLines(tx, cashFlow)
		if err != nil {
			return err
		}

		return tx.Delete(cashFlow).Error
	})
}

func createLines(tx *gorm.DB, cashFlow *CashFlow, lines []Transaction) error {
	for i := range lines {
		lines[i].UserID = cashFlow.UserID
		lines[i].CashFlowID = &cashFlow.ID

		if lines[i].Date.IsZero() {
			lines[i].Date = cashFlow.Date
		}

		err := CreateTransaction(tx, &lines[i])
		if err != nil {
			return err
		}
	}

	return nil
}

func deleteLines(tx *gorm.DB, cashFlow *CashFlow) error {
	existing, err := cashFlow.Lines(tx)
	if err != nil {
		return err
	}

	for i := range existing {
		err := DeleteTransaction(tx, &existing[i])
		if err != nil {
			return err
		}
	}

	return nil
}
