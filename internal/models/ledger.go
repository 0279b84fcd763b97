package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// This file contains the write operations that keep account balances in sync
// with the transactions booked against them. All of them run in a database
// transaction so that a booking and its balance effect are applied atomically.
//
// Balances are adjusted with a relative UPDATE instead of a read-modify-write
// cycle so that concurrent bookings on the same account cannot lose updates.

// CreateTransaction books a transaction and applies its effect to the account
// balance.
func CreateTransaction(db *gorm.DB, transaction *Transaction) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(transaction).Error
		if err != nil {
			return err
		}

		return applyEffect(tx, transaction.AccountID, transaction.Effect())
	})
}

// UpdateTransaction updates the fields of a transaction and moves its balance
// effect accordingly.
//
// The old effect is reversed on the old account and the new effect applied to
// the new account. This also covers a transaction moving between accounts.
func UpdateTransaction(db *gorm.DB, transaction *Transaction, data Transaction, fields []any) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := applyEffect(tx, transaction.AccountID, transaction.Effect().Neg())
		if err != nil {
			return err
		}

		err = tx.Model(transaction).Select("", fields...).Updates(data).Error
		if err != nil {
			return err
		}

		// Re-read so that the effect is calculated from what was written
		err = tx.First(transaction, transaction.ID).Error
		if err != nil {
			return err
		}

		return applyEffect(tx, transaction.AccountID, transaction.Effect())
	})
}

// DeleteTransaction deletes a transaction and reverses its effect on the
// account balance.
func DeleteTransaction(db *gorm.DB, transaction *Transaction) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Delete(transaction).Error
		if err != nil {
			return err
		}

		return applyEffect(tx, transaction.AccountID, transaction.Effect().Neg())
	})
}

// applyEffect shifts the current balance of an account by a relative amount.
func applyEffect(tx *gorm.DB, accountID uuid.UUID, effect decimal.Decimal) error {
	if effect.IsZero() {
		return nil
	}

	return tx.Model(&Account{}).
		Where("id = ?", accountID).
		Update("current_balance", gorm.Expr("current_balance + ?", effect)).
		Error
}
