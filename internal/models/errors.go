package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrNotOwner         = errors.New("you are not allowed to access this resource")
)

// Transaction and cash flow errors
var (
	ErrAmountNegative          = errors.New("the amount of a transaction must not be negative")
	ErrTransactionKindInvalid  = errors.New("the transaction kind must be income or expense")
	ErrCashFlowNoTransactions  = errors.New("a cash flow needs at least one transaction")
	ErrTransactionDateRequired = errors.New("the transaction date must be set")
	ErrCategoryKindMismatch    = errors.New("the transaction kind does not match the kind of its category")
)

// Account errors
var ErrAccountNameNotUnique = errors.New("the account name must be unique for the user")

// Category errors
var (
	ErrCategoryKindInvalid   = errors.New("the category kind must be income or expense")
	ErrCategoryInUse         = errors.New("the category cannot be deleted since it is still used by transactions")
	ErrCategoryNameNotUnique = errors.New("the category name must be unique per kind for the user")
)

// Budget errors
var (
	ErrBudgetPeriodInvalid   = errors.New("the budget period type must be monthly, quarterly or yearly")
	ErrBudgetEndBeforeStart  = errors.New("the budget end date must not be before its start date")
	ErrBudgetNoItems         = errors.New("a budget needs at least one budget item")
	ErrPlannedAmountNegative = errors.New("the planned amount of a budget item must not be negative")
	ErrBudgetItemWrongBudget = errors.New("the budget item does not belong to the budget being updated")
)
