package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryKind determines whether a category groups income or expenses.
type CategoryKind string

const (
	CategoryKindIncome  CategoryKind = "income"
	CategoryKindExpense CategoryKind = "expense"
)

// Category groups transactions of a single kind, e.g. "Salary" or "Groceries".
type Category struct {
	DefaultModel
	UserID   uuid.UUID    `gorm:"index;uniqueIndex:category_name_kind_user_id"`
	Name     string       `gorm:"uniqueIndex:category_name_kind_user_id"`
	Kind     CategoryKind `gorm:"uniqueIndex:category_name_kind_user_id"`
	Color    string
	Icon     string
	Note     string
	Archived bool
}

// BeforeSave trims whitespace from all strings and verifies the kind.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Color = strings.TrimSpace(c.Color)
	c.Icon = strings.TrimSpace(c.Icon)
	c.Note = strings.TrimSpace(c.Note)

	if c.Kind != CategoryKindIncome && c.Kind != CategoryKindExpense {
		return fmt.Errorf("%w: %s", ErrCategoryKindInvalid, c.Kind)
	}

	return nil
}

// Owner returns the user the category belongs to.
func (c Category) Owner() uuid.UUID {
	return c.UserID
}

// BeforeDelete blocks deletion while transactions or budget items still
// reference the category.
func (c *Category) BeforeDelete(tx *gorm.DB) error {
	var count int64

	err := tx.Model(&Transaction{}).Where(&Transaction{CategoryID: c.ID}).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d transactions reference it", ErrCategoryInUse, count)
	}

	err = tx.Model(&BudgetItem{}).Where(&BudgetItem{CategoryID: c.ID}).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d budget items reference it", ErrCategoryInUse, count)
	}

	return nil
}
