package models

import (
	"fmt"
	"strings"

	"github.com/cashfolio/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetPeriodType is the calendar period a budget covers.
type BudgetPeriodType string

const (
	BudgetPeriodMonthly   BudgetPeriodType = "monthly"
	BudgetPeriodQuarterly BudgetPeriodType = "quarterly"
	BudgetPeriodYearly    BudgetPeriodType = "yearly"
)

// Budget represents a spending plan for a date range with per-category items.
type Budget struct {
	DefaultModel
	UserID     uuid.UUID `gorm:"index"`
	Name       string
	PeriodType BudgetPeriodType
	StartDate  types.Date
	EndDate    types.Date

	// TotalAmount is the sum of the planned amounts of all items. It is
	// recomputed whenever items change.
	TotalAmount decimal.Decimal `gorm:"type:DECIMAL(20,2)"`

	Note     string
	Archived bool

	Items []BudgetItem `json:"-"`
}

// BudgetItem plans an amount for a single category within a budget.
type BudgetItem struct {
	DefaultModel
	Budget        Budget          `json:"-"`
	BudgetID      uuid.UUID       `gorm:"index"`
	Category      Category        `json:"-"`
	CategoryID    uuid.UUID       `gorm:"index"`
	PlannedAmount decimal.Decimal `gorm:"type:DECIMAL(20,2);check:planned_amount_not_negative,planned_amount >= 0"`

	// ActualAmount is the cached sum of matching transactions. It is
	// refreshed by RefreshActuals before the budget is read.
	ActualAmount decimal.Decimal `gorm:"type:DECIMAL(20,2)"`

	Notes string
}

// BeforeSave validates the budget and trims whitespace from all strings.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Note = strings.TrimSpace(b.Note)

	if b.PeriodType != BudgetPeriodMonthly && b.PeriodType != BudgetPeriodQuarterly && b.PeriodType != BudgetPeriodYearly {
		return fmt.Errorf("%w: %s", ErrBudgetPeriodInvalid, b.PeriodType)
	}

	if b.EndDate.Before(b.StartDate) {
		return ErrBudgetEndBeforeStart
	}

	return nil
}

// Owner returns the user the budget belongs to.
func (b Budget) Owner() uuid.UUID {
	return b.UserID
}

// BeforeSave validates the budget item.
func (i *BudgetItem) BeforeSave(_ *gorm.DB) error {
	i.Notes = strings.TrimSpace(i.Notes)

	if i.PlannedAmount.IsNegative() {
		return ErrPlannedAmountNegative
	}

	return nil
}

func (i *BudgetItem) BeforeCreate(tx *gorm.DB) error {
	_ = i.DefaultModel.BeforeCreate(tx)

	return tx.First(&Category{}, i.CategoryID).Error
}

// PercentageUsed returns how much of the planned amount has been used, in
// percent. The value is clamped to [0, 100]; an unplanned item reports 0.
func (i BudgetItem) PercentageUsed() decimal.Decimal {
	if !i.PlannedAmount.IsPositive() {
		return decimal.Zero
	}

	percentage := i.ActualAmount.Div(i.PlannedAmount).Mul(decimal.NewFromInt(100)).Round(2)
	if percentage.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.NewFromInt(100)
	}

	return percentage
}

// RemainingAmount returns how much of the planned amount is left. Overspent
// items report 0, never a negative amount.
func (i BudgetItem) RemainingAmount() decimal.Decimal {
	remaining := i.PlannedAmount.Sub(i.ActualAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}

	return remaining
}

// TotalPlanned sums the planned amounts of all loaded items.
func (b Budget) TotalPlanned() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range b.Items {
		sum = sum.Add(item.PlannedAmount)
	}

	return sum
}

// TotalActual sums the actual amounts of all loaded items.
func (b Budget) TotalActual() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range b.Items {
		sum = sum.Add(item.ActualAmount)
	}

	return sum
}

// ProgressPercentage returns how far the budget period has progressed in
// time, in percent with two decimal places. Both the start and the end day
// count as part of the period.
func (b Budget) ProgressPercentage(today types.Date) decimal.Decimal {
	if today.Before(b.StartDate) {
		return decimal.Zero
	}

	if today.After(b.EndDate) {
		return decimal.NewFromInt(100)
	}

	total := b.StartDate.DaysUntil(b.EndDate)
	elapsed := b.StartDate.DaysUntil(today)

	return decimal.NewFromInt(int64(elapsed)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// DaysRemaining returns the number of days from today until the budget ends.
// The current day does not count as remaining; a budget ending today has 0
// days remaining.
func (b Budget) DaysRemaining(today types.Date) int {
	if today.After(b.EndDate) {
		return 0
	}

	return today.DaysUntil(b.EndDate) - 1
}

// LoadItems loads the items of the budget, stably ordered by creation.
func (b *Budget) LoadItems(db *gorm.DB) error {
	return db.
		Where(BudgetItem{BudgetID: b.ID}).
		Order("datetime(created_at) ASC").
		Find(&b.Items).Error
}

// RefreshActuals recalculates the cached actual amount of every item from
// the owner's transactions with the item's category inside the budget
// period and writes the values back.
func (b *Budget) RefreshActuals(db *gorm.DB) error {
	if b.Items == nil {
		err := b.LoadItems(db)
		if err != nil {
			return err
		}
	}

	for i := range b.Items {
		var sum decimal.NullDecimal

		err := db.Model(&Transaction{}).
			Where(&Transaction{UserID: b.UserID, CategoryID: b.Items[i].CategoryID}).
			Where("date(transactions.date) >= date(?) AND date(transactions.date) <= date(?)", b.StartDate, b.EndDate).
			Select("SUM(amount)").
			Scan(&sum).Error
		if err != nil {
			return err
		}

		b.Items[i].ActualAmount = sum.Decimal

		err = db.Model(&b.Items[i]).Select("ActualAmount").Updates(BudgetItem{ActualAmount: sum.Decimal}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// CreateBudgetWithItems creates a budget together with its items in one
// transaction and sets the total amount from the items.
func CreateBudgetWithItems(db *gorm.DB, budget *Budget, items []BudgetItem) error {
	if len(items) == 0 {
		return ErrBudgetNoItems
	}

	return db.Transaction(func(tx *gorm.DB) error {
		budget.TotalAmount = plannedSum(items)

		err := tx.Create(budget).Error
		if err != nil {
			return err
		}

		for i := range items {
			items[i].BudgetID = budget.ID

			err := tx.Create(&items[i]).Error
			if err != nil {
				return err
			}
		}

		budget.Items = items
		return nil
	})
}

// UpdateBudgetWithItems updates the budget header and reconciles its items
// with the payload: items with an ID are updated, items without an ID are
// created, and existing items missing from the payload are deleted.
func UpdateBudgetWithItems(db *gorm.DB, budget *Budget, data Budget, fields []any, items []BudgetItem) error {
	if len(items) == 0 {
		return ErrBudgetNoItems
	}

	return db.Transaction(func(tx *gorm.DB) error {
		data.TotalAmount = plannedSum(items)
		fields = append(fields, "TotalAmount")

		err := tx.Model(budget).Select("", fields...).Updates(data).Error
		if err != nil {
			return err
		}

		err = tx.First(budget, budget.ID).Error
		if err != nil {
			return err
		}

		var existing []BudgetItem
		err = tx.Where(BudgetItem{BudgetID: budget.ID}).Find(&existing).Error
		if err != nil {
			return err
		}

		kept := make(map[uuid.UUID]bool, len(items))
		for i := range items {
			if items[i].ID == uuid.Nil {
				items[i].BudgetID = budget.ID

				err := tx.Create(&items[i]).Error
				if err != nil {
					return err
				}

				kept[items[i].ID] = true
				continue
			}

			var item BudgetItem
			err := tx.First(&item, items[i].ID).Error
			if err != nil {
				return err
			}

			if item.BudgetID != budget.ID {
				return ErrBudgetItemWrongBudget
			}

			err = tx.Model(&item).
				Select("CategoryID", "PlannedAmount", "Notes").
				Updates(BudgetItem{
					CategoryID:    items[i].CategoryID,
					PlannedAmount: items[i].PlannedAmount,
					Notes:         items[i].Notes,
				}).Error
			if err != nil {
				return err
			}

			kept[item.ID] = true
		}

		for i := range existing {
			if kept[existing[i].ID] {
				continue
			}

			err := tx.Delete(&existing[i]).Error
			if err != nil {
				return err
			}
		}

		return budget.LoadItems(tx)
	})
}

func plannedSum(items []BudgetItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.PlannedAmount)
	}

	return sum
}
