package models

import (
	"github.com/google/uuid"
	"github.com/pennyflow/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a weekly spending limit for one target.
//
// The target is exactly one of a category, a savings goal, or an
// uncategorized group keyed by normalized description. A budget that tracks
// one specific recurring bill additionally references the recurring
// transaction.
type Budget struct {
	DefaultModel
	WeeklyLimit            decimal.Decimal `json:"weeklyLimit" gorm:"type:DECIMAL(20,8)"`
	PeriodStart            types.Week      `json:"periodStart"`
	CategoryID             *uuid.UUID      `json:"categoryId"`
	Category               *Category       `json:"-"`
	GoalID                 *uuid.UUID      `json:"goalId"`
	Goal                   *Goal           `json:"-"`
	UncategorizedKey       *string         `json:"uncategorizedKey"`
	RecurringTransactionID *uuid.UUID      `json:"recurringTransactionId"`
}

// BeforeSave checks that exactly one target discriminator is set and that
// the limit is not negative.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	targets := 0
	if b.CategoryID != nil {
		targets++
	}
	if b.GoalID != nil {
		targets++
	}
	if b.UncategorizedKey != nil {
		targets++
	}

	if targets != 1 {
		return ErrBudgetTargetInvalid
	}

	if b.WeeklyLimit.IsNegative() {
		return ErrBudgetLimitNegative
	}

	return nil
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	_ = b.DefaultModel.BeforeCreate(tx)

	if b.RecurringTransactionID != nil {
		err := tx.First(&RecurringTransaction{}, "id = ?", *b.RecurringTransactionID).Error
		if err != nil {
			return ErrBudgetRecurringInvalid
		}
	}

	return nil
}
