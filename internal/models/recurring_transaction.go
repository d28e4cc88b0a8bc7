package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringFrequency is the detected cadence of a recurring transaction.
type RecurringFrequency string

const (
	RecurringFrequencyWeekly  RecurringFrequency = "weekly"
	RecurringFrequencyMonthly RecurringFrequency = "monthly"
)

// RecurringTransaction is a detected recurring bill or subscription.
//
// Rows are upserted by the natural key (Description, Frequency), where
// Description is already normalized by the detector.
type RecurringTransaction struct {
	DefaultModel
	Description string             `json:"description" gorm:"uniqueIndex:recurring_description_frequency"`
	Frequency   RecurringFrequency `json:"frequency" gorm:"uniqueIndex:recurring_description_frequency"`
	Amount      decimal.Decimal    `json:"amount" gorm:"type:DECIMAL(20,8)"` // Mean magnitude of the cluster members
	NextDueDate time.Time          `json:"nextDueDate"`
	CategoryID  *uuid.UUID         `json:"categoryId"`
	Category    *Category          `json:"-"`
}

func (r *RecurringTransaction) BeforeSave(_ *gorm.DB) error {
	switch r.Frequency {
	case RecurringFrequencyWeekly, RecurringFrequencyMonthly:
	default:
		return ErrRecurringFrequencyInvalid
	}

	if r.NextDueDate.IsZero() {
		r.NextDueDate = time.Now().In(time.UTC)
	} else {
		r.NextDueDate = r.NextDueDate.In(time.UTC)
	}

	return nil
}

// AfterFind updates the due date to use UTC as timezone, not +0000.
func (r *RecurringTransaction) AfterFind(_ *gorm.DB) (err error) {
	r.NextDueDate = r.NextDueDate.In(time.UTC)
	return nil
}
