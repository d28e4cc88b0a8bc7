package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType describes the direction of money for a transaction.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Transaction represents a single synced bank transaction.
//
// Transactions are immutable after the sync, except for the category
// assignment and the Excluded flag. Excluded transactions are invisible
// to every analytics computation.
type Transaction struct {
	DefaultModel
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"` // Signed: income positive, expenses negative
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	CategoryID  *uuid.UUID      `json:"categoryId"`
	Category    *Category       `json:"-"`
	Excluded    bool            `json:"excluded"`
	ImportHash  string          `json:"-"` // Fingerprint of the source line for imported transactions, used to detect duplicates
}

// BeforeSave normalizes the date to UTC and validates the type.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	t.Description = strings.TrimSpace(t.Description)

	switch t.Type {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
	default:
		return ErrTransactionTypeInvalid
	}

	return nil
}

// BeforeCreate runs uncategorized transactions through the match rules so
// that transactions arriving from a bank sync get a category without the
// user assigning one by hand.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	if t.CategoryID != nil || t.Description == "" {
		return nil
	}

	id, err := matchCategory(tx, t.Description)
	if err != nil {
		return err
	}

	if id != nil {
		t.CategoryID = id
		return adjustUsageCount(tx, *id, 1)
	}

	return nil
}

// AfterFind updates the timestamps and the date to use UTC as
// timezone, not +0000.
func (t *Transaction) AfterFind(_ *gorm.DB) (err error) {
	t.Date = t.Date.In(time.UTC)
	return nil
}

// AssignCategory sets the category of a transaction and keeps the usage
// counts of the affected categories in sync. Passing nil removes the
// category assignment.
//
// The counter updates and the transaction update happen in one database
// transaction so that a failure leaves no partial state.
func AssignCategory(db *gorm.DB, t *Transaction, categoryID *uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if t.CategoryID != nil {
			if err := adjustUsageCount(tx, *t.CategoryID, -1); err != nil {
				return err
			}
		}

		if categoryID != nil {
			if err := tx.First(&Category{}, "id = ?", *categoryID).Error; err != nil {
				return err
			}

			if err := adjustUsageCount(tx, *categoryID, 1); err != nil {
				return err
			}
		}

		return tx.Model(t).Select("CategoryID").Updates(Transaction{CategoryID: categoryID}).Error
	})
}
