// Package analytics implements the weekly financial analytics engine: the
// recurring transaction detector, the budget suggestion engine, the weekly
// report generator, the goal progress ledger and the budget comparison
// service.
//
// All computation is synchronous and single-pass per invocation. Every
// write that spans more than one logical update runs inside one database
// transaction, so re-invocation for an already processed week is safe to
// repeat.
package analytics

import (
	"errors"

	"github.com/pennyflow/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Config holds the tunables of the analytics engine.
type Config struct {
	// AmountTolerance is the relative tolerance for two amounts to be
	// considered the same recurring charge.
	AmountTolerance decimal.Decimal

	// MinWeeklySuggestion is the smallest weekly amount worth suggesting a
	// budget for. Categories with a recurring transaction bypass it.
	MinWeeklySuggestion decimal.Decimal

	// UncategorizedRecurringBypass lets uncategorized suggestion groups
	// bypass MinWeeklySuggestion when they are linked to a recurring
	// transaction, like categories always do.
	UncategorizedRecurringBypass bool

	// AutoCreditGoals enables the weekly automatic crediting of goals with
	// leftover cash.
	AutoCreditGoals bool

	// Epsilon suppresses near-zero remainders in monetary comparisons.
	Epsilon decimal.Decimal
}

// DefaultConfig returns the configuration used in production.
func DefaultConfig() Config {
	return Config{
		AmountTolerance:              decimal.NewFromFloat(0.05),
		MinWeeklySuggestion:          decimal.NewFromInt(5),
		UncategorizedRecurringBypass: false,
		AutoCreditGoals:              true,
		Epsilon:                      decimal.NewFromFloat(0.01),
	}
}

// Service runs the analytics computations against one store.
type Service struct {
	db     *gorm.DB
	config Config
}

// NewService returns a Service working on the given database handle.
func NewService(db *gorm.DB, config Config) *Service {
	return &Service{
		db:     db,
		config: config,
	}
}

// errorIsNotFound reports whether the error means "no such row", either as
// the raw gorm error or already rewritten by the query callback.
func errorIsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, models.ErrResourceNotFound)
}
