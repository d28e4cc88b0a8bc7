package models

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// The functions in this file are the query contract the analytics engine
// consumes from the transaction store. All of them honor the Excluded flag
// and the transaction type and take an explicit database handle so they can
// run inside a caller-controlled transaction.

// TransactionsInRange returns all non-excluded transactions of the given
// type with a date in [from, to).
func TransactionsInRange(db *gorm.DB, txType TransactionType, from, to time.Time) ([]Transaction, error) {
	var transactions []Transaction

	err := db.
		Where("type = ? AND excluded = ? AND date >= ? AND date < ?", txType, false, from.In(time.UTC), to.In(time.UTC)).
		Order("date asc").
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("getting transactions between %s and %s failed: %w", from, to, err)
	}

	return transactions, nil
}

// AllExpenses returns every non-excluded expense transaction.
func AllExpenses(db *gorm.DB) ([]Transaction, error) {
	var transactions []Transaction

	err := db.
		Where("type = ? AND excluded = ?", TransactionTypeExpense, false).
		Order("date asc").
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("getting expense transactions failed: %w", err)
	}

	return transactions, nil
}

// TransactionDateRange returns the earliest and latest date over all
// non-excluded transactions. ok is false when the store has no transactions.
func TransactionDateRange(db *gorm.DB) (from, to time.Time, ok bool, err error) {
	var earliest, latest sql.NullTime

	err = db.Table("transactions").
		Where("excluded = ?", false).
		Select("MIN(date), MAX(date)").
		Row().
		Scan(&earliest, &latest)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("getting transaction date range failed: %w", err)
	}

	if !earliest.Valid || !latest.Valid {
		return time.Time{}, time.Time{}, false, nil
	}

	return earliest.Time.In(time.UTC), latest.Time.In(time.UTC), true, nil
}

// IncomeSum returns the sum of all non-excluded income in [from, to).
func IncomeSum(db *gorm.DB, from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := db.Table("transactions").
		Where("type = ? AND excluded = ? AND date >= ? AND date < ?", TransactionTypeIncome, false, from.In(time.UTC), to.In(time.UTC)).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("getting income sum failed: %w", err)
	}

	return sum.Decimal, nil
}

// ExpenseSumsByCategory returns the absolute expense spend per category in
// [from, to). Transactions without a category are not part of the result,
// they are grouped by normalized description on the caller side.
func ExpenseSumsByCategory(db *gorm.DB, from, to time.Time) (map[uuid.UUID]decimal.Decimal, error) {
	rows, err := db.Table("transactions").
		Where("type = ? AND excluded = ? AND category_id IS NOT NULL AND date >= ? AND date < ?", TransactionTypeExpense, false, from.In(time.UTC), to.In(time.UTC)).
		Select("category_id, SUM(amount)").
		Group("category_id").
		Rows()
	if err != nil {
		return nil, fmt.Errorf("getting expense sums by category failed: %w", err)
	}
	defer rows.Close()

	sums := make(map[uuid.UUID]decimal.Decimal)
	for rows.Next() {
		var id uuid.UUID
		var sum decimal.NullDecimal

		err = rows.Scan(&id, &sum)
		if err != nil {
			return nil, fmt.Errorf("getting expense sums by category failed: %w", err)
		}

		sums[id] = sum.Decimal.Abs()
	}

	return sums, rows.Err()
}
