package models_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pennyflow/backend/internal/models"
)

func (suite *TestSuiteStandard) TestTransactionsInRange() {
	from := time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)

	_ = suite.createTestTransaction(expenseOn(from, 10))
	_ = suite.createTestTransaction(expenseOn(from.AddDate(0, 0, 6), 20))

	// Not part of the result: the window end is exclusive
	_ = suite.createTestTransaction(expenseOn(to, 30))

	// Not part of the result: before the window
	_ = suite.createTestTransaction(expenseOn(from.AddDate(0, 0, -1), 40))

	// Not part of the result: excluded
	excluded := expenseOn(from, 50)
	excluded.Excluded = true
	_ = suite.createTestTransaction(excluded)

	// Not part of the result: wrong type
	_ = suite.createTestTransaction(models.Transaction{
		Date:   from,
		Amount: decimal.NewFromFloat(100),
		Type:   models.TransactionTypeIncome,
	})

	transactions, err := models.TransactionsInRange(models.DB, models.TransactionTypeExpense, from, to)
	suite.Require().Nil(err)
	suite.Require().Len(transactions, 2)

	// Ordered by date
	suite.Assert().True(transactions[0].Date.Before(transactions[1].Date))
}

func (suite *TestSuiteStandard) TestTransactionDateRange() {
	_, _, ok, err := models.TransactionDateRange(models.DB)
	suite.Require().Nil(err)
	suite.Assert().False(ok, "an empty store must not report a date range")

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	_ = suite.createTestTransaction(expenseOn(first, 10))
	_ = suite.createTestTransaction(expenseOn(last, 10))

	from, to, ok, err := models.TransactionDateRange(models.DB)
	suite.Require().Nil(err)
	suite.Require().True(ok)
	suite.Assert().True(from.Equal(first))
	suite.Assert().True(to.Equal(last))
}

func (suite *TestSuiteStandard) TestIncomeSum() {
	from := time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)

	_ = suite.createTestTransaction(models.Transaction{
		Date:   from,
		Amount: decimal.NewFromFloat(1500),
		Type:   models.TransactionTypeIncome,
	})
	_ = suite.createTestTransaction(models.Transaction{
		Date:   from.AddDate(0, 0, 3),
		Amount: decimal.NewFromFloat(500),
		Type:   models.TransactionTypeIncome,
	})

	// Expenses do not count as income
	_ = suite.createTestTransaction(expenseOn(from, 100))

	sum, err := models.IncomeSum(models.DB, from, to)
	suite.Require().Nil(err)
	suite.Assert().True(sum.Equal(decimal.NewFromFloat(2000)), "income sum is %s", sum)

	// An empty window sums to zero
	sum, err = models.IncomeSum(models.DB, to, to.AddDate(0, 0, 7))
	suite.Require().Nil(err)
	suite.Assert().True(sum.IsZero())
}

func (suite *TestSuiteStandard) TestExpenseSumsByCategory() {
	from := time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)

	groceries := suite.createTestCategory(models.Category{Name: "Groceries"})
	household := suite.createTestCategory(models.Category{Name: "Household"})

	first := expenseOn(from, 30)
	first.CategoryID = &groceries.ID
	_ = suite.createTestTransaction(first)

	second := expenseOn(from.AddDate(0, 0, 2), 40)
	second.CategoryID = &groceries.ID
	_ = suite.createTestTransaction(second)

	third := expenseOn(from, 25)
	third.CategoryID = &household.ID
	_ = suite.createTestTransaction(third)

	// Uncategorized spend is not part of the result
	_ = suite.createTestTransaction(expenseOn(from, 99))

	sums, err := models.ExpenseSumsByCategory(models.DB, from, to)
	suite.Require().Nil(err)
	suite.Require().Len(sums, 2)

	// Sums are the absolute spend
	suite.Assert().True(sums[groceries.ID].Equal(decimal.NewFromFloat(70)), "groceries sum is %s", sums[groceries.ID])
	suite.Assert().True(sums[household.ID].Equal(decimal.NewFromFloat(25)), "household sum is %s", sums[household.ID])
}
