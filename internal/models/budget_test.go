package models_test

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pennyflow/backend/internal/models"
	"github.com/pennyflow/backend/internal/types"
)

func (suite *TestSuiteStandard) TestBudgetExactlyOneTarget() {
	category := suite.createTestCategory(models.Category{})
	goal := suite.createTestGoal(models.Goal{})
	key := "netflix"

	tests := []struct {
		name             string
		categoryID       *uuid.UUID
		goalID           *uuid.UUID
		uncategorizedKey *string
		err              error
	}{
		{"category", &category.ID, nil, nil, nil},
		{"goal", nil, &goal.ID, nil, nil},
		{"uncategorized group", nil, nil, &key, nil},
		{"no target", nil, nil, nil, models.ErrBudgetTargetInvalid},
		{"two targets", &category.ID, &goal.ID, nil, models.ErrBudgetTargetInvalid},
		{"all targets", &category.ID, &goal.ID, &key, models.ErrBudgetTargetInvalid},
	}

	for _, tt := range tests {
		budget := models.Budget{
			WeeklyLimit:      decimal.NewFromFloat(50),
			PeriodStart:      types.NewWeek(2024, 1, 29),
			CategoryID:       tt.categoryID,
			GoalID:           tt.goalID,
			UncategorizedKey: tt.uncategorizedKey,
		}

		err := models.DB.Create(&budget).Error
		suite.Assert().ErrorIs(err, tt.err, "wrong error for %q", tt.name)
	}
}

func (suite *TestSuiteStandard) TestBudgetNegativeLimit() {
	category := suite.createTestCategory(models.Category{})

	budget := models.Budget{
		WeeklyLimit: decimal.NewFromFloat(-1),
		CategoryID:  &category.ID,
	}

	err := models.DB.Create(&budget).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetLimitNegative)
}

func (suite *TestSuiteStandard) TestBudgetRecurringReference() {
	category := suite.createTestCategory(models.Category{})
	recurring := suite.createTestRecurringTransaction(models.RecurringTransaction{})

	_ = suite.createTestBudget(models.Budget{
		WeeklyLimit:            decimal.NewFromFloat(15),
		CategoryID:             &category.ID,
		RecurringTransactionID: &recurring.ID,
	})

	// A reference to a recurring transaction that does not exist is rejected
	id := uuid.New()
	err := models.DB.Create(&models.Budget{
		WeeklyLimit:            decimal.NewFromFloat(15),
		CategoryID:             &category.ID,
		RecurringTransactionID: &id,
	}).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetRecurringInvalid)
}
