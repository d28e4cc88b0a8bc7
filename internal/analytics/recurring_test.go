package analytics_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pennyflow/backend/internal/models"
)

func (suite *TestSuiteStandard) TestDetectRecurringWeekly() {
	// Four charges, seven days apart, spelling and spacing vary
	suite.expense(day(2024, 1, 1), 15, "Netflix", nil)
	suite.expense(day(2024, 1, 8), 15, "NETFLIX", nil)
	suite.expense(day(2024, 1, 15), 15, "netflix ", nil)
	suite.expense(day(2024, 1, 22), 15, " Netflix", nil)

	detected, err := suite.service().DetectRecurring()
	suite.Require().Nil(err)
	suite.Require().Len(detected, 1)

	suite.Assert().Equal("netflix", detected[0].Description)
	suite.Assert().Equal(models.RecurringFrequencyWeekly, detected[0].Frequency)
	suite.Assert().True(detected[0].Amount.Equal(decimal.NewFromFloat(15)), "amount is %s", detected[0].Amount)
	suite.Assert().True(detected[0].NextDueDate.Equal(day(2024, 1, 29)), "next due date is %s", detected[0].NextDueDate)
}

func (suite *TestSuiteStandard) TestDetectRecurringMonthly() {
	// Calendar months are not equally long, gaps of 29 and 30 days still
	// count as monthly
	suite.expense(day(2024, 1, 5), 49.99, "Rent Insurance", nil)
	suite.expense(day(2024, 2, 3), 49.99, "Rent Insurance", nil)
	suite.expense(day(2024, 3, 4), 49.99, "Rent Insurance", nil)

	detected, err := suite.service().DetectRecurring()
	suite.Require().Nil(err)
	suite.Require().Len(detected, 1)

	suite.Assert().Equal(models.RecurringFrequencyMonthly, detected[0].Frequency)
	suite.Assert().True(detected[0].NextDueDate.Equal(day(2024, 4, 4)), "next due date is %s", detected[0].NextDueDate)
}

func (suite *TestSuiteStandard) TestDetectRecurringAmountTolerance() {
	// 15.50 is within 5% of 15.00, so a small price wobble does not break
	// the cluster
	suite.expense(day(2024, 1, 1), 15.00, "Spotify", nil)
	suite.expense(day(2024, 1, 8), 15.50, "Spotify", nil)
	suite.expense(day(2024, 1, 15), 14.50, "Spotify", nil)
	suite.expense(day(2024, 1, 22), 15.25, "Spotify", nil)

	detected, err := suite.service().DetectRecurring()
	suite.Require().Nil(err)
	suite.Require().Len(detected, 1)

	// The amount is the mean of the cluster members
	suite.Assert().True(detected[0].Amount.Equal(decimal.NewFromFloat(15.06)), "amount is %s", detected[0].Amount)
}

func (suite *TestSuiteStandard) TestDetectRecurringRejectsIrregularGaps() {
	tests := []struct {
		name  string
		dates []time.Time
	}{
		// 40 day gaps are neither weekly nor monthly
		{"gap too long", []time.Time{day(2024, 1, 1), day(2024, 2, 10), day(2024, 3, 21)}},
		// The average fits the weekly band, but one gap strays too far
		{"unsteady cadence", []time.Time{day(2024, 1, 1), day(2024, 1, 6), day(2024, 1, 11), day(2024, 1, 25)}},
		// Two charges are not enough evidence for a monthly bill
		{"too few occurrences", []time.Time{day(2024, 1, 1), day(2024, 1, 31)}},
		// A weekly cadence needs four occurrences
		{"too few weekly occurrences", []time.Time{day(2024, 1, 1), day(2024, 1, 8), day(2024, 1, 15)}},
	}

	// Distinct descriptions keep the scenarios in separate groups
	for _, tt := range tests {
		for _, date := range tt.dates {
			suite.expense(date, 20, tt.name, nil)
		}
	}

	detected, err := suite.service().DetectRecurring()
	suite.Require().Nil(err)
	suite.Assert().Empty(detected)
}

func (suite *TestSuiteStandard) TestDetectRecurringIgnoresZeroAmounts() {
	for week := 0; week < 5; week++ {
		suite.expense(day(2024, 1, 1).AddDate(0, 0, 7*week), 0, "Zero Authorization", nil)
	}

	detected, err := suite.service().DetectRecurring()
	suite.Require().Nil(err)
	suite.Assert().Empty(detected)
}

func (suite *TestSuiteStandard) TestDetectRecurringGroupsByCategory() {
	utilities := suite.createTestCategory(models.Category{Name: "Utilities"})

	// Different descriptions, same category and amount
	suite.expense(day(2024, 1, 2), 80, "Stadtwerke Abschlag 01", &utilities.ID)
	suite.expense(day(2024, 2, 1), 80, "Stadtwerke Abschlag 02", &utilities.ID)
	suite.expense(day(2024, 3, 2), 80, "Stadtwerke Abschlag 03", &utilities.ID)

	detected, err := suite.service().DetectRecurring()
	suite.Require().Nil(err)
	suite.Require().Len(detected, 1)

	suite.Require().NotNil(detected[0].CategoryID)
	suite.Assert().Equal(utilities.ID, *detected[0].CategoryID)
	suite.Assert().Equal(models.RecurringFrequencyMonthly, detected[0].Frequency)
}

func (suite *TestSuiteStandard) TestDetectRecurringIdempotent() {
	suite.expense(day(2024, 1, 1), 15, "Netflix", nil)
	suite.expense(day(2024, 1, 8), 15, "Netflix", nil)
	suite.expense(day(2024, 1, 15), 15, "Netflix", nil)
	suite.expense(day(2024, 1, 22), 15, "Netflix", nil)

	first, err := suite.service().DetectRecurring()
	suite.Require().Nil(err)
	suite.Require().Len(first, 1)

	second, err := suite.service().DetectRecurring()
	suite.Require().Nil(err)
	suite.Require().Len(second, 1)

	// The row is updated in place, not replaced
	suite.Assert().Equal(first[0].ID, second[0].ID)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.RecurringTransaction{}).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestDetectRecurringUpdatesExistingRow() {
	existing := suite.createTestRecurringTransaction(models.RecurringTransaction{
		Description: "netflix",
		Frequency:   models.RecurringFrequencyWeekly,
		Amount:      decimal.NewFromFloat(12.99),
	})

	suite.expense(day(2024, 1, 1), 15, "Netflix", nil)
	suite.expense(day(2024, 1, 8), 15, "Netflix", nil)
	suite.expense(day(2024, 1, 15), 15, "Netflix", nil)
	suite.expense(day(2024, 1, 22), 15, "Netflix", nil)

	detected, err := suite.service().DetectRecurring()
	suite.Require().Nil(err)
	suite.Require().Len(detected, 1)

	suite.Assert().Equal(existing.ID, detected[0].ID)
	suite.Assert().True(detected[0].Amount.Equal(decimal.NewFromFloat(15)))
}

func (suite *TestSuiteStandard) TestDetectRecurringOrderIndependent() {
	// Insert the same charges in a scrambled order
	dates := []time.Time{day(2024, 1, 15), day(2024, 1, 1), day(2024, 1, 22), day(2024, 1, 8)}
	for _, date := range dates {
		suite.expense(date, 15, "Netflix", nil)
	}

	detected, err := suite.service().DetectRecurring()
	suite.Require().Nil(err)
	suite.Require().Len(detected, 1)

	suite.Assert().Equal(models.RecurringFrequencyWeekly, detected[0].Frequency)
	suite.Assert().True(detected[0].NextDueDate.Equal(day(2024, 1, 29)))
}
