package v1_test

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/pennyflow/backend/internal/models"
	"github.com/pennyflow/backend/internal/test"
	"github.com/pennyflow/backend/internal/types"
)

func (suite *TestSuiteStandard) TestWeeklyReportsEmptyHistory() {
	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/weekly-reports", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var reports []models.WeeklyReport
	test.DecodeResponse(suite.T(), &recorder, &reports)
	suite.Assert().Empty(reports)
}

func (suite *TestSuiteStandard) TestWeeklyReportPreview() {
	groceries := suite.createTestCategory(models.Category{Name: "Groceries"})
	_ = suite.createTestBudget(models.Budget{
		WeeklyLimit: decimal.NewFromFloat(50),
		PeriodStart: types.NewWeek(2024, 1, 29),
		CategoryID:  &groceries.ID,
	})

	suite.income(day(2024, 1, 29), 200)
	suite.expense(day(2024, 1, 30), 70, "REWE", &groceries.ID)

	// Any day of the week works, it snaps to the Monday
	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/weekly-reports/2024-01-31", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var report models.WeeklyReport
	test.DecodeResponse(suite.T(), &recorder, &report)

	suite.Assert().Equal("2024-01-29", report.Week.String())
	suite.Assert().True(report.LeftToSpend.Equal(decimal.NewFromFloat(130)), "left to spend is %s", report.LeftToSpend)

	// A preview does not persist anything
	var count int64
	suite.Require().Nil(models.DB.Model(&models.WeeklyReport{}).Count(&count).Error)
	suite.Assert().Zero(count)
}

func (suite *TestSuiteStandard) TestWeeklyReportCommit() {
	suite.income(day(2024, 1, 29), 200)
	suite.expense(day(2024, 1, 30), 30, "Kiosk", nil)

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/weekly-reports/2024-01-29", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.WeeklyReport{}).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)

	// The history returns the persisted report
	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/weekly-reports", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var reports []models.WeeklyReport
	test.DecodeResponse(suite.T(), &recorder, &reports)
	suite.Require().Len(reports, 1)
	suite.Assert().True(reports[0].TotalSpent.Equal(decimal.NewFromFloat(30)))
}

func (suite *TestSuiteStandard) TestWeeklyReportPreviousWeekIncome() {
	suite.income(day(2024, 1, 22), 400)
	suite.income(day(2024, 1, 29), 100)

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/weekly-reports/2024-01-29?income=previous", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var report models.WeeklyReport
	test.DecodeResponse(suite.T(), &recorder, &report)
	suite.Assert().True(report.TotalIncome.Equal(decimal.NewFromFloat(400)), "total income is %s", report.TotalIncome)
}

func (suite *TestSuiteStandard) TestWeeklyReportInvalidWeek() {
	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/weekly-reports/not-a-week", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = test.Request(suite.T(), suite.router, http.MethodPost, "/v1/weekly-reports/not-a-week", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestWeeklyReportOptions() {
	recorder := test.Request(suite.T(), suite.router, http.MethodOptions, "/v1/weekly-reports/2024-01-29", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, POST", recorder.Header().Get("allow"))
}
