package v1_test

import (
	"net/http"

	"github.com/pennyflow/backend/internal/models"
	"github.com/pennyflow/backend/internal/test"
)

func (suite *TestSuiteStandard) TestRecurringTransactionsEmpty() {
	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/recurring-transactions", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var recurring []models.RecurringTransaction
	test.DecodeResponse(suite.T(), &recorder, &recurring)
	suite.Assert().Empty(recurring)
}

func (suite *TestSuiteStandard) TestRecurringTransactionsDetect() {
	suite.expense(day(2024, 1, 1), 15, "Netflix", nil)
	suite.expense(day(2024, 1, 8), 15, "Netflix", nil)
	suite.expense(day(2024, 1, 15), 15, "Netflix", nil)
	suite.expense(day(2024, 1, 22), 15, "Netflix", nil)

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/recurring-transactions/detect", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var detected []models.RecurringTransaction
	test.DecodeResponse(suite.T(), &recorder, &detected)
	suite.Require().Len(detected, 1)
	suite.Assert().Equal("netflix", detected[0].Description)

	// The list endpoint returns the stored rows
	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/recurring-transactions", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var listed []models.RecurringTransaction
	test.DecodeResponse(suite.T(), &recorder, &listed)
	suite.Require().Len(listed, 1)
	suite.Assert().Equal(detected[0].ID, listed[0].ID)
}
