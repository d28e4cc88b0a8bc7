package v1_test

import (
	"net/http"

	v1 "github.com/pennyflow/backend/internal/controllers/v1"
	"github.com/pennyflow/backend/internal/test"
)

func (suite *TestSuiteStandard) TestV1Root() {
	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.RootResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Equal("/v1/weekly-reports", response.Links.WeeklyReports)
	suite.Assert().Equal("/v1/goals", response.Links.Goals)
	suite.Assert().Equal("/v1/import", response.Links.Import)
}

func (suite *TestSuiteStandard) TestV1RootOptions() {
	recorder := test.Request(suite.T(), suite.router, http.MethodOptions, "/v1", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET", recorder.Header().Get("allow"))
}
