package v1_test

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pennyflow/backend/internal/models"
	"github.com/pennyflow/backend/internal/test"
	"github.com/pennyflow/backend/internal/types"
)

func (suite *TestSuiteStandard) TestGoalContribution() {
	goal := suite.createTestGoal(models.Goal{Amount: decimal.NewFromFloat(100)})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost,
		"/v1/goals/"+goal.ID.String()+"/contributions",
		map[string]any{"amount": 30, "week": "2024-01-29"},
	)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var entry models.GoalProgressLogEntry
	test.DecodeResponse(suite.T(), &recorder, &entry)

	suite.Assert().Equal(models.ProgressStatusManual, entry.Status)
	suite.Assert().True(entry.Amount.Equal(decimal.NewFromFloat(30)))
	suite.Assert().Equal("2024-01-29", entry.Week.String())

	var reloaded models.Goal
	suite.Require().Nil(models.DB.First(&reloaded, "id = ?", goal.ID).Error)
	suite.Assert().True(reloaded.SavedAmount.Equal(decimal.NewFromFloat(30)))
}

func (suite *TestSuiteStandard) TestGoalContributionDefaultsToCurrentWeek() {
	goal := suite.createTestGoal(models.Goal{Amount: decimal.NewFromFloat(100)})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost,
		"/v1/goals/"+goal.ID.String()+"/contributions",
		map[string]any{"amount": 10},
	)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var entry models.GoalProgressLogEntry
	test.DecodeResponse(suite.T(), &recorder, &entry)
	suite.Assert().True(types.WeekOf(time.Now()).Equal(entry.Week), "entry week is %s", entry.Week)
}

func (suite *TestSuiteStandard) TestGoalContributionErrors() {
	goal := suite.createTestGoal(models.Goal{})

	tests := []struct {
		name   string
		url    string
		body   any
		status int
	}{
		{"invalid id", "/v1/goals/not-a-uuid/contributions", map[string]any{"amount": 10}, http.StatusBadRequest},
		{"unknown goal", "/v1/goals/" + uuid.New().String() + "/contributions", map[string]any{"amount": 10}, http.StatusNotFound},
		{"empty body", "/v1/goals/" + goal.ID.String() + "/contributions", nil, http.StatusBadRequest},
		{"invalid body", "/v1/goals/" + goal.ID.String() + "/contributions", `{ "amount": "invalid" }`, http.StatusBadRequest},
		{"zero amount", "/v1/goals/" + goal.ID.String() + "/contributions", map[string]any{"amount": 0}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		recorder := test.Request(suite.T(), suite.router, http.MethodPost, tt.url, tt.body)
		test.AssertHTTPStatus(suite.T(), &recorder, tt.status)
	}
}

func (suite *TestSuiteStandard) TestUpdateWeeklyContribution() {
	goal := suite.createTestGoal(models.Goal{})

	recorder := test.Request(suite.T(), suite.router, http.MethodPatch,
		"/v1/goals/"+goal.ID.String()+"/weekly-contribution",
		map[string]any{"amount": 25},
	)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated models.Goal
	test.DecodeResponse(suite.T(), &recorder, &updated)
	suite.Assert().True(updated.WeeklyContribution.Equal(decimal.NewFromFloat(25)))

	// The mirrored budget row exists
	var budget models.Budget
	suite.Require().Nil(models.DB.First(&budget, "goal_id = ?", goal.ID).Error)
	suite.Assert().True(budget.WeeklyLimit.Equal(decimal.NewFromFloat(25)))
}

func (suite *TestSuiteStandard) TestUpdateWeeklyContributionErrors() {
	goal := suite.createTestGoal(models.Goal{})

	recorder := test.Request(suite.T(), suite.router, http.MethodPatch,
		"/v1/goals/"+uuid.New().String()+"/weekly-contribution",
		map[string]any{"amount": 25},
	)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = test.Request(suite.T(), suite.router, http.MethodPatch,
		"/v1/goals/"+goal.ID.String()+"/weekly-contribution",
		map[string]any{"amount": -1},
	)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
