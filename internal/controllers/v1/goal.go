package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/types"
	"github.com/shopspring/decimal"
)

// RegisterGoalRoutes registers the goal progress routes with the
// RouterGroup that is passed.
func RegisterGoalRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/:id/contributions", httputil.OptionsPost)
		r.POST("/:id/contributions", CreateGoalContribution)
	}
	{
		r.OPTIONS("/:id/weekly-contribution", httputil.OptionsPatch)
		r.PATCH("/:id/weekly-contribution", UpdateWeeklyContribution)
	}
}

// GoalContributionEditable is the request body for a manual contribution.
type GoalContributionEditable struct {
	Amount decimal.Decimal `json:"amount" example:"25"`
	Week   types.Week      `json:"week" example:"2024-01-01T00:00:00Z"` // Defaults to the current week
}

// WeeklyContributionEditable is the request body for updating the
// scheduled weekly contribution of a goal.
type WeeklyContributionEditable struct {
	Amount decimal.Decimal `json:"amount" example:"20"`
}

// CreateGoalContribution credits a manual contribution toward a goal. The
// credit is capped at the amount still missing, so replaying the request
// cannot push the goal past its target.
func CreateGoalContribution(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var body GoalContributionEditable
	err = httputil.BindData(c, &body)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	week := body.Week
	if week.IsZero() {
		week = types.WeekOf(timeNow())
	}

	entry, err := service().ContributeToGoal(id, week, body.Amount)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// UpdateWeeklyContribution sets the scheduled weekly contribution of a
// goal and keeps the mirrored budget row in sync.
func UpdateWeeklyContribution(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var body WeeklyContributionEditable
	err = httputil.BindData(c, &body)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	goal, err := service().SetWeeklyContribution(id, body.Amount)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, goal)
}
