package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pennyflow/backend/internal/analytics"
	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/models"
)

// RegisterWeeklyReportRoutes registers the routes for weekly reports with
// the RouterGroup that is passed.
func RegisterWeeklyReportRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGet)
		r.GET("", GetWeeklyReports)
	}
	{
		r.OPTIONS("/:week", httputil.OptionsGetPost)
		r.GET("/:week", GetWeeklyReport)
		r.POST("/:week", CommitWeeklyReport)
	}
}

// GetWeeklyReports returns the persisted report history, newest first.
func GetWeeklyReports(c *gin.Context) {
	var reports []models.WeeklyReport
	err := models.DB.Order("week desc").Find(&reports).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, reports)
}

// GetWeeklyReport generates a preview report for the week without
// persisting anything. With ?income=previous the report shows the prior
// week's income, so a running week is not mistaken for a low-income one.
func GetWeeklyReport(c *gin.Context) {
	week, err := weekParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	report, err := service().GenerateWeeklyReport(week, analytics.ReportOptions{
		PreviousWeekIncome: c.Query("income") == "previous",
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// CommitWeeklyReport generates the report for the week and persists it
// together with the goal ledger entries. Committing the same week again is
// safe and yields the identical report.
func CommitWeeklyReport(c *gin.Context) {
	week, err := weekParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	report, err := service().GenerateWeeklyReport(week, analytics.ReportOptions{
		Commit:             true,
		PreviousWeekIncome: c.Query("income") == "previous",
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
