package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pennyflow/backend/internal/httputil"
)

// RegisterBudgetComparisonRoutes registers the routes for budget
// comparisons with the RouterGroup that is passed.
func RegisterBudgetComparisonRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:week", httputil.OptionsGet)
	r.GET("/:week", GetBudgetComparisons)
}

// GetBudgetComparisons compares each merged budget target's spend in the
// given week against its trailing four-week average.
func GetBudgetComparisons(c *gin.Context) {
	week, err := weekParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	comparisons, err := service().CompareBudgets(week)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, comparisons)
}
