package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pennyflow/backend/internal/httputil"
)

// RegisterRootRoutes registers the API v1 index route.
func RegisterRootRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetRoot)
}

type RootLinks struct {
	WeeklyReports     string `json:"weeklyReports" example:"https://example.com/v1/weekly-reports"`
	Recurring         string `json:"recurringTransactions" example:"https://example.com/v1/recurring-transactions"`
	BudgetSuggestions string `json:"budgetSuggestions" example:"https://example.com/v1/budget-suggestions"`
	BudgetComparisons string `json:"budgetComparisons" example:"https://example.com/v1/budget-comparisons"`
	Goals             string `json:"goals" example:"https://example.com/v1/goals"`
	Import            string `json:"import" example:"https://example.com/v1/import"`
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

// GetRoot returns the links to the API v1 resources.
func GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			WeeklyReports:     "/v1/weekly-reports",
			Recurring:         "/v1/recurring-transactions",
			BudgetSuggestions: "/v1/budget-suggestions",
			BudgetComparisons: "/v1/budget-comparisons",
			Goals:             "/v1/goals",
			Import:            "/v1/import",
		},
	})
}
