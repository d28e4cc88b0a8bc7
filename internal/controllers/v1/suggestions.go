package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pennyflow/backend/internal/httputil"
)

// RegisterBudgetSuggestionRoutes registers the routes for budget
// suggestions with the RouterGroup that is passed.
func RegisterBudgetSuggestionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetBudgetSuggestions)
}

// GetBudgetSuggestions returns proposed weekly budgets, normalized to the
// observed data window and ordered by how actionable they are.
func GetBudgetSuggestions(c *gin.Context) {
	suggestions, err := service().SuggestBudgets()
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, suggestions)
}
