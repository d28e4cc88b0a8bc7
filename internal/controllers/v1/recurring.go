package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/models"
)

// RegisterRecurringTransactionRoutes registers the routes for recurring
// transactions with the RouterGroup that is passed.
func RegisterRecurringTransactionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGet)
		r.GET("", GetRecurringTransactions)
	}
	{
		r.OPTIONS("/detect", httputil.OptionsPost)
		r.POST("/detect", DetectRecurringTransactions)
	}
}

// GetRecurringTransactions returns all detected recurring transactions.
func GetRecurringTransactions(c *gin.Context) {
	var recurring []models.RecurringTransaction
	err := models.DB.Order("next_due_date asc").Find(&recurring).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, recurring)
}

// DetectRecurringTransactions runs the recurring detector over the full
// transaction history and returns the upserted rows. Detection is
// idempotent, re-running it does not create duplicates.
func DetectRecurringTransactions(c *gin.Context) {
	detected, err := service().DetectRecurring()
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, detected)
}
