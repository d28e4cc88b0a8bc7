package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pennyflow/backend/internal/analytics"
	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/models"
	"github.com/pennyflow/backend/internal/types"
)

// timeNow is a seam for tests that need a fixed current week.
var timeNow = time.Now

// service returns the analytics engine bound to the shared database handle.
func service() *analytics.Service {
	return analytics.NewService(models.DB, analytics.DefaultConfig())
}

// weekParam parses the :week URI parameter. Any date within a week is
// accepted and snapped to its Monday.
func weekParam(c *gin.Context) (types.Week, error) {
	week, err := types.ParseWeek(c.Param("week"))
	if err != nil {
		return types.Week{}, httputil.ErrInvalidWeek
	}

	return week, nil
}
