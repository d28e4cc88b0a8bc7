package v1

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/importer"
	"github.com/pennyflow/backend/internal/models"
)

// RegisterImportRoutes registers the routes for importing transactions
// with the RouterGroup that is passed.
func RegisterImportRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsPost)
		r.POST("", ImportTransactions)
	}
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, httputil.ErrNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("this endpoint only supports %s files", suffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// ImportTransactions parses an uploaded bank export CSV file and creates
// a transaction for every line that has not been imported before.
func ImportTransactions(c *gin.Context) {
	f, err := getUploadedFile(c, ".csv")
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}
	defer f.Close()

	transactions, malformed, err := importer.Parse(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	result, err := importer.Create(models.DB, transactions)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	result.Malformed = malformed
	c.JSON(http.StatusCreated, result)
}
