package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/importer"
	"github.com/pocketledger/backend/internal/models"
)

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/accounts/{id}/import [options]
func OptionsAccountImport(c *gin.Context) {
	resourceOptionsDetail(c, models.Account{}, httputil.OptionsPost)
}

// @Summary		Import statement
// @Description	Parses a CSV statement with the columns Date, Payee, Memo, Outflow and Inflow and creates a transaction for every line.
// @Description	Categories are set by match rules. Lines that have been imported before are skipped.
// @Tags			Accounts
// @Accept			multipart/form-data
// @Produce		json
// @Success		201		{object}	DraftCreateResponse
// @Failure		400		{object}	DraftCreateResponse
// @Failure		404		{object}	DraftCreateResponse
// @Failure		500		{object}	DraftCreateResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			file	formData	file	true	"Statement to import"
// @Router			/v1/accounts/{id}/import [post]
func ImportAccountStatement(c *gin.Context) {
	account, err := fromURI[models.Account](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DraftCreateResponse{
			Error: &e,
		})
		return
	}

	f, err := httputil.UploadedFile(c, ".csv")
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DraftCreateResponse{
			Error: &e,
		})
		return
	}
	defer f.Close()

	drafts, err := importer.Parse(f, account.ID)
	if err != nil {
		// importer.Parse returns a usable error already
		e := err.Error()
		c.JSON(http.StatusBadRequest, DraftCreateResponse{
			Error: &e,
		})
		return
	}

	createDrafts(c, drafts)
}
