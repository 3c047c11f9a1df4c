package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/notify"
	"github.com/pocketledger/backend/internal/types"
)

type TransferEditable struct {
	FromCategoryID uuid.UUID   `json:"from_category_id" example:"3b1723fb-3ba1-4e1a-8b0a-0b1c26f8a5f2"` // Category the money is moved from
	ToCategoryID   uuid.UUID   `json:"to_category_id" example:"f9e873c2-fb96-4367-bfb6-7ecd9bf4a6b5"`   // Category the money is moved to
	Amount         int64       `json:"amount" example:"1500"`                                           // Amount to move, in cents
	Month          types.Month `json:"month" example:"2024-05-01"`                                      // Month of the transfer
}

type TransferLinks struct {
	From string `json:"from" example:"https://example.com/api/v1/categories/3b1723fb-3ba1-4e1a-8b0a-0b1c26f8a5f2"` // The source category
	To   string `json:"to" example:"https://example.com/api/v1/categories/f9e873c2-fb96-4367-bfb6-7ecd9bf4a6b5"`   // The destination category
}

type Transfer struct {
	models.DefaultModel
	TransferEditable
	Links TransferLinks `json:"links"`
}

func newTransfer(c *gin.Context, model models.CategoryTransfer) Transfer {
	url := c.GetString(string(models.DBContextURL))

	return Transfer{
		DefaultModel: model.DefaultModel,
		TransferEditable: TransferEditable{
			FromCategoryID: model.FromCategoryID,
			ToCategoryID:   model.ToCategoryID,
			Amount:         model.Amount,
			Month:          model.Month,
		},
		Links: TransferLinks{
			From: fmt.Sprintf("%s/v1/categories/%s", url, model.FromCategoryID),
			To:   fmt.Sprintf("%s/v1/categories/%s", url, model.ToCategoryID),
		},
	}
}

type TransferResponse struct {
	Error *string   `json:"error" example:"Move amount cannot exceed $12.00"` // The error, if any occurred
	Data  *Transfer `json:"data"`                                             // Data for the transfer
}

// RegisterTransferRoutes registers the routes for category transfers with
// the RouterGroup that is passed.
func RegisterTransferRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsTransferList)
		r.POST("", CreateTransfer)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Category Transfers
// @Success		204
// @Router			/v1/category-transfers [options]
func OptionsTransferList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Move money between categories
// @Description	Moves money from one category to another. The amount must not exceed what is available in the source category for the month.
// @Tags			Category Transfers
// @Accept			json
// @Produce		json
// @Success		201			{object}	TransferResponse
// @Failure		400			{object}	TransferResponse
// @Failure		404			{object}	TransferResponse
// @Failure		500			{object}	TransferResponse
// @Param			transfer	body		TransferEditable	true	"Transfer"
// @Router			/v1/category-transfers [post]
func CreateTransfer(c *gin.Context) {
	var data TransferEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransferResponse{
			Error: &e,
		})
		return
	}

	if data.Month.IsZero() {
		e := errMonthNotSet.Error()
		c.JSON(http.StatusBadRequest, TransferResponse{
			Error: &e,
		})
		return
	}

	transfer, err := models.ApplyTransfer(models.DB, data.FromCategoryID, data.ToCategoryID, data.Amount, data.Month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransferResponse{
			Error: &e,
		})
		return
	}

	notify.Emit(c.Request.Context(),
		notify.CategoryList(),
		notify.Category(transfer.FromCategoryID),
		notify.Category(transfer.ToCategoryID),
	)

	apiResource := newTransfer(c, transfer)
	c.JSON(http.StatusCreated, TransferResponse{Data: &apiResource})
}
