package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/notify"
	"golang.org/x/exp/slices"
)

type PayeeEditable struct {
	Name string `json:"name" example:"Corner Grocer"` // Name of the payee
}

type PayeeLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/payees/5d2a4e8b-0c27-4b1c-bd8e-8f4f5e4a3b2c"` // The payee itself
}

type Payee struct {
	models.DefaultModel
	PayeeEditable
	Links PayeeLinks `json:"links"`
}

func newPayee(c *gin.Context, model models.Payee) Payee {
	url := c.GetString(string(models.DBContextURL))

	return Payee{
		DefaultModel:  model.DefaultModel,
		PayeeEditable: PayeeEditable{Name: model.Name},
		Links: PayeeLinks{
			Self: fmt.Sprintf("%s/v1/payees/%s", url, model.ID),
		},
	}
}

type PayeeListResponse struct {
	Data       []Payee     `json:"data"`                                                          // List of payees
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type PayeeResponse struct {
	Error *string `json:"error" example:"the payee name must be unique"` // The error, if any occurred for this payee
	Data  *Payee  `json:"data"`                                          // The payee data, if creation was successful
}

type PayeeCreateResponse struct {
	Error *string         `json:"error" example:"the request body must not be empty"` // The error, if any occurred
	Data  []PayeeResponse `json:"data"`                                               // List of created payees
}

func (r *PayeeCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, PayeeResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type PayeeQueryFilter struct {
	Search string `form:"search" filterField:"false"` // By string in name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first payee returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of payees to return. Defaults to 50.
}

// RegisterPayeeRoutes registers the routes for payees with
// the RouterGroup that is passed.
func RegisterPayeeRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsPayeeList)
		r.GET("", GetPayees)
		r.POST("", CreatePayees)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Payees
// @Success		204
// @Router			/v1/payees [options]
func OptionsPayeeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Create payees
// @Description	Creates new payees
// @Tags			Payees
// @Produce		json
// @Success		201		{object}	PayeeCreateResponse
// @Failure		400		{object}	PayeeCreateResponse
// @Failure		500		{object}	PayeeCreateResponse
// @Param			payees	body		[]PayeeEditable	true	"Payees"
// @Router			/v1/payees [post]
func CreatePayees(c *gin.Context) {
	var editables []PayeeEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayeeCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := PayeeCreateResponse{}

	for _, create := range editables {
		payee := models.Payee{Name: create.Name}
		err = models.DB.Create(&payee).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newPayee(c, payee)
		r.Data = append(r.Data, PayeeResponse{Data: &data})
	}

	if len(r.Data) > 0 {
		notify.Emit(c.Request.Context(), notify.PayeeList())
	}

	c.JSON(status, r)
}

// @Summary		Get payees
// @Description	Returns a list of payees ordered by name
// @Tags			Payees
// @Produce		json
// @Success		200		{object}	PayeeListResponse
// @Failure		400		{object}	PayeeListResponse
// @Failure		500		{object}	PayeeListResponse
// @Param			search	query		string	false	"Search for this text in the name"
// @Param			offset	query		uint	false	"The offset of the first payee returned. Defaults to 0."
// @Param			limit	query		int		false	"Maximum number of payees to return. Defaults to 50."
// @Router			/v1/payees [get]
func GetPayees(c *gin.Context) {
	var filter PayeeQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, PayeeListResponse{
			Error: &e,
		})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Order("name ASC")
	if filter.Search != "" {
		q = q.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	q = q.Offset(int(filter.Offset))

	limit := defaultLimit
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var payees []models.Payee
	err := q.Find(&payees).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayeeListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayeeListResponse{Error: &e})
		return
	}

	data := make([]Payee, 0, len(payees))
	for _, payee := range payees {
		data = append(data, newPayee(c, payee))
	}

	c.JSON(http.StatusOK, PayeeListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}
