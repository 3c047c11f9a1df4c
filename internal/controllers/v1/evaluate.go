package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/currency"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/ledger"
)

type EvaluateRequest struct {
	Expression string `json:"expression" example:"12.50 + 3*2"` // Arithmetic expression. Characters other than digits, operators, parentheses and decimal points are ignored.
}

type Evaluation struct {
	Value     string `json:"value" example:"18.5"`       // The result, rounded to two decimal places
	Cents     int64  `json:"cents" example:"1850"`       // The result in cents
	Formatted string `json:"formatted" example:"$18.50"` // The result formatted as currency
}

type EvaluateResponse struct {
	Error *string     `json:"error" example:"Cannot divide by zero"` // The error, if any occurred
	Data  *Evaluation `json:"data"`                                  // The result of the evaluation
}

// RegisterEvaluateRoutes registers the routes for expression evaluation with
// the RouterGroup that is passed.
func RegisterEvaluateRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsEvaluate)
	r.POST("", Evaluate)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Evaluate
// @Success		204
// @Router			/v1/evaluate [options]
func OptionsEvaluate(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Evaluate expression
// @Description	Evaluates an arithmetic expression as typed into an amount field
// @Tags			Evaluate
// @Accept			json
// @Produce		json
// @Success		200			{object}	EvaluateResponse
// @Failure		400			{object}	EvaluateResponse
// @Param			expression	body		EvaluateRequest	true	"Expression"
// @Router			/v1/evaluate [post]
func Evaluate(c *gin.Context) {
	var data EvaluateRequest
	err := httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EvaluateResponse{
			Error: &e,
		})
		return
	}

	value, err := ledger.Evaluate(data.Expression)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EvaluateResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, EvaluateResponse{
		Data: &Evaluation{
			Value:     value.String(),
			Cents:     currency.ToCents(value),
			Formatted: currency.Default.FormatDecimal(value),
		},
	})
}
