package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/notify"
	"golang.org/x/sync/singleflight"
)

// Identical upserts that are in flight at the same time are executed once.
var allocationUpserts singleflight.Group

// RegisterAllocationRoutes registers the routes for allocations with
// the RouterGroup that is passed.
func RegisterAllocationRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/:id", OptionsAllocationDetail)
		r.GET("/:id", GetAllocation)
		r.PUT("/:id", UpdateAllocation)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Allocations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/allocations/{id} [options]
func OptionsAllocationDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Allocation{}, httputil.OptionsGetPut)
}

// @Summary		Set allocation
// @Description	Sets the amount allocated to the category for a month. An existing allocation for the month is overwritten.
// @Tags			Allocations
// @Accept			json
// @Produce		json
// @Success		200			{object}	AllocationResponse
// @Failure		400			{object}	AllocationResponse
// @Failure		404			{object}	AllocationResponse
// @Failure		500			{object}	AllocationResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			allocation	body		AllocationEditable	true	"Allocation"
// @Router			/v1/categories/{id}/allocations [post]
func CreateAllocation(c *gin.Context) {
	category, err := fromURI[models.Category](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &e,
		})
		return
	}

	var data AllocationEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &e,
		})
		return
	}

	if data.Month.IsZero() {
		e := errMonthNotSet.Error()
		c.JSON(http.StatusBadRequest, AllocationResponse{
			Error: &e,
		})
		return
	}

	key := fmt.Sprintf("%s|%s|%d", category.ID, data.Month, data.Amount)
	result, err, _ := allocationUpserts.Do(key, func() (any, error) {
		return models.UpsertAllocation(models.DB, category.ID, data.Month, data.Amount)
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &e,
		})
		return
	}

	notify.Emit(c.Request.Context(), notify.CategoryList(), notify.Category(category.ID))

	apiResource := newAllocation(c, result.(models.Allocation))
	c.JSON(http.StatusOK, AllocationResponse{Data: &apiResource})
}

// @Summary		Get allocation
// @Description	Returns a specific allocation
// @Tags			Allocations
// @Produce		json
// @Success		200	{object}	AllocationResponse
// @Failure		400	{object}	AllocationResponse
// @Failure		404	{object}	AllocationResponse
// @Failure		500	{object}	AllocationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/allocations/{id} [get]
func GetAllocation(c *gin.Context) {
	allocation, err := fromURI[models.Allocation](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &e,
		})
		return
	}

	apiResource := newAllocation(c, allocation)
	c.JSON(http.StatusOK, AllocationResponse{Data: &apiResource})
}

// @Summary		Update allocation
// @Description	Updates the amount of an allocation
// @Tags			Allocations
// @Accept			json
// @Produce		json
// @Success		200			{object}	AllocationResponse
// @Failure		400			{object}	AllocationResponse
// @Failure		404			{object}	AllocationResponse
// @Failure		500			{object}	AllocationResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			allocation	body		AllocationAmount	true	"Allocation"
// @Router			/v1/allocations/{id} [put]
func UpdateAllocation(c *gin.Context) {
	allocation, err := fromURI[models.Allocation](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &e,
		})
		return
	}

	var data AllocationAmount
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&allocation).Select("Amount").Updates(models.Allocation{Amount: data.Amount}).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &e,
		})
		return
	}

	notify.Emit(c.Request.Context(), notify.CategoryList(), notify.Category(allocation.CategoryID))

	apiResource := newAllocation(c, allocation)
	c.JSON(http.StatusOK, AllocationResponse{Data: &apiResource})
}
