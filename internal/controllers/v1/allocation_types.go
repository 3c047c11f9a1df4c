package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
)

type AllocationEditable struct {
	Month  types.Month `json:"month" example:"2024-05-01"` // Month of the allocation, in YYYY-MM-01 format
	Amount int64       `json:"amount" example:"25000"`     // Amount allocated, in cents
}

type AllocationLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/allocations/902cd93c-3724-4e46-8540-d014131282fc"`    // The allocation itself
	Category string `json:"category" example:"https://example.com/api/v1/categories/3b1723fb-3ba1-4e1a-8b0a-0b1c26f8a5f2"` // The category of the allocation
}

type Allocation struct {
	models.DefaultModel
	CategoryID uuid.UUID       `json:"category_id" example:"3b1723fb-3ba1-4e1a-8b0a-0b1c26f8a5f2"` // ID of the category
	Month      types.Month     `json:"month" example:"2024-05-01"`                                 // Month of the allocation
	Amount     int64           `json:"amount" example:"25000"`                                     // Amount allocated, in cents
	Links      AllocationLinks `json:"links"`
}

// newAllocation returns the API v1 representation of the resource
func newAllocation(c *gin.Context, model models.Allocation) Allocation {
	url := c.GetString(string(models.DBContextURL))

	return Allocation{
		DefaultModel: model.DefaultModel,
		CategoryID:   model.CategoryID,
		Month:        model.Month,
		Amount:       model.Amount,
		Links: AllocationLinks{
			Self:     fmt.Sprintf("%s/v1/allocations/%s", url, model.ID),
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
		},
	}
}

type AllocationResponse struct {
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Allocation `json:"data"`                                                          // Data for the allocation
}

type AllocationAmount struct {
	Amount int64 `json:"amount" example:"25000"` // Amount allocated, in cents
}
