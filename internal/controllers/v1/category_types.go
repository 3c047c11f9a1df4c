package v1

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
)

// ExpandOptions selects the optional parts of the category read model.
type ExpandOptions struct {
	IncludeStats       bool
	IncludeAllocations bool
	IncludeGoal        bool
}

// ParseExpand parses the values of the expand query parameter. Values can
// be repeated or comma separated.
func ParseExpand(values []string) (ExpandOptions, error) {
	var o ExpandOptions
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			switch strings.TrimSpace(part) {
			case "":
			case "stats":
				o.IncludeStats = true
			case "allocations":
				o.IncludeAllocations = true
			case "goal":
				o.IncludeGoal = true
			default:
				return ExpandOptions{}, fmt.Errorf("%w, got '%s'", errExpandInvalid, part)
			}
		}
	}

	return o, nil
}

type CategoryEditable struct {
	Name string `json:"name" example:"Groceries" default:""`                   // Name of the category
	Note string `json:"note" example:"Food and household supplies" default:""` // Note about the category
}

// model returns the database resource for the API representation of the editable fields
func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name: editable.Name,
		Note: editable.Note,
	}
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/categories/3b1723fb-3ba1-4e1a-8b0a-0b1c26f8a5f2"`                      // The category itself
	Allocations  string `json:"allocations" example:"https://example.com/api/v1/categories/3b1723fb-3ba1-4e1a-8b0a-0b1c26f8a5f2/allocations"`   // Allocations of this category
	Goals        string `json:"goals" example:"https://example.com/api/v1/categories/3b1723fb-3ba1-4e1a-8b0a-0b1c26f8a5f2/goals"`               // Goal creation endpoint for this category
	Transactions string `json:"transactions" example:"https://example.com/api/v1/categories/3b1723fb-3ba1-4e1a-8b0a-0b1c26f8a5f2/transactions"` // Activity of this category
}

type Category struct {
	models.DefaultModel
	CategoryEditable
	Stats       *ledger.Stats        `json:"stats,omitempty"`       // Figures for the requested window
	Funding     ledger.FundingState  `json:"funding,omitempty"`     // Funding state for the requested window
	Progress    *ledger.GoalProgress `json:"progress,omitempty"`    // Goal progress in the first month of the window
	Allocations []Allocation         `json:"allocations,omitempty"` // Allocations in the requested window
	Goal        *Goal                `json:"goal,omitempty"`        // The goal of the category
	Links       CategoryLinks        `json:"links"`
}

// newCategory returns the API v1 representation of the resource
func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))
	self := fmt.Sprintf("%s/v1/categories/%s", url, model.ID)

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name: model.Name,
			Note: model.Note,
		},
		Links: CategoryLinks{
			Self:         self,
			Allocations:  self + "/allocations",
			Goals:        self + "/goals",
			Transactions: self + "/transactions",
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryCreateResponse struct {
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []CategoryResponse `json:"data"`                                                          // List of created categories
}

func (r *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Category `json:"data"`                                                          // Data for the category
}

// CategoryQuery are the query parameters of the category endpoints.
type CategoryQuery struct {
	Name   string      `form:"name"`                       // By name
	Search string      `form:"search" filterField:"false"` // By string in name or note
	Expand []string    `form:"expand" filterField:"false"` // stats, allocations and goal
	Start  types.Month `form:"start" filterField:"false"`  // First month of the window, defaults to the current month
	End    types.Month `form:"end" filterField:"false"`    // Last month of the window, defaults to start
	Offset uint        `form:"offset" filterField:"false"` // The offset of the first category returned. Defaults to 0.
	Limit  int         `form:"limit" filterField:"false"`  // Maximum number of categories to return. Defaults to 50.
}
