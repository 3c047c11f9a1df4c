package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
)

type GoalEditable struct {
	Type           ledger.GoalType `json:"goal_type" example:"1" minimum:"1" maximum:"3"`          // BUILDER (1), SPENDING (2) or BALANCE (3)
	Amount         int64           `json:"amount" example:"40000"`                                 // Target amount, in cents
	RepeatDayWeek  *int            `json:"repeat_day_week" example:"5" minimum:"1" maximum:"7"`    // Weekday the goal is due on, 1 is Monday
	RepeatDayMonth *int            `json:"repeat_day_month" example:"15" minimum:"1" maximum:"32"` // Day of month the goal is due on, 32 is the last day
	RepeatDateYear *string         `json:"repeat_date_year" example:"12-24"`                       // Date the goal is due on every year, in MM-DD format
}

// model returns the database resource for the API representation of the editable fields
func (editable GoalEditable) model() models.Goal {
	return models.Goal{
		Type:           editable.Type,
		Amount:         editable.Amount,
		RepeatDayWeek:  editable.RepeatDayWeek,
		RepeatDayMonth: editable.RepeatDayMonth,
		RepeatDateYear: editable.RepeatDateYear,
	}
}

type GoalLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/goals/b0bd1d8a-7d6c-4bb4-9a4c-7d8e2f9f1b1d"`          // The goal itself
	Category string `json:"category" example:"https://example.com/api/v1/categories/3b1723fb-3ba1-4e1a-8b0a-0b1c26f8a5f2"` // The category of the goal
}

type Goal struct {
	models.DefaultModel
	CategoryID uuid.UUID `json:"category_id" example:"3b1723fb-3ba1-4e1a-8b0a-0b1c26f8a5f2"` // ID of the category
	GoalEditable
	Links GoalLinks `json:"links"`
}

// newGoal returns the API v1 representation of the resource
func newGoal(c *gin.Context, model models.Goal) Goal {
	url := c.GetString(string(models.DBContextURL))

	return Goal{
		DefaultModel: model.DefaultModel,
		CategoryID:   model.CategoryID,
		GoalEditable: GoalEditable{
			Type:           model.Type,
			Amount:         model.Amount,
			RepeatDayWeek:  model.RepeatDayWeek,
			RepeatDayMonth: model.RepeatDayMonth,
			RepeatDateYear: model.RepeatDateYear,
		},
		Links: GoalLinks{
			Self:     fmt.Sprintf("%s/v1/goals/%s", url, model.ID),
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
		},
	}
}

type GoalResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Goal   `json:"data"`                                                          // Data for the goal
}
