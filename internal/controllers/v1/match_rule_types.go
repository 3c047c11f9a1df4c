package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	ez_uuid "github.com/pocketledger/backend/internal/uuid"
)

type MatchRuleEditable struct {
	CategoryID uuid.UUID `json:"category_id" example:"3b1723fb-3ba1-4e1a-8b0a-0b1c26f8a5f2"` // The category to assign to matching drafts
	Priority   uint      `json:"priority" example:"3"`                                       // The priority of the match rule. Lower values are tried first.
	Pattern    string    `json:"pattern" example:"Corner Groc*"`                             // Glob pattern matched against the payee name. Matching is case insensitive.
}

func (editable MatchRuleEditable) model() models.MatchRule {
	return models.MatchRule{
		CategoryID: editable.CategoryID,
		Priority:   editable.Priority,
		Pattern:    editable.Pattern,
	}
}

type MatchRuleListResponse struct {
	Data       []MatchRule `json:"data"`                                                          // List of Match Rules
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type MatchRuleCreateResponse struct {
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []MatchRuleResponse `json:"data"`                                                          // List of created Match Rules
}

func (m *MatchRuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MatchRuleResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MatchRuleResponse struct {
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this Match Rule
	Data  *MatchRule `json:"data"`                                                          // The Match Rule data, if creation was successful
}

type MatchRuleLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/match-rules/95685c82-53c6-455d-b235-f49960b73b21"`    // The match rule itself
	Category string `json:"category" example:"https://example.com/api/v1/categories/3b1723fb-3ba1-4e1a-8b0a-0b1c26f8a5f2"` // The category the rule assigns
}

// MatchRule is the API representation of a Match Rule.
type MatchRule struct {
	models.DefaultModel
	MatchRuleEditable
	Links MatchRuleLinks `json:"links"`
}

func newMatchRule(c *gin.Context, model models.MatchRule) MatchRule {
	url := c.GetString(string(models.DBContextURL))

	return MatchRule{
		DefaultModel: model.DefaultModel,
		MatchRuleEditable: MatchRuleEditable{
			CategoryID: model.CategoryID,
			Priority:   model.Priority,
			Pattern:    model.Pattern,
		},
		Links: MatchRuleLinks{
			Self:     fmt.Sprintf("%s/v1/match-rules/%s", url, model.ID),
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
		},
	}
}

type MatchRuleQueryFilter struct {
	CategoryID ez_uuid.UUID `form:"category"`                    // Filter by category
	Pattern    string       `form:"pattern" filterField:"false"` // Filter by pattern
	Offset     uint         `form:"offset" filterField:"false"`  // The offset of the first Match Rule returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`   // Maximum number of Match Rules to return. Defaults to 50.
}
