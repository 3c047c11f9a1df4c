package v1

import (
	"github.com/pocketledger/backend/internal/types"
	ez_uuid "github.com/pocketledger/backend/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required"` // The ID of the resource
}

type QueryMonth struct {
	Month types.Month `form:"month" example:"2024-05-01"` // Month in YYYY-MM-01 format
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

const defaultLimit = 50
