package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/notify"
	"github.com/pocketledger/backend/internal/types"
)

// Categories returns all categories with the expanded parts for the
// window from start to end. Zero months use the server defaults.
func (c *Client) Categories(ctx context.Context, expand v1.ExpandOptions, start, end types.Month) ([]v1.Category, error) {
	query := url.Values{}

	var parts []string
	if expand.IncludeStats {
		parts = append(parts, "stats")
	}
	if expand.IncludeAllocations {
		parts = append(parts, "allocations")
	}
	if expand.IncludeGoal {
		parts = append(parts, "goal")
	}
	if len(parts) > 0 {
		query.Set("expand", strings.Join(parts, ","))
	}

	if !start.IsZero() {
		query.Set("start", start.DateString())
	}
	if !end.IsZero() {
		query.Set("end", end.DateString())
	}

	var r envelope[[]v1.Category]
	err := c.do(ctx, http.MethodGet, "/v1/categories", query, nil, &r)
	return r.Data, err
}

// UpsertAllocation sets the amount allocated to a category in a month.
func (c *Client) UpsertAllocation(ctx context.Context, categoryID uuid.UUID, month types.Month, amount int64) (v1.Allocation, error) {
	var r envelope[v1.Allocation]
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/categories/%s/allocations", categoryID), nil, v1.AllocationEditable{Month: month, Amount: amount}, &r)
	if err != nil {
		return v1.Allocation{}, err
	}

	c.emit(ctx, notify.CategoryList(), notify.Category(categoryID))
	return r.Data, nil
}

// UpdateAllocation changes the amount of an existing allocation.
func (c *Client) UpdateAllocation(ctx context.Context, id uuid.UUID, amount int64) (v1.Allocation, error) {
	var r envelope[v1.Allocation]
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/v1/allocations/%s", id), nil, v1.AllocationAmount{Amount: amount}, &r)
	if err != nil {
		return v1.Allocation{}, err
	}

	c.emit(ctx, notify.CategoryList(), notify.Category(r.Data.CategoryID))
	return r.Data, nil
}

// Transfer moves money between two categories. sourceAvailable is the
// amount the source category has available in the month, as last seen
// by the caller. Transfers that cannot succeed are rejected before any
// request is sent. The server checks the ceiling again.
func (c *Client) Transfer(ctx context.Context, from, to uuid.UUID, amount int64, month types.Month, sourceAvailable int64) (v1.Transfer, error) {
	t, err := ledger.NewTransfer(from, to, amount, month.Time(), sourceAvailable)
	if err != nil {
		return v1.Transfer{}, err
	}

	var r envelope[v1.Transfer]
	err = c.do(ctx, http.MethodPost, "/v1/category-transfers", nil, v1.TransferEditable{
		FromCategoryID: t.FromCategoryID,
		ToCategoryID:   t.ToCategoryID,
		Amount:         t.Amount,
		Month:          t.Month,
	}, &r)
	if err != nil {
		return v1.Transfer{}, err
	}

	c.emit(ctx, notify.CategoryList(), notify.Category(from), notify.Category(to))
	return r.Data, nil
}

// GoalUpdate holds the fields of a goal to change. Nil fields are
// left as they are.
type GoalUpdate struct {
	Type           *ledger.GoalType `json:"goal_type,omitempty"`
	Amount         *int64           `json:"amount,omitempty"`
	RepeatDayWeek  *int             `json:"repeat_day_week,omitempty"`
	RepeatDayMonth *int             `json:"repeat_day_month,omitempty"`
	RepeatDateYear *string          `json:"repeat_date_year,omitempty"`
}

// CreateGoal creates the goal of a category.
func (c *Client) CreateGoal(ctx context.Context, categoryID uuid.UUID, goal v1.GoalEditable) (v1.Goal, error) {
	var r envelope[v1.Goal]
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/categories/%s/goals", categoryID), nil, goal, &r)
	if err != nil {
		return v1.Goal{}, err
	}

	c.emit(ctx, notify.CategoryList(), notify.Category(categoryID), notify.Goal(r.Data.ID))
	return r.Data, nil
}

// UpdateGoal changes an existing goal.
func (c *Client) UpdateGoal(ctx context.Context, id uuid.UUID, update GoalUpdate) (v1.Goal, error) {
	var r envelope[v1.Goal]
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/v1/goals/%s", id), nil, update, &r)
	if err != nil {
		return v1.Goal{}, err
	}

	c.emit(ctx, notify.CategoryList(), notify.Category(r.Data.CategoryID), notify.Goal(id))
	return r.Data, nil
}

// DeleteGoal deletes a goal.
func (c *Client) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/goals/%s", id), nil, nil, nil)
	if err != nil {
		return err
	}

	c.emit(ctx, notify.CategoryList(), notify.Goal(id))
	return nil
}
