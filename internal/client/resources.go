package client

import (
	"context"
	"net/http"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/notify"
)

// item is one entry of the response of a creation endpoint.
type item[T any] struct {
	Data  *T      `json:"data"`
	Error *string `json:"error"`
}

// create creates a single resource at a creation endpoint that accepts
// a list of resources.
func create[T any](ctx context.Context, c *Client, path string, editable any) (T, error) {
	var r envelope[[]item[T]]
	err := c.do(ctx, http.MethodPost, path, nil, []any{editable}, &r)
	if err != nil {
		var zero T
		return zero, err
	}

	if len(r.Data) == 0 || r.Data[0].Data == nil {
		var zero T
		return zero, &StoreError{Status: http.StatusInternalServerError, Message: "empty response"}
	}

	return *r.Data[0].Data, nil
}

// CreateAccount creates an account.
func (c *Client) CreateAccount(ctx context.Context, account v1.AccountEditable) (v1.Account, error) {
	a, err := create[v1.Account](ctx, c, "/v1/accounts", account)
	if err != nil {
		return a, err
	}

	c.emit(ctx, notify.AccountList())
	return a, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, category v1.CategoryEditable) (v1.Category, error) {
	cat, err := create[v1.Category](ctx, c, "/v1/categories", category)
	if err != nil {
		return cat, err
	}

	c.emit(ctx, notify.CategoryList())
	return cat, nil
}

// CreateUser creates a user that expenses can be shared with.
func (c *Client) CreateUser(ctx context.Context, user v1.UserEditable) (v1.User, error) {
	u, err := create[v1.User](ctx, c, "/v1/users", user)
	if err != nil {
		return u, err
	}

	c.emit(ctx, notify.UserList())
	return u, nil
}

// CreateMatchRule creates a match rule for imported drafts.
func (c *Client) CreateMatchRule(ctx context.Context, rule v1.MatchRuleEditable) (v1.MatchRule, error) {
	m, err := create[v1.MatchRule](ctx, c, "/v1/match-rules", rule)
	if err != nil {
		return m, err
	}

	c.emit(ctx, notify.MatchRuleList())
	return m, nil
}
