package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/notify"
	"github.com/pocketledger/backend/internal/types"
)

// TransactionQuery filters transaction lists. Zero values are not sent.
type TransactionQuery struct {
	Start  types.Month
	End    types.Month
	Search string
	Offset uint
	Limit  int
}

func (q TransactionQuery) values() url.Values {
	v := url.Values{}
	if !q.Start.IsZero() {
		v.Set("start", q.Start.DateString())
	}
	if !q.End.IsZero() {
		v.Set("end", q.End.DateString())
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Offset != 0 {
		v.Set("offset", strconv.FormatUint(uint64(q.Offset), 10))
	}
	if q.Limit != 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// AccountTransactions returns the transactions of an account, newest first.
func (c *Client) AccountTransactions(ctx context.Context, accountID uuid.UUID, query TransactionQuery) ([]v1.Transaction, error) {
	var r envelope[[]v1.Transaction]
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/accounts/%s/transactions", accountID), query.values(), nil, &r)
	return r.Data, err
}

// AccountRegister returns the register rows of an account.
func (c *Client) AccountRegister(ctx context.Context, accountID uuid.UUID, query TransactionQuery) ([]ledger.Row, error) {
	var r envelope[[]ledger.Row]
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/accounts/%s/register", accountID), query.values(), nil, &r)
	return r.Data, err
}

// CategoryTransactions returns the transactions with a split in a category.
func (c *Client) CategoryTransactions(ctx context.Context, categoryID uuid.UUID, query TransactionQuery) ([]v1.Transaction, error) {
	var r envelope[[]v1.Transaction]
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/categories/%s/transactions", categoryID), query.values(), nil, &r)
	return r.Data, err
}

// CreateTransaction validates the draft and creates the transaction.
// Invalid drafts are never sent.
func (c *Client) CreateTransaction(ctx context.Context, draft ledger.Draft) (v1.Transaction, error) {
	tx, err := draft.Normalize()
	if err != nil {
		return v1.Transaction{}, err
	}

	var r envelope[v1.Transaction]
	err = c.do(ctx, http.MethodPost, "/v1/transactions", nil, editable(tx), &r)
	if err != nil {
		return v1.Transaction{}, err
	}

	c.emit(ctx, transactionKeys(r.Data)...)
	return r.Data, nil
}

// CreateTransactions creates all drafts or none of them.
func (c *Client) CreateTransactions(ctx context.Context, drafts []ledger.Draft) ([]v1.Transaction, error) {
	body := make([]v1.TransactionEditable, 0, len(drafts))
	for i, draft := range drafts {
		tx, err := draft.Normalize()
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}
		body = append(body, editable(tx))
	}

	var r envelope[[]v1.Transaction]
	err := c.do(ctx, http.MethodPost, "/v1/transactions/batch", nil, body, &r)
	if err != nil {
		return nil, err
	}

	c.emit(ctx, transactionKeys(r.Data...)...)
	return r.Data, nil
}

// UpdateTransaction replaces a transaction with the draft.
func (c *Client) UpdateTransaction(ctx context.Context, id uuid.UUID, draft ledger.Draft) (v1.Transaction, error) {
	tx, err := draft.Normalize()
	if err != nil {
		return v1.Transaction{}, err
	}

	var r envelope[v1.Transaction]
	err = c.do(ctx, http.MethodPut, fmt.Sprintf("/v1/transactions/%s", id), nil, editable(tx), &r)
	if err != nil {
		return v1.Transaction{}, err
	}

	c.emit(ctx, transactionKeys(r.Data)...)
	return r.Data, nil
}

// DeleteTransaction deletes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, transaction v1.Transaction) error {
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/transactions/%s", transaction.ID), nil, nil, nil)
	if err != nil {
		return err
	}

	c.emit(ctx, transactionKeys(transaction)...)
	return nil
}

func transactionKeys(transactions ...v1.Transaction) [][]string {
	keys := [][]string{notify.CategoryList()}

	accounts := make(map[uuid.UUID]bool)
	categories := make(map[uuid.UUID]bool)
	for _, t := range transactions {
		if !accounts[t.AccountID] {
			accounts[t.AccountID] = true
			keys = append(keys, notify.AccountTransactions(t.AccountID))
		}

		for _, s := range t.Splits {
			if categories[s.CategoryID] {
				continue
			}
			categories[s.CategoryID] = true
			keys = append(keys, notify.Category(s.CategoryID), notify.CategoryTransactions(s.CategoryID))
		}
	}

	return keys
}

func editable(tx ledger.Transaction) v1.TransactionEditable {
	splits := make([]v1.SplitEditable, 0, len(tx.Splits))
	for _, s := range tx.Splits {
		splits = append(splits, v1.SplitEditable{
			ID:           s.ID,
			CategoryID:   s.CategoryID,
			Amount:       s.Amount,
			Memo:         s.Memo,
			Type:         s.Type,
			DebtorUserID: optional(s.DebtorUserID),
			ParentID:     optional(s.ParentID),
		})
	}

	return v1.TransactionEditable{
		AccountID: tx.AccountID,
		PayeeID:   optional(tx.PayeeID),
		Date:      tx.Date,
		Memo:      tx.Memo,
		Amount:    tx.Amount,
		Cleared:   tx.Cleared,
		Splits:    splits,
	}
}

func optional(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
