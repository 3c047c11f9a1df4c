package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// singleSplit returns a transaction with one split for the full amount.
func singleSplit(accountID, categoryID uuid.UUID, amount int64) v1.TransactionEditable {
	return v1.TransactionEditable{
		AccountID: accountID,
		Date:      time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC),
		Amount:    amount,
		Splits: []v1.SplitEditable{
			{CategoryID: categoryID, Amount: amount},
		},
	}
}

func createTestTransaction(t *testing.T, tx v1.TransactionEditable, expectedStatus ...int) v1.TransactionResponse {
	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", tx)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var transaction v1.TransactionResponse
	test.DecodeResponse(t, &r, &transaction)

	return transaction
}

func accountTransactions(t *testing.T, account v1.AccountResponse, query string) v1.TransactionListResponse {
	r := test.Request(t, http.MethodGet, fmt.Sprintf("%s?%s", account.Data.Links.Transactions, query), "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

func (suite *TestSuiteStandard) TestTransactionsCreate() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})
	groceries := createTestCategory(suite.T(), v1.CategoryEditable{})
	household := createTestCategory(suite.T(), v1.CategoryEditable{})

	tests := []struct {
		name   string
		tx     v1.TransactionEditable
		status int
		err    string
	}{
		{
			"Single split",
			singleSplit(a.Data.ID, groceries.Data.ID, -4500),
			http.StatusCreated,
			"",
		},
		{
			"Two splits",
			v1.TransactionEditable{
				AccountID: a.Data.ID,
				Amount:    -4500,
				Splits: []v1.SplitEditable{
					{CategoryID: groceries.Data.ID, Amount: -3000},
					{CategoryID: household.Data.ID, Amount: -1500, Memo: "Soap"},
				},
			},
			http.StatusCreated,
			"",
		},
		{
			"Splits do not add up",
			v1.TransactionEditable{
				AccountID: a.Data.ID,
				Amount:    -4500,
				Splits: []v1.SplitEditable{
					{CategoryID: groceries.Data.ID, Amount: -3000},
					{CategoryID: household.Data.ID, Amount: -1000},
				},
			},
			http.StatusBadRequest,
			"Split amounts must add up to the transaction total",
		},
		{
			"No splits",
			v1.TransactionEditable{AccountID: a.Data.ID, Amount: -100},
			http.StatusBadRequest,
			"A transaction needs at least one split",
		},
		{
			"Split without category",
			v1.TransactionEditable{AccountID: a.Data.ID, Amount: -100, Splits: []v1.SplitEditable{{Amount: -100}}},
			http.StatusBadRequest,
			"Choose a category for split 1",
		},
		{
			"Unknown split type",
			v1.TransactionEditable{AccountID: a.Data.ID, Amount: -100, Splits: []v1.SplitEditable{{CategoryID: groceries.Data.ID, Amount: -100, Type: "BOGUS"}}},
			http.StatusBadRequest,
			`Split 1 has the unknown type "BOGUS"`,
		},
		{
			"Shared split without debtor",
			v1.TransactionEditable{
				AccountID: a.Data.ID,
				Amount:    -100,
				Splits: []v1.SplitEditable{
					{CategoryID: groceries.Data.ID, Amount: -50},
					{CategoryID: groceries.Data.ID, Amount: -50, Type: ledger.SplitTypeSystem},
				},
			},
			http.StatusBadRequest,
			"Split 2 is a shared split without a debtor",
		},
		{
			"Account does not exist",
			singleSplit(uuid.New(), groceries.Data.ID, -100),
			http.StatusNotFound,
			models.ErrReferenceNotFound.Error(),
		},
		{
			"Category does not exist",
			singleSplit(a.Data.ID, uuid.New(), -100),
			http.StatusNotFound,
			models.ErrReferenceNotFound.Error(),
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			tx := createTestTransaction(t, tt.tx, tt.status)

			if tt.status != http.StatusCreated {
				assert.Contains(t, *tx.Error, tt.err)
				return
			}

			assert.Equal(t, tt.tx.Amount, tx.Data.Amount)
			assert.Len(t, tx.Data.Splits, len(tt.tx.Splits))
			assert.Equal(t, fmt.Sprintf("http://example.com/v1/accounts/%s", a.Data.ID), tx.Data.Links.Account)

			for i, s := range tx.Data.Splits {
				assert.Equal(t, tt.tx.Splits[i].Amount, s.Amount)
				assert.Equal(t, ledger.SplitTypeUser, s.Type)
				assert.NotEqual(t, uuid.Nil, s.ID)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsCreateInvalidBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", `{ "amount": "lots" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestTransactionsBatch verifies that a batch is stored completely or not at all.
func (suite *TestSuiteStandard) TestTransactionsBatch() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})
	c := createTestCategory(suite.T(), v1.CategoryEditable{})

	unbalanced := singleSplit(a.Data.ID, c.Data.ID, -100)
	unbalanced.Amount = -200

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions/batch", []v1.TransactionEditable{
		singleSplit(a.Data.ID, c.Data.ID, -100),
		unbalanced,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	assert.Len(suite.T(), accountTransactions(suite.T(), a, "").Data, 0)

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions/batch", []v1.TransactionEditable{})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions/batch", []v1.TransactionEditable{
		singleSplit(a.Data.ID, c.Data.ID, -100),
		singleSplit(a.Data.ID, c.Data.ID, 2500),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 2)
	assert.Len(suite.T(), accountTransactions(suite.T(), a, "").Data, 2)
}

func (suite *TestSuiteStandard) TestTransactionsGetSingle() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})
	c := createTestCategory(suite.T(), v1.CategoryEditable{})
	tx := createTestTransaction(suite.T(), singleSplit(a.Data.ID, c.Data.ID, -100))

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Transaction", tx.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET ID nil", uuid.Nil.String(), http.StatusNotFound, http.MethodGet},
		{"GET No Transaction with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PUT No Transaction with this ID", uuid.New().String(), http.StatusNotFound, http.MethodPut},
		{"PUT Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPut},
		{"DELETE No Transaction with this ID", uuid.New().String(), http.StatusNotFound, http.MethodDelete},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/transactions/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestTransactionsUpdate verifies that an update replaces the splits.
func (suite *TestSuiteStandard) TestTransactionsUpdate() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})
	groceries := createTestCategory(suite.T(), v1.CategoryEditable{})
	household := createTestCategory(suite.T(), v1.CategoryEditable{})
	tx := createTestTransaction(suite.T(), singleSplit(a.Data.ID, groceries.Data.ID, -4500))

	update := tx.Data.TransactionEditable
	update.Memo = "Weekly shop"
	update.Splits = []v1.SplitEditable{
		{ID: tx.Data.Splits[0].ID, CategoryID: groceries.Data.ID, Amount: -3000},
		{CategoryID: household.Data.ID, Amount: -1500},
	}

	r := test.Request(suite.T(), http.MethodPut, tx.Data.Links.Self, update)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, tx.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Weekly shop", response.Data.Memo)
	require.Len(suite.T(), response.Data.Splits, 2)
	assert.Equal(suite.T(), tx.Data.Splits[0].ID, response.Data.Splits[0].ID)
	assert.Equal(suite.T(), int64(-3000), response.Data.Splits[0].Amount)
	assert.Equal(suite.T(), household.Data.ID, response.Data.Splits[1].CategoryID)

	// An update that does not balance is rejected and changes nothing
	update.Amount = -9999
	r = test.Request(suite.T(), http.MethodPut, tx.Data.Links.Self, update)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodGet, tx.Data.Links.Self, "")
	response = v1.TransactionResponse{}
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), int64(-4500), response.Data.Amount)
	assert.Len(suite.T(), response.Data.Splits, 2)
}

func (suite *TestSuiteStandard) TestTransactionsDelete() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})
	c := createTestCategory(suite.T(), v1.CategoryEditable{})
	tx := createTestTransaction(suite.T(), singleSplit(a.Data.ID, c.Data.ID, -100))

	r := test.Request(suite.T(), http.MethodDelete, tx.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, tx.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAccountTransactionsFilter() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})
	other := createTestAccount(suite.T(), v1.AccountEditable{})
	c := createTestCategory(suite.T(), v1.CategoryEditable{})

	for i, date := range []time.Time{
		time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	} {
		tx := singleSplit(a.Data.ID, c.Data.ID, -100)
		tx.Date = date
		tx.Memo = fmt.Sprintf("Coffee %d", i)
		createTestTransaction(suite.T(), tx)
	}
	createTestTransaction(suite.T(), singleSplit(other.Data.ID, c.Data.ID, -100))

	tests := []struct {
		name  string
		query string
		len   int
		total int64
	}{
		{"All", "", 4, 4},
		{"April only", "start=2024-04-01&end=2024-04-01", 2, 2},
		{"From April", "start=2024-04-01", 3, 3},
		{"Until April", "end=2024-04-01", 3, 3},
		{"Search", "search=Coffee%203", 1, 1},
		{"Limit", "limit=1", 1, 4},
		{"Offset", "offset=3", 1, 4},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			response := accountTransactions(t, a, tt.query)
			assert.Len(t, response.Data, tt.len)
			assert.Equal(t, tt.total, response.Pagination.Total)
		})
	}

	// Newest first
	response := accountTransactions(suite.T(), a, "")
	assert.Equal(suite.T(), "Coffee 3", response.Data[0].Memo)

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts/%s/transactions", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAccountRegister() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})
	groceries := createTestCategory(suite.T(), v1.CategoryEditable{})
	household := createTestCategory(suite.T(), v1.CategoryEditable{})

	single := singleSplit(a.Data.ID, groceries.Data.ID, -1000)
	single.Date = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	createTestTransaction(suite.T(), single)

	split := createTestTransaction(suite.T(), v1.TransactionEditable{
		AccountID: a.Data.ID,
		Date:      time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		Amount:    -4500,
		Splits: []v1.SplitEditable{
			{CategoryID: groceries.Data.ID, Amount: -3000},
			{CategoryID: household.Data.ID, Amount: -1500},
		},
	})

	r := test.Request(suite.T(), http.MethodGet, a.Data.Links.Register, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.RegisterResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 4)

	parent := response.Data[0]
	assert.Equal(suite.T(), split.Data.ID, parent.TransactionID)
	assert.Equal(suite.T(), "Split (2)", parent.Label)
	assert.Equal(suite.T(), uuid.Nil, parent.CategoryID)
	assert.True(suite.T(), parent.Selectable)

	for _, child := range response.Data[1:3] {
		assert.True(suite.T(), child.Child)
		assert.False(suite.T(), child.Selectable)
	}

	assert.Equal(suite.T(), groceries.Data.ID, response.Data[3].CategoryID)
	assert.Equal(suite.T(), int64(2), response.Pagination.Total)
}
