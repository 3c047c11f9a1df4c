package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/test"
	"github.com/stretchr/testify/assert"
)

func createTestAccount(t *testing.T, a v1.AccountEditable, expectedStatus ...int) v1.AccountResponse {
	if a.Name == "" {
		a.Name = uuid.NewString()
	}

	if a.Type == 0 {
		a.Type = models.AccountTypeDebit
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/accounts", []v1.AccountEditable{a})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var account v1.AccountCreateResponse
	test.DecodeResponse(t, &r, &account)

	if r.Code == http.StatusCreated {
		return account.Data[0]
	}

	return v1.AccountResponse{}
}

func (suite *TestSuiteStandard) TestAccountsCreate() {
	tests := []struct {
		name     string
		accounts []v1.AccountEditable
		status   int
		errors   []string
	}{
		{
			"One account",
			[]v1.AccountEditable{{Name: "Checking", Type: models.AccountTypeDebit}},
			http.StatusCreated,
			[]string{""},
		},
		{
			"Invalid type",
			[]v1.AccountEditable{{Name: "Mattress", Type: 7}},
			http.StatusBadRequest,
			[]string{models.ErrAccountTypeInvalid.Error()},
		},
		{
			"Duplicate name",
			[]v1.AccountEditable{
				{Name: "Wallet", Type: models.AccountTypeCash},
				{Name: "Wallet", Type: models.AccountTypeCash},
			},
			http.StatusBadRequest,
			[]string{"", models.ErrAccountNameNotUnique.Error()},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/accounts", tt.accounts)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.AccountCreateResponse
			test.DecodeResponse(t, &r, &response)

			for i, e := range tt.errors {
				if e == "" {
					assert.Nil(t, response.Data[i].Error)
					assert.Equal(t, fmt.Sprintf("http://example.com/v1/accounts/%s", response.Data[i].Data.ID), response.Data[i].Data.Links.Self)
					continue
				}

				assert.Contains(t, *response.Data[i].Error, e)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsCreateEmptyBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/accounts", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAccountsGetList() {
	createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking", Type: models.AccountTypeDebit})
	createTestAccount(suite.T(), v1.AccountEditable{Name: "Savings", Type: models.AccountTypeDebit})
	createTestAccount(suite.T(), v1.AccountEditable{Name: "Credit Card", Type: models.AccountTypeCredit})

	tests := []struct {
		name  string
		query string
		len   int
		total int64
	}{
		{"All", "", 3, 3},
		{"By type", "account_type=3", 1, 1},
		{"By name", "name=Savings", 1, 1},
		{"Search", "search=ing", 2, 2},
		{"Limit", "limit=2", 2, 3},
		{"Offset", "offset=2", 1, 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.AccountListResponse
			test.DecodeResponse(t, &r, &response)

			assert.Len(t, response.Data, tt.len)
			assert.Equal(t, tt.total, response.Pagination.Total)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsGetSingle() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Account", a.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET ID nil", uuid.Nil.String(), http.StatusNotFound, http.MethodGet},
		{"GET No Account with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (positive number)", "23", http.StatusBadRequest, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PUT Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPut},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
		{"DELETE No Account with this ID", uuid.New().String(), http.StatusNotFound, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/accounts/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsUpdate() {
	a := createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking", Type: models.AccountTypeDebit})

	r := test.Request(suite.T(), http.MethodPut, a.Data.Links.Self, map[string]any{"name": "Main Checking"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Main Checking", response.Data.Name)
	assert.Equal(suite.T(), models.AccountTypeDebit, response.Data.Type)

	r = test.Request(suite.T(), http.MethodPut, a.Data.Links.Self, `{ "name": 2 }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPut, a.Data.Links.Self, `{ "account_type": 12 }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestAccountsDelete verifies that deleting an account removes its transactions.
func (suite *TestSuiteStandard) TestAccountsDelete() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})
	c := createTestCategory(suite.T(), v1.CategoryEditable{})
	tx := createTestTransaction(suite.T(), singleSplit(a.Data.ID, c.Data.ID, -1000))

	r := test.Request(suite.T(), http.MethodDelete, a.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, tx.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// The category can be deleted as no transactions reference it anymore
	r = test.Request(suite.T(), http.MethodDelete, c.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}
