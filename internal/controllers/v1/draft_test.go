package v1_test

import (
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

func postDrafts(suite *TestSuiteStandard, drafts []v1.DraftEditable, expectedStatus int) v1.DraftCreateResponse {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions/drafts", drafts)
	test.AssertHTTPStatus(suite.T(), &r, expectedStatus)

	var response v1.DraftCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	return response
}

// TestDraftsImport verifies that drafts are categorized by match rules and
// that statement lines are only imported once.
func (suite *TestSuiteStandard) TestDraftsImport() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})
	groceries := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})
	fuel := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Fuel"})
	rule := createTestMatchRule(suite.T(), v1.MatchRuleEditable{CategoryID: groceries.Data.ID, Pattern: "corner*"})

	date := time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)
	drafts := []v1.DraftEditable{
		{AccountID: a.Data.ID, PayeeName: "Corner Grocer", Date: date, Outflow: 4500},
		{AccountID: a.Data.ID, PayeeName: "Corner Grocer", Date: date, Outflow: 1200, CategoryID: fuel.Data.ID},
		{AccountID: a.Data.ID, PayeeName: "Unknown Shop", Date: date, Outflow: 100},
	}

	response := postDrafts(suite, drafts, http.StatusBadRequest)
	require.Len(suite.T(), response.Data, 3)

	// The rule sets the category
	first := response.Data[0]
	require.NotNil(suite.T(), first.Data)
	assert.Equal(suite.T(), rule.Data.ID, *first.RuleID)
	assert.Equal(suite.T(), int64(-4500), first.Data.Amount)
	assert.Equal(suite.T(), groceries.Data.ID, first.Data.Splits[0].CategoryID)
	assert.NotEmpty(suite.T(), first.Data.ImportHash)
	require.NotNil(suite.T(), first.Data.PayeeID)

	// A category set on the draft takes precedence
	second := response.Data[1]
	require.NotNil(suite.T(), second.Data)
	assert.Nil(suite.T(), second.RuleID)
	assert.Equal(suite.T(), fuel.Data.ID, second.Data.Splits[0].CategoryID)
	assert.Equal(suite.T(), *first.Data.PayeeID, *second.Data.PayeeID)

	// Without category and rule, the draft is rejected
	third := response.Data[2]
	assert.Nil(suite.T(), third.Data)
	assert.Equal(suite.T(), "Choose a category", *third.Error)

	// Importing the same lines again skips them
	response = postDrafts(suite, drafts[:2], http.StatusCreated)
	require.Len(suite.T(), response.Data, 2)
	for _, d := range response.Data {
		assert.True(suite.T(), d.Duplicate)
		assert.Nil(suite.T(), d.Data)
	}

	assert.Len(suite.T(), accountTransactions(suite.T(), a, "").Data, 2)
}

// TestDraftsRejectedKeepNoPayee verifies that payees are only created
// for drafts that are stored.
func (suite *TestSuiteStandard) TestDraftsRejectedKeepNoPayee() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})

	date := time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)
	drafts := []v1.DraftEditable{
		{AccountID: a.Data.ID, PayeeName: "No Category Shop", Date: date, Outflow: 100},
		{AccountID: a.Data.ID, PayeeName: "Missing Category Shop", Date: date, Outflow: 100, CategoryID: uuid.New()},
	}

	response := postDrafts(suite, drafts, http.StatusNotFound)
	require.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), "Choose a category", *response.Data[0].Error)
	assert.Contains(suite.T(), *response.Data[1].Error, models.ErrReferenceNotFound.Error())

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.Payee{}).Count(&count).Error)
	assert.Zero(suite.T(), count)
}

func (suite *TestSuiteStandard) TestDraftsSplitLines() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})
	groceries := createTestCategory(suite.T(), v1.CategoryEditable{})
	household := createTestCategory(suite.T(), v1.CategoryEditable{})

	tests := []struct {
		name  string
		draft v1.DraftEditable
		err   string
	}{
		{
			"Inflow and outflow",
			v1.DraftEditable{AccountID: a.Data.ID, CategoryID: groceries.Data.ID, Inflow: 100, Outflow: 100},
			"Transaction cannot have both inflow and outflow.",
		},
		{
			"Line with inflow and outflow",
			v1.DraftEditable{AccountID: a.Data.ID, Outflow: 100, Lines: []v1.LineEditable{
				{CategoryID: groceries.Data.ID, Inflow: 50, Outflow: 150},
			}},
			"Each split can only have inflow or outflow, not both.",
		},
		{
			"Line without category",
			v1.DraftEditable{AccountID: a.Data.ID, Outflow: 100, Lines: []v1.LineEditable{
				{CategoryID: groceries.Data.ID, Outflow: 50},
				{Outflow: 50},
			}},
			"Choose a category for split 2",
		},
		{
			"Lines do not add up",
			v1.DraftEditable{AccountID: a.Data.ID, Outflow: 100, Lines: []v1.LineEditable{
				{CategoryID: groceries.Data.ID, Outflow: 50},
			}},
			"Split amounts must add up to the transaction total.",
		},
		{
			"No account",
			v1.DraftEditable{CategoryID: groceries.Data.ID, Outflow: 100},
			"Choose an account",
		},
		{
			"Valid",
			v1.DraftEditable{AccountID: a.Data.ID, Outflow: 4500, Memo: "Weekly shop", Lines: []v1.LineEditable{
				{CategoryID: groceries.Data.ID, Outflow: 3000},
				{CategoryID: household.Data.ID, Outflow: 1500},
			}},
			"",
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			status := http.StatusCreated
			if tt.err != "" {
				status = http.StatusBadRequest
			}

			response := postDrafts(suite, []v1.DraftEditable{tt.draft}, status)
			require.Len(t, response.Data, 1)

			if tt.err != "" {
				assert.Contains(t, *response.Data[0].Error, tt.err)
				return
			}

			require.Len(t, response.Data[0].Data.Splits, 2)
			assert.Equal(t, int64(-3000), response.Data[0].Data.Splits[0].Amount)
			assert.Equal(t, int64(-1500), response.Data[0].Data.Splits[1].Amount)
		})
	}
}

// TestDraftsSharedExpense verifies that sharing an expense adds a split
// for the share of every user.
func (suite *TestSuiteStandard) TestDraftsSharedExpense() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})
	c := createTestCategory(suite.T(), v1.CategoryEditable{})
	u := createTestUser(suite.T(), v1.UserEditable{FirstName: "Robin"})

	response := postDrafts(suite, []v1.DraftEditable{
		{AccountID: a.Data.ID, CategoryID: c.Data.ID, Outflow: 1001, SplitWith: []uuid.UUID{u.Data.ID, u.Data.ID}},
	}, http.StatusCreated)

	tx := response.Data[0].Data
	require.NotNil(suite.T(), tx)
	require.Len(suite.T(), tx.Splits, 2)

	user, shared := tx.Splits[0], tx.Splits[1]
	assert.Equal(suite.T(), ledger.SplitTypeUser, user.Type)
	assert.Equal(suite.T(), int64(-501), user.Amount)

	assert.Equal(suite.T(), ledger.SplitTypeSystem, shared.Type)
	assert.Equal(suite.T(), int64(-500), shared.Amount)
	assert.Equal(suite.T(), u.Data.ID, *shared.DebtorUserID)
	assert.Equal(suite.T(), user.ID, *shared.ParentID)
	assert.Equal(suite.T(), int64(-1001), user.Amount+shared.Amount)

	// Sharing with a user that does not exist fails
	response = postDrafts(suite, []v1.DraftEditable{
		{AccountID: a.Data.ID, CategoryID: c.Data.ID, Outflow: 200, SplitWith: []uuid.UUID{uuid.New()}},
	}, http.StatusNotFound)
	assert.NotNil(suite.T(), response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestDraftsInvalidBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions/drafts", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions/drafts", `[{ "outflow": "much" }]`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
