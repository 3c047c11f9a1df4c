package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOptionsHeaderResources() {
	optionsHeaderTests := []struct {
		path     string
		response string
	}{
		{"http://example.com/v1/accounts", "OPTIONS, GET, POST"},
		{"http://example.com/v1/categories", "OPTIONS, GET, POST"},
		{"http://example.com/v1/category-transfers", "OPTIONS, POST"},
		{"http://example.com/v1/transactions", "OPTIONS, POST"},
		{"http://example.com/v1/transactions/batch", "OPTIONS, POST"},
		{"http://example.com/v1/transactions/drafts", "OPTIONS, POST"},
		{"http://example.com/v1/payees", "OPTIONS, GET, POST"},
		{"http://example.com/v1/users", "OPTIONS, GET, POST"},
		{"http://example.com/v1/match-rules", "OPTIONS, GET, POST"},
		{"http://example.com/v1/evaluate", "OPTIONS, POST"},
	}

	for _, tt := range optionsHeaderTests {
		suite.T().Run(tt.path, func(t *testing.T) {
			recorder := test.Request(t, http.MethodOptions, tt.path, "")

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			assert.Equal(t, tt.response, recorder.Header().Get("allow"))
		})
	}
}

// TestOptionsDetail verifies OPTIONS requests for single resources.
func (suite *TestSuiteStandard) TestOptionsDetail() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})
	c := createTestCategory(suite.T(), v1.CategoryEditable{})
	allocation := createTestAllocation(suite.T(), c.Data.ID, v1.AllocationEditable{Month: may, Amount: 100})
	goal := createTestGoal(suite.T(), c.Data.ID, v1.GoalEditable{Amount: 100})
	tx := createTestTransaction(suite.T(), singleSplit(a.Data.ID, c.Data.ID, -100))
	rule := createTestMatchRule(suite.T(), v1.MatchRuleEditable{CategoryID: c.Data.ID})

	tests := []struct {
		name     string
		path     string
		response string
	}{
		{"Account", a.Data.Links.Self, "OPTIONS, GET, PUT, DELETE"},
		{"Account transactions", a.Data.Links.Transactions, "OPTIONS, GET"},
		{"Account register", a.Data.Links.Register, "OPTIONS, GET"},
		{"Account import", a.Data.Links.Import, "OPTIONS, POST"},
		{"Category", c.Data.Links.Self, "OPTIONS, GET, PUT, DELETE"},
		{"Category allocations", c.Data.Links.Allocations, "OPTIONS, POST"},
		{"Category goals", c.Data.Links.Goals, "OPTIONS, POST"},
		{"Category transactions", c.Data.Links.Transactions, "OPTIONS, GET"},
		{"Allocation", allocation.Data.Links.Self, "OPTIONS, GET, PUT"},
		{"Goal", goal.Data.Links.Self, "OPTIONS, GET, PUT, DELETE"},
		{"Transaction", tx.Data.Links.Self, "OPTIONS, GET, PUT, DELETE"},
		{"Match Rule", rule.Data.Links.Self, "OPTIONS, DELETE"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, tt.path, "")
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, tt.response, r.Header().Get("allow"))
		})
	}

	for _, resource := range []string{"accounts", "categories", "allocations", "goals", "transactions", "match-rules"} {
		suite.T().Run(resource, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, fmt.Sprintf("http://example.com/v1/%s/%s", resource, uuid.New()), "")
			test.AssertHTTPStatus(t, &r, http.StatusNotFound)

			r = test.Request(t, http.MethodOptions, fmt.Sprintf("http://example.com/v1/%s/notaUUID", resource), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}
