package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/test"
	"github.com/stretchr/testify/assert"
)

// TestDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestDBClosed() {
	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"Account creation", http.MethodPost, "http://example.com/v1/accounts", []v1.AccountEditable{{Name: "Checking", Type: models.AccountTypeDebit}}},
		{"Account list", http.MethodGet, "http://example.com/v1/accounts", ""},
		{"Category list", http.MethodGet, "http://example.com/v1/categories?expand=stats", ""},
		{"Category creation", http.MethodPost, "http://example.com/v1/categories", []v1.CategoryEditable{{Name: "Rent"}}},
		{"Draft import", http.MethodPost, "http://example.com/v1/transactions/drafts", []v1.DraftEditable{{Outflow: 100}}},
		{"Payee list", http.MethodGet, "http://example.com/v1/payees", ""},
		{"User list", http.MethodGet, "http://example.com/v1/users", ""},
		{"Match Rule list", http.MethodGet, "http://example.com/v1/match-rules", ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			r := test.Request(t, tt.method, tt.path, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)
			assert.Contains(t, r.Body.String(), models.ErrGeneral.Error())
		})
	}
}
