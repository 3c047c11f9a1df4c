package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestPayees() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/payees", []v1.PayeeEditable{
		{Name: "Corner Grocer"},
		{Name: "Petrol Station"},
		{Name: "Corner Grocer"},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var created v1.PayeeCreateResponse
	test.DecodeResponse(suite.T(), &r, &created)
	assert.Nil(suite.T(), created.Data[0].Error)
	assert.Nil(suite.T(), created.Data[1].Error)
	assert.Equal(suite.T(), models.ErrPayeeNameNotUnique.Error(), *created.Data[2].Error)

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 2},
		{"Search", "?search=corner", 1},
		{"Limit", "?limit=1", 1},
		{"Offset", "?offset=1", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/payees"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.PayeeListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
			assert.Equal(t, int64(2), response.Pagination.Total)
		})
	}
}
