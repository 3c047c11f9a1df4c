package v1_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	april = types.NewMonth(2024, 4)
	may   = types.NewMonth(2024, 5)
)

func createTestAllocation(t *testing.T, categoryID uuid.UUID, a v1.AllocationEditable, expectedStatus ...int) v1.AllocationResponse {
	// Allocations are upserted, 200 OK is the default
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusOK)
	}

	r := test.Request(t, http.MethodPost, fmt.Sprintf("http://example.com/v1/categories/%s/allocations", categoryID), a)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var allocation v1.AllocationResponse
	test.DecodeResponse(t, &r, &allocation)

	return allocation
}

func (suite *TestSuiteStandard) TestAllocationsUpsert() {
	c := createTestCategory(suite.T(), v1.CategoryEditable{})

	first := createTestAllocation(suite.T(), c.Data.ID, v1.AllocationEditable{Month: may, Amount: 1000})
	assert.Equal(suite.T(), int64(1000), first.Data.Amount)
	assert.True(suite.T(), may.Equal(first.Data.Month))

	// Any day in the month addresses the same allocation
	second := createTestAllocation(suite.T(), c.Data.ID, v1.AllocationEditable{Month: types.MonthOf(may.Time().AddDate(0, 0, 17)), Amount: 2500})
	assert.Equal(suite.T(), first.Data.ID, second.Data.ID)
	assert.Equal(suite.T(), int64(2500), second.Data.Amount)

	r := test.Request(suite.T(), http.MethodGet, first.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AllocationResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), int64(2500), response.Data.Amount)
	assert.Equal(suite.T(), c.Data.Links.Self, response.Data.Links.Category)
}

// TestAllocationsUpsertConcurrent verifies that parallel identical upserts
// result in exactly one allocation.
func (suite *TestSuiteStandard) TestAllocationsUpsertConcurrent() {
	c := createTestCategory(suite.T(), v1.CategoryEditable{})

	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	v1.RegisterCategoryRoutes(r.Group("/v1/categories"))

	body, err := json.Marshal(v1.AllocationEditable{Month: may, Amount: 4200})
	require.Nil(suite.T(), err)

	var wg sync.WaitGroup
	responses := make([]*httptest.ResponseRecorder, 5)
	for i := range responses {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			responses[i] = httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/v1/categories/%s/allocations", c.Data.ID), bytes.NewBuffer(body))
			r.ServeHTTP(responses[i], req)
		}(i)
	}
	wg.Wait()

	var ids []uuid.UUID
	for _, recorder := range responses {
		assert.Equal(suite.T(), http.StatusOK, recorder.Code, recorder.Body.String())

		var allocation v1.AllocationResponse
		test.DecodeResponse(suite.T(), recorder, &allocation)
		ids = append(ids, allocation.Data.ID)
	}

	for _, id := range ids {
		assert.Equal(suite.T(), ids[0], id)
	}

	category := getCategory(suite.T(), c.Data.Links.Self, "expand=allocations&start=2024-05-01")
	assert.Len(suite.T(), category.Allocations, 1)
}

func (suite *TestSuiteStandard) TestAllocationsCreateFails() {
	c := createTestCategory(suite.T(), v1.CategoryEditable{})

	tests := []struct {
		name     string
		category string
		body     any
		status   int
	}{
		{"No month", c.Data.ID.String(), v1.AllocationEditable{Amount: 100}, http.StatusBadRequest},
		{"Invalid body", c.Data.ID.String(), `{ "amount": "a lot" }`, http.StatusBadRequest},
		{"Empty body", c.Data.ID.String(), "", http.StatusBadRequest},
		{"Category does not exist", uuid.New().String(), v1.AllocationEditable{Month: may, Amount: 100}, http.StatusNotFound},
		{"Invalid category ID", "notaUUID", v1.AllocationEditable{Month: may, Amount: 100}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, fmt.Sprintf("http://example.com/v1/categories/%s/allocations", tt.category), tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAllocationsUpdate() {
	c := createTestCategory(suite.T(), v1.CategoryEditable{})
	a := createTestAllocation(suite.T(), c.Data.ID, v1.AllocationEditable{Month: april, Amount: 1000})

	r := test.Request(suite.T(), http.MethodPut, a.Data.Links.Self, v1.AllocationAmount{Amount: 0})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AllocationResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), int64(0), response.Data.Amount)
	assert.True(suite.T(), april.Equal(response.Data.Month))

	r = test.Request(suite.T(), http.MethodPut, fmt.Sprintf("http://example.com/v1/allocations/%s", uuid.New()), v1.AllocationAmount{Amount: 5})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
