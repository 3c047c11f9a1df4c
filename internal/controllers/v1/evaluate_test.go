package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestEvaluate() {
	tests := []struct {
		name       string
		expression string
		status     int
		value      string
		cents      int64
		formatted  string
		err        string
	}{
		{"Sum", "12.50 + 3*2", http.StatusOK, "18.5", 1850, "$18.50", ""},
		{"Rounding", "10/3", http.StatusOK, "3.33", 333, "$3.33", ""},
		{"Currency symbols are ignored", "$1,000", http.StatusOK, "1000", 100000, "$1,000.00", ""},
		{"Negative", "5 - 7.25", http.StatusOK, "-2.25", -225, "-$2.25", ""},
		{"Division by zero", "1/0", http.StatusBadRequest, "", 0, "", "Cannot divide by zero"},
		{"Invalid", "3 +* 4", http.StatusBadRequest, "", 0, "", "Invalid expression"},
		{"Empty", "abc", http.StatusBadRequest, "", 0, "", "no change"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/evaluate", v1.EvaluateRequest{Expression: tt.expression})
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.EvaluateResponse
			test.DecodeResponse(t, &r, &response)

			if tt.err != "" {
				assert.Equal(t, tt.err, *response.Error)
				return
			}

			require.NotNil(t, response.Data)
			assert.Equal(t, tt.value, response.Data.Value)
			assert.Equal(t, tt.cents, response.Data.Cents)
			assert.Equal(t, tt.formatted, response.Data.Formatted)
		})
	}
}
