package v1_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"testing"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upload sends content as multipart form file with the given file name.
func upload(t *testing.T, url, filename, content string) v1.DraftCreateResponse {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.Nil(t, err)
		_, err = part.Write([]byte(content))
		require.Nil(t, err)
	}
	require.Nil(t, w.Close())

	r := test.Request(t, http.MethodPost, url, body.String(), map[string]string{"Content-Type": w.FormDataContentType()})

	var response v1.DraftCreateResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

func (suite *TestSuiteStandard) TestImportStatement() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})
	groceries := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})
	salary := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary"})
	createTestMatchRule(suite.T(), v1.MatchRuleEditable{CategoryID: groceries.Data.ID, Pattern: "corner*"})
	createTestMatchRule(suite.T(), v1.MatchRuleEditable{CategoryID: salary.Data.ID, Pattern: "employer"})

	statement := "Date,Payee,Memo,Outflow,Inflow\n" +
		"05/12/2024,Corner Grocer,Card payment,45.00,\n" +
		"05/14/2024,Employer,Salary,,2500.00\n" +
		"05/15/2024,Unknown Shop,,12.00,\n"

	response := upload(suite.T(), a.Data.Links.Import, "statement.csv", statement)
	require.Len(suite.T(), response.Data, 3)

	require.NotNil(suite.T(), response.Data[0].Data)
	assert.Equal(suite.T(), int64(-4500), response.Data[0].Data.Amount)
	assert.Equal(suite.T(), groceries.Data.ID, response.Data[0].Data.Splits[0].CategoryID)
	assert.NotEmpty(suite.T(), response.Data[0].Data.ImportHash)

	require.NotNil(suite.T(), response.Data[1].Data)
	assert.Equal(suite.T(), int64(250000), response.Data[1].Data.Amount)
	assert.Equal(suite.T(), salary.Data.ID, response.Data[1].Data.Splits[0].CategoryID)

	// No rule matches, the draft has no category
	require.NotNil(suite.T(), response.Data[2].Error)
	assert.Equal(suite.T(), "Choose a category", *response.Data[2].Error)

	// Importing the same statement again skips the lines already imported
	response = upload(suite.T(), a.Data.Links.Import, "statement.csv", statement)
	require.Len(suite.T(), response.Data, 3)
	assert.True(suite.T(), response.Data[0].Duplicate)
	assert.True(suite.T(), response.Data[1].Duplicate)
	assert.False(suite.T(), response.Data[2].Duplicate)
}

func (suite *TestSuiteStandard) TestImportStatementFails() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})

	tests := []struct {
		name     string
		url      string
		filename string
		content  string
		err      string
	}{
		{"No file", a.Data.Links.Import, "", "", "you must send a file to this endpoint"},
		{"Wrong suffix", a.Data.Links.Import, "statement.ofx", "", "this endpoint only supports files of the following type: .csv"},
		{"Invalid content", a.Data.Links.Import, "statement.csv", "Date,Payee,Memo,Outflow,Inflow\n05/12/2024,Shop,,1.00,2.00\n", "error in line 2 of the CSV"},
		{"Missing account", "http://example.com/v1/accounts/0a7e5bb0-8d8a-4f5e-9d3c-3b1f2a9d6c11/import", "statement.csv", "", "there is no account matching your query"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			response := upload(t, tt.url, tt.filename, tt.content)
			require.NotNil(t, response.Error)
			assert.Contains(t, *response.Error, tt.err)
		})
	}
}
