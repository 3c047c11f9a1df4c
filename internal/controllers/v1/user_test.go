package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/test"
	"github.com/stretchr/testify/assert"
)

func createTestUser(t *testing.T, u v1.UserEditable, expectedStatus ...int) v1.UserResponse {
	if u.FirstName == "" {
		u.FirstName = "Kim"
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/users", []v1.UserEditable{u})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var user v1.UserCreateResponse
	test.DecodeResponse(t, &r, &user)

	if r.Code == http.StatusCreated {
		return user.Data[0]
	}

	return v1.UserResponse{}
}

func (suite *TestSuiteStandard) TestUsers() {
	lastName := "Meyer"
	createTestUser(suite.T(), v1.UserEditable{FirstName: "Robin", LastName: &lastName})
	createTestUser(suite.T(), v1.UserEditable{FirstName: "Alex"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/users", []v1.UserEditable{{FirstName: " "}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var created v1.UserCreateResponse
	test.DecodeResponse(suite.T(), &r, &created)
	assert.Equal(suite.T(), models.ErrUserFirstNameEmpty.Error(), *created.Data[0].Error)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/users", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.UserListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), "Alex", response.Data[0].FirstName)
	assert.Nil(suite.T(), response.Data[0].LastName)
	assert.Equal(suite.T(), "Meyer", *response.Data[1].LastName)
}
