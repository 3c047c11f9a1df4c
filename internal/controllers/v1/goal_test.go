package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/test"
	"github.com/stretchr/testify/assert"
)

func createTestGoal(t *testing.T, categoryID uuid.UUID, g v1.GoalEditable, expectedStatus ...int) v1.GoalResponse {
	if g.Type == 0 {
		g.Type = ledger.GoalTypeBuilder
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, fmt.Sprintf("http://example.com/v1/categories/%s/goals", categoryID), g)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var goal v1.GoalResponse
	test.DecodeResponse(t, &r, &goal)

	return goal
}

func (suite *TestSuiteStandard) TestGoalsCreate() {
	weekday := 5
	day := 32
	badDay := 33
	date := "12-24"
	badDate := "24-12"

	tests := []struct {
		name   string
		goal   v1.GoalEditable
		status int
	}{
		{"Builder without repetition", v1.GoalEditable{Type: ledger.GoalTypeBuilder, Amount: 10000}, http.StatusCreated},
		{"Weekly", v1.GoalEditable{Type: ledger.GoalTypeSpending, Amount: 5000, RepeatDayWeek: &weekday}, http.StatusCreated},
		{"Monthly on the last day", v1.GoalEditable{Type: ledger.GoalTypeSpending, Amount: 5000, RepeatDayMonth: &day}, http.StatusCreated},
		{"Yearly", v1.GoalEditable{Type: ledger.GoalTypeBalance, Amount: 50000, RepeatDateYear: &date}, http.StatusCreated},
		{"Invalid type", v1.GoalEditable{Type: 9, Amount: 100}, http.StatusBadRequest},
		{"Zero amount", v1.GoalEditable{Type: ledger.GoalTypeBuilder}, http.StatusBadRequest},
		{"Invalid day of month", v1.GoalEditable{Type: ledger.GoalTypeSpending, Amount: 100, RepeatDayMonth: &badDay}, http.StatusBadRequest},
		{"Invalid yearly date", v1.GoalEditable{Type: ledger.GoalTypeSpending, Amount: 100, RepeatDateYear: &badDate}, http.StatusBadRequest},
		{"Two repetitions", v1.GoalEditable{Type: ledger.GoalTypeSpending, Amount: 100, RepeatDayWeek: &weekday, RepeatDayMonth: &day}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			c := createTestCategory(t, v1.CategoryEditable{})
			goal := createTestGoal(t, c.Data.ID, tt.goal, tt.status)

			if tt.status == http.StatusCreated {
				assert.Equal(t, c.Data.ID, goal.Data.CategoryID)
				assert.Equal(t, c.Data.Links.Self, goal.Data.Links.Category)
				return
			}

			assert.NotNil(t, goal.Error)
		})
	}
}

// TestGoalsOnePerCategory verifies that a category can only have one goal.
func (suite *TestSuiteStandard) TestGoalsOnePerCategory() {
	c := createTestCategory(suite.T(), v1.CategoryEditable{})
	createTestGoal(suite.T(), c.Data.ID, v1.GoalEditable{Amount: 100})

	goal := createTestGoal(suite.T(), c.Data.ID, v1.GoalEditable{Amount: 200}, http.StatusBadRequest)
	assert.Equal(suite.T(), models.ErrGoalCategoryNotUnique.Error(), *goal.Error)

	createTestGoal(suite.T(), uuid.New(), v1.GoalEditable{Amount: 100}, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGoalsUpdate() {
	c := createTestCategory(suite.T(), v1.CategoryEditable{})
	day := 15
	g := createTestGoal(suite.T(), c.Data.ID, v1.GoalEditable{Type: ledger.GoalTypeSpending, Amount: 30000, RepeatDayMonth: &day})

	// Only the amount changes
	r := test.Request(suite.T(), http.MethodPut, g.Data.Links.Self, map[string]any{"amount": 35000})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), int64(35000), response.Data.Amount)
	assert.Equal(suite.T(), ledger.GoalTypeSpending, response.Data.Type)
	assert.Equal(suite.T(), 15, *response.Data.RepeatDayMonth)

	// Switching to a weekly goal needs the monthly repetition to be removed
	r = test.Request(suite.T(), http.MethodPut, g.Data.Links.Self, map[string]any{"repeat_day_week": 1})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPut, g.Data.Links.Self, map[string]any{"repeat_day_week": 1, "repeat_day_month": nil})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	response = v1.GoalResponse{}
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), 1, *response.Data.RepeatDayWeek)
	assert.Nil(suite.T(), response.Data.RepeatDayMonth)

	r = test.Request(suite.T(), http.MethodPut, g.Data.Links.Self, map[string]any{"amount": -5})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPut, fmt.Sprintf("http://example.com/v1/goals/%s", uuid.New()), map[string]any{"amount": 5})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGoalsDelete() {
	c := createTestCategory(suite.T(), v1.CategoryEditable{})
	g := createTestGoal(suite.T(), c.Data.ID, v1.GoalEditable{Amount: 100})

	r := test.Request(suite.T(), http.MethodDelete, g.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, g.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// The category can get a new goal
	createTestGoal(suite.T(), c.Data.ID, v1.GoalEditable{Amount: 200})
}
