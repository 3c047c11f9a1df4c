package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/models"
)

type AccountEditable struct {
	Name string             `json:"name" example:"Checking" default:""`               // Name of the account
	Type models.AccountType `json:"account_type" example:"2" minimum:"1" maximum:"3"` // CASH (1), DEBIT (2) or CREDIT (3)
}

// model returns the database resource for the API representation of the editable fields
func (editable AccountEditable) model() models.Account {
	return models.Account{
		Name: editable.Name,
		Type: editable.Type,
	}
}

type AccountLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                      // The account itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2/transactions"` // Transactions of this account
	Register     string `json:"register" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2/register"`         // Register rows of this account
	Import       string `json:"import" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2/import"`             // Statement import for this account
}

type Account struct {
	models.DefaultModel
	AccountEditable
	Links AccountLinks `json:"links"`
}

// newAccount returns the API v1 representation of the resource
func newAccount(c *gin.Context, model models.Account) Account {
	url := c.GetString(string(models.DBContextURL))
	self := fmt.Sprintf("%s/v1/accounts/%s", url, model.ID)

	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Name: model.Name,
			Type: model.Type,
		},
		Links: AccountLinks{
			Self:         self,
			Transactions: self + "/transactions",
			Register:     self + "/register",
			Import:       self + "/import",
		},
	}
}

type AccountListResponse struct {
	Data       []Account   `json:"data"`                                                          // List of accounts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AccountCreateResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []AccountResponse `json:"data"`                                                          // List of created accounts
}

func (a *AccountCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AccountResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AccountResponse struct {
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Account `json:"data"`                                                          // Data for the account
}

type AccountQueryFilter struct {
	Name   string             `form:"name" filterField:"false"`   // By name
	Search string             `form:"search" filterField:"false"` // By string in name
	Type   models.AccountType `form:"account_type"`               // By account type
	Offset uint               `form:"offset" filterField:"false"` // The offset of the first account returned. Defaults to 0.
	Limit  int                `form:"limit" filterField:"false"`  // Maximum number of accounts to return. Defaults to 50.
}
