package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"gorm.io/gorm"
)

type SplitEditable struct {
	ID           uuid.UUID        `json:"id" example:"d7e6c0a1-5c2b-4a9f-9d8e-1f2a3b4c5d6e"`             // ID of the split. Generated when not set.
	CategoryID   uuid.UUID        `json:"category_id" example:"3b1723fb-3ba1-4e1a-8b0a-0b1c26f8a5f2"`    // Category of the split
	Amount       int64            `json:"amount" example:"-2500"`                                        // Signed amount in cents, negative for outflows
	Memo         string           `json:"memo" example:"Birthday present" default:""`                    // Memo of the split
	Type         ledger.SplitType `json:"type" example:"USER" enums:"USER,SYSTEM" default:"USER"`        // USER splits are entered, SYSTEM splits carry the share of a debtor
	DebtorUserID *uuid.UUID       `json:"debtor_user_id" example:"0c1b4b1e-8a4b-4c62-9a8e-7f1f0c1c6b2a"` // User owing the share of a SYSTEM split
	ParentID     *uuid.UUID       `json:"parent_id" example:"d7e6c0a1-5c2b-4a9f-9d8e-1f2a3b4c5d6e"`      // USER split a SYSTEM split was taken from
}

type TransactionEditable struct {
	AccountID uuid.UUID       `json:"account_id" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // ID of the account
	PayeeID   *uuid.UUID      `json:"payee_id" example:"5d2a4e8b-0c27-4b1c-bd8e-8f4f5e4a3b2c"`   // ID of the payee
	Date      time.Time       `json:"date" example:"1815-12-10T18:43:00.271152Z"`                // Date of the transaction. Defaults to the time of creation.
	Memo      string          `json:"memo" example:"Weekly groceries" default:""`                // Memo of the transaction
	Amount    int64           `json:"amount" example:"-4500"`                                    // Signed amount in cents, negative for outflows
	Cleared   bool            `json:"cleared" example:"true" default:"false"`                    // Has the transaction cleared the bank?
	Splits    []SplitEditable `json:"splits"`                                                    // Splits of the transaction. They must add up to the amount.
}

// transaction returns the transaction as used by the ledger package
func (editable TransactionEditable) transaction() ledger.Transaction {
	splits := make([]ledger.Split, 0, len(editable.Splits))
	for _, s := range editable.Splits {
		splits = append(splits, ledger.Split{
			ID:           s.ID,
			CategoryID:   s.CategoryID,
			Amount:       s.Amount,
			Memo:         s.Memo,
			Type:         s.Type,
			DebtorUserID: value(s.DebtorUserID),
			ParentID:     value(s.ParentID),
		})
	}

	return ledger.Transaction{
		AccountID: editable.AccountID,
		PayeeID:   value(editable.PayeeID),
		Date:      editable.Date,
		Memo:      editable.Memo,
		Amount:    editable.Amount,
		Cleared:   editable.Cleared,
		Splits:    splits,
	}
}

func value(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}

type TransactionLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/transactions/6f6cf7a5-62c6-4e6b-a3d9-ef5d9c5d1d43"` // The transaction itself
	Account string `json:"account" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`  // The account of the transaction
}

type Transaction struct {
	models.DefaultModel
	TransactionEditable
	ImportHash string           `json:"import_hash" example:"372d8ee7b4d3e1ac43b3bc9e1e3c1d6b5b0f3b1b7e84e4c6b3c7d0f8c5e5f5a8"` // SHA256 of the imported statement line
	Links      TransactionLinks `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	splits := make([]SplitEditable, 0, len(model.Splits))
	for _, s := range model.Splits {
		splits = append(splits, SplitEditable{
			ID:           s.ID,
			CategoryID:   s.CategoryID,
			Amount:       s.Amount,
			Memo:         s.Memo,
			Type:         s.Type,
			DebtorUserID: s.DebtorUserID,
			ParentID:     s.ParentID,
		})
	}

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			AccountID: model.AccountID,
			PayeeID:   model.PayeeID,
			Date:      model.Date,
			Memo:      model.Memo,
			Amount:    model.Amount,
			Cleared:   model.Cleared,
			Splits:    splits,
		},
		ImportHash: model.ImportHash,
		Links: TransactionLinks{
			Self:    fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
			Account: fmt.Sprintf("%s/v1/accounts/%s", url, model.AccountID),
		},
	}
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Transaction `json:"data"`                                                          // Data for the transaction
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type RegisterResponse struct {
	Data       []ledger.Row `json:"data"`                                                          // Rows of the register
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information, counting transactions
}

// TransactionQueryFilter filters the transactions of an account or category.
type TransactionQueryFilter struct {
	Start  types.Month `form:"start" filterField:"false"`  // First month to include
	End    types.Month `form:"end" filterField:"false"`    // Last month to include
	Search string      `form:"search" filterField:"false"` // Memo contains this string
	Offset uint        `form:"offset" filterField:"false"` // The offset of the first transaction returned. Defaults to 0.
	Limit  int         `form:"limit" filterField:"false"`  // Maximum number of transactions to return. Defaults to 50.
}

// scope restricts a transaction query to the filter.
func (f TransactionQueryFilter) scope(db *gorm.DB) *gorm.DB {
	if !f.Start.IsZero() {
		db = db.Where("transactions.date >= date(?)", f.Start)
	}

	if !f.End.IsZero() {
		db = db.Where("transactions.date < date(?)", f.End.AddDate(0, 1))
	}

	if f.Search != "" {
		db = db.Where("transactions.memo LIKE ?", "%"+f.Search+"%")
	}

	return db
}

type LineEditable struct {
	ID         uuid.UUID `json:"id"`                                                         // ID of an existing split, if any
	CategoryID uuid.UUID `json:"category_id" example:"3b1723fb-3ba1-4e1a-8b0a-0b1c26f8a5f2"` // Category of the line
	Inflow     int64     `json:"inflow" example:"0"`                                         // Inflow in cents
	Outflow    int64     `json:"outflow" example:"1250"`                                     // Outflow in cents
	Memo       string    `json:"memo" example:"Cheese"`                                      // Memo of the line
}

// DraftEditable is a transaction as entered or imported, before validation.
type DraftEditable struct {
	AccountID  uuid.UUID      `json:"account_id" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // ID of the account
	PayeeID    uuid.UUID      `json:"payee_id"`                                                  // ID of the payee. Takes precedence over payee_name.
	PayeeName  string         `json:"payee_name" example:"Corner Grocer"`                        // Payee as it appears on the statement
	CategoryID uuid.UUID      `json:"category_id"`                                               // Category for drafts without lines. Match rules set it when empty.
	Date       time.Time      `json:"date" example:"2024-05-12T00:00:00Z"`                       // Date of the transaction
	Memo       string         `json:"memo" example:"Card payment"`                               // Memo of the transaction
	Cleared    bool           `json:"cleared" example:"true"`                                    // Has the transaction cleared the bank?
	Inflow     int64          `json:"inflow" example:"0"`                                        // Inflow in cents
	Outflow    int64          `json:"outflow" example:"4500"`                                    // Outflow in cents
	Lines      []LineEditable `json:"lines"`                                                     // Split lines. Empty for a single category.
	SplitWith  []uuid.UUID    `json:"split_with"`                                                // Users sharing the expense
}

func (editable DraftEditable) draft() ledger.Draft {
	lines := make([]ledger.Line, 0, len(editable.Lines))
	for _, l := range editable.Lines {
		lines = append(lines, ledger.Line{
			ID:         l.ID,
			CategoryID: l.CategoryID,
			Inflow:     l.Inflow,
			Outflow:    l.Outflow,
			Memo:       l.Memo,
		})
	}

	return ledger.Draft{
		AccountID:  editable.AccountID,
		PayeeID:    editable.PayeeID,
		PayeeName:  editable.PayeeName,
		CategoryID: editable.CategoryID,
		Date:       editable.Date,
		Memo:       editable.Memo,
		Cleared:    editable.Cleared,
		Inflow:     editable.Inflow,
		Outflow:    editable.Outflow,
		Lines:      lines,
		SplitWith:  editable.SplitWith,
	}
}

type DraftResponse struct {
	Error     *string      `json:"error" example:"Split amounts must add up to the transaction total. Required $45.00, got $40.00."` // The error, if any occurred
	Data      *Transaction `json:"data"`                                                                                             // The created transaction
	RuleID    *uuid.UUID   `json:"rule_id" example:"2d2c5c4e-5d0c-4e3f-bb06-6f0a7e8c3b57"`                                           // Match rule that set the category
	Duplicate bool         `json:"duplicate" example:"false"`                                                                        // The draft was imported before and has been skipped
}

type DraftCreateResponse struct {
	Error *string         `json:"error" example:"the request body must not be empty"` // The error, if any occurred
	Data  []DraftResponse `json:"data"`                                               // One result per draft, in order
}

func (r *DraftCreateResponse) appendError(err error, ruleID *uuid.UUID, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, DraftResponse{Error: &s, RuleID: ruleID})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}
