package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type SplitType string

const (
	SplitTypeUser   SplitType = "USER"
	SplitTypeSystem SplitType = "SYSTEM"
)

// Split is one category-tagged portion of a transaction.
//
// SYSTEM splits carry the share of a debtor. ParentID is the USER split
// the share was taken from.
type Split struct {
	ID           uuid.UUID
	CategoryID   uuid.UUID
	Amount       int64
	Memo         string
	Type         SplitType
	DebtorUserID uuid.UUID
	ParentID     uuid.UUID
}

// Transaction is a validated transaction. It always has at least one split
// and its splits sum to Amount.
type Transaction struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	PayeeID   uuid.UUID
	Date      time.Time
	Memo      string
	Amount    int64
	Cleared   bool
	Splits    []Split
}

// Line is a split as entered by a user.
type Line struct {
	ID         uuid.UUID
	CategoryID uuid.UUID
	Inflow     int64
	Outflow    int64
	Memo       string
}

// Draft is a transaction as entered by a user or produced by an import,
// before validation.
type Draft struct {
	AccountID  uuid.UUID
	PayeeID    uuid.UUID
	PayeeName  string // used for match rules when PayeeID is not known yet
	CategoryID uuid.UUID
	Date       time.Time
	Memo       string
	Cleared    bool
	Inflow     int64
	Outflow    int64
	Lines      []Line
	SplitWith  []uuid.UUID
}

// ResolveAmount turns a pair of non-negative inflow and outflow amounts into
// a signed amount.
func ResolveAmount(inflow, outflow int64) (int64, error) {
	return resolve(inflow, outflow, false)
}

func resolve(inflow, outflow int64, split bool) (int64, error) {
	if inflow < 0 || outflow < 0 {
		return 0, validation("Inflow and outflow must not be negative")
	}

	switch {
	case inflow > 0 && outflow > 0:
		return 0, &DirectionError{Split: split}
	case inflow > 0:
		return inflow, nil
	case outflow > 0:
		return -outflow, nil
	}

	return 0, nil
}

// Normalize validates the draft and converts it into a Transaction.
//
// A draft without lines is treated as a single line for the full amount
// in the draft's category. Each user named in SplitWith gets a SYSTEM
// split for their share of every line.
func (d Draft) Normalize() (Transaction, error) {
	if d.AccountID == uuid.Nil {
		return Transaction{}, validation("Choose an account")
	}

	amount, err := resolve(d.Inflow, d.Outflow, false)
	if err != nil {
		return Transaction{}, err
	}

	lines := d.Lines
	if len(lines) == 0 {
		lines = []Line{{
			CategoryID: d.CategoryID,
			Inflow:     d.Inflow,
			Outflow:    d.Outflow,
		}}
	}

	splits := make([]Split, 0, len(lines))
	for i, line := range lines {
		splitAmount, err := resolve(line.Inflow, line.Outflow, true)
		if err != nil {
			return Transaction{}, err
		}

		if line.CategoryID == uuid.Nil {
			if len(d.Lines) == 0 {
				return Transaction{}, validation("Choose a category")
			}
			return Transaction{}, validation("Choose a category for split %d", i+1)
		}

		splits = append(splits, Split{
			ID:         line.ID,
			CategoryID: line.CategoryID,
			Amount:     splitAmount,
			Memo:       line.Memo,
			Type:       SplitTypeUser,
		})
	}

	if err := checkSum(amount, splits); err != nil {
		return Transaction{}, err
	}

	return Transaction{
		AccountID: d.AccountID,
		PayeeID:   d.PayeeID,
		Date:      d.Date,
		Memo:      d.Memo,
		Amount:    amount,
		Cleared:   d.Cleared,
		Splits:    Share(splits, d.SplitWith),
	}, nil
}

// Share carves a SYSTEM split for every debtor out of every USER split.
// Each debtor gets amount / (debtors + 1), truncated towards zero, and the
// USER split keeps the rest. The sum of all splits does not change.
func Share(splits []Split, debtors []uuid.UUID) []Split {
	debtors = unique(debtors)
	if len(debtors) == 0 {
		return splits
	}

	out := make([]Split, 0, len(splits)*(len(debtors)+1))
	for _, s := range splits {
		if s.Type == SplitTypeSystem {
			out = append(out, s)
			continue
		}

		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}

		share := s.Amount / int64(len(debtors)+1)
		parent := s
		parent.Amount = s.Amount - share*int64(len(debtors))
		out = append(out, parent)

		for _, debtor := range debtors {
			out = append(out, Split{
				ID:           uuid.New(),
				CategoryID:   s.CategoryID,
				Amount:       share,
				Memo:         s.Memo,
				Type:         SplitTypeSystem,
				DebtorUserID: debtor,
				ParentID:     s.ID,
			})
		}
	}

	return out
}

func unique(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func checkSum(amount int64, splits []Split) error {
	var sum int64
	for _, s := range splits {
		sum += s.Amount
	}

	if sum != amount {
		return &SplitBalanceError{Required: amount, Actual: sum}
	}

	return nil
}

// CheckBalanced verifies the stored shape of a transaction: at least one
// split, a category and a known type on every split, a debtor on every
// SYSTEM split and splits that sum to amount. An empty type is a USER split.
func CheckBalanced(amount int64, splits []Split) error {
	if len(splits) == 0 {
		return validation("A transaction needs at least one split")
	}

	for i, s := range splits {
		if s.CategoryID == uuid.Nil {
			return validation("Choose a category for split %d", i+1)
		}

		switch s.Type {
		case "", SplitTypeUser:
		case SplitTypeSystem:
			if s.DebtorUserID == uuid.Nil {
				return validation("Split %d is a shared split without a debtor", i+1)
			}
		default:
			return validation("Split %d has the unknown type %q", i+1, s.Type)
		}
	}

	return checkSum(amount, splits)
}

// DraftFromTransaction returns the draft that produces the transaction, so
// that it can be edited. SYSTEM splits are folded back into the USER
// split they were taken from.
func DraftFromTransaction(tx Transaction) Draft {
	d := Draft{
		AccountID: tx.AccountID,
		PayeeID:   tx.PayeeID,
		Date:      tx.Date,
		Memo:      tx.Memo,
		Cleared:   tx.Cleared,
	}
	d.Inflow, d.Outflow = directions(tx.Amount)

	shares := make(map[uuid.UUID]int64)
	var debtors []uuid.UUID
	for _, s := range tx.Splits {
		if s.Type != SplitTypeSystem {
			continue
		}
		shares[s.ParentID] += s.Amount
		debtors = append(debtors, s.DebtorUserID)
	}
	d.SplitWith = unique(debtors)

	var lines []Line
	for _, s := range tx.Splits {
		if s.Type == SplitTypeSystem {
			continue
		}

		line := Line{ID: s.ID, CategoryID: s.CategoryID, Memo: s.Memo}
		line.Inflow, line.Outflow = directions(s.Amount + shares[s.ID])
		lines = append(lines, line)
	}

	if len(lines) == 1 {
		d.CategoryID = lines[0].CategoryID
		return d
	}

	d.Lines = lines
	return d
}

func directions(amount int64) (inflow, outflow int64) {
	if amount < 0 {
		return 0, -amount
	}
	return amount, 0
}

// RemoveSplit removes a USER split. SYSTEM splits cannot be removed and
// removing a USER split keeps the SYSTEM splits taken from it.
func RemoveSplit(splits []Split, id uuid.UUID) ([]Split, error) {
	for i, s := range splits {
		if s.ID != id {
			continue
		}

		if s.Type == SplitTypeSystem {
			return splits, validation("Shared splits are managed automatically and cannot be removed")
		}

		out := make([]Split, 0, len(splits)-1)
		out = append(out, splits[:i]...)
		return append(out, splits[i+1:]...), nil
	}

	return splits, validation("There is no split with ID %s", id)
}

// Row is one line of a register view.
type Row struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	SplitID       uuid.UUID `json:"split_id"` // uuid.Nil for the parent row of a split transaction
	AccountID     uuid.UUID `json:"account_id"`
	PayeeID       uuid.UUID `json:"payee_id"`
	CategoryID    uuid.UUID `json:"category_id"` // uuid.Nil for the parent row of a split transaction
	Date          time.Time `json:"date"`
	Label         string    `json:"label" example:"Split (3)"` // Category label override, set for split parents
	Memo          string    `json:"memo"`
	Amount        int64     `json:"amount" example:"-4500"`
	Type          SplitType `json:"type,omitempty" example:"USER"`
	DebtorUserID  uuid.UUID `json:"debtor_user_id"`
	Child         bool      `json:"child"`      // Row is a split of the transaction above it
	Selectable    bool      `json:"selectable"` // Row can be selected and deleted as a transaction
}

// Expand returns the rows a transaction is displayed as. A transaction with
// one split is a single row. Otherwise there is a parent row labelled
// "Split (n)" followed by one child row per split.
func Expand(tx Transaction) []Row {
	parent := Row{
		TransactionID: tx.ID,
		AccountID:     tx.AccountID,
		PayeeID:       tx.PayeeID,
		Date:          tx.Date,
		Memo:          tx.Memo,
		Amount:        tx.Amount,
		Selectable:    true,
	}

	if len(tx.Splits) == 1 {
		s := tx.Splits[0]
		parent.SplitID = s.ID
		parent.CategoryID = s.CategoryID
		parent.Type = s.Type
		parent.DebtorUserID = s.DebtorUserID
		return []Row{parent}
	}

	parent.Label = fmt.Sprintf("Split (%d)", len(tx.Splits))
	rows := append(make([]Row, 0, len(tx.Splits)+1), parent)

	for _, s := range tx.Splits {
		rows = append(rows, Row{
			TransactionID: tx.ID,
			SplitID:       s.ID,
			AccountID:     tx.AccountID,
			PayeeID:       tx.PayeeID,
			CategoryID:    s.CategoryID,
			Date:          tx.Date,
			Memo:          s.Memo,
			Amount:        s.Amount,
			Type:          s.Type,
			DebtorUserID:  s.DebtorUserID,
			Child:         true,
		})
	}

	return rows
}
