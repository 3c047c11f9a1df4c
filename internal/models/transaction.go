package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/ledger"
	"gorm.io/gorm"
)

// Transaction is money moving in or out of an account. Positive amounts are
// inflows. The splits of a transaction always sum to its amount.
type Transaction struct {
	DefaultModel
	AccountID  uuid.UUID
	PayeeID    *uuid.UUID
	Payee      *Payee
	Date       time.Time
	Memo       string
	Amount     int64
	Cleared    bool
	ImportHash string  `gorm:"index"` // SHA256 of the imported statement line, used for duplicate detection
	Splits     []Split `gorm:"constraint:OnDelete:CASCADE"`
}

// Split is a category-tagged portion of a transaction.
type Split struct {
	DefaultModel
	TransactionID uuid.UUID `gorm:"index"`
	Position      int       // Order of the split within the transaction
	CategoryID    uuid.UUID `gorm:"index"`
	Category      Category
	Amount        int64
	Memo          string
	Type          ledger.SplitType
	DebtorUserID  *uuid.UUID
	Debtor        *User      `gorm:"foreignKey:DebtorUserID"`
	ParentID      *uuid.UUID // USER split a SYSTEM split was taken from
}

func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Memo = strings.TrimSpace(t.Memo)
	t.ImportHash = strings.TrimSpace(t.ImportHash)

	if t.PayeeID != nil && *t.PayeeID == uuid.Nil {
		t.PayeeID = nil
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

func (s *Split) BeforeSave(_ *gorm.DB) error {
	s.Memo = strings.TrimSpace(s.Memo)
	if s.Type == "" {
		s.Type = ledger.SplitTypeUser
	}
	return nil
}

func optional(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func value(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}

// Ledger returns the transaction as used by the ledger package. Splits
// must have been preloaded.
func (t Transaction) Ledger() ledger.Transaction {
	splits := make([]ledger.Split, 0, len(t.Splits))
	for _, s := range t.Splits {
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
		ID:        t.ID,
		AccountID: t.AccountID,
		PayeeID:   value(t.PayeeID),
		Date:      t.Date,
		Memo:      t.Memo,
		Amount:    t.Amount,
		Cleared:   t.Cleared,
		Splits:    splits,
	}
}

func newSplits(transactionID uuid.UUID, splits []ledger.Split) []Split {
	out := make([]Split, 0, len(splits))
	for i, s := range splits {
		out = append(out, Split{
			DefaultModel:  DefaultModel{ID: s.ID},
			TransactionID: transactionID,
			Position:      i,
			CategoryID:    s.CategoryID,
			Amount:        s.Amount,
			Memo:          s.Memo,
			Type:          s.Type,
			DebtorUserID:  optional(s.DebtorUserID),
			ParentID:      optional(s.ParentID),
		})
	}
	return out
}

// PreloadSplits preloads the splits of transactions in their order.
func PreloadSplits(db *gorm.DB) *gorm.DB {
	return db.Preload("Splits", func(db *gorm.DB) *gorm.DB {
		return db.Order("splits.position ASC")
	})
}

// CreateTransaction stores a validated transaction with its splits.
func CreateTransaction(db *gorm.DB, tx ledger.Transaction, importHash string) (Transaction, error) {
	if err := ledger.CheckBalanced(tx.Amount, tx.Splits); err != nil {
		return Transaction{}, err
	}

	id := tx.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	transaction := Transaction{
		DefaultModel: DefaultModel{ID: id},
		AccountID:    tx.AccountID,
		PayeeID:      optional(tx.PayeeID),
		Date:         tx.Date,
		Memo:         tx.Memo,
		Amount:       tx.Amount,
		Cleared:      tx.Cleared,
		ImportHash:   importHash,
		Splits:       newSplits(id, tx.Splits),
	}

	err := db.Create(&transaction).Error
	if err != nil {
		return Transaction{}, err
	}

	return transaction, nil
}

// CreateTransactions stores all transactions or none of them.
func CreateTransactions(db *gorm.DB, txs []ledger.Transaction) ([]Transaction, error) {
	out := make([]Transaction, 0, len(txs))
	err := db.Transaction(func(db *gorm.DB) error {
		for _, tx := range txs {
			t, err := CreateTransaction(db, tx, "")
			if err != nil {
				return err
			}
			out = append(out, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ReplaceTransaction overwrites a transaction. The new splits replace all
// existing splits.
func ReplaceTransaction(db *gorm.DB, id uuid.UUID, tx ledger.Transaction) (Transaction, error) {
	if err := ledger.CheckBalanced(tx.Amount, tx.Splits); err != nil {
		return Transaction{}, err
	}

	var transaction Transaction
	err := db.Transaction(func(db *gorm.DB) error {
		err := db.First(&transaction, id).Error
		if err != nil {
			return err
		}

		err = db.Where("transaction_id = ?", id).Delete(&Split{}).Error
		if err != nil {
			return err
		}

		transaction.AccountID = tx.AccountID
		transaction.PayeeID = optional(tx.PayeeID)
		transaction.Date = tx.Date
		transaction.Memo = tx.Memo
		transaction.Amount = tx.Amount
		transaction.Cleared = tx.Cleared

		err = db.Omit("Splits").Save(&transaction).Error
		if err != nil {
			return err
		}

		splits := newSplits(id, tx.Splits)
		err = db.Create(&splits).Error
		if err != nil {
			return err
		}

		transaction.Splits = splits
		return nil
	})
	if err != nil {
		return Transaction{}, err
	}

	return transaction, nil
}

// ImportHashExists reports if a transaction with the import hash exists.
func ImportHashExists(db *gorm.DB, hash string) (bool, error) {
	var count int64
	err := db.Model(&Transaction{}).Where(&Transaction{ImportHash: hash}).Count(&count).Error
	return count > 0, err
}
