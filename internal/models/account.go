package models

import (
	"strings"

	"gorm.io/gorm"
)

type AccountType int

const (
	AccountTypeCash   AccountType = 1
	AccountTypeDebit  AccountType = 2
	AccountTypeCredit AccountType = 3
)

// Account holds transactions. Deleting an account deletes its transactions.
type Account struct {
	DefaultModel
	Name         string        `gorm:"uniqueIndex"`
	Type         AccountType   `gorm:"check:account_type_valid,type >= 1 AND type <= 3"`
	Transactions []Transaction `gorm:"constraint:OnDelete:CASCADE"`
}

func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	return nil
}
