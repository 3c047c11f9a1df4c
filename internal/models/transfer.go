package models

import (
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/types"
	"gorm.io/gorm"
)

// CategoryTransfer moves money between two categories in a month.
type CategoryTransfer struct {
	DefaultModel
	FromCategoryID uuid.UUID   `gorm:"index;check:transfer_categories_different,from_category_id != to_category_id"`
	FromCategory   Category    `gorm:"constraint:OnDelete:CASCADE"`
	ToCategoryID   uuid.UUID   `gorm:"index"`
	ToCategory     Category    `gorm:"constraint:OnDelete:CASCADE"`
	Month          types.Month `gorm:"index"`
	Amount         int64
}

// ApplyTransfer validates and stores a transfer. The amount available in
// the source category is read in the same database transaction the
// transfer is written in.
func ApplyTransfer(db *gorm.DB, from, to uuid.UUID, amount int64, month types.Month) (CategoryTransfer, error) {
	var transfer CategoryTransfer

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&Category{}, from).Error
		if err != nil {
			return err
		}

		stats, err := CategoryStats(tx, from, month, month)
		if err != nil {
			return err
		}

		t, err := ledger.NewTransfer(from, to, amount, month.Time(), stats.Available)
		if err != nil {
			return err
		}

		err = tx.First(&Category{}, to).Error
		if err != nil {
			return err
		}

		transfer = CategoryTransfer{
			FromCategoryID: t.FromCategoryID,
			ToCategoryID:   t.ToCategoryID,
			Month:          t.Month,
			Amount:         t.Amount,
		}

		return tx.Omit("FromCategory", "ToCategory").Create(&transfer).Error
	})
	if err != nil {
		return CategoryTransfer{}, err
	}

	return transfer, nil
}
