package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/types"
)

// Transfer moves money from one category to another within a month.
type Transfer struct {
	FromCategoryID uuid.UUID
	ToCategoryID   uuid.UUID
	Amount         int64
	Month          types.Month
}

// NewTransfer validates a transfer request. sourceAvailable is the amount
// available in the source category for the month.
//
// Checks run in order and the first failure is returned: the amount must
// be positive, it must not exceed sourceAvailable and the destination must
// be set and differ from the source.
func NewTransfer(from, to uuid.UUID, amount int64, month time.Time, sourceAvailable int64) (Transfer, error) {
	if amount <= 0 {
		return Transfer{}, validation("Enter an amount greater than 0")
	}

	if amount > sourceAvailable {
		return Transfer{}, &TransferCeilingError{Available: sourceAvailable}
	}

	if to == uuid.Nil || to == from {
		return Transfer{}, validation("Choose a category to move to")
	}

	if from == uuid.Nil {
		return Transfer{}, validation("Choose a category to move from")
	}

	return Transfer{
		FromCategoryID: from,
		ToCategoryID:   to,
		Amount:         amount,
		Month:          types.MonthOf(month),
	}, nil
}
