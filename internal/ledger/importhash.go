package ledger

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// ImportHash identifies a draft produced by a statement import so that the
// same statement line is not imported twice.
func ImportHash(d Draft) string {
	input := fmt.Sprintf("%s|%s|%s|%d|%d|%s",
		d.AccountID, d.Date.UTC().Format(time.DateOnly), d.PayeeName, d.Inflow, d.Outflow, d.Memo)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(input)))
}
