// Package ledger implements the budgeting rules: goal progress, category
// balances, split validation, transfers between categories and the
// arithmetic used for quick numeric entry.
//
// Nothing in this package performs I/O.
package ledger

import (
	"errors"
	"fmt"

	"github.com/pocketledger/backend/internal/currency"
)

// Kind classifies errors returned by this package.
type Kind string

const (
	KindNone            Kind = ""
	KindValidation      Kind = "VALIDATION"
	KindDirection       Kind = "DIRECTION"
	KindSplitBalance    Kind = "SPLIT_BALANCE"
	KindEvaluation      Kind = "EVALUATION"
	KindTransferCeiling Kind = "TRANSFER_CEILING"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrDirection       = errors.New("inflow and outflow are both set")
	ErrSplitBalance    = errors.New("splits do not add up to the total")
	ErrEvaluation      = errors.New("expression cannot be evaluated")
	ErrTransferCeiling = errors.New("transfer exceeds available funds")

	// ErrNoChange is returned by Evaluate for empty input. The caller keeps
	// its previous value.
	ErrNoChange = errors.New("no change")
)

// ValidationError is returned when input fails a precondition.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string        { return e.Message }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func validation(format string, a ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, a...)}
}

// DirectionError is returned when inflow and outflow are both nonzero.
type DirectionError struct {
	Split bool // true if the offending amounts belong to a split line
}

func (e *DirectionError) Error() string {
	if e.Split {
		return "Each split can only have inflow or outflow, not both."
	}
	return "Transaction cannot have both inflow and outflow."
}

func (e *DirectionError) Is(target error) bool { return target == ErrDirection }

// SplitBalanceError is returned when splits do not sum to the transaction amount.
type SplitBalanceError struct {
	Required int64
	Actual   int64
}

func (e *SplitBalanceError) Error() string {
	return fmt.Sprintf("Split amounts must add up to the transaction total. Required %s, got %s.",
		currency.Format(e.Required), currency.Format(e.Actual))
}

func (e *SplitBalanceError) Is(target error) bool { return target == ErrSplitBalance }

// EvaluationError is returned for expressions that have no finite result.
type EvaluationError struct {
	Expression string
	Message    string
}

func (e *EvaluationError) Error() string        { return e.Message }
func (e *EvaluationError) Is(target error) bool { return target == ErrEvaluation }

// TransferCeilingError is returned when a transfer exceeds the source
// category's available amount.
type TransferCeilingError struct {
	Available int64
}

func (e *TransferCeilingError) Error() string {
	return "Move amount cannot exceed " + currency.Format(e.Available)
}

func (e *TransferCeilingError) Is(target error) bool { return target == ErrTransferCeiling }

// KindOf returns the Kind of err, or KindNone if err did not originate
// in this package.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrDirection):
		return KindDirection
	case errors.Is(err, ErrSplitBalance):
		return KindSplitBalance
	case errors.Is(err, ErrEvaluation):
		return KindEvaluation
	case errors.Is(err, ErrTransferCeiling):
		return KindTransferCeiling
	}

	return KindNone
}

// IsLedgerError reports if err is one of the errors of this package.
func IsLedgerError(err error) bool {
	return KindOf(err) != KindNone
}
