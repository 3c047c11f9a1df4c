package models

import (
	"errors"
	"fmt"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

var (
	ErrReferenceNotFound      = fmt.Errorf("%w resource matching one of the referenced IDs", ErrResourceNotFound)
	ErrResourceInUse          = errors.New("the resource is still in use by other resources and cannot be deleted")
	ErrAccountNameNotUnique   = errors.New("the account name must be unique")
	ErrCategoryNameNotUnique  = errors.New("the category name must be unique")
	ErrPayeeNameNotUnique     = errors.New("the payee name must be unique")
	ErrGoalCategoryNotUnique  = errors.New("the category already has a goal")
	ErrAllocationNotUnique    = errors.New("there already is an allocation for this category and month")
	ErrTransferSameCategory   = errors.New("source and destination category of a transfer must be different")
	ErrAccountTypeInvalid     = errors.New("the account type must be one of CASH (1), DEBIT (2) or CREDIT (3)")
	ErrMatchRulePatternEmpty  = errors.New("the match rule pattern must not be empty")
	ErrUserFirstNameEmpty     = errors.New("the first name of a user must not be empty")
	ErrTransactionSplitsEmpty = errors.New("a transaction must have at least one split")
)
