package app

import (
	"errors"
	"fmt"
)

// Business-rule errors surfaced by the engines. Rule-specific errors wrap
// ErrInvalidData (or ErrForbidden) so handlers can match on the family while
// callers still get a message naming the violated rule.
var (
	ErrForbidden   = errors.New("requesting user does not own this resource")
	ErrInvalidData = errors.New("invalid data")

	ErrAdminRequired = fmt.Errorf("%w: admin capability required", ErrForbidden)

	ErrInvalidAmount        = fmt.Errorf("%w: amount must be positive", ErrInvalidData)
	ErrInvalidAccountType   = fmt.Errorf("%w: account type must be CHECKING or SAVINGS", ErrInvalidData)
	ErrInvalidTransferType  = fmt.Errorf("%w: transaction type must be PIX, TED or DOC", ErrInvalidData)
	ErrMissingDestination   = fmt.Errorf("%w: a destination pix key or agency and account number is required", ErrInvalidData)
	ErrTransferToSelf       = fmt.Errorf("%w: origin and destination accounts must differ", ErrInvalidData)
	ErrInvalidPixKeyType    = fmt.Errorf("%w: pix key type must be EMAIL, PHONE or RANDOM", ErrInvalidData)
	ErrMissingPixKeyValue   = fmt.Errorf("%w: pix key value is required", ErrInvalidData)
	ErrEmptyCorrection      = fmt.Errorf("%w: a correction must change status or annotation", ErrInvalidData)
	ErrInvalidInstallments  = fmt.Errorf("%w: installment count must be at least 1", ErrInvalidData)
	ErrInterestRateRequired = fmt.Errorf("%w: interest rate must be provided and non-negative", ErrInvalidData)
	ErrInvalidDecision      = fmt.Errorf("%w: decision must be APPROVED or REJECTED", ErrInvalidData)
	ErrLoanNotApproved      = fmt.Errorf("%w: loan not approved", ErrInvalidData)
	ErrLoanNotDeletable     = fmt.Errorf("%w: only pending or rejected loans can be deleted", ErrInvalidData)
	ErrInvalidStatementType = fmt.Errorf("%w: statement type must be MONTHLY or CUSTOM", ErrInvalidData)
	ErrStartAfterEnd        = fmt.Errorf("%w: start date must not be after end date", ErrInvalidData)
	ErrEndInFuture          = fmt.Errorf("%w: end date must not be in the future", ErrInvalidData)
	ErrRangeTooWide         = fmt.Errorf("%w: date range must not exceed one year", ErrInvalidData)

	ErrTransferRateLimited = errors.New("transfer rate limit exceeded")
)
