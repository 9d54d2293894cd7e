package domain

import "errors"

// Error taxonomy for ledger operations. Every failure leaving the ledger is
// wrapped around exactly one of these sentinels so the HTTP layer can map it
// with errors.Is. Only ErrRetryableConflict and ErrStoreUnavailable are safe
// for the caller to retry.
var (
	// ErrUnauthorized indicates the request carried no valid caller identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument indicates malformed or out-of-range input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAccountNotEligible indicates the account is missing, not owned by the
	// caller, or not ACTIVE where ACTIVE is required.
	ErrAccountNotEligible = errors.New("account not found or blocked")
	// ErrInsufficientFunds indicates a debit larger than the current balance.
	ErrInsufficientFunds = errors.New("insufficient balance")
	// ErrNotFound indicates the referenced resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates the resource exists but belongs to someone else.
	ErrForbidden = errors.New("forbidden")
	// ErrRetryableConflict indicates transient contention; the operation left
	// no state change and may be retried.
	ErrRetryableConflict = errors.New("transient conflict, retry")
	// ErrStoreUnavailable indicates the persistence layer failed.
	ErrStoreUnavailable = errors.New("store unavailable")
)
