package domain

import (
	"time"

	"github.com/google/uuid"
)

type AccountType string

const (
	Savings AccountType = "Savings"
	Current AccountType = "Current"
)

// ValidAccountType reports whether t is one of the supported account types.
func ValidAccountType(t AccountType) bool {
	return t == Savings || t == Current
}

type AccountStatus string

const (
	StatusActive  AccountStatus = "ACTIVE"
	StatusBlocked AccountStatus = "BLOCKED"
)

type TransactionType string

const (
	TypeDeposit  TransactionType = "deposit"
	TypeTransfer TransactionType = "transfer"
)

// Owner is a registered user of the bank. Identity resolution happens in the
// auth middleware; the ledger only ever sees the resolved owner id.
type Owner struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Account holds a single balance, stored in minor units (cents). Accounts are
// created ACTIVE with a zero balance and are blocked rather than deleted.
type Account struct {
	ID        int64
	OwnerID   uuid.UUID
	Type      AccountType
	Balance   int64
	Status    AccountStatus
	CreatedAt time.Time
}

// Transaction is one committed movement of money. Rows are append-only:
// FromAccount is nil for deposits, both sides are set for transfers. IDs are
// assigned by the store in creation order.
type Transaction struct {
	ID          int64
	FromAccount *int64
	ToAccount   *int64
	Amount      int64
	Type        TransactionType
	CreatedAt   time.Time
}

// TimestampLayout is how transaction timestamps are rendered to clients,
// e.g. "28-02-2026 04:05 PM".
const TimestampLayout = "02-01-2006 03:04 PM"

// TransferPolicy settles behavior the product has not fixed yet. With
// ValidateDestination off, a transfer credits any existing account blindly,
// BLOCKED or not; with it on, the destination must exist and be ACTIVE.
// AllowSelfTransfer gates from == to.
type TransferPolicy struct {
	ValidateDestination bool
	AllowSelfTransfer   bool
}
