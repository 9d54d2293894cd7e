// Package ledger is the mutation engine: every balance change in the system
// goes through it. The service validates and classifies; the Store executes
// each operation as one atomic unit against the database, so a failure at any
// point leaves balances and the transaction log untouched.
package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/core/domain"
)

// Store is the persistence port. Implementations must make each method a
// single atomic unit: the balance write and its transaction row commit
// together or not at all, and the Transfer balance check must hold a lock (or
// equivalent) through the debit so two concurrent transfers cannot both pass
// it against a stale balance.
type Store interface {
	CreateAccount(ctx context.Context, ownerID uuid.UUID, accType domain.AccountType) (*domain.Account, error)
	Deposit(ctx context.Context, ownerID uuid.UUID, accountID, amount int64) (*domain.Transaction, error)
	Transfer(ctx context.Context, ownerID uuid.UUID, fromID, toID, amount int64, policy domain.TransferPolicy) (*domain.Transaction, error)
	Deactivate(ctx context.Context, ownerID uuid.UUID, accountID int64) error
	ListAccounts(ctx context.Context, ownerID uuid.UUID) ([]domain.Account, error)
	ListTransactions(ctx context.Context, ownerID uuid.UUID, accountID int64) ([]domain.Transaction, error)
}

type Service struct {
	store  Store
	policy domain.TransferPolicy
}

func NewService(store Store, policy domain.TransferPolicy) *Service {
	return &Service{store: store, policy: policy}
}

// CreateAccount opens a new account for ownerID with a zero balance. Account
// creation is not a money event, so no transaction row is written.
func (s *Service) CreateAccount(ctx context.Context, ownerID uuid.UUID, accType domain.AccountType) (*domain.Account, error) {
	if ownerID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if !domain.ValidAccountType(accType) {
		return nil, fmt.Errorf("%w: invalid account type %q", domain.ErrInvalidArgument, accType)
	}
	return s.store.CreateAccount(ctx, ownerID, accType)
}

// Deposit credits amount cents to an ACTIVE account owned by ownerID and
// appends the matching deposit row in the same unit.
func (s *Service) Deposit(ctx context.Context, ownerID uuid.UUID, accountID, amount int64) (*domain.Transaction, error) {
	if ownerID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if accountID <= 0 {
		return nil, fmt.Errorf("%w: missing account id", domain.ErrInvalidArgument)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", domain.ErrInvalidArgument)
	}
	return s.store.Deposit(ctx, ownerID, accountID, amount)
}

// Transfer moves amount cents from an ACTIVE account owned by ownerID to any
// existing account. The sufficiency check, both balance writes and the
// transfer row are one atomic unit; a successful transfer conserves the sum
// of the two balances.
func (s *Service) Transfer(ctx context.Context, ownerID uuid.UUID, fromID, toID, amount int64) (*domain.Transaction, error) {
	if ownerID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if fromID <= 0 || toID <= 0 {
		return nil, fmt.Errorf("%w: missing account id", domain.ErrInvalidArgument)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", domain.ErrInvalidArgument)
	}
	if fromID == toID && !s.policy.AllowSelfTransfer {
		return nil, fmt.Errorf("%w: source and destination are the same account", domain.ErrInvalidArgument)
	}
	return s.store.Transfer(ctx, ownerID, fromID, toID, amount, s.policy)
}

// Deactivate blocks the account, keeping its balance. The transition is
// one-way; a BLOCKED account rejects deposits and outgoing transfers.
func (s *Service) Deactivate(ctx context.Context, ownerID uuid.UUID, accountID int64) error {
	if ownerID == uuid.Nil {
		return domain.ErrUnauthorized
	}
	if accountID <= 0 {
		return fmt.Errorf("%w: missing account id", domain.ErrInvalidArgument)
	}
	return s.store.Deactivate(ctx, ownerID, accountID)
}

// ListAccounts returns the caller's accounts ordered by id ascending.
func (s *Service) ListAccounts(ctx context.Context, ownerID uuid.UUID) ([]domain.Account, error) {
	if ownerID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	return s.store.ListAccounts(ctx, ownerID)
}

// ListTransactions returns every movement touching the account, newest first.
// The account must belong to the caller; history of other people's accounts
// is ErrForbidden even when the caller sent money to them.
func (s *Service) ListTransactions(ctx context.Context, ownerID uuid.UUID, accountID int64) ([]domain.Transaction, error) {
	if ownerID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if accountID <= 0 {
		return nil, fmt.Errorf("%w: missing account id", domain.ErrInvalidArgument)
	}
	return s.store.ListTransactions(ctx, ownerID, accountID)
}
