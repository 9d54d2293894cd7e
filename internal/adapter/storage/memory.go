package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/core/domain"
)

// MemoryStore is an in-memory ledger.Store with the same semantics as the
// Postgres repository. A single mutex serializes every operation, which
// makes each one trivially atomic; it exists so the engine and the HTTP
// layer can be tested without a database.
type MemoryStore struct {
	mu       sync.Mutex
	nextAcct int64
	nextTxn  int64
	accounts map[int64]*domain.Account
	txns     []domain.Transaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[int64]*domain.Account)}
}

func (m *MemoryStore) CreateAccount(ctx context.Context, ownerID uuid.UUID, accType domain.AccountType) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextAcct++
	acc := &domain.Account{
		ID:        m.nextAcct,
		OwnerID:   ownerID,
		Type:      accType,
		Balance:   0,
		Status:    domain.StatusActive,
		CreatedAt: time.Now(),
	}
	m.accounts[acc.ID] = acc
	cp := *acc
	return &cp, nil
}

func (m *MemoryStore) Deposit(ctx context.Context, ownerID uuid.UUID, accountID, amount int64) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.accounts[accountID]
	if !ok || acc.OwnerID != ownerID || acc.Status != domain.StatusActive {
		return nil, domain.ErrAccountNotEligible
	}
	acc.Balance += amount
	return m.appendTxn(nil, &accountID, amount, domain.TypeDeposit), nil
}

func (m *MemoryStore) Transfer(ctx context.Context, ownerID uuid.UUID, fromID, toID, amount int64, policy domain.TransferPolicy) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	from, ok := m.accounts[fromID]
	if !ok || from.OwnerID != ownerID || from.Status != domain.StatusActive {
		return nil, domain.ErrAccountNotEligible
	}
	if from.Balance < amount {
		return nil, domain.ErrInsufficientFunds
	}
	to, ok := m.accounts[toID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if policy.ValidateDestination && toID != fromID && to.Status != domain.StatusActive {
		return nil, domain.ErrAccountNotEligible
	}

	from.Balance -= amount
	to.Balance += amount
	return m.appendTxn(&fromID, &toID, amount, domain.TypeTransfer), nil
}

func (m *MemoryStore) Deactivate(ctx context.Context, ownerID uuid.UUID, accountID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.accounts[accountID]
	if !ok || acc.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	acc.Status = domain.StatusBlocked
	return nil
}

func (m *MemoryStore) ListAccounts(ctx context.Context, ownerID uuid.UUID) ([]domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.Account
	// map iteration order is random; ids are sequential so a linear scan
	// keeps the listing sorted.
	for id := int64(1); id <= m.nextAcct; id++ {
		if acc, ok := m.accounts[id]; ok && acc.OwnerID == ownerID {
			out = append(out, *acc)
		}
	}
	return out, nil
}

func (m *MemoryStore) ListTransactions(ctx context.Context, ownerID uuid.UUID, accountID int64) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.accounts[accountID]
	if !ok || acc.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}

	var out []domain.Transaction
	for i := len(m.txns) - 1; i >= 0; i-- {
		txn := m.txns[i]
		if (txn.FromAccount != nil && *txn.FromAccount == accountID) ||
			(txn.ToAccount != nil && *txn.ToAccount == accountID) {
			out = append(out, txn)
		}
	}
	return out, nil
}

// Balance reads the current balance directly; test helper.
func (m *MemoryStore) Balance(accountID int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[accountID]; ok {
		return acc.Balance
	}
	return 0
}

// TransactionCount reports the total number of log rows; test helper.
func (m *MemoryStore) TransactionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.txns)
}

func (m *MemoryStore) appendTxn(from, to *int64, amount int64, txnType domain.TransactionType) *domain.Transaction {
	m.nextTxn++
	txn := domain.Transaction{
		ID:        m.nextTxn,
		Amount:    amount,
		Type:      txnType,
		CreatedAt: time.Now(),
	}
	if from != nil {
		v := *from
		txn.FromAccount = &v
	}
	if to != nil {
		v := *to
		txn.ToAccount = &v
	}
	m.txns = append(m.txns, txn)
	return &txn
}
