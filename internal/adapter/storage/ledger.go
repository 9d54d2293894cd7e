package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/core/domain"
)

// LedgerRepository is the Postgres implementation of ledger.Store. Every
// mutating method runs inside one pgx transaction: the balance write, the
// transaction row and the webhook job commit together, and any error on the
// way rolls the whole unit back.
type LedgerRepository struct {
	db         *pgxpool.Pool
	webhookURL string
}

// NewLedgerRepository builds the repository. webhookURL may be empty, in
// which case committed movements enqueue no notification jobs.
func NewLedgerRepository(db *pgxpool.Pool, webhookURL string) *LedgerRepository {
	return &LedgerRepository{db: db, webhookURL: webhookURL}
}

func (r *LedgerRepository) CreateAccount(ctx context.Context, ownerID uuid.UUID, accType domain.AccountType) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (owner_id, account_type, balance, status)
		VALUES ($1, $2, 0, 'ACTIVE')
		RETURNING id, owner_id, account_type, balance, status, created_at
	`
	var acc domain.Account
	err := r.db.QueryRow(ctx, query, ownerID, accType).Scan(
		&acc.ID, &acc.OwnerID, &acc.Type, &acc.Balance, &acc.Status, &acc.CreatedAt,
	)
	if err != nil {
		return nil, classify(err)
	}
	return &acc, nil
}

// Deposit credits the account and appends the deposit row in one unit. The
// UPDATE filters on owner and ACTIVE status, so a wrong owner, a wrong id and
// a blocked account all look the same: zero rows touched.
func (r *LedgerRepository) Deposit(ctx context.Context, ownerID uuid.UUID, accountID, amount int64) (*domain.Transaction, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, classify(err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE accounts SET balance = balance + $1
		WHERE id = $2 AND owner_id = $3 AND status = 'ACTIVE'`,
		amount, accountID, ownerID)
	if err != nil {
		return nil, classify(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrAccountNotEligible
	}

	txn := domain.Transaction{ToAccount: &accountID, Amount: amount, Type: domain.TypeDeposit}
	err = tx.QueryRow(ctx, `
		INSERT INTO transactions (to_account, amount, transaction_type)
		VALUES ($1, $2, 'deposit') RETURNING id, created_at`,
		accountID, amount).Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		return nil, classify(err)
	}

	if err := r.enqueueWebhook(ctx, tx, &txn); err != nil {
		return nil, classify(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, classify(err)
	}
	return &txn, nil
}

// Transfer moves money between two accounts. The source row is locked with
// FOR UPDATE from the sufficiency check through the debit, so two concurrent
// transfers from the same account serialize instead of both passing the
// check against a stale balance. Opposing transfers that lock in reverse
// order are broken up by Postgres deadlock detection and surface as
// ErrRetryableConflict.
func (r *LedgerRepository) Transfer(ctx context.Context, ownerID uuid.UUID, fromID, toID, amount int64, policy domain.TransferPolicy) (*domain.Transaction, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, classify(err)
	}
	defer tx.Rollback(ctx)

	var balance int64
	err = tx.QueryRow(ctx, `
		SELECT balance FROM accounts
		WHERE id = $1 AND owner_id = $2 AND status = 'ACTIVE'
		FOR UPDATE`,
		fromID, ownerID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotEligible
	}
	if err != nil {
		return nil, classify(err)
	}
	if balance < amount {
		return nil, domain.ErrInsufficientFunds
	}

	if policy.ValidateDestination && toID != fromID {
		var status domain.AccountStatus
		err = tx.QueryRow(ctx, `SELECT status FROM accounts WHERE id = $1 FOR UPDATE`, toID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) || (err == nil && status != domain.StatusActive) {
			return nil, domain.ErrAccountNotEligible
		}
		if err != nil {
			return nil, classify(err)
		}
	}

	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = balance - $1 WHERE id = $2`, amount, fromID); err != nil {
		return nil, classify(err)
	}
	tag, err := tx.Exec(ctx, `UPDATE accounts SET balance = balance + $1 WHERE id = $2`, amount, toID)
	if err != nil {
		return nil, classify(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	txn := domain.Transaction{FromAccount: &fromID, ToAccount: &toID, Amount: amount, Type: domain.TypeTransfer}
	err = tx.QueryRow(ctx, `
		INSERT INTO transactions (from_account, to_account, amount, transaction_type)
		VALUES ($1, $2, $3, 'transfer') RETURNING id, created_at`,
		fromID, toID, amount).Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		return nil, classify(err)
	}

	if err := r.enqueueWebhook(ctx, tx, &txn); err != nil {
		return nil, classify(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, classify(err)
	}
	return &txn, nil
}

func (r *LedgerRepository) Deactivate(ctx context.Context, ownerID uuid.UUID, accountID int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts SET status = 'BLOCKED'
		WHERE id = $1 AND owner_id = $2`,
		accountID, ownerID)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LedgerRepository) ListAccounts(ctx context.Context, ownerID uuid.UUID) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, account_type, balance, status, created_at
		FROM accounts
		WHERE owner_id = $1
		ORDER BY id ASC`, ownerID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var acc domain.Account
		if err := rows.Scan(&acc.ID, &acc.OwnerID, &acc.Type, &acc.Balance, &acc.Status, &acc.CreatedAt); err != nil {
			return nil, classify(err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return accounts, nil
}

// ListTransactions checks ownership before exposing any history: the account
// must belong to the caller even though other people's transfers reference
// it. Rows come back newest first.
func (r *LedgerRepository) ListTransactions(ctx context.Context, ownerID uuid.UUID, accountID int64) ([]domain.Transaction, error) {
	var one int
	err := r.db.QueryRow(ctx, `SELECT 1 FROM accounts WHERE id = $1 AND owner_id = $2`, accountID, ownerID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, classify(err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, from_account, to_account, amount, transaction_type, created_at
		FROM transactions
		WHERE from_account = $1 OR to_account = $1
		ORDER BY created_at DESC, id DESC`, accountID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		if err := rows.Scan(&txn.ID, &txn.FromAccount, &txn.ToAccount, &txn.Amount, &txn.Type, &txn.CreatedAt); err != nil {
			return nil, classify(err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return txns, nil
}

// enqueueWebhook adds a notification job inside the caller's transaction so
// a job exists exactly when the movement committed.
func (r *LedgerRepository) enqueueWebhook(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	if r.webhookURL == "" {
		return nil
	}
	payload, err := json.Marshal(map[string]interface{}{
		"event": "transaction.completed",
		"data": map[string]interface{}{
			"transaction_type": txn.Type,
			"from_account":     txn.FromAccount,
			"to_account":       txn.ToAccount,
			"amount":           domain.FormatAmount(txn.Amount),
			"timestamp":        time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `INSERT INTO webhook_jobs (url, payload) VALUES ($1, $2)`, r.webhookURL, payload)
	return err
}
