package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/core/domain"
)

// OwnerRepository persists registered users and their API credentials. It
// backs the auth gateway; the ledger itself never reads these tables.
type OwnerRepository struct {
	db *pgxpool.Pool
}

func NewOwnerRepository(db *pgxpool.Pool) *OwnerRepository {
	return &OwnerRepository{db: db}
}

func (r *OwnerRepository) CreateOwner(ctx context.Context, fullName string) (*domain.Owner, error) {
	query := `
		INSERT INTO users (full_name)
		VALUES ($1)
		RETURNING id, full_name, created_at
	`
	var owner domain.Owner
	err := r.db.QueryRow(ctx, query, fullName).Scan(&owner.ID, &owner.FullName, &owner.CreatedAt)
	if err != nil {
		return nil, classify(err)
	}
	return &owner, nil
}

// SaveAPIKey stores the hashed key. The raw key is shown to the user once
// and never persisted.
func (r *OwnerRepository) SaveAPIKey(ctx context.Context, ownerID uuid.UUID, keyHash, keyPrefix string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO api_keys (user_id, key_hash, key_prefix) VALUES ($1, $2, $3)`,
		ownerID, keyHash, keyPrefix)
	return classify(err)
}
