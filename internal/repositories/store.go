package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/equity-registry/internal/models"
)

// DB is the subset of *pgxpool.Pool the repositories are written against.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

// AccountStore is the durable key-value map from account id to Account
// record. Records are never deleted.
type AccountStore interface {
	// Get returns the stored account, or (nil, nil) when no account
	// exists for the id.
	Get(ctx context.Context, id uuid.UUID) (*models.Account, error)

	// Insert stores a brand-new account at row version 1. Returns
	// utils.ErrAccountExists when the id is already taken.
	Insert(ctx context.Context, account *models.Account) error

	// UpdateIfVersion writes the account only if its stored row version
	// still equals expected. Returns false (and no error) on a version
	// mismatch.
	UpdateIfVersion(ctx context.Context, account *models.Account, expected int64) (bool, error)

	// UpdatePairIfVersion writes both accounts as a single unit: either
	// both rows are updated or neither is. Returns false when either
	// stored row version no longer matches its expected value.
	UpdatePairIfVersion(ctx context.Context, a, b *models.Account, expectedA, expectedB int64) (bool, error)
}
