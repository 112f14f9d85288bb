package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/equity-registry/internal/models"
	"github.com/poofware/equity-registry/internal/utils"
)

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type postgresStore struct {
	db DB
}

// NewPostgresAccountStore returns an AccountStore backed by a Postgres
// table holding one JSONB record per account, with a row_version column
// for optimistic locking.
func NewPostgresAccountStore(db DB) AccountStore {
	return &postgresStore{db: db}
}

// EnsureSchema creates the accounts table when it does not exist yet.
func EnsureSchema(ctx context.Context, db DB) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS accounts (
			id          UUID PRIMARY KEY,
			record      JSONB  NOT NULL,
			row_version BIGINT NOT NULL
		)`)
	return err
}

/* ---------- Reads ---------- */

func (s *postgresStore) Get(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var (
		raw     []byte
		version int64
	)
	err := s.db.QueryRow(ctx,
		`SELECT record, row_version FROM accounts WHERE id = $1`, id,
	).Scan(&raw, &version)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var acc models.Account
	if err := json.Unmarshal(raw, &acc); err != nil {
		return nil, fmt.Errorf("decode account %s: %w", id, err)
	}
	// The column is authoritative; the copy inside the JSONB record may
	// lag behind after blind server-side bumps.
	acc.SetRowVersion(version)
	return &acc, nil
}

/* ---------- Writes ---------- */

func (s *postgresStore) Insert(ctx context.Context, account *models.Account) error {
	account.SetRowVersion(1)
	raw, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("encode account %s: %w", account.ID, err)
	}

	tag, err := s.db.Exec(ctx, `
		INSERT INTO accounts (id, record, row_version)
		VALUES ($1, $2, 1)
		ON CONFLICT (id) DO NOTHING`,
		account.ID, raw,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrAccountExists
	}
	return nil
}

func (s *postgresStore) UpdateIfVersion(ctx context.Context, account *models.Account, expected int64) (bool, error) {
	raw, err := encodeAtVersion(account, expected+1)
	if err != nil {
		return false, err
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE accounts
		SET record = $1, row_version = row_version + 1
		WHERE id = $2 AND row_version = $3`,
		raw, account.ID, expected,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *postgresStore) UpdatePairIfVersion(ctx context.Context, a, b *models.Account, expectedA, expectedB int64) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	updates := []struct {
		account  *models.Account
		expected int64
	}{
		{a, expectedA},
		{b, expectedB},
	}
	for _, u := range updates {
		raw, err := encodeAtVersion(u.account, u.expected+1)
		if err != nil {
			return false, err
		}
		tag, err := tx.Exec(ctx, `
			UPDATE accounts
			SET record = $1, row_version = row_version + 1
			WHERE id = $2 AND row_version = $3`,
			raw, u.account.ID, u.expected,
		)
		if err != nil {
			return false, err
		}
		if tag.RowsAffected() != 1 {
			// someone else updated first – the deferred rollback
			// discards the partial write
			return false, nil
		}
	}

	return true, tx.Commit(ctx)
}

// encodeAtVersion marshals the account with the row version it will hold
// after a successful conditional update, so record and column agree.
func encodeAtVersion(account *models.Account, version int64) ([]byte, error) {
	account.SetRowVersion(version)
	raw, err := json.Marshal(account)
	if err != nil {
		return nil, fmt.Errorf("encode account %s: %w", account.ID, err)
	}
	return raw, nil
}
