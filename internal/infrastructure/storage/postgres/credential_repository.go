package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"solarkeeper/internal/domain/credential"
)

const pgUniqueViolation = "23505"

type CredentialRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewCredentialRepository(pool *pgxpool.Pool, log *slog.Logger) *CredentialRepository {
	return &CredentialRepository{
		pool: pool,
		log:  log.With("component", "credential_repository"),
	}
}

func (r *CredentialRepository) Create(ctx context.Context, cred *credential.Credential) (int, error) {
	fields, err := json.Marshal(cred.Fields)
	if err != nil {
		return 0, fmt.Errorf("encode credential fields: %w", err)
	}

	const query = `
		INSERT INTO credentials (user_id, manufacturer_id, reference_name, fields, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err = r.pool.QueryRow(ctx, query,
		cred.UserID, cred.ManufacturerID, cred.ReferenceName, fields, cred.Status,
	).Scan(&cred.ID, &cred.CreatedAt, &cred.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return 0, credential.ErrConflict
		}
		r.log.Error("failed to create credential", "user_id", cred.UserID, "manufacturer_id", cred.ManufacturerID, "error", err)
		return 0, fmt.Errorf("create credential: %w", err)
	}

	return cred.ID, nil
}

func (r *CredentialRepository) Update(ctx context.Context, cred *credential.Credential) error {
	fields, err := json.Marshal(cred.Fields)
	if err != nil {
		return fmt.Errorf("encode credential fields: %w", err)
	}

	const query = `
		UPDATE credentials
		SET reference_name = $1, fields = $2, status = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING updated_at`

	err = r.pool.QueryRow(ctx, query,
		cred.ReferenceName, fields, cred.Status, cred.ID, cred.UserID,
	).Scan(&cred.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return credential.ErrNotFound
		}
		r.log.Error("failed to update credential", "credential_id", cred.ID, "user_id", cred.UserID, "error", err)
		return fmt.Errorf("update credential: %w", err)
	}

	return nil
}

func (r *CredentialRepository) Get(ctx context.Context, userID, credentialID int) (*credential.Credential, error) {
	const query = `
		SELECT id, user_id, manufacturer_id, reference_name, fields, status,
		       last_validated_at, created_at, updated_at
		FROM credentials
		WHERE id = $1 AND user_id = $2`

	return r.scanCredential(r.pool.QueryRow(ctx, query, credentialID, userID))
}

func (r *CredentialRepository) GetByManufacturer(ctx context.Context, userID, manufacturerID int) (*credential.Credential, error) {
	const query = `
		SELECT id, user_id, manufacturer_id, reference_name, fields, status,
		       last_validated_at, created_at, updated_at
		FROM credentials
		WHERE user_id = $1 AND manufacturer_id = $2`

	return r.scanCredential(r.pool.QueryRow(ctx, query, userID, manufacturerID))
}

func (r *CredentialRepository) List(ctx context.Context, userID int) ([]credential.Credential, error) {
	const query = `
		SELECT id, user_id, manufacturer_id, reference_name, fields, status,
		       last_validated_at, created_at, updated_at
		FROM credentials
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list credentials", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	defer rows.Close()

	var creds []credential.Credential
	for rows.Next() {
		cred, err := r.scanCredential(rows)
		if err != nil {
			return nil, err
		}
		creds = append(creds, *cred)
	}

	return creds, rows.Err()
}

func (r *CredentialRepository) Delete(ctx context.Context, userID, credentialID int) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM credentials WHERE id = $1 AND user_id = $2`,
		credentialID, userID)
	if err != nil {
		r.log.Error("failed to delete credential", "credential_id", credentialID, "user_id", userID, "error", err)
		return fmt.Errorf("delete credential: %w", err)
	}

	if result.RowsAffected() == 0 {
		return credential.ErrNotFound
	}

	return nil
}

func (r *CredentialRepository) SetStatus(ctx context.Context, credentialID int, status credential.Status, validatedAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE credentials SET status = $1, last_validated_at = $2, updated_at = NOW() WHERE id = $3`,
		status, validatedAt, credentialID)
	if err != nil {
		return fmt.Errorf("set credential status: %w", err)
	}
	return nil
}

func (r *CredentialRepository) scanCredential(row pgx.Row) (*credential.Credential, error) {
	var cred credential.Credential
	var fields []byte

	err := row.Scan(
		&cred.ID, &cred.UserID, &cred.ManufacturerID, &cred.ReferenceName,
		&fields, &cred.Status, &cred.LastValidatedAt, &cred.CreatedAt, &cred.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, credential.ErrNotFound
		}
		return nil, fmt.Errorf("scan credential: %w", err)
	}

	if err := json.Unmarshal(fields, &cred.Fields); err != nil {
		return nil, fmt.Errorf("decode credential fields: %w", err)
	}

	return &cred, nil
}
