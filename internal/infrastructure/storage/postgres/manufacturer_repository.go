package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"solarkeeper/internal/domain/manufacturer"
)

type ManufacturerRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewManufacturerRepository(pool *pgxpool.Pool, log *slog.Logger) *ManufacturerRepository {
	return &ManufacturerRepository{
		pool: pool,
		log:  log.With("component", "manufacturer_repository"),
	}
}

func (r *ManufacturerRepository) List(ctx context.Context) ([]manufacturer.Manufacturer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, api_identifier, supported, credential_schema
		 FROM manufacturers ORDER BY name`)
	if err != nil {
		r.log.Error("failed to list manufacturers", "error", err)
		return nil, fmt.Errorf("list manufacturers: %w", err)
	}
	defer rows.Close()

	var manufacturers []manufacturer.Manufacturer
	for rows.Next() {
		m, err := scanManufacturer(rows)
		if err != nil {
			return nil, err
		}
		manufacturers = append(manufacturers, m)
	}

	return manufacturers, rows.Err()
}

func (r *ManufacturerRepository) Get(ctx context.Context, id int) (manufacturer.Manufacturer, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, api_identifier, supported, credential_schema
		 FROM manufacturers WHERE id = $1`, id)

	m, err := scanManufacturer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return m, manufacturer.ErrNotFound
		}
		r.log.Error("failed to get manufacturer", "manufacturer_id", id, "error", err)
		return m, fmt.Errorf("get manufacturer: %w", err)
	}

	return m, nil
}

func scanManufacturer(row pgx.Row) (manufacturer.Manufacturer, error) {
	var m manufacturer.Manufacturer
	var schema []byte

	if err := row.Scan(&m.ID, &m.Name, &m.APIIdentifier, &m.Supported, &schema); err != nil {
		return m, err
	}
	if err := json.Unmarshal(schema, &m.Schema); err != nil {
		return m, fmt.Errorf("decode credential schema: %w", err)
	}

	return m, nil
}
