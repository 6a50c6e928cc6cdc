package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"solarkeeper/internal/domain/plant"
)

type PlantRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewPlantRepository(pool *pgxpool.Pool, log *slog.Logger) *PlantRepository {
	return &PlantRepository{
		pool: pool,
		log:  log.With("component", "plant_repository"),
	}
}

// Upsert inserts or, on the (user_id, manufacturer_id, external_id) key,
// refreshes the plant's metadata. Atomic per row; the conflict target is the
// unique index created by the migration.
func (r *PlantRepository) Upsert(ctx context.Context, p *plant.Plant) (int, error) {
	extra, err := json.Marshal(p.Extra)
	if err != nil {
		return 0, fmt.Errorf("encode plant extra: %w", err)
	}

	const query = `
		INSERT INTO plants (user_id, manufacturer_id, external_id, name, power_kwp, location, extra)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, manufacturer_id, external_id)
		DO UPDATE SET name = EXCLUDED.name, power_kwp = EXCLUDED.power_kwp,
		              location = EXCLUDED.location, extra = EXCLUDED.extra,
		              updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err = r.pool.QueryRow(ctx, query,
		p.UserID, p.ManufacturerID, p.ExternalID, p.Name, p.PowerKWP, p.Location, extra,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		r.log.Error("failed to upsert plant", "user_id", p.UserID, "external_id", p.ExternalID, "error", err)
		return 0, fmt.Errorf("upsert plant: %w", err)
	}

	return p.ID, nil
}

func (r *PlantRepository) List(ctx context.Context, userID int) ([]plant.Plant, error) {
	const query = `
		SELECT id, user_id, manufacturer_id, external_id, name, power_kwp, location, extra,
		       created_at, updated_at
		FROM plants
		WHERE user_id = $1
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list plants", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list plants: %w", err)
	}
	defer rows.Close()

	var plants []plant.Plant
	for rows.Next() {
		var p plant.Plant
		var extra []byte

		err := rows.Scan(
			&p.ID, &p.UserID, &p.ManufacturerID, &p.ExternalID, &p.Name,
			&p.PowerKWP, &p.Location, &extra, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan plant: %w", err)
		}
		if len(extra) > 0 {
			if err := json.Unmarshal(extra, &p.Extra); err != nil {
				return nil, fmt.Errorf("decode plant extra: %w", err)
			}
		}

		plants = append(plants, p)
	}

	return plants, rows.Err()
}
