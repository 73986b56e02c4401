package repository

import (
	"context"
	"fmt"

	"homeservice-dispatch/internal/data/entity"
	"homeservice-dispatch/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TechnicianLocationRepository interface {
	Get(ctx context.Context, technicianID uuid.UUID) (*entity.TechnicianLocation, error)
	Upsert(ctx context.Context, location *entity.TechnicianLocation) error
}

type technicianLocationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTechnicianLocationRepository(db database.PgxIface, log *zap.Logger) TechnicianLocationRepository {
	return &technicianLocationRepository{
		db:  db,
		log: log.With(zap.String("repository", "technician_location")),
	}
}

func (r *technicianLocationRepository) Get(ctx context.Context, technicianID uuid.UUID) (*entity.TechnicianLocation, error) {
	query := `
		SELECT technician_id, lat, lng, address_text, address_meta, updated_at
		FROM technician_locations
		WHERE technician_id = $1
	`

	var location entity.TechnicianLocation
	err := r.db.QueryRow(ctx, query, technicianID).Scan(
		&location.TechnicianID,
		&location.Lat,
		&location.Lng,
		&location.AddressText,
		&location.AddressMeta,
		&location.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to get technician location",
			zap.Error(err),
			zap.String("technician_id", technicianID.String()),
		)
		return nil, fmt.Errorf("get location for technician %s: %w", technicianID.String(), err)
	}

	return &location, nil
}

// Upsert keeps the single last-known row per technician, last write wins.
func (r *technicianLocationRepository) Upsert(ctx context.Context, location *entity.TechnicianLocation) error {
	query := `
		INSERT INTO technician_locations (technician_id, lat, lng, address_text, address_meta, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (technician_id) DO UPDATE
		SET lat = EXCLUDED.lat,
		    lng = EXCLUDED.lng,
		    address_text = EXCLUDED.address_text,
		    address_meta = EXCLUDED.address_meta,
		    updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query,
		location.TechnicianID,
		location.Lat,
		location.Lng,
		location.AddressText,
		location.AddressMeta,
	)

	if err != nil {
		r.log.Error("Failed to upsert technician location",
			zap.Error(err),
			zap.String("technician_id", location.TechnicianID.String()),
		)
		return fmt.Errorf("upsert location for technician %s: %w", location.TechnicianID.String(), err)
	}

	return nil
}
