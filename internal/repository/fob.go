package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fobfinder/fobfinder-go/internal/geo"
	"github.com/fobfinder/fobfinder-go/internal/model"
)

var ErrFobNotFound = errors.New("fob not found")

// FobRepository handles fob persistence operations.
type FobRepository struct {
	db *sql.DB
}

// NewFobRepository creates a new FobRepository.
func NewFobRepository(db *sql.DB) *FobRepository {
	return &FobRepository{db: db}
}

// Create inserts a new fob.
func (r *FobRepository) Create(ctx context.Context, f *model.Fob) error {
	query := `INSERT INTO fobs (id, owner_id, name, lat, lng, info) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, f.ID, f.OwnerID, f.Name, f.Lat, f.Lng, []byte(f.Info))
	return err
}

const fobColumns = `id, owner_id, name, lat, lng, info, created_at, updated_at`

func scanFob(row interface{ Scan(...any) error }) (*model.Fob, error) {
	f := &model.Fob{}
	var info []byte
	if err := row.Scan(&f.ID, &f.OwnerID, &f.Name, &f.Lat, &f.Lng, &info, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	f.Info = info
	return f, nil
}

// GetByID retrieves a fob by its ID.
func (r *FobRepository) GetByID(ctx context.Context, id string) (*model.Fob, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+fobColumns+` FROM fobs WHERE id = ?`, id)

	f, err := scanFob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFobNotFound
		}
		return nil, err
	}

	return f, nil
}

// Update persists mutable fob fields.
func (r *FobRepository) Update(ctx context.Context, f *model.Fob) error {
	query := `UPDATE fobs SET name = ?, lat = ?, lng = ?, info = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, f.Name, f.Lat, f.Lng, []byte(f.Info), f.ID)
	return err
}

// Delete removes a fob. Ratings and pictures cascade at the storage level.
func (r *FobRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM fobs WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrFobNotFound
	}

	return nil
}

// ListNearby retrieves fobs within radiusKm of the given point, nearest
// first. A bounding box prefilters in SQL; the exact haversine check runs on
// the candidates.
func (r *FobRepository) ListNearby(ctx context.Context, lat, lng, radiusKm float64) ([]model.Fob, error) {
	minLat, maxLat, minLng, maxLng := geo.BoundingBox(lat, lng, radiusKm)

	query := `SELECT ` + fobColumns + ` FROM fobs
		WHERE lat BETWEEN ? AND ? AND lng BETWEEN ? AND ?`

	rows, err := r.db.QueryContext(ctx, query, minLat, maxLat, minLng, maxLng)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fobs []model.Fob
	for rows.Next() {
		f, err := scanFob(rows)
		if err != nil {
			return nil, err
		}
		if geo.DistanceKm(lat, lng, f.Lat, f.Lng) <= radiusKm {
			fobs = append(fobs, *f)
		}
	}

	return fobs, rows.Err()
}
