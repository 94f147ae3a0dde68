package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fobfinder/fobfinder-go/internal/model"
)

var ErrPictureNotFound = errors.New("picture not found")

// PictureRepository handles picture persistence operations.
type PictureRepository struct {
	db *sql.DB
}

// NewPictureRepository creates a new PictureRepository.
func NewPictureRepository(db *sql.DB) *PictureRepository {
	return &PictureRepository{db: db}
}

// Create inserts a new picture.
func (r *PictureRepository) Create(ctx context.Context, p *model.Picture) error {
	query := `INSERT INTO pictures (id, fob_id, user_id, url, storage_key, pending) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, p.ID, p.FobID, p.UserID, p.URL, p.StorageKey, p.Pending)
	return err
}

const pictureColumns = `id, fob_id, user_id, url, storage_key, pending, created_at`

func scanPicture(row interface{ Scan(...any) error }) (*model.Picture, error) {
	p := &model.Picture{}
	if err := row.Scan(&p.ID, &p.FobID, &p.UserID, &p.URL, &p.StorageKey, &p.Pending, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID retrieves a picture by its ID.
func (r *PictureRepository) GetByID(ctx context.Context, id string) (*model.Picture, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+pictureColumns+` FROM pictures WHERE id = ?`, id)

	p, err := scanPicture(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPictureNotFound
		}
		return nil, err
	}

	return p, nil
}

// UpdateStatus changes a picture's moderation flag.
func (r *PictureRepository) UpdateStatus(ctx context.Context, id string, pending bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE pictures SET pending = ? WHERE id = ?`, pending, id)
	return err
}

// Delete removes a picture. Pictures are hard-deleted.
func (r *PictureRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pictures WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPictureNotFound
	}

	return nil
}

// ListByFob retrieves all pictures for a fob, newest first.
func (r *PictureRepository) ListByFob(ctx context.Context, fobID string) ([]model.Picture, error) {
	query := `SELECT ` + pictureColumns + ` FROM pictures WHERE fob_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, fobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pictures []model.Picture
	for rows.Next() {
		p, err := scanPicture(rows)
		if err != nil {
			return nil, err
		}
		pictures = append(pictures, *p)
	}

	return pictures, rows.Err()
}
