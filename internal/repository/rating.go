package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/fobfinder/fobfinder-go/internal/model"
)

var ErrRatingNotFound = errors.New("rating not found")

// RatingRepository handles rating persistence operations.
type RatingRepository struct {
	db *sql.DB
}

// NewRatingRepository creates a new RatingRepository.
func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create inserts a new rating.
func (r *RatingRepository) Create(ctx context.Context, rt *model.Rating) error {
	details, err := json.Marshal(rt.Details)
	if err != nil {
		return err
	}

	query := `INSERT INTO ratings (id, fob_id, user_id, comment, details) VALUES (?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query, rt.ID, rt.FobID, rt.UserID, rt.Comment, details)
	return err
}

const ratingColumns = `id, fob_id, user_id, comment, details, created_at, updated_at`

func scanRating(row interface{ Scan(...any) error }) (*model.Rating, error) {
	rt := &model.Rating{}
	var details []byte
	if err := row.Scan(&rt.ID, &rt.FobID, &rt.UserID, &rt.Comment, &details, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(details, &rt.Details); err != nil {
		return nil, err
	}
	return rt, nil
}

// GetByID retrieves a rating by its ID.
func (r *RatingRepository) GetByID(ctx context.Context, id string) (*model.Rating, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+ratingColumns+` FROM ratings WHERE id = ?`, id)

	rt, err := scanRating(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}

	return rt, nil
}

// Update persists a rating's comment and details.
func (r *RatingRepository) Update(ctx context.Context, rt *model.Rating) error {
	details, err := json.Marshal(rt.Details)
	if err != nil {
		return err
	}

	query := `UPDATE ratings SET comment = ?, details = ? WHERE id = ?`

	_, err = r.db.ExecContext(ctx, query, rt.Comment, details, rt.ID)
	return err
}

// Delete removes a rating.
func (r *RatingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ratings WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRatingNotFound
	}

	return nil
}

// ListByFob retrieves all ratings for a fob, newest first.
func (r *RatingRepository) ListByFob(ctx context.Context, fobID string) ([]model.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE fob_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, fobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []model.Rating
	for rows.Next() {
		rt, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, *rt)
	}

	return ratings, rows.Err()
}
