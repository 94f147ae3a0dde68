package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fobfinder/fobfinder-go/internal/model"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("username or email already exists")
)

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, username, email, password_hash) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, user.ID, user.Username, user.Email, user.PasswordHash)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateUser
		}
		return err
	}

	return nil
}

const userColumns = `id, username, email, password_hash, created_at, updated_at`

func (r *UserRepository) getBy(ctx context.Context, where string, arg any) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getBy(ctx, `id = ?`, id)
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, `email = ?`, email)
}

// GetByUsername retrieves a user by their username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getBy(ctx, `username = ?`, username)
}

// Update persists mutable profile fields.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET email = ?, password_hash = ? WHERE id = ?`

	// MySQL reports zero affected rows for a no-op update, so absence is not
	// detectable here; callers resolve the user before updating.
	_, err := r.db.ExecContext(ctx, query, user.Email, user.PasswordHash, user.ID)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateUser
		}
		return err
	}

	return nil
}
