package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/farmaplus/pharmacy-api/internal/core/domain"
)

// UserRepository implements ports.UserRepository.
type UserRepository struct{ db *DB }

func NewUserRepository(db *DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `
SELECT id, username, password_hash, role, created_at, updated_at
FROM users WHERE username=$1`

	var u domain.User
	err := r.db.Pool.QueryRow(ctx, q, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	const q = `
SELECT id, username, password_hash, role, created_at, updated_at
FROM users WHERE id=$1`

	var u domain.User
	err := r.db.Pool.QueryRow(ctx, q, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	const q = `
SELECT id, username, password_hash, role, created_at, updated_at
FROM users ORDER BY id`

	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (username, password_hash, role)
VALUES ($1,$2,$3)
RETURNING id, username, password_hash, role, created_at, updated_at`

	var u domain.User
	err := r.db.Pool.QueryRow(ctx, q, user.Username, user.PasswordHash, user.Role).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &u, nil
}

// Update mutates username and role, and the password hash only when a new one
// is provided.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	const q = `
UPDATE users
SET username=$2,
    role=$3,
    password_hash=COALESCE(NULLIF($4,''), password_hash),
    updated_at=now()
WHERE id=$1
RETURNING id, username, password_hash, role, created_at, updated_at`

	var u domain.User
	err := r.db.Pool.QueryRow(ctx, q, user.ID, user.Username, user.Role, user.PasswordHash).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
