package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/istl-web/auth-service/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, mobile_number, email, password_hash, role, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (name, mobile_number, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	row := r.pool.QueryRow(ctx, query,
		user.Name,
		user.MobileNumber,
		user.Email,
		user.PasswordHash,
		user.Role,
	)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateUser
		}
		return nil, err
	}
	return created, nil
}

func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE mobile_number = $1 OR email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, identifier))
}

func (r *UserRepository) FindByMobileOrEmail(ctx context.Context, mobile, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE mobile_number = $1 OR email = $2`
	return scanUser(r.pool.QueryRow(ctx, query, mobile, email))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) UpdateName(ctx context.Context, id int64, name string) error {
	return r.update(ctx,
		`UPDATE users SET name = $2, updated_at = NOW() WHERE id = $1`, id, name)
}

func (r *UserRepository) UpdateMobile(ctx context.Context, id int64, mobile string) error {
	return r.update(ctx,
		`UPDATE users SET mobile_number = $2, updated_at = NOW() WHERE id = $1`, id, mobile)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.update(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, id, passwordHash)
}

func (r *UserRepository) update(ctx context.Context, query string, id int64, value string) error {
	tag, err := r.pool.Exec(ctx, query, id, value)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateUser
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Name, &u.MobileNumber, &u.Email,
		&u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
