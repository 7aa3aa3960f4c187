package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/techchallenge/vehicle-api/internal/common/db"
	"github.com/techchallenge/vehicle-api/internal/user/domain"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
	// Create inserts a new active user. It returns ErrEmailAlreadyExists when
	// the email is taken, whether or not the caller checked beforehand.
	Create(ctx context.Context, user domain.NewUser) (domain.User, error)
}

const usersTable = "users"

const userColumns = `id, email, hashed_password, full_name, is_active, created_at`

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		user domain.User
		id   int64
	)
	err := row.Scan(&id, &user.Email, &user.PasswordHash, &user.FullName, &user.IsActive, &user.CreatedAt)
	if err != nil {
		return domain.User{}, err
	}
	user.ID = domain.ID(id)
	user.CreatedAt = user.CreatedAt.UTC()
	return user, nil
}

func (r *PgRepository) Create(ctx context.Context, user domain.NewUser) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO users (email, hashed_password, full_name, is_active)
		 VALUES ($1, $2, $3, TRUE)
		 RETURNING `+userColumns,
		user.Email,
		user.PasswordHash,
		user.FullName,
	)

	created, err := scanUser(row)
	if db.IsUniqueViolation(err) {
		return domain.User{}, ErrEmailAlreadyExists
	}
	if err := db.HandleQueryError(err, ErrUserNotFound, "create user", usersTable, start); err != nil {
		return domain.User{}, err
	}
	return created, nil
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	)

	user, err := scanUser(row)
	if err := db.HandleQueryError(err, ErrUserNotFound, "find user by email", usersTable, start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		int64(id),
	)

	user, err := scanUser(row)
	if err := db.HandleQueryError(err, ErrUserNotFound, "find user by id", usersTable, start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// SetActive flips the is_active flag. It backs the administrative path and
// the integration tests; the auth flows never call it.
func (r *PgRepository) SetActive(ctx context.Context, id domain.ID, active bool) error {
	start := time.Now()
	tag, err := r.pool.Exec(ctx, `UPDATE users SET is_active = $2 WHERE id = $1`, int64(id), active)
	if err := db.HandleQueryError(err, ErrUserNotFound, "set user active", usersTable, start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
