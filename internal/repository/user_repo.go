package repository

import (
	"context"
	"errors"
	"fmt"

	"founderhub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// ErrDuplicateEmail is returned by Create when the email is already taken
var ErrDuplicateEmail = errors.New("repository: email already registered")

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// DB is the subset of *pgxpool.Pool the repository needs
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a Postgres backed UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const selectUser = `SELECT id::text, email, password_hash, role, first_name, last_name,
            COALESCE(startup_name, ''), COALESCE(startup_industry, ''),
            COALESCE(startup_stage, ''), COALESCE(startup_funding_stage, ''), created_at
            FROM users`

// Create inserts a new user. The UNIQUE index on email arbitrates concurrent signups.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (id, email, password_hash, role, first_name, last_name,
            startup_name, startup_industry, startup_stage, startup_funding_stage, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	var name, industry, stage, fundingStage *string
	if user.Startup != nil {
		name = &user.Startup.Name
		industry = &user.Startup.Industry
		stage = &user.Startup.Stage
		fundingStage = &user.Startup.FundingStage
	}

	_, err := r.db.Exec(ctx, sql, user.ID, user.Email, user.PasswordHash, user.Role,
		user.Profile.FirstName, user.Profile.LastName, name, industry, stage, fundingStage, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by exact email match
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, selectUser+` WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found is not an error for this method's contract, service layer handles it
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by their ID
func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, selectUser+` WHERE id::text = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	user := &model.User{}
	var s model.Startup
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role,
		&user.Profile.FirstName, &user.Profile.LastName,
		&s.Name, &s.Industry, &s.Stage, &s.FundingStage, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	// startup columns are non-null exactly when role is founder (table CHECK)
	if user.Role == model.RoleFounder {
		user.Startup = &s
	}
	return user, nil
}
