package db

import (
	"context"
	"errors"

	apperrors "github.com/TripCast/tripcast-backend/errors"
	"github.com/TripCast/tripcast-backend/logger"
	"github.com/TripCast/tripcast-backend/types"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type UserDB struct {
	client *DatabaseClient
}

func NewUserDB(client *DatabaseClient) *UserDB {
	return &UserDB{client: client}
}

// CreateUser inserts a new user row. A duplicate email is reported as a
// validation failure rather than a raw constraint error.
func (udb *UserDB) CreateUser(ctx context.Context, user *types.User) error {
	log := logger.GetLogger()

	const query = `
        INSERT INTO users (id, email, name, password)
        VALUES ($1, $2, $3, $4)`

	_, err := udb.client.GetPool().Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Password,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return apperrors.ValidationFailed("Email already registered", user.Email)
		}
		log.Errorw("Failed to create user", "email", logger.MaskEmail(user.Email), "error", err)
		return apperrors.NewDatabaseError(err)
	}

	return nil
}

// GetUserByID fetches a user by id, including the password hash. Callers must
// project the record before returning it to the outside.
func (udb *UserDB) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	const query = `
        SELECT id, email, name, password
        FROM users
        WHERE id = $1`

	var user types.User
	err := udb.client.GetPool().QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Password,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("User", id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	return &user, nil
}

// GetUserByEmail fetches a user by email, including the password hash.
func (udb *UserDB) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	const query = `
        SELECT id, email, name, password
        FROM users
        WHERE email = $1`

	var user types.User
	err := udb.client.GetPool().QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Password,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("User", logger.MaskEmail(email))
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	return &user, nil
}
