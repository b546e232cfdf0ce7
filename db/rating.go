package db

import (
	"context"
	"errors"

	apperrors "github.com/TripCast/tripcast-backend/errors"
	"github.com/TripCast/tripcast-backend/logger"
	"github.com/TripCast/tripcast-backend/types"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type RatingDB struct {
	client *DatabaseClient
}

func NewRatingDB(client *DatabaseClient) *RatingDB {
	return &RatingDB{client: client}
}

// CreateRating inserts a rating. A missing user or trip surfaces as a
// foreign-key violation and is reported as NotFound.
func (rdb *RatingDB) CreateRating(ctx context.Context, rating *types.Rating) error {
	log := logger.GetLogger()

	var comment *string
	if rating.Comment != "" {
		comment = &rating.Comment
	}

	_, err := rdb.client.GetPool().Exec(ctx, `
        INSERT INTO ratings (id, trip_id, user_id, value, comment)
        VALUES ($1, $2, $3, $4, $5)`,
		rating.ID,
		rating.TripID,
		rating.UserID,
		rating.Value,
		comment,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return apperrors.NotFound("Trip or user", rating.TripID)
		}
		log.Errorw("Failed to create rating", "tripId", rating.TripID, "error", err)
		return apperrors.NewDatabaseError(err)
	}

	return nil
}

// ListRatingsByTrip returns a trip's ratings with each rater attached.
func (rdb *RatingDB) ListRatingsByTrip(ctx context.Context, tripID string) ([]types.Rating, error) {
	const query = `
        SELECT r.id, r.trip_id, r.user_id, r.value, r.comment, u.id, u.email, u.name
        FROM ratings r
        JOIN users u ON u.id = r.user_id
        WHERE r.trip_id = $1
        ORDER BY r.created_at`

	return rdb.queryRatings(ctx, query, tripID)
}

// ListRatingsByUser returns all ratings a user has left, for the comments view.
func (rdb *RatingDB) ListRatingsByUser(ctx context.Context, userID string) ([]types.Rating, error) {
	const query = `
        SELECT r.id, r.trip_id, r.user_id, r.value, r.comment, u.id, u.email, u.name
        FROM ratings r
        JOIN users u ON u.id = r.user_id
        WHERE r.user_id = $1
        ORDER BY r.created_at DESC`

	return rdb.queryRatings(ctx, query, userID)
}

func (rdb *RatingDB) queryRatings(ctx context.Context, query string, args ...any) ([]types.Rating, error) {
	rows, err := rdb.client.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	defer rows.Close()

	var ratings []types.Rating
	for rows.Next() {
		var r types.Rating
		var comment *string
		var u types.User
		if err := rows.Scan(&r.ID, &r.TripID, &r.UserID, &r.Value, &comment, &u.ID, &u.Email, &u.Name); err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		if comment != nil {
			r.Comment = *comment
		}
		r.User = &u
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return ratings, nil
}
