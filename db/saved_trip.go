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

type SavedTripDB struct {
	client *DatabaseClient
}

func NewSavedTripDB(client *DatabaseClient) *SavedTripDB {
	return &SavedTripDB{client: client}
}

// Save inserts a bookmark edge after checking, inside one transaction, that
// the pair does not exist yet and that the user does not own the trip. The
// already-saved check is reported before the own-trip check when both hold.
//
// The pre-checks are an early exit only: the saved_trips(user_id, trip_id)
// unique constraint is the authoritative guard, so a save that loses a race
// between check and insert comes back as a unique violation and is translated
// to AlreadySaved.
func (sdb *SavedTripDB) Save(ctx context.Context, saved *types.SavedTrip) error {
	log := logger.GetLogger()

	err := WithTx(ctx, sdb.client.GetPool(), func(tx pgx.Tx) error {
		var existingID string
		err := tx.QueryRow(ctx,
			`SELECT id FROM saved_trips WHERE user_id = $1 AND trip_id = $2`,
			saved.UserID, saved.TripID,
		).Scan(&existingID)
		if err == nil {
			return apperrors.AlreadySaved(saved.UserID, saved.TripID)
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		var ownerID string
		err = tx.QueryRow(ctx,
			`SELECT user_id FROM trips WHERE id = $1`,
			saved.TripID,
		).Scan(&ownerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NotFound("Trip", saved.TripID)
			}
			return err
		}
		if ownerID == saved.UserID {
			return apperrors.OwnTrip(saved.UserID, saved.TripID)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO saved_trips (id, user_id, trip_id) VALUES ($1, $2, $3)`,
			saved.ID, saved.UserID, saved.TripID,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				// Race lost between pre-check and insert.
				return apperrors.AlreadySaved(saved.UserID, saved.TripID)
			}
			return err
		}

		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		log.Errorw("Save transaction failed", "userId", saved.UserID, "tripId", saved.TripID, "error", err)
		return apperrors.NewDatabaseError(err)
	}

	log.Infow("Saved trip", "userId", saved.UserID, "tripId", saved.TripID)
	return nil
}

// Unsave looks up the bookmark edge for the pair and deletes it by its id.
// Deleting by the stable edge identity, not the composite key, avoids racing
// with a concurrent insert of a fresh edge for the same pair.
func (sdb *SavedTripDB) Unsave(ctx context.Context, userID, tripID string) error {
	log := logger.GetLogger()

	var edgeID string
	err := sdb.client.GetPool().QueryRow(ctx,
		`SELECT id FROM saved_trips WHERE user_id = $1 AND trip_id = $2`,
		userID, tripID,
	).Scan(&edgeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("Saved trip", tripID)
		}
		return apperrors.NewDatabaseError(err)
	}

	_, err = sdb.client.GetPool().Exec(ctx, `DELETE FROM saved_trips WHERE id = $1`, edgeID)
	if err != nil {
		log.Errorw("Failed to delete saved trip", "edgeId", edgeID, "error", err)
		return apperrors.NewDatabaseError(err)
	}

	log.Infow("Unsaved trip", "userId", userID, "tripId", tripID)
	return nil
}

// IsSaved reports whether the user has bookmarked the trip. No side effects.
func (sdb *SavedTripDB) IsSaved(ctx context.Context, userID, tripID string) (bool, error) {
	var saved bool
	err := sdb.client.GetPool().QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM saved_trips WHERE user_id = $1 AND trip_id = $2)`,
		userID, tripID,
	).Scan(&saved)
	if err != nil {
		return false, apperrors.NewDatabaseError(err)
	}
	return saved, nil
}

// ListSavedTrips returns all trips the user has bookmarked, with their nested
// location and condition.
func (sdb *SavedTripDB) ListSavedTrips(ctx context.Context, userID string) ([]*types.Trip, error) {
	query := `SELECT` + tripSelectColumns + tripSelectJoins + `
        JOIN saved_trips s ON s.trip_id = t.id
        WHERE s.user_id = $1
        ORDER BY s.created_at DESC`

	rows, err := sdb.client.GetPool().Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	defer rows.Close()

	var trips []*types.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return trips, nil
}
