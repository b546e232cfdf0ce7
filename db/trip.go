package db

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/TripCast/tripcast-backend/errors"
	"github.com/TripCast/tripcast-backend/logger"
	"github.com/TripCast/tripcast-backend/types"
	"github.com/jackc/pgx/v5"
)

type TripDB struct {
	client *DatabaseClient
}

func NewTripDB(client *DatabaseClient) *TripDB {
	return &TripDB{client: client}
}

const tripSelectColumns = `
        t.id, t.name, t.user_id, t.start_date, t.end_date, t.description,
        u.id, u.email, u.name,
        l.id, l.name, l.latitude, l.longitude,
        c.id, c.avg_humidity, c.avg_temp_c, c.avg_temp_f`

const tripSelectJoins = `
        FROM trips t
        JOIN users u ON u.id = t.user_id
        LEFT JOIN trip_locations l ON l.trip_id = t.id
        LEFT JOIN location_conditions c ON c.location_id = l.id`

// CreateTrip persists a trip together with its owned location and condition
// as one transaction. Partial writes are never observable: if any of the
// three inserts fails the transaction is rolled back.
func (tdb *TripDB) CreateTrip(ctx context.Context, trip *types.Trip) error {
	log := logger.GetLogger()

	if trip.Location == nil || trip.Location.Condition == nil {
		return apperrors.InternalServerError("trip write requires a location with a condition")
	}

	err := WithTx(ctx, tdb.client.GetPool(), func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
            INSERT INTO trips (id, name, user_id, start_date, end_date, description)
            VALUES ($1, $2, $3, $4, $5, $6)`,
			trip.ID,
			trip.Name,
			trip.UserID,
			trip.StartDate,
			trip.EndDate,
			trip.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trip: %w", err)
		}

		_, err = tx.Exec(ctx, `
            INSERT INTO trip_locations (id, trip_id, name, latitude, longitude)
            VALUES ($1, $2, $3, $4, $5)`,
			trip.Location.ID,
			trip.ID,
			trip.Location.Name,
			trip.Location.Latitude,
			trip.Location.Longitude,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trip location: %w", err)
		}

		_, err = tx.Exec(ctx, `
            INSERT INTO location_conditions (id, location_id, avg_humidity, avg_temp_c, avg_temp_f)
            VALUES ($1, $2, $3, $4, $5)`,
			trip.Location.Condition.ID,
			trip.Location.ID,
			trip.Location.Condition.AvgHumidity,
			trip.Location.Condition.AvgTempC,
			trip.Location.Condition.AvgTempF,
		)
		if err != nil {
			return fmt.Errorf("failed to insert location condition: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Errorw("CreateTrip transaction failed", "tripId", trip.ID, "error", err)
		return apperrors.NewDatabaseError(err)
	}

	log.Infow("Created trip", "tripId", trip.ID, "userId", trip.UserID)
	return nil
}

// UpdateTrip updates the trip row and its existing location and condition
// rows in place, preserving their ids, in one transaction.
func (tdb *TripDB) UpdateTrip(ctx context.Context, trip *types.Trip) error {
	log := logger.GetLogger()

	if trip.Location == nil || trip.Location.Condition == nil {
		return apperrors.InternalServerError("trip write requires a location with a condition")
	}

	err := WithTx(ctx, tdb.client.GetPool(), func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
            UPDATE trips
            SET name = $2, start_date = $3, end_date = $4, description = $5,
                updated_at = CURRENT_TIMESTAMP
            WHERE id = $1`,
			trip.ID,
			trip.Name,
			trip.StartDate,
			trip.EndDate,
			trip.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to update trip: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NotFound("Trip", trip.ID)
		}

		_, err = tx.Exec(ctx, `
            UPDATE trip_locations
            SET name = $2, latitude = $3, longitude = $4
            WHERE id = $1`,
			trip.Location.ID,
			trip.Location.Name,
			trip.Location.Latitude,
			trip.Location.Longitude,
		)
		if err != nil {
			return fmt.Errorf("failed to update trip location: %w", err)
		}

		_, err = tx.Exec(ctx, `
            UPDATE location_conditions
            SET avg_humidity = $2, avg_temp_c = $3, avg_temp_f = $4
            WHERE id = $1`,
			trip.Location.Condition.ID,
			trip.Location.Condition.AvgHumidity,
			trip.Location.Condition.AvgTempC,
			trip.Location.Condition.AvgTempF,
		)
		if err != nil {
			return fmt.Errorf("failed to update location condition: %w", err)
		}

		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		log.Errorw("UpdateTrip transaction failed", "tripId", trip.ID, "error", err)
		return apperrors.NewDatabaseError(err)
	}

	log.Infow("Updated trip", "tripId", trip.ID)
	return nil
}

// GetTrip retrieves a trip with its owner, location, condition, and ratings.
func (tdb *TripDB) GetTrip(ctx context.Context, id string) (*types.Trip, error) {
	query := `SELECT` + tripSelectColumns + tripSelectJoins + `
        WHERE t.id = $1`

	row := tdb.client.GetPool().QueryRow(ctx, query, id)
	trip, err := scanTrip(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Trip", id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	ratings, err := tdb.listRatingsForTrip(ctx, id)
	if err != nil {
		return nil, err
	}
	trip.Ratings = ratings

	return trip, nil
}

// ListTrips returns all trips with their nested location and condition.
func (tdb *TripDB) ListTrips(ctx context.Context) ([]*types.Trip, error) {
	query := `SELECT` + tripSelectColumns + tripSelectJoins + `
        ORDER BY t.start_date DESC`

	return tdb.queryTrips(ctx, query)
}

// ListTripsByUser returns all trips owned by the given user.
func (tdb *TripDB) ListTripsByUser(ctx context.Context, userID string) ([]*types.Trip, error) {
	query := `SELECT` + tripSelectColumns + tripSelectJoins + `
        WHERE t.user_id = $1
        ORDER BY t.start_date DESC`

	return tdb.queryTrips(ctx, query, userID)
}

// DeleteTrip removes a trip; the owned location, condition, ratings, and
// bookmark edges go with it via ON DELETE CASCADE.
func (tdb *TripDB) DeleteTrip(ctx context.Context, id string) error {
	log := logger.GetLogger()

	tag, err := tdb.client.GetPool().Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		log.Errorw("Failed to delete trip", "tripId", id, "error", err)
		return apperrors.NewDatabaseError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("Trip", id)
	}

	log.Infow("Deleted trip", "tripId", id)
	return nil
}

func (tdb *TripDB) queryTrips(ctx context.Context, query string, args ...any) ([]*types.Trip, error) {
	rows, err := tdb.client.GetPool().Query(ctx, query, args...)
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

func (tdb *TripDB) listRatingsForTrip(ctx context.Context, tripID string) ([]types.Rating, error) {
	const query = `
        SELECT r.id, r.trip_id, r.user_id, r.value, r.comment, u.id, u.email, u.name
        FROM ratings r
        JOIN users u ON u.id = r.user_id
        WHERE r.trip_id = $1
        ORDER BY r.created_at`

	rows, err := tdb.client.GetPool().Query(ctx, query, tripID)
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

// scanTrip scans one joined trip row. Location and condition columns are
// nullable in the query shape so the scan survives rows that predate the
// nested-write invariant.
func scanTrip(row pgx.Row) (*types.Trip, error) {
	var trip types.Trip
	var owner types.User
	var locID, locName *string
	var locLat, locLon *float64
	var condID *string
	var condHumidity, condTempC, condTempF *float64

	err := row.Scan(
		&trip.ID,
		&trip.Name,
		&trip.UserID,
		&trip.StartDate,
		&trip.EndDate,
		&trip.Description,
		&owner.ID,
		&owner.Email,
		&owner.Name,
		&locID,
		&locName,
		&locLat,
		&locLon,
		&condID,
		&condHumidity,
		&condTempC,
		&condTempF,
	)
	if err != nil {
		return nil, err
	}

	trip.User = &owner

	if locID != nil {
		loc := &types.TripLocation{
			ID:        *locID,
			TripID:    trip.ID,
			Name:      *locName,
			Latitude:  *locLat,
			Longitude: *locLon,
		}
		if condID != nil {
			loc.Condition = &types.LocationCondition{
				ID:          *condID,
				LocationID:  loc.ID,
				AvgHumidity: *condHumidity,
				AvgTempC:    *condTempC,
				AvgTempF:    *condTempF,
			}
		}
		trip.Location = loc
	}

	return &trip, nil
}
