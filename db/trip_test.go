package db

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/TripCast/tripcast-backend/errors"
	"github.com/TripCast/tripcast-backend/types"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockTripDB(t *testing.T) (*TripDB, pgxmock.PgxPoolIface) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewTripDB(NewDatabaseClient(mock)), mock
}

func testTrip() *types.Trip {
	return &types.Trip{
		ID:          "trip-1",
		Name:        "Summer in Lisbon",
		UserID:      "user-1",
		StartDate:   time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC),
		Description: "Two weeks by the coast",
		Location: &types.TripLocation{
			ID:        "loc-1",
			TripID:    "trip-1",
			Name:      "Lisbon",
			Latitude:  38.71667,
			Longitude: -9.13333,
			Condition: &types.LocationCondition{
				ID:          "cond-1",
				LocationID:  "loc-1",
				AvgHumidity: 64,
				AvgTempC:    24.5,
				AvgTempF:    76.1,
			},
		},
	}
}

func TestCreateTripTransaction(t *testing.T) {
	tdb, mock := newMockTripDB(t)
	trip := testTrip()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO trips`).
		WithArgs(trip.ID, trip.Name, trip.UserID, trip.StartDate, trip.EndDate, trip.Description).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO trip_locations`).
		WithArgs(trip.Location.ID, trip.ID, trip.Location.Name, trip.Location.Latitude, trip.Location.Longitude).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO location_conditions`).
		WithArgs(trip.Location.Condition.ID, trip.Location.ID, trip.Location.Condition.AvgHumidity,
			trip.Location.Condition.AvgTempC, trip.Location.Condition.AvgTempF).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := tdb.CreateTrip(context.Background(), trip)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTripRollsBackOnLocationFailure(t *testing.T) {
	tdb, mock := newMockTripDB(t)
	trip := testTrip()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO trips`).
		WithArgs(trip.ID, trip.Name, trip.UserID, trip.StartDate, trip.EndDate, trip.Description).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO trip_locations`).
		WithArgs(trip.Location.ID, trip.ID, trip.Location.Name, trip.Location.Latitude, trip.Location.Longitude).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := tdb.CreateTrip(context.Background(), trip)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.DatabaseError, appErr.Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTripWithoutConditionRejected(t *testing.T) {
	tdb, _ := newMockTripDB(t)
	trip := testTrip()
	trip.Location.Condition = nil

	err := tdb.CreateTrip(context.Background(), trip)
	require.Error(t, err)
}

func TestUpdateTripNotFound(t *testing.T) {
	tdb, mock := newMockTripDB(t)
	trip := testTrip()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE trips`).
		WithArgs(trip.ID, trip.Name, trip.StartDate, trip.EndDate, trip.Description).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := tdb.UpdateTrip(context.Background(), trip)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.NotFoundError, appErr.Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTripPreservesIDs(t *testing.T) {
	tdb, mock := newMockTripDB(t)
	trip := testTrip()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE trips`).
		WithArgs(trip.ID, trip.Name, trip.StartDate, trip.EndDate, trip.Description).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE trip_locations`).
		WithArgs(trip.Location.ID, trip.Location.Name, trip.Location.Latitude, trip.Location.Longitude).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE location_conditions`).
		WithArgs(trip.Location.Condition.ID, trip.Location.Condition.AvgHumidity,
			trip.Location.Condition.AvgTempC, trip.Location.Condition.AvgTempF).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := tdb.UpdateTrip(context.Background(), trip)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func tripRowColumns() []string {
	return []string{
		"id", "name", "user_id", "start_date", "end_date", "description",
		"u_id", "u_email", "u_name",
		"l_id", "l_name", "l_lat", "l_lon",
		"c_id", "c_humidity", "c_temp_c", "c_temp_f",
	}
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestGetTripScansNestedRecords(t *testing.T) {
	tdb, mock := newMockTripDB(t)
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT(.+)FROM trips t`).
		WithArgs("trip-1").
		WillReturnRows(pgxmock.NewRows(tripRowColumns()).AddRow(
			"trip-1", "Summer in Lisbon", "user-1", start, end, "Two weeks by the coast",
			"user-1", "ana@example.com", "Ana",
			strPtr("loc-1"), strPtr("Lisbon"), floatPtr(38.71667), floatPtr(-9.13333),
			strPtr("cond-1"), floatPtr(64.0), floatPtr(24.5), floatPtr(76.1),
		))
	mock.ExpectQuery(`SELECT r.id`).
		WithArgs("trip-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "trip_id", "user_id", "value", "comment", "u_id", "u_email", "u_name",
		}))

	trip, err := tdb.GetTrip(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.Equal(t, "Summer in Lisbon", trip.Name)
	require.NotNil(t, trip.User)
	assert.Equal(t, "ana@example.com", trip.User.Email)
	require.NotNil(t, trip.Location)
	assert.Equal(t, "Lisbon", trip.Location.Name)
	assert.InDelta(t, 38.71667, trip.Location.Latitude, 1e-9)
	require.NotNil(t, trip.Location.Condition)
	assert.InDelta(t, 76.1, trip.Location.Condition.AvgTempF, 1e-9)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTripNotFound(t *testing.T) {
	tdb, mock := newMockTripDB(t)

	mock.ExpectQuery(`SELECT(.+)FROM trips t`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := tdb.GetTrip(context.Background(), "missing")
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.NotFoundError, appErr.Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTripNotFound(t *testing.T) {
	tdb, mock := newMockTripDB(t)

	mock.ExpectExec(`DELETE FROM trips`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := tdb.DeleteTrip(context.Background(), "missing")
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.NotFoundError, appErr.Type)
	require.NoError(t, mock.ExpectationsWereMet())
}
