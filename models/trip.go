// Package models holds the business logic between the HTTP handlers and the
// stores. Models validate input, call the external providers, and hand the
// stores fully-built records to persist.
package models

import (
	"context"
	"strconv"
	"time"

	apperrors "github.com/TripCast/tripcast-backend/errors"
	"github.com/TripCast/tripcast-backend/logger"
	"github.com/TripCast/tripcast-backend/pkg/climate"
	"github.com/TripCast/tripcast-backend/pkg/geocode"
	"github.com/TripCast/tripcast-backend/pkg/places"
	"github.com/TripCast/tripcast-backend/types"
	"github.com/google/uuid"
)

// TripStore is the persistence surface TripModel depends on.
type TripStore interface {
	CreateTrip(ctx context.Context, trip *types.Trip) error
	UpdateTrip(ctx context.Context, trip *types.Trip) error
	GetTrip(ctx context.Context, id string) (*types.Trip, error)
	ListTrips(ctx context.Context) ([]*types.Trip, error)
	ListTripsByUser(ctx context.Context, userID string) ([]*types.Trip, error)
	DeleteTrip(ctx context.Context, id string) error
}

type TripModel struct {
	store    TripStore
	users    UserStore
	geocoder geocode.ClientInterface
	climate  climate.ClientInterface
	places   places.ClientInterface
	// regeocodeOnUpdate re-resolves coordinates when an update carries a new
	// location text. Off by default: updates reuse the stored coordinates.
	regeocodeOnUpdate bool
}

func NewTripModel(
	store TripStore,
	users UserStore,
	geocoder geocode.ClientInterface,
	climateClient climate.ClientInterface,
	placesClient places.ClientInterface,
	regeocodeOnUpdate bool,
) *TripModel {
	return &TripModel{
		store:             store,
		users:             users,
		geocoder:          geocoder,
		climate:           climateClient,
		places:            placesClient,
		regeocodeOnUpdate: regeocodeOnUpdate,
	}
}

// CreateTrip geocodes the location text, summarizes the climate for the date
// range, and persists trip, location, and condition in one transaction.
// Nothing is written if any step fails.
func (tm *TripModel) CreateTrip(ctx context.Context, req *types.CreateTripRequest) (*types.TripView, error) {
	log := logger.GetLogger()

	if err := validateTripInput(req.Name, req.Location, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	owner, err := tm.users.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	place, err := tm.geocoder.Resolve(ctx, req.Location)
	if err != nil {
		return nil, err
	}

	condition, err := tm.summarizeCondition(ctx, place.Latitude, place.Longitude, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	trip := &types.Trip{
		ID:          uuid.NewString(),
		Name:        req.Name,
		UserID:      owner.ID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	}
	location := &types.TripLocation{
		ID:        uuid.NewString(),
		TripID:    trip.ID,
		Name:      place.Name,
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
	}
	condition.ID = uuid.NewString()
	condition.LocationID = location.ID
	location.Condition = condition
	trip.Location = location

	if err := tm.store.CreateTrip(ctx, trip); err != nil {
		return nil, err
	}

	trip.User = owner
	log.Infow("Trip created", "tripId", trip.ID, "location", place.Name)
	return types.ProjectTrip(trip), nil
}

// UpdateTrip applies a partial update and recomputes the climate summary for
// the resulting location and date range. Coordinates come from the stored
// location; a changed location text only renames it unless regeocodeOnUpdate
// is set. All three rows keep their ids and are updated in one transaction.
func (tm *TripModel) UpdateTrip(ctx context.Context, id string, req *types.UpdateTripRequest) (*types.TripView, error) {
	log := logger.GetLogger()

	trip, err := tm.store.GetTrip(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip.Location == nil || trip.Location.Condition == nil {
		return nil, apperrors.InternalServerError("trip is missing its location record")
	}

	if req.Name != nil {
		trip.Name = *req.Name
	}
	if req.StartDate != nil {
		trip.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		trip.EndDate = *req.EndDate
	}
	if req.Description != nil {
		trip.Description = *req.Description
	}
	if req.Location != nil {
		trip.Location.Name = *req.Location
		if tm.regeocodeOnUpdate {
			place, err := tm.geocoder.Resolve(ctx, *req.Location)
			if err != nil {
				return nil, err
			}
			trip.Location.Name = place.Name
			trip.Location.Latitude = place.Latitude
			trip.Location.Longitude = place.Longitude
		}
	}

	if err := validateTripInput(trip.Name, trip.Location.Name, trip.StartDate, trip.EndDate); err != nil {
		return nil, err
	}

	condition, err := tm.summarizeCondition(ctx, trip.Location.Latitude, trip.Location.Longitude, trip.StartDate, trip.EndDate)
	if err != nil {
		return nil, err
	}
	condition.ID = trip.Location.Condition.ID
	condition.LocationID = trip.Location.ID
	trip.Location.Condition = condition

	if err := tm.store.UpdateTrip(ctx, trip); err != nil {
		return nil, err
	}

	log.Infow("Trip updated", "tripId", trip.ID)
	return types.ProjectTrip(trip), nil
}

func (tm *TripModel) GetTrip(ctx context.Context, id string) (*types.TripView, error) {
	trip, err := tm.store.GetTrip(ctx, id)
	if err != nil {
		return nil, err
	}
	return types.ProjectTrip(trip), nil
}

func (tm *TripModel) ListTrips(ctx context.Context) ([]*types.TripView, error) {
	trips, err := tm.store.ListTrips(ctx)
	if err != nil {
		return nil, err
	}
	return types.ProjectTrips(trips), nil
}

func (tm *TripModel) ListTripsByUser(ctx context.Context, userID string) ([]*types.TripView, error) {
	trips, err := tm.store.ListTripsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return types.ProjectTrips(trips), nil
}

func (tm *TripModel) DeleteTrip(ctx context.Context, id string) error {
	return tm.store.DeleteTrip(ctx, id)
}

// LocationPhoto returns a representative photo URL for the trip's location,
// or an empty string when the place has no photos.
func (tm *TripModel) LocationPhoto(ctx context.Context, tripID string) (string, error) {
	trip, err := tm.store.GetTrip(ctx, tripID)
	if err != nil {
		return "", err
	}
	if trip.Location == nil {
		return "", apperrors.NotFound("Trip location", tripID)
	}

	lat := strconv.FormatFloat(trip.Location.Latitude, 'f', -1, 64)
	lng := strconv.FormatFloat(trip.Location.Longitude, 'f', -1, 64)
	return tm.places.PhotoForLatLng(ctx, lat, lng)
}

// summarizeCondition fetches the climate summary for the coordinates and date
// range. Both the create and update paths feed their persisted condition
// through here; ids are assigned by the caller.
func (tm *TripModel) summarizeCondition(ctx context.Context, lat, lon float64, start, end time.Time) (*types.LocationCondition, error) {
	summary, err := tm.climate.Summarize(ctx, lat, lon, start, end)
	if err != nil {
		return nil, err
	}
	return &types.LocationCondition{
		AvgHumidity: summary.AvgHumidity,
		AvgTempC:    summary.AvgTempC,
		AvgTempF:    summary.AvgTempF,
	}, nil
}

func validateTripInput(name, location string, start, end time.Time) error {
	if name == "" {
		return apperrors.ValidationFailed("Trip name is required", "name must not be empty")
	}
	if location == "" {
		return apperrors.ValidationFailed("Trip location is required", "location must not be empty")
	}
	if end.Before(start) {
		return apperrors.ValidationFailed("Invalid date range", "end date must not be before start date")
	}
	return nil
}
