package models

import (
	"context"

	"github.com/TripCast/tripcast-backend/types"
	"github.com/google/uuid"
)

// SavedTripStore is the persistence surface FavoritesModel depends on. The
// store runs the already-saved and own-trip checks inside the same
// transaction as the insert.
type SavedTripStore interface {
	Save(ctx context.Context, saved *types.SavedTrip) error
	Unsave(ctx context.Context, userID, tripID string) error
	IsSaved(ctx context.Context, userID, tripID string) (bool, error)
	ListSavedTrips(ctx context.Context, userID string) ([]*types.Trip, error)
}

type FavoritesModel struct {
	store SavedTripStore
}

func NewFavoritesModel(store SavedTripStore) *FavoritesModel {
	return &FavoritesModel{store: store}
}

// SaveTrip bookmarks a trip for a user. Saving twice or saving one's own trip
// fails with AlreadySaved and OwnTrip respectively, checked in that order.
func (fm *FavoritesModel) SaveTrip(ctx context.Context, userID, tripID string) error {
	saved := &types.SavedTrip{
		ID:     uuid.NewString(),
		UserID: userID,
		TripID: tripID,
	}
	return fm.store.Save(ctx, saved)
}

// UnsaveTrip removes the bookmark for the pair; NotFound when none exists.
func (fm *FavoritesModel) UnsaveTrip(ctx context.Context, userID, tripID string) error {
	return fm.store.Unsave(ctx, userID, tripID)
}

// IsFavourited reports whether the pair is bookmarked, with no side effects.
func (fm *FavoritesModel) IsFavourited(ctx context.Context, userID, tripID string) (bool, error) {
	return fm.store.IsSaved(ctx, userID, tripID)
}

// ListSavedTrips returns the user's bookmarked trips as projections.
func (fm *FavoritesModel) ListSavedTrips(ctx context.Context, userID string) ([]*types.TripView, error) {
	trips, err := fm.store.ListSavedTrips(ctx, userID)
	if err != nil {
		return nil, err
	}
	return types.ProjectTrips(trips), nil
}
