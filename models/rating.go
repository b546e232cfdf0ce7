package models

import (
	"context"

	apperrors "github.com/TripCast/tripcast-backend/errors"
	"github.com/TripCast/tripcast-backend/types"
	"github.com/google/uuid"
)

// RatingStore is the persistence surface RatingModel depends on.
type RatingStore interface {
	CreateRating(ctx context.Context, rating *types.Rating) error
	ListRatingsByTrip(ctx context.Context, tripID string) ([]types.Rating, error)
	ListRatingsByUser(ctx context.Context, userID string) ([]types.Rating, error)
}

type RatingModel struct {
	store RatingStore
}

func NewRatingModel(store RatingStore) *RatingModel {
	return &RatingModel{store: store}
}

// CreateRating validates and persists a score with an optional comment.
func (rm *RatingModel) CreateRating(ctx context.Context, req *types.CreateRatingRequest) (*types.RatingView, error) {
	if req.Value == nil || *req.Value < 1 || *req.Value > 5 {
		return nil, apperrors.ValidationFailed("Invalid rating value", "value must be between 1 and 5")
	}

	rating := &types.Rating{
		ID:      uuid.NewString(),
		TripID:  req.TripID,
		UserID:  req.UserID,
		Value:   *req.Value,
		Comment: req.Comment,
	}
	if err := rm.store.CreateRating(ctx, rating); err != nil {
		return nil, err
	}

	return types.ProjectRating(rating), nil
}

func (rm *RatingModel) ListRatingsByTrip(ctx context.Context, tripID string) ([]*types.RatingView, error) {
	ratings, err := rm.store.ListRatingsByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return projectRatings(ratings), nil
}

func (rm *RatingModel) ListRatingsByUser(ctx context.Context, userID string) ([]*types.RatingView, error) {
	ratings, err := rm.store.ListRatingsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return projectRatings(ratings), nil
}

func projectRatings(ratings []types.Rating) []*types.RatingView {
	views := make([]*types.RatingView, 0, len(ratings))
	for i := range ratings {
		views = append(views, types.ProjectRating(&ratings[i]))
	}
	return views
}
