package handlers

import (
	"net/http"

	"github.com/TripCast/tripcast-backend/models"
	"github.com/TripCast/tripcast-backend/types"
	"github.com/gin-gonic/gin"
)

type TripHandler struct {
	tripModel   *models.TripModel
	ratingModel *models.RatingModel
}

func NewTripHandler(tripModel *models.TripModel, ratingModel *models.RatingModel) *TripHandler {
	return &TripHandler{tripModel: tripModel, ratingModel: ratingModel}
}

// CreateTrip handles POST /trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req types.CreateTripRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	trip, err := h.tripModel.CreateTrip(c.Request.Context(), &req)
	if err != nil {
		handleModelError(c, err)
		return
	}

	c.JSON(http.StatusCreated, trip)
}

// UpdateTrip handles PATCH /trips/:id
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	var req types.UpdateTripRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	trip, err := h.tripModel.UpdateTrip(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleModelError(c, err)
		return
	}

	c.JSON(http.StatusOK, trip)
}

// GetTrip handles GET /trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripModel.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleModelError(c, err)
		return
	}

	c.JSON(http.StatusOK, trip)
}

// ListTrips handles GET /trips, optionally filtered by owner via ?userId=.
func (h *TripHandler) ListTrips(c *gin.Context) {
	var (
		trips []*types.TripView
		err   error
	)
	if userID := c.Query("userId"); userID != "" {
		trips, err = h.tripModel.ListTripsByUser(c.Request.Context(), userID)
	} else {
		trips, err = h.tripModel.ListTrips(c.Request.Context())
	}
	if err != nil {
		handleModelError(c, err)
		return
	}

	c.JSON(http.StatusOK, trips)
}

// ListTripsByOwner handles GET /users/:id/trips
func (h *TripHandler) ListTripsByOwner(c *gin.Context) {
	trips, err := h.tripModel.ListTripsByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleModelError(c, err)
		return
	}

	c.JSON(http.StatusOK, trips)
}

// DeleteTrip handles DELETE /trips/:id
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	if err := h.tripModel.DeleteTrip(c.Request.Context(), c.Param("id")); err != nil {
		handleModelError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetTripPhoto handles GET /trips/:id/photo
func (h *TripHandler) GetTripPhoto(c *gin.Context) {
	url, err := h.tripModel.LocationPhoto(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleModelError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.PhotoResponse{URL: url})
}

// CreateRating handles POST /trips/:id/ratings
func (h *TripHandler) CreateRating(c *gin.Context) {
	var req types.CreateRatingRequest
	if !bindJSONOrError(c, &req) {
		return
	}
	req.TripID = c.Param("id")

	rating, err := h.ratingModel.CreateRating(c.Request.Context(), &req)
	if err != nil {
		handleModelError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rating)
}

// ListUserRatings handles GET /users/:id/ratings
func (h *TripHandler) ListUserRatings(c *gin.Context) {
	ratings, err := h.ratingModel.ListRatingsByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleModelError(c, err)
		return
	}

	c.JSON(http.StatusOK, ratings)
}

// ListRatings handles GET /trips/:id/ratings
func (h *TripHandler) ListRatings(c *gin.Context) {
	ratings, err := h.ratingModel.ListRatingsByTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleModelError(c, err)
		return
	}

	c.JSON(http.StatusOK, ratings)
}
