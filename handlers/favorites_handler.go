package handlers

import (
	"net/http"

	apperrors "github.com/TripCast/tripcast-backend/errors"
	"github.com/TripCast/tripcast-backend/models"
	"github.com/TripCast/tripcast-backend/types"
	"github.com/gin-gonic/gin"
)

type FavoritesHandler struct {
	favoritesModel *models.FavoritesModel
}

func NewFavoritesHandler(favoritesModel *models.FavoritesModel) *FavoritesHandler {
	return &FavoritesHandler{favoritesModel: favoritesModel}
}

// SaveTrip handles POST /favorites
func (h *FavoritesHandler) SaveTrip(c *gin.Context) {
	var req types.SaveTripRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	if err := h.favoritesModel.SaveTrip(c.Request.Context(), req.UserID, req.TripID); err != nil {
		handleModelError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.SavedStatusResponse{Saved: true})
}

// UnsaveTrip handles DELETE /favorites
func (h *FavoritesHandler) UnsaveTrip(c *gin.Context) {
	var req types.SaveTripRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	if err := h.favoritesModel.UnsaveTrip(c.Request.Context(), req.UserID, req.TripID); err != nil {
		handleModelError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.SavedStatusResponse{Saved: false})
}

// IsFavourited handles GET /favorites/status?userId=&tripId=
func (h *FavoritesHandler) IsFavourited(c *gin.Context) {
	userID := c.Query("userId")
	tripID := c.Query("tripId")
	if userID == "" || tripID == "" {
		handleModelError(c, apperrors.ValidationFailed("Missing query parameters", "userId and tripId are required"))
		return
	}

	saved, err := h.favoritesModel.IsFavourited(c.Request.Context(), userID, tripID)
	if err != nil {
		handleModelError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.SavedStatusResponse{Saved: saved})
}

// ListSavedTrips handles GET /users/:id/favorites
func (h *FavoritesHandler) ListSavedTrips(c *gin.Context) {
	trips, err := h.favoritesModel.ListSavedTrips(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleModelError(c, err)
		return
	}

	c.JSON(http.StatusOK, trips)
}
