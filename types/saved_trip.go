package types

// SavedTrip is a bookmark edge linking a user to a trip they favorited.
// At most one edge exists per (UserID, TripID) pair, enforced by a unique
// constraint in the store; a user never holds an edge to their own trip.
type SavedTrip struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	TripID string `json:"tripId"`
}

// SaveTripRequest is the payload for saving or unsaving a trip.
type SaveTripRequest struct {
	UserID string `json:"userId" binding:"required"`
	TripID string `json:"tripId" binding:"required"`
}
