package types

// Rating is a user's score and optional comment on a trip.
type Rating struct {
	ID      string `json:"id"`
	TripID  string `json:"tripId"`
	UserID  string `json:"userId"`
	Value   int    `json:"value"`
	Comment string `json:"comment,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// CreateRatingRequest is the payload for adding a rating to a trip. TripID
// comes from the route path, not the body.
type CreateRatingRequest struct {
	UserID  string `json:"userId" binding:"required"`
	TripID  string `json:"-"`
	Value   *int   `json:"value" binding:"required"`
	Comment string `json:"comment,omitempty"`
}
