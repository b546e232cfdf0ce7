package types

// ErrorResponse is the uniform failure payload: callers always receive either
// a valid entity view or this shape.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// SavedStatusResponse reports whether a user has bookmarked a trip.
type SavedStatusResponse struct {
	Saved bool `json:"saved"`
}

// PhotoResponse carries a single place-photo URL.
type PhotoResponse struct {
	URL string `json:"url"`
}
