package types

import "time"

// Trip is a planned trip owned by a single user. Every persisted trip owns
// exactly one TripLocation, which in turn owns exactly one LocationCondition;
// the three are always written in a single transaction.
type Trip struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	UserID      string        `json:"userId"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	Description string        `json:"description,omitempty"`
	Location    *TripLocation `json:"location,omitempty"`
	User        *User         `json:"user,omitempty"`
	Ratings     []Rating      `json:"ratings,omitempty"`
}

// TripLocation is the geocoded destination of one trip (1:1 composition).
type TripLocation struct {
	ID        string             `json:"id"`
	TripID    string             `json:"tripId"`
	Name      string             `json:"name"`
	Latitude  float64            `json:"latitude"`
	Longitude float64            `json:"longitude"`
	Condition *LocationCondition `json:"condition,omitempty"`
}

// LocationCondition holds the aggregated historical-climate estimate for a
// location over the trip's date range. AvgTempF is computed once at write
// time from AvgTempC (F = C*9/5 + 32) and stored, never recomputed on read.
type LocationCondition struct {
	ID          string  `json:"id"`
	LocationID  string  `json:"locationId"`
	AvgHumidity float64 `json:"avgHumidity"`
	AvgTempC    float64 `json:"avgTempC"`
	AvgTempF    float64 `json:"avgTempF"`
}

// CreateTripRequest is the payload for creating a trip.
type CreateTripRequest struct {
	UserID      string    `json:"userId" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
	Location    string    `json:"location" binding:"required"`
	Description string    `json:"description,omitempty"`
}

// UpdateTripRequest is the payload for updating a trip. All fields are
// optional; nil means "leave unchanged". A new date range triggers a fresh
// climate summary for the trip's location.
type UpdateTripRequest struct {
	Name        *string    `json:"name,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Description *string    `json:"description,omitempty"`
}
