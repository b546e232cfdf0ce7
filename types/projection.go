package types

import "time"

// View types are the caller-facing shapes of persisted records. They are
// produced exclusively by the Project* functions below, which are pure
// transforms: no I/O, no failure modes. The password hash is stripped here
// and nowhere else, so every outbound payload must pass through a projection.

type UserView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserSummary is the shape of a user embedded in another entity's view (trip
// owner, rater). Only the display name crosses that boundary; id and email
// stay on the /users surface.
type UserSummary struct {
	Name string `json:"name"`
}

type ConditionView struct {
	ID          string  `json:"id"`
	AvgHumidity float64 `json:"avgHumidity"`
	AvgTempC    float64 `json:"avgTempC"`
	AvgTempF    float64 `json:"avgTempF"`
}

type LocationView struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Condition *ConditionView `json:"condition,omitempty"`
}

type RatingView struct {
	ID      string       `json:"id"`
	Value   int          `json:"value"`
	Comment string       `json:"comment,omitempty"`
	User    *UserSummary `json:"user,omitempty"`
}

type TripView struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	UserID      string        `json:"userId"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	Description string        `json:"description,omitempty"`
	Location    *LocationView `json:"location,omitempty"`
	User        *UserSummary  `json:"user,omitempty"`
	Ratings     []RatingView  `json:"ratings,omitempty"`
}

// ProjectUser strips the password hash from a user record. This full view is
// for the /users surface only; embedded users go through SummarizeUser.
func ProjectUser(u *User) *UserView {
	if u == nil {
		return nil
	}
	return &UserView{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

// SummarizeUser reduces a user to the name-only shape embedded in trip and
// rating views.
func SummarizeUser(u *User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{Name: u.Name}
}

// ProjectCondition shapes a condition record for output.
func ProjectCondition(c *LocationCondition) *ConditionView {
	if c == nil {
		return nil
	}
	return &ConditionView{
		ID:          c.ID,
		AvgHumidity: c.AvgHumidity,
		AvgTempC:    c.AvgTempC,
		AvgTempF:    c.AvgTempF,
	}
}

// ProjectLocation shapes a location record, including its owned condition.
func ProjectLocation(l *TripLocation) *LocationView {
	if l == nil {
		return nil
	}
	return &LocationView{
		ID:        l.ID,
		Name:      l.Name,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Condition: ProjectCondition(l.Condition),
	}
}

// ProjectRating shapes a rating record; the rater, if loaded, is projected too.
func ProjectRating(r *Rating) *RatingView {
	if r == nil {
		return nil
	}
	return &RatingView{
		ID:      r.ID,
		Value:   r.Value,
		Comment: r.Comment,
		User:    SummarizeUser(r.User),
	}
}

// ProjectTrip shapes a trip record with all loaded nested entities.
func ProjectTrip(t *Trip) *TripView {
	if t == nil {
		return nil
	}
	view := &TripView{
		ID:          t.ID,
		Name:        t.Name,
		UserID:      t.UserID,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Description: t.Description,
		Location:    ProjectLocation(t.Location),
		User:        SummarizeUser(t.User),
	}
	if len(t.Ratings) > 0 {
		view.Ratings = make([]RatingView, len(t.Ratings))
		for i := range t.Ratings {
			view.Ratings[i] = *ProjectRating(&t.Ratings[i])
		}
	}
	return view
}

// ProjectTrips shapes a slice of trips.
func ProjectTrips(trips []*Trip) []*TripView {
	views := make([]*TripView, len(trips))
	for i, t := range trips {
		views[i] = ProjectTrip(t)
	}
	return views
}
