package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TripCast/tripcast-backend/config"
	apperrors "github.com/TripCast/tripcast-backend/errors"
	"github.com/TripCast/tripcast-backend/handlers"
	"github.com/TripCast/tripcast-backend/logger"
	"github.com/TripCast/tripcast-backend/models"
	"github.com/TripCast/tripcast-backend/pkg/climate"
	"github.com/TripCast/tripcast-backend/pkg/geocode"
	"github.com/TripCast/tripcast-backend/router"
	"github.com/TripCast/tripcast-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
}

type stubTripStore struct {
	createFn     func(ctx context.Context, trip *types.Trip) error
	updateFn     func(ctx context.Context, trip *types.Trip) error
	getFn        func(ctx context.Context, id string) (*types.Trip, error)
	listFn       func(ctx context.Context) ([]*types.Trip, error)
	listByUserFn func(ctx context.Context, userID string) ([]*types.Trip, error)
	deleteFn     func(ctx context.Context, id string) error
}

func (s *stubTripStore) CreateTrip(ctx context.Context, trip *types.Trip) error {
	return s.createFn(ctx, trip)
}
func (s *stubTripStore) UpdateTrip(ctx context.Context, trip *types.Trip) error {
	return s.updateFn(ctx, trip)
}
func (s *stubTripStore) GetTrip(ctx context.Context, id string) (*types.Trip, error) {
	return s.getFn(ctx, id)
}
func (s *stubTripStore) ListTrips(ctx context.Context) ([]*types.Trip, error) {
	return s.listFn(ctx)
}
func (s *stubTripStore) ListTripsByUser(ctx context.Context, userID string) ([]*types.Trip, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *stubTripStore) DeleteTrip(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubUserStore struct {
	createFn     func(ctx context.Context, user *types.User) error
	getByIDFn    func(ctx context.Context, id string) (*types.User, error)
	getByEmailFn func(ctx context.Context, email string) (*types.User, error)
}

func (s *stubUserStore) CreateUser(ctx context.Context, user *types.User) error {
	return s.createFn(ctx, user)
}
func (s *stubUserStore) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *stubUserStore) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	return s.getByEmailFn(ctx, email)
}

type stubRatingStore struct {
	createFn     func(ctx context.Context, rating *types.Rating) error
	listByTripFn func(ctx context.Context, tripID string) ([]types.Rating, error)
	listByUserFn func(ctx context.Context, userID string) ([]types.Rating, error)
}

func (s *stubRatingStore) CreateRating(ctx context.Context, rating *types.Rating) error {
	return s.createFn(ctx, rating)
}
func (s *stubRatingStore) ListRatingsByTrip(ctx context.Context, tripID string) ([]types.Rating, error) {
	return s.listByTripFn(ctx, tripID)
}
func (s *stubRatingStore) ListRatingsByUser(ctx context.Context, userID string) ([]types.Rating, error) {
	return s.listByUserFn(ctx, userID)
}

type stubSavedTripStore struct {
	saveFn    func(ctx context.Context, saved *types.SavedTrip) error
	unsaveFn  func(ctx context.Context, userID, tripID string) error
	isSavedFn func(ctx context.Context, userID, tripID string) (bool, error)
	listFn    func(ctx context.Context, userID string) ([]*types.Trip, error)
}

func (s *stubSavedTripStore) Save(ctx context.Context, saved *types.SavedTrip) error {
	return s.saveFn(ctx, saved)
}
func (s *stubSavedTripStore) Unsave(ctx context.Context, userID, tripID string) error {
	return s.unsaveFn(ctx, userID, tripID)
}
func (s *stubSavedTripStore) IsSaved(ctx context.Context, userID, tripID string) (bool, error) {
	return s.isSavedFn(ctx, userID, tripID)
}
func (s *stubSavedTripStore) ListSavedTrips(ctx context.Context, userID string) ([]*types.Trip, error) {
	return s.listFn(ctx, userID)
}

type stubGeocoder struct {
	resolveFn func(ctx context.Context, text string) (*geocode.Result, error)
}

func (s *stubGeocoder) Resolve(ctx context.Context, text string) (*geocode.Result, error) {
	return s.resolveFn(ctx, text)
}

type stubClimate struct {
	summarizeFn func(ctx context.Context, lat, lon float64, start, end time.Time) (*climate.ConditionSummary, error)
}

func (s *stubClimate) Summarize(ctx context.Context, lat, lon float64, start, end time.Time) (*climate.ConditionSummary, error) {
	return s.summarizeFn(ctx, lat, lon, start, end)
}

type stubPlaces struct {
	photoFn func(ctx context.Context, lat, lng string) (string, error)
}

func (s *stubPlaces) PhotoForLatLng(ctx context.Context, lat, lng string) (string, error) {
	return s.photoFn(ctx, lat, lng)
}

type testStores struct {
	trips  *stubTripStore
	users  *stubUserStore
	saved  *stubSavedTripStore
	rating *stubRatingStore
	geo    *stubGeocoder
	clim   *stubClimate
	places *stubPlaces
}

func newTestRouter(s *testStores) *gin.Engine {
	tripModel := models.NewTripModel(s.trips, s.users, s.geo, s.clim, s.places, false)
	userModel := models.NewUserModel(s.users)
	ratingModel := models.NewRatingModel(s.rating)
	favoritesModel := models.NewFavoritesModel(s.saved)

	cfg := &config.Config{Server: config.ServerConfig{Environment: config.EnvDevelopment, Version: "test"}}
	return router.SetupRouter(router.Dependencies{
		Config:           cfg,
		UserHandler:      handlers.NewUserHandler(userModel),
		TripHandler:      handlers.NewTripHandler(tripModel, ratingModel),
		FavoritesHandler: handlers.NewFavoritesHandler(favoritesModel),
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthEndpointReportsVersion(t *testing.T) {
	r := newTestRouter(&testStores{})

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"test"`)
}

func TestCreateTripEndpoint(t *testing.T) {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)

	s := &testStores{
		trips: &stubTripStore{createFn: func(ctx context.Context, trip *types.Trip) error { return nil }},
		users: &stubUserStore{getByIDFn: func(ctx context.Context, id string) (*types.User, error) {
			return &types.User{ID: id, Email: "ana@example.com", Name: "Ana", Password: "hashed"}, nil
		}},
		geo: &stubGeocoder{resolveFn: func(ctx context.Context, text string) (*geocode.Result, error) {
			return &geocode.Result{Name: "Lisbon", Latitude: 38.71667, Longitude: -9.13333}, nil
		}},
		clim: &stubClimate{summarizeFn: func(ctx context.Context, lat, lon float64, s, e time.Time) (*climate.ConditionSummary, error) {
			return &climate.ConditionSummary{AvgHumidity: 64, AvgTempC: 20, AvgTempF: 68}, nil
		}},
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPost, "/v1/trips", types.CreateTripRequest{
		UserID:    "user-1",
		Name:      "Summer in Lisbon",
		StartDate: start,
		EndDate:   end,
		Location:  "Lisbon",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var view types.TripView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "Summer in Lisbon", view.Name)
	require.NotNil(t, view.Location)
	require.NotNil(t, view.Location.Condition)
	assert.InDelta(t, 68, view.Location.Condition.AvgTempF, 1e-9)
	require.NotNil(t, view.User)
	assert.Equal(t, "Ana", view.User.Name)
	assert.NotContains(t, w.Body.String(), "hashed")
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "ana@example.com")
	assert.NotContains(t, w.Body.String(), "email")
}

func TestCreateTripEndpointInvalidBody(t *testing.T) {
	r := newTestRouter(&testStores{})

	req := httptest.NewRequest(http.MethodPost, "/v1/trips", bytes.NewBufferString(`{"name":"x"`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(apperrors.ValidationError), resp.Code)
}

func TestCreateTripEndpointLocationNotFound(t *testing.T) {
	s := &testStores{
		users: &stubUserStore{getByIDFn: func(ctx context.Context, id string) (*types.User, error) {
			return &types.User{ID: id}, nil
		}},
		geo: &stubGeocoder{resolveFn: func(ctx context.Context, text string) (*geocode.Result, error) {
			return nil, apperrors.LocationNotFound(text)
		}},
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPost, "/v1/trips", types.CreateTripRequest{
		UserID:    "user-1",
		Name:      "Nowhere trip",
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 0, 7),
		Location:  "xyzzy",
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(apperrors.LocationNotFoundError), resp.Code)
}

func TestGetTripEndpointNotFound(t *testing.T) {
	s := &testStores{
		trips: &stubTripStore{getFn: func(ctx context.Context, id string) (*types.Trip, error) {
			return nil, apperrors.NotFound("Trip", id)
		}},
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodGet, "/v1/trips/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTripEndpoint(t *testing.T) {
	s := &testStores{
		trips: &stubTripStore{deleteFn: func(ctx context.Context, id string) error { return nil }},
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodDelete, "/v1/trips/trip-1", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestSaveTripEndpointConflict(t *testing.T) {
	s := &testStores{
		saved: &stubSavedTripStore{saveFn: func(ctx context.Context, saved *types.SavedTrip) error {
			return apperrors.AlreadySaved(saved.UserID, saved.TripID)
		}},
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPost, "/v1/favorites", types.SaveTripRequest{UserID: "user-1", TripID: "trip-1"})
	require.Equal(t, http.StatusConflict, w.Code)
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(apperrors.AlreadySavedError), resp.Code)
}

func TestSaveTripEndpointOwnTrip(t *testing.T) {
	s := &testStores{
		saved: &stubSavedTripStore{saveFn: func(ctx context.Context, saved *types.SavedTrip) error {
			return apperrors.OwnTrip(saved.UserID, saved.TripID)
		}},
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPost, "/v1/favorites", types.SaveTripRequest{UserID: "user-1", TripID: "trip-1"})
	require.Equal(t, http.StatusConflict, w.Code)
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(apperrors.OwnTripError), resp.Code)
}

func TestFavoriteStatusEndpoint(t *testing.T) {
	s := &testStores{
		saved: &stubSavedTripStore{isSavedFn: func(ctx context.Context, userID, tripID string) (bool, error) {
			return true, nil
		}},
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodGet, "/v1/favorites/status?userId=user-1&tripId=trip-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp types.SavedStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Saved)
}

func TestFavoriteStatusEndpointMissingParams(t *testing.T) {
	r := newTestRouter(&testStores{})

	w := doJSON(t, r, http.MethodGet, "/v1/favorites/status?userId=user-1", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterEndpointStripsPassword(t *testing.T) {
	s := &testStores{
		users: &stubUserStore{createFn: func(ctx context.Context, user *types.User) error { return nil }},
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPost, "/v1/users/register", types.RegisterUserRequest{
		Email:    "ana@example.com",
		Name:     "Ana",
		Password: "hunter22",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "hunter22")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.DefaultCost)
	require.NoError(t, err)

	s := &testStores{
		users: &stubUserStore{getByEmailFn: func(ctx context.Context, email string) (*types.User, error) {
			return &types.User{ID: "user-1", Email: email, Password: string(hash)}, nil
		}},
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPost, "/v1/users/login", types.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTripPhotoEndpoint(t *testing.T) {
	s := &testStores{
		trips: &stubTripStore{getFn: func(ctx context.Context, id string) (*types.Trip, error) {
			return &types.Trip{
				ID: id,
				Location: &types.TripLocation{
					ID: "loc-1", Latitude: 38.71667, Longitude: -9.13333,
					Condition: &types.LocationCondition{ID: "cond-1"},
				},
			}, nil
		}},
		places: &stubPlaces{photoFn: func(ctx context.Context, lat, lng string) (string, error) {
			return "https://maps.googleapis.com/photo?ref=abc", nil
		}},
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodGet, "/v1/trips/trip-1/photo", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp types.PhotoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://maps.googleapis.com/photo?ref=abc", resp.URL)
}

func TestCreateRatingEndpoint(t *testing.T) {
	s := &testStores{
		rating: &stubRatingStore{createFn: func(ctx context.Context, rating *types.Rating) error { return nil }},
	}
	r := newTestRouter(s)

	value := 5
	w := doJSON(t, r, http.MethodPost, "/v1/trips/trip-1/ratings", types.CreateRatingRequest{
		UserID:  "user-2",
		Value:   &value,
		Comment: "Great route",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var view types.RatingView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 5, view.Value)
	assert.Equal(t, "Great route", view.Comment)
}
