package main

import (
	"context"
	"time"

	"github.com/TripCast/tripcast-backend/config"
	"github.com/TripCast/tripcast-backend/db"
	"github.com/TripCast/tripcast-backend/handlers"
	"github.com/TripCast/tripcast-backend/logger"
	"github.com/TripCast/tripcast-backend/models"
	"github.com/TripCast/tripcast-backend/pkg/climate"
	"github.com/TripCast/tripcast-backend/pkg/geocode"
	"github.com/TripCast/tripcast-backend/pkg/places"
	"github.com/TripCast/tripcast-backend/router"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.ConnString())
	if err != nil {
		log.Fatalf("Failed to parse database config: %v", err)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	if life, err := time.ParseDuration(cfg.Database.ConnMaxLife); err == nil {
		poolConfig.MaxConnLifetime = life
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	dbClient := db.NewDatabaseClient(pool)
	userDB := db.NewUserDB(dbClient)
	tripDB := db.NewTripDB(dbClient)
	ratingDB := db.NewRatingDB(dbClient)
	savedTripDB := db.NewSavedTripDB(dbClient)

	geocoder := geocode.NewClient(cfg.ExternalServices.GeocodingBaseURL)
	climateClient := climate.NewClient(cfg.ExternalServices.ClimateBaseURL, cfg.ExternalServices.ClimateModel)
	placesClient := places.NewClient(cfg.ExternalServices.GoogleMapsAPIKey)

	userModel := models.NewUserModel(userDB)
	tripModel := models.NewTripModel(
		tripDB,
		userDB,
		geocoder,
		climateClient,
		placesClient,
		cfg.ExternalServices.UpdateRegeocodesLocation,
	)
	ratingModel := models.NewRatingModel(ratingDB)
	favoritesModel := models.NewFavoritesModel(savedTripDB)

	r := router.SetupRouter(router.Dependencies{
		Config:           cfg,
		UserHandler:      handlers.NewUserHandler(userModel),
		TripHandler:      handlers.NewTripHandler(tripModel, ratingModel),
		FavoritesHandler: handlers.NewFavoritesHandler(favoritesModel),
	})

	log.Infof("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
