// Package router wires the handlers into the versioned HTTP surface.
package router

import (
	"net/http"

	"github.com/TripCast/tripcast-backend/config"
	"github.com/TripCast/tripcast-backend/handlers"
	"github.com/TripCast/tripcast-backend/middleware"
	"github.com/gin-gonic/gin"
)

// Dependencies holds everything SetupRouter needs to define the routes.
type Dependencies struct {
	Config           *config.Config
	UserHandler      *handlers.UserHandler
	TripHandler      *handlers.TripHandler
	FavoritesHandler *handlers.FavoritesHandler
}

// SetupRouter configures and returns the gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	if deps.Config.Server.Environment == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "up", "version": deps.Config.Server.Version})
	})

	v1 := r.Group("/v1")
	{
		userRoutes := v1.Group("/users")
		{
			userRoutes.POST("/register", deps.UserHandler.Register)
			userRoutes.POST("/login", deps.UserHandler.Login)
			userRoutes.GET("/:id", deps.UserHandler.GetUser)
			userRoutes.GET("/:id/trips", deps.TripHandler.ListTripsByOwner)
			userRoutes.GET("/:id/ratings", deps.TripHandler.ListUserRatings)
			userRoutes.GET("/:id/favorites", deps.FavoritesHandler.ListSavedTrips)
		}

		tripRoutes := v1.Group("/trips")
		{
			tripRoutes.POST("", deps.TripHandler.CreateTrip)
			tripRoutes.GET("", deps.TripHandler.ListTrips)
			tripRoutes.GET("/:id", deps.TripHandler.GetTrip)
			tripRoutes.PATCH("/:id", deps.TripHandler.UpdateTrip)
			tripRoutes.DELETE("/:id", deps.TripHandler.DeleteTrip)
			tripRoutes.GET("/:id/photo", deps.TripHandler.GetTripPhoto)
			tripRoutes.POST("/:id/ratings", deps.TripHandler.CreateRating)
			tripRoutes.GET("/:id/ratings", deps.TripHandler.ListRatings)
		}

		favoriteRoutes := v1.Group("/favorites")
		{
			favoriteRoutes.POST("", deps.FavoritesHandler.SaveTrip)
			favoriteRoutes.DELETE("", deps.FavoritesHandler.UnsaveTrip)
			favoriteRoutes.GET("/status", deps.FavoritesHandler.IsFavourited)
		}
	}

	return r
}
