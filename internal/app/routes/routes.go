package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loopinhq/backend/internal/app/controllers"
	"github.com/loopinhq/backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	cityController *controllers.CityController,
	eventController *controllers.EventController,
	communityController *controllers.CommunityController,
	venueController *controllers.VenueController,
	subscriptionController *controllers.SubscriptionController,
	leaderboardController *controllers.LeaderboardController,
	analyticsController *controllers.AnalyticsController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Public routes ---
	cities := v1.Group("/cities")
	{
		cities.GET("", cityController.GetCities)
	}

	events := v1.Group("/events")
	{
		events.GET("", eventController.GetEvents)
		events.GET("/:id", eventController.GetEvent)
		events.POST("", eventController.SubmitEvent)
		events.POST("/:id/register-click", eventController.RegisterClick)
	}

	archivedEvents := v1.Group("/archived-events")
	{
		archivedEvents.GET("", eventController.GetArchivedEvents)
		archivedEvents.GET("/:id", eventController.GetArchivedEvent)
	}

	communities := v1.Group("/communities")
	{
		communities.GET("", communityController.GetCommunities)
		communities.GET("/:id", communityController.GetCommunity)
	}

	venues := v1.Group("/venues")
	{
		venues.GET("", venueController.GetVenues)
		venues.GET("/:id", venueController.GetVenue)
	}

	leaderboard := v1.Group("/leaderboard")
	{
		leaderboard.GET("/communities", leaderboardController.TopCommunities)
		leaderboard.GET("/venues", leaderboardController.TopVenues)
	}

	v1.POST("/subscriptions", subscriptionController.Subscribe)
	v1.GET("/unsubscribe", subscriptionController.Unsubscribe)
	v1.POST("/webhooks/email", subscriptionController.HandleEmailWebhook)

	// --- Admin routes ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.JWTAuth())
	{
		adminCities := admin.Group("/cities")
		{
			adminCities.POST("", cityController.CreateCity)
			adminCities.PUT("/:id", cityController.UpdateCity)
			adminCities.DELETE("/:id", cityController.DeleteCity)
		}

		adminEvents := admin.Group("/events")
		{
			adminEvents.GET("", eventController.GetAdminEvents)
			adminEvents.POST("/sweep", eventController.Sweep)
			adminEvents.GET("/sweep/logs", eventController.GetSweepLogs)
			adminEvents.POST("/:id/approve", eventController.ApproveEvent)
			adminEvents.POST("/:id/reject", eventController.RejectEvent)
			adminEvents.POST("/:id/archive", eventController.ArchiveEvent)
			adminEvents.PUT("/:id", eventController.UpdateEvent)
			adminEvents.PUT("/:id/featured", eventController.SetFeatured)
			adminEvents.DELETE("/:id", eventController.DeleteEvent)
		}

		adminArchived := admin.Group("/archived-events")
		{
			adminArchived.PUT("/:id/featured", eventController.SetArchivedFeatured)
		}

		adminCommunities := admin.Group("/communities")
		{
			adminCommunities.PUT("/:id", communityController.UpdateCommunity)
			adminCommunities.POST("/:id/approve", communityController.ApproveCommunity)
			adminCommunities.POST("/:id/reject", communityController.RejectCommunity)
			adminCommunities.POST("/:id/transfer-events", communityController.TransferEvents)
			adminCommunities.DELETE("/:id", communityController.DeleteCommunity)
		}

		adminDuplicates := admin.Group("/duplicates")
		{
			adminDuplicates.GET("", communityController.GetDuplicates)
			adminDuplicates.POST("/:id/merge", communityController.MergeDuplicate)
			adminDuplicates.POST("/:id/keep-separate", communityController.KeepSeparate)
			adminDuplicates.POST("/:id/investigate", communityController.MarkForInvestigation)
		}

		adminVenues := admin.Group("/venues")
		{
			adminVenues.POST("", venueController.CreateVenue)
			adminVenues.PUT("/:id", venueController.UpdateVenue)
			adminVenues.POST("/:id/approve", venueController.ApproveVenue)
			adminVenues.POST("/:id/reject", venueController.RejectVenue)
			adminVenues.DELETE("/:id", venueController.DeleteVenue)
		}

		adminSubscriptions := admin.Group("/subscriptions")
		{
			adminSubscriptions.GET("", subscriptionController.GetSubscriptions)
			adminSubscriptions.GET("/stats", subscriptionController.GetStats)
			adminSubscriptions.PATCH("/:id", subscriptionController.UpdateSubscriptionStatus)
			adminSubscriptions.DELETE("/:id", subscriptionController.DeleteSubscription)
		}

		admin.GET("/analytics", analyticsController.GetSummary)
		admin.GET("/analytics/clicks", analyticsController.GetClicks)
	}
}
