package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"myplan-backend/controllers"
	"myplan-backend/middleware"
	"myplan-backend/models"
	"myplan-backend/utils"
)

func parseCorsOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return []string{"http://localhost:3000", "http://localhost:5173"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// Controllers bundles the service-backed controllers the router wires up.
type Controllers struct {
	Bookings    *controllers.BookingController
	Tickets     *controllers.TicketController
	Experiences *controllers.ExperienceController
	Reports     *controllers.ReportController
}

// SetupRouter builds the gin engine with CORS, logging and all route groups.
func SetupRouter(ctrl Controllers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     parseCorsOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		utils.JSONSuccess(c, 200, gin.H{"status": "ok"})
	})

	uploadDir := utils.EnvOrDefault("UPLOAD_DIR", "./uploads")
	router.Static("/uploads", uploadDir)

	api := router.Group("/api")

	// Public surface: discovery, auth and the anonymous ticket check.
	api.POST("/auth/register", controllers.Register)
	api.POST("/auth/login", controllers.Login)
	api.POST("/auth/logout", controllers.Logout)

	api.GET("/home", controllers.Home)
	api.GET("/home/map", controllers.HomeMap)
	api.GET("/explore", controllers.Explore)
	api.GET("/experiences", ctrl.Experiences.Index)
	api.GET("/experiences/:id", ctrl.Experiences.Show)
	api.GET("/experiences/:id/reviews", controllers.ReviewsByExperience)
	api.GET("/tickets/view/:code", ctrl.Tickets.View)

	// Visitor surface.
	visitor := api.Group("/")
	visitor.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleVisitor))
	{
		visitor.GET("profile", controllers.ShowProfile)
		visitor.PUT("profile", controllers.UpdateProfile)
		visitor.PUT("profile/password", controllers.UpdatePassword)
		visitor.DELETE("profile/image", controllers.DeleteProfileImage)

		visitor.POST("bookings", ctrl.Bookings.Create)
		visitor.GET("bookings", ctrl.Bookings.MyBookings)
		visitor.POST("bookings/:id/cancel", ctrl.Bookings.Cancel)
		visitor.GET("bookings/:id/tickets", ctrl.Tickets.Download)

		visitor.GET("calendar", controllers.GetCalendarData)
		visitor.POST("calendar/invitations", controllers.HandleInvite)

		visitor.GET("friends", controllers.FriendsList)
		visitor.GET("friends/highlights", controllers.FriendsHighlights)
		visitor.GET("friends/:id", controllers.FriendProfile)
		visitor.POST("friends/invite", controllers.InviteFriend)
		visitor.GET("friends/invites/sent", controllers.MySentInvites)
		visitor.GET("experiences/:id/slots", controllers.GetExperienceDetails)

		visitor.GET("itineraries", controllers.MyItineraries)
		visitor.POST("itineraries", controllers.StoreItinerary)
		visitor.PUT("itineraries/:id", controllers.UpdateItinerary)
		visitor.DELETE("itineraries/:id", controllers.DeleteItinerary)

		visitor.POST("reviews", controllers.CreateReview)
		visitor.PUT("reviews/:id", controllers.UpdateReview)

		visitor.POST("highlights", controllers.CreateHighlight)
	}

	// Admin surface.
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/dashboard", ctrl.Reports.Dashboard)
		admin.GET("/dashboard/overview", ctrl.Reports.Overview)
		admin.GET("/reports", ctrl.Reports.Generate)

		admin.GET("/bookings", ctrl.Bookings.List)
		admin.GET("/bookings/:id", ctrl.Bookings.Details)
		admin.PUT("/bookings/:id/status", ctrl.Bookings.UpdateStatus)
		admin.GET("/bookings/:id/invoice", ctrl.Bookings.InvoiceDetails)

		admin.POST("/experiences", ctrl.Experiences.Create)
		admin.PUT("/experiences/:id", ctrl.Experiences.Update)
		admin.DELETE("/experiences/:id", ctrl.Experiences.Delete)
		admin.DELETE("/experiences/images/:imageId", ctrl.Experiences.DeleteImage)

		admin.GET("/reviews", controllers.ListReviews)
		admin.GET("/reviews/:id", controllers.ReviewDetails)
		admin.DELETE("/reviews/:id", controllers.DeleteReview)
		admin.POST("/reviews/bulk-delete", controllers.BulkDeleteReviews)

		admin.GET("/highlights", controllers.ListHighlights)
		admin.GET("/highlights/:id", controllers.HighlightDetails)
		admin.DELETE("/highlights/:id", controllers.DeleteHighlight)
		admin.POST("/highlights/bulk-delete", controllers.BulkDeleteHighlights)
	}

	return router
}
