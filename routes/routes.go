package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hotel-booking-api/controllers"
	"hotel-booking-api/middleware"
	"hotel-booking-api/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Controllers bundles every handler group the router needs.
type Controllers struct {
	Auth      *controllers.AuthController
	Hotels    *controllers.HotelController
	RoomTypes *controllers.RoomTypeController
	Rooms     *controllers.RoomController
	Bookings  *controllers.BookingController
	Payments  *controllers.PaymentController
	Reviews   *controllers.ReviewController
	Users     *controllers.UserController
}

func SetupRouter(ctrl Controllers, users *services.UserService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), middleware.Metrics())
	r.Static("/uploads", "./uploads")

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.AuthMiddleware(users)

	api := r.Group("/api/v1")
	{
		// Public browsing
		api.POST("/auth/register", ctrl.Auth.Register)
		api.POST("/auth/login", ctrl.Auth.Login)

		hotels := api.Group("/hotels")
		{
			hotels.GET("", ctrl.Hotels.List)
			hotels.GET("/search", ctrl.Hotels.Search)
			hotels.GET("/cities", ctrl.Hotels.Cities)
			hotels.GET("/:id", ctrl.Hotels.Get)
			hotels.GET("/:id/reviews", ctrl.Hotels.HotelReviews)
		}

		roomTypes := api.Group("/room-types")
		{
			roomTypes.GET("", ctrl.RoomTypes.List)
			roomTypes.GET("/:id", ctrl.RoomTypes.Get)
			roomTypes.GET("/:id/availability", ctrl.RoomTypes.Availability)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("", ctrl.Reviews.List)
			reviews.GET("/statistics", ctrl.Reviews.Statistics)
			reviews.GET("/:id", ctrl.Reviews.Get)
		}

		// Authenticated users
		authed := api.Group("", auth)
		{
			authed.GET("/profile", ctrl.Auth.Profile)
			authed.PUT("/profile", ctrl.Auth.UpdateProfile)

			bookings := authed.Group("/bookings")
			{
				bookings.GET("", ctrl.Bookings.List)
				bookings.POST("", ctrl.Bookings.Create)
				bookings.GET("/:id", ctrl.Bookings.Get)
				bookings.PUT("/:id", ctrl.Bookings.Update)
				bookings.POST("/:id/cancel", ctrl.Bookings.Cancel)
				bookings.DELETE("/:id", ctrl.Bookings.Delete)
				bookings.GET("/:id/can-review", ctrl.Bookings.CanReview)
			}

			payments := authed.Group("/payments")
			{
				payments.POST("", ctrl.Payments.Create)
				payments.GET("/:id", ctrl.Payments.Get)
				payments.PUT("/:id", ctrl.Payments.Update)
			}

			myReviews := authed.Group("/reviews")
			{
				myReviews.GET("/mine", ctrl.Reviews.MyReviews)
				myReviews.POST("", ctrl.Reviews.Create)
				myReviews.PUT("/:id", ctrl.Reviews.Update)
				myReviews.DELETE("/:id", ctrl.Reviews.Delete)
			}
		}

		// Hotel managers and admins
		staff := api.Group("/staff", auth, middleware.StaffRequired())
		{
			staff.POST("/bookings/:id/confirm", ctrl.Bookings.Confirm)
			staff.POST("/bookings/:id/complete", ctrl.Bookings.Complete)

			staff.POST("/payments/:id/mark-paid", ctrl.Payments.MarkPaid)
			staff.POST("/payments/:id/mark-failed", ctrl.Payments.MarkFailed)
			staff.POST("/payments/:id/mark-refunded", ctrl.Payments.MarkRefunded)
			staff.GET("/payments", ctrl.Payments.List)

			rooms := staff.Group("/rooms")
			{
				rooms.GET("", ctrl.Rooms.List)
				rooms.GET("/statistics", ctrl.Rooms.Statistics)
				rooms.GET("/:id", ctrl.Rooms.Get)
				rooms.POST("", ctrl.Rooms.Create)
				rooms.PUT("/:id", ctrl.Rooms.Update)
				rooms.PATCH("/:id/status", ctrl.Rooms.UpdateStatus)
				rooms.DELETE("/:id", ctrl.Rooms.Delete)
			}

			staff.POST("/room-types", ctrl.RoomTypes.Create)
			staff.PUT("/room-types/:id", ctrl.RoomTypes.Update)
			staff.DELETE("/room-types/:id", ctrl.RoomTypes.Delete)

			staff.PUT("/hotels/:id", ctrl.Hotels.Update)
		}

		// Admin only
		admin := api.Group("/admin", auth, middleware.AdminRequired())
		{
			admin.POST("/hotels", ctrl.Hotels.Create)
			admin.DELETE("/hotels/:id", ctrl.Hotels.Delete)

			admin.GET("/users", ctrl.Users.List)
			admin.GET("/users/:id", ctrl.Users.Get)
			admin.PUT("/users/:id", ctrl.Users.Update)
			admin.DELETE("/users/:id", ctrl.Users.Delete)
		}
	}

	return r
}
