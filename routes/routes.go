package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-frontdesk/controllers"
	"hotel-frontdesk/middleware"
	"hotel-frontdesk/models"
	"hotel-frontdesk/services"
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

func SetupRouter(
	ac *controllers.AuthController,
	gc *controllers.GuestController,
	avc *controllers.AvailabilityController,
	rc *controllers.ReservationController,
	sessions *services.SessionService,
	auth *services.AuthService,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

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

	api := r.Group("/api")
	{
		api.POST("/auth/login", ac.Login)

		// Everything below needs a live session.
		authed := api.Group("")
		authed.Use(middleware.RequireAuth(sessions))
		{
			authed.POST("/auth/logout", ac.Logout)

			guests := authed.Group("/guests")
			{
				guests.GET("", gc.ListGuests)
				guests.POST("", gc.CreateGuest)
				guests.GET("/:id", gc.GetGuest)
				guests.PUT("/:id", gc.UpdateGuest)
				guests.GET("/:id/delete", gc.ConfirmDeleteGuest)
				guests.DELETE("/:id", gc.DeleteGuest)
			}

			available := authed.Group("/available-rooms")
			{
				available.GET("", avc.ListAvailableRooms)

				// Static segment must be registered before /:room_number.
				available.GET("/guest-selection", avc.GuestSelection)
				available.POST("/:room_number/reserve", avc.ReserveRoom)
			}

			reservations := authed.Group("/reservations")
			{
				reservations.GET("", rc.ListReservations)
				reservations.GET("/new/:guest_id", rc.NewDraft)
				reservations.POST("/new/:guest_id", rc.CreateReservation)
				reservations.GET("/:id", rc.GetReservation)
				reservations.GET("/:id/confirmed", rc.ConfirmedReservation)
				reservations.GET("/:id/edit", rc.EditReservation)
				reservations.PUT("/:id", rc.UpdateReservation)
				reservations.GET("/:id/delete", rc.ConfirmDeleteReservation)
				reservations.DELETE("/:id", rc.DeleteReservation)
			}

			// Inventory is manager territory.
			inventory := authed.Group("")
			inventory.Use(middleware.RequireCapability(auth, models.CapManageInventory))
			{
				rooms := inventory.Group("/rooms")
				{
					rooms.GET("", controllers.ListRooms)
					rooms.POST("", controllers.CreateRoom)
					rooms.GET("/:room_number", controllers.GetRoom)
					rooms.PUT("/:room_number", controllers.UpdateRoom)
					rooms.GET("/:room_number/delete", controllers.ConfirmDeleteRoom)
					rooms.DELETE("/:room_number", controllers.DeleteRoom)
				}

				roomTypes := inventory.Group("/room-types")
				{
					roomTypes.GET("", controllers.GetRoomTypes)
					roomTypes.POST("", controllers.CreateRoomType)
					roomTypes.GET("/:code", controllers.GetRoomType)
					roomTypes.PUT("/:code", controllers.UpdateRoomType)
					roomTypes.GET("/:code/delete", controllers.ConfirmDeleteRoomType)
					roomTypes.DELETE("/:code", controllers.DeleteRoomType)
				}
			}

			roles := authed.Group("/roles")
			roles.Use(middleware.RequireCapability(auth, models.CapManageRoles))
			{
				roles.GET("", controllers.GetRoles)
				roles.PUT("/:id/capabilities", controllers.UpdateRoleCapabilities)
			}
		}
	}

	return r
}
