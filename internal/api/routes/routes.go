// internal/api/routes/routes.go
package routes

import (
	"contingent-booking-api-server/config"
	"contingent-booking-api-server/internal/api/handlers"
	"contingent-booking-api-server/internal/api/middleware"
	"contingent-booking-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

// AdminRoles may mutate bookings and subscribe to booking events.
var AdminRoles = []string{models.RoleAdmin, models.RoleSuperAdmin}

// Handlers bundles the HTTP handlers mounted by SetupRouter.
type Handlers struct {
	Auth              *handlers.AuthHandler
	Health            *handlers.HealthHandler
	Booking           *handlers.BookingHandler
	MasterRegion      *handlers.MasterRegionHandler
	RegionCoordinator *handlers.RegionCoordinatorHandler
	WebSocket         *handlers.WebSocketHandler
}

// SetupRouter wires middleware and routes under /api/v1.
func SetupRouter(cfg config.Config, tokens middleware.TokenParser, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logging())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/health", h.Health.Health)
		apiV1.GET("/ws", h.WebSocket.ServeWs)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
		}

		// Reads are public, mutations need an admin token.
		adminOnly := []gin.HandlerFunc{
			middleware.Authenticate(tokens),
			middleware.Authorize(AdminRoles...),
		}

		booking := apiV1.Group("/booking")
		{
			booking.GET("", h.Booking.GetAll)
			booking.GET("/contingent-names", h.Booking.FilterContingentName)
			booking.GET("/:id", h.Booking.GetByID)

			admin := booking.Group("", adminOnly...)
			admin.POST("", h.Booking.CreateBooking)
			admin.POST("/export", h.Booking.Export)
			admin.PUT("/:id", h.Booking.UpdateBooking)
			admin.PATCH("/:id/status", h.Booking.SetStatus)
			admin.DELETE("/:id", h.Booking.DeleteBooking)
		}

		coordinators := apiV1.Group("/region-coordinator")
		{
			coordinators.GET("", h.RegionCoordinator.All)
			coordinators.GET("/by-name", h.RegionCoordinator.ByName)
			coordinators.GET("/by-phone", h.RegionCoordinator.ByPhone)
		}

		regions := apiV1.Group("/master-region")
		{
			regions.GET("/province", h.MasterRegion.AllProvinces)
			regions.GET("/province/:id", h.MasterRegion.ProvinceByID)
			regions.GET("/province/:id/regency", h.MasterRegion.RegenciesByProvinceID)
		}
	}

	return router
}
