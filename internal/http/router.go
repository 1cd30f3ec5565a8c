package api

import (
	stdhttp "net/http"

	intconfig "backoffice/internal/config"
	h "backoffice/internal/http/handlers"
	"backoffice/internal/http/middleware"
	"backoffice/internal/utils"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	limiter := middleware.NewRateLimiter(env.RateLimitRPS, env.RateLimitBurst)
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins), limiter.Middleware())

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Logger().WithError(err).Warn("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)
		api.POST("/auth/login", h.Login)
	}

	secured := api.Group("")
	secured.Use(middleware.Auth([]byte(env.JWTSecret)))

	itineraries := secured.Group("/itineraries/:id")
	mountItinerary(itineraries)

	secured.POST("/days/:dayId/activities", h.CreateActivity)

	activities := secured.Group("/activities")
	activities.PUT("/:id", h.UpdateActivity)
	activities.DELETE("/:id", h.DeleteActivity)
	activities.POST("/:id/move", h.MoveActivity)

	bookings := secured.Group("/bookings")
	bookings.GET("", h.ListBookings)
	bookings.GET("/:id/ledger", h.GetBookingLedger)
	bookings.GET("/:id/statement", h.GetBookingStatement)
	bookings.POST("/:id/payments", h.CreatePayment)

	payments := secured.Group("/payments")
	payments.GET("", h.ListPayments)
	payments.PUT("/:id", h.UpdatePayment)
	payments.DELETE("/:id", h.DeletePayment)

	secured.POST("/settings/invalidate", middleware.RequireRoles("admin", "owner"), h.InvalidateSettings)

	h.SetRouter(r)
	return r
}

func mountItinerary(g *gin.RouterGroup) {
	g.GET("/days", h.ListDays)
	g.POST("/days", h.AddDay)
	g.POST("/days/init", h.InitializeDays)
	g.POST("/days/redate", h.RedateDays)
	g.PUT("/days/:dayId", h.UpdateDay)
	g.DELETE("/days/:dayId", h.DeleteDay)

	g.GET("/activities", h.ListActivities)

	g.GET("/pricing-options", h.GetPricingOptions)
	g.PUT("/pricing-options", h.SavePricingOptions)
	g.GET("/pricing", h.GetPricingSummary)
	g.GET("/view", h.GetItineraryView)
	g.GET("/document", h.GetItineraryDocument)
}
