package api

import (
	"log"
	stdhttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	intconfig "trailporter/internal/config"
	"trailporter/internal/domain"
	h "trailporter/internal/http/handlers"
	"trailporter/internal/http/middleware"
	"trailporter/internal/ratelimit"
	"trailporter/internal/repositories"
	"trailporter/internal/services"
	"trailporter/internal/trail"
)

func corsConfig(env intconfig.Env) cors.Config {
	cfg := cors.DefaultConfig()
	if len(env.CORSAllowedOrigins) > 0 {
		cfg.AllowOrigins = env.CORSAllowedOrigins
	} else {
		cfg.AllowOrigins = []string{env.AppOrigin}
	}
	cfg.AllowCredentials = true
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("stageid", func(fl validator.FieldLevel) bool {
			return trail.ValidStageID(fl.Field().String())
		})
	}
}

// NewRouter wires middleware and routes. The limiter guards only the
// pre-checkout gate, matching its abuse surface.
func NewRouter(env intconfig.Env, limiter ratelimit.Limiter) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), cors.New(corsConfig(env)))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	sessionAuth := services.AuthService{
		Users:    repositories.UserRepository{},
		Sessions: repositories.SessionRepository{},
	}
	r.Use(middleware.Session(sessionAuth))

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

		// Pre-checkout gate, rate limited.
		api.POST("/booking/check", middleware.RateLimit(limiter), h.BookingCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
		auth.POST("/reset-request", h.RequestReset)

		api.GET("/reset-password/:token", h.ValidateResetToken)
		api.POST("/reset-password/:token", h.ConsumeResetToken)

		// Checkout and payment callback
		api.POST("/checkout", h.Checkout)
		api.POST("/webhook/stripe", h.StripeWebhook)
		api.GET("/bookings/success", h.BookingSuccess)

		// Customer dashboard
		my := api.Group("/my", middleware.RequireUser())
		my.GET("/bookings", h.MyBookings)
		my.GET("/bookings/:id/confirmation", h.MyBookingConfirmationPDF)

		// Admin dashboard
		admin := api.Group("/admin", middleware.RequireRoles(domain.RoleAdmin))
		admin.GET("/bookings", h.AdminListBookings)
		admin.POST("/bookings/:id/cancel", h.AdminCancelBooking)
		admin.GET("/hotels", h.AdminListHotels)
		admin.POST("/hotels", h.AdminCreateHotel)
		admin.PUT("/hotels/:id", h.AdminUpdateHotel)
		admin.DELETE("/hotels/:id", h.AdminDeleteHotel)
		admin.PUT("/segments/:id/hotels", h.AdminAssignSegmentHotels)

		// Driver manifest
		driver := api.Group("/driver", middleware.RequireRoles(domain.RoleDriver, domain.RoleAdmin))
		driver.GET("/manifest", h.DriverManifest)

		// Owner reporting
		owner := api.Group("/owner", middleware.RequireRoles(domain.RoleOwner, domain.RoleAdmin))
		owner.GET("/summary", h.OwnerSummary)
	}

	return r
}
