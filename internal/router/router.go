package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"clubhub/internal/auth"
	"clubhub/internal/config"
	"clubhub/internal/handler"
	"clubhub/internal/ratelimit"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sendCodeLimiter *ratelimit.Limiter,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	clubHandler *handler.ClubHandler,
	annHandler *handler.AnnouncementHandler,
	regHandler *handler.RegistrationHandler,
	socialHandler *handler.SocialHandler,
	adminHandler *handler.AdminHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/send-code", authHandler.SendCode, sendCodeLimiter.Middleware())
	api.POST("/auth/verify", authHandler.Verify)
	api.POST("/auth/login", authHandler.Login)

	api.GET("/clubs", clubHandler.List)
	api.GET("/clubs/:id", clubHandler.Get)

	api.GET("/announcements", annHandler.List)
	api.GET("/announcements/:id", annHandler.Get)
	api.GET("/announcements/:id/registration-info", regHandler.Info)
	api.GET("/announcements/:id/comments", socialHandler.ListComments)

	// One-click coordinator decisions carry their own signed tokens.
	api.GET("/admin/approve-via-email", adminHandler.ApproveViaEmail)
	api.GET("/admin/reject-via-email", adminHandler.RejectViaEmail)

	api.GET("/seed/clubs", seedHandler.SeedClubs)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/me", userHandler.Me)
	secured.GET("/profile", userHandler.Me)
	secured.POST("/profile", userHandler.UpdateProfile)

	secured.POST("/clubs/:id/subscribe", clubHandler.Subscribe)
	secured.POST("/clubs/:id/unsubscribe", clubHandler.Unsubscribe)
	secured.GET("/clubs/:id/subscription-status", clubHandler.SubscriptionStatus)
	secured.GET("/my-subscriptions", clubHandler.MySubscriptions)

	secured.POST("/announcements", annHandler.Create)
	secured.PUT("/announcements/:id", annHandler.Update)
	secured.DELETE("/announcements/:id", annHandler.Delete)

	secured.POST("/announcements/:id/register", regHandler.Register)
	secured.POST("/announcements/:id/unregister", regHandler.Unregister)
	secured.GET("/announcements/:id/registration-status", regHandler.Status)
	secured.GET("/announcements/:id/registrations", regHandler.Roster)
	secured.GET("/announcements/:id/registrations/export", regHandler.ExportCSV)

	secured.POST("/announcements/:id/like", socialHandler.ToggleLike)
	secured.GET("/announcements/:id/liked", socialHandler.Liked)
	secured.POST("/announcements/:id/comments", socialHandler.AddComment)
	secured.DELETE("/comments/:id", socialHandler.DeleteComment)

	secured.GET("/admin/pending-requests", adminHandler.Pending)
	secured.GET("/admin/stats", adminHandler.Stats)
	secured.POST("/admin/approve-request", adminHandler.Approve)
	secured.POST("/admin/reject-request", adminHandler.Reject)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
