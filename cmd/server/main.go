package main

import (
	"net/http"
	"os"

	_ "clubhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"clubhub/internal/auth"
	"clubhub/internal/config"
	"clubhub/internal/db"
	"clubhub/internal/handler"
	"clubhub/internal/mail"
	"clubhub/internal/model"
	"clubhub/internal/otp"
	"clubhub/internal/ratelimit"
	"clubhub/internal/repository"
	"clubhub/internal/router"
	"clubhub/internal/service"
)

// @title Campus Club Hub API
// @version 1.0
// @description Club announcements, event registrations, and email OTP authentication for a campus community.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.WithError(err).Fatal("database init")
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		logger.Info("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.Comment{},
			&model.Like{},
			&model.EventRegistration{},
			&model.ClubSubscription{},
			&model.Announcement{},
			&model.User{},
			&model.Club{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				logger.WithError(err).Warn("drop table failed (may not exist)")
			}
		}
	}

	// Migration failure is not fatal: the server still serves auth and
	// anything redis-backed until the database comes up.
	if err := gormDB.AutoMigrate(
		&model.Club{},
		&model.User{},
		&model.Announcement{},
		&model.ClubSubscription{},
		&model.EventRegistration{},
		&model.Like{},
		&model.Comment{},
	); err != nil {
		logger.WithError(err).Warn("auto-migrate failed, continuing")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	clubRepo := repository.NewClubRepository(gormDB)
	annRepo := repository.NewAnnouncementRepository(gormDB)
	regRepo := repository.NewRegistrationRepository(gormDB)
	subRepo := repository.NewSubscriptionRepository(gormDB)
	socialRepo := repository.NewSocialRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.SessionTTL, cfg.ActionTokenTTL)
	codeStore := otp.NewStore(rdb, cfg.OTPTTL)
	sendCodeLimiter := ratelimit.New(rdb, logger, "ratelimit:send-code:", cfg.SendCodeLimit, cfg.SendCodeWindow)

	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.FromEmail, logger)

	// Initialize services
	notifier := service.NewEmailNotifier(subRepo, clubRepo, mailer, jwtService, cfg.BaseURL, cfg.CoordinatorEmails, logger)
	authService := service.NewAuthService(userRepo, codeStore, mailer, jwtService, cfg.DevMailFallback, logger)
	userService := service.NewUserService(userRepo, clubRepo, notifier)
	clubService := service.NewClubService(clubRepo, subRepo)
	annService := service.NewAnnouncementService(annRepo, notifier)
	regService := service.NewRegistrationService(regRepo, annRepo)
	socialService := service.NewSocialService(socialRepo, annRepo)
	adminService := service.NewAdminService(userRepo, clubRepo, annRepo, regRepo, notifier)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	clubHandler := handler.NewClubHandler(clubService, userService)
	annHandler := handler.NewAnnouncementHandler(annService, userService, cfg.UploadDir, cfg.MaxImageSize)
	regHandler := handler.NewRegistrationHandler(regService, userService)
	socialHandler := handler.NewSocialHandler(socialService, userService)
	adminHandler := handler.NewAdminHandler(adminService, jwtService, cfg)
	seedHandler := handler.NewSeedHandler(clubService)

	e := echo.New()

	// Register routes
	router.Register(
		e,
		cfg,
		sendCodeLimiter,
		authHandler,
		userHandler,
		clubHandler,
		annHandler,
		regHandler,
		socialHandler,
		adminHandler,
		seedHandler,
	)

	logger.WithField("port", cfg.ServerPort).Info("starting server")

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Fatal("server start")
	}
}
