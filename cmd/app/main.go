package main

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/dubem4521-dot/the-pork-chop-emporium/external/resend"
	"github.com/dubem4521-dot/the-pork-chop-emporium/external/s3store"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/config"
	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/db"
	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/middleware"
	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/repository"
	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/services"
)

type requestValidator struct {
	v *validator.Validate
}

func (rv *requestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// ======================
	// CONFIG
	// ======================
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	middleware.Init(cfg.JWTSecret)

	ctx := context.Background()

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logrus.Fatal(err)
	}
	defer pool.Close()

	// ======================
	// EXTERNALS
	// ======================
	mailer, err := resend.NewResendMailer(cfg.ResendAPIKey, cfg.EmailFrom)
	if err != nil {
		logrus.Fatal(err)
	}

	images, err := s3store.New(ctx, cfg)
	if err != nil {
		logrus.Fatal(err)
	}

	// ======================
	// REPOSITORIES
	// ======================
	pinRepo := repository.NewAdminPinRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	analyticsRepo := repository.NewAnalyticsRepository(pool)

	// ======================
	// SERVICES
	// ======================
	adminAuthSvc := services.NewAdminAuthService(pinRepo, userRepo, mailer, services.NewLocalValidator(), cfg.PinTTL)
	notifySvc := services.NewNotificationService(userRepo, mailer)
	productSvc := services.NewProductService(productRepo, images)
	cartSvc := services.NewCartService(cartRepo, orderRepo, productRepo, notifySvc)
	orderSvc := services.NewOrderService(orderRepo)
	reviewSvc := services.NewReviewService(reviewRepo)
	profileSvc := services.NewProfileService(userRepo)
	analyticsSvc := services.NewAnalyticsService(analyticsRepo)

	// ======================
	// CRON
	// ======================
	// expired challenges are only filtered at lookup time, so sweep them
	c := cron.New()
	if _, err := c.AddFunc("@hourly", func() {
		adminAuthSvc.PurgeExpired(context.Background())
	}); err != nil {
		logrus.Fatal(err)
	}
	c.Start()
	defer c.Stop()

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{v: validator.New()}
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))

	api := e.Group("")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAdminPinRoutes(api, adminAuthSvc)
	registerAuthRoutes(api, profileSvc)
	registerProductRoutes(api, productSvc)
	registerCartRoutes(api, cartSvc)
	registerOrderRoutes(api, orderSvc)
	registerReviewRoutes(api, reviewSvc)
	registerProfileRoutes(api, profileSvc)
	registerAnalyticsRoutes(api, analyticsSvc)

	// ======================
	// SERVER
	// ======================
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
