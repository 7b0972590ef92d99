package main

import (
	"context"
	"log"
	"time"

	smtpmailer "github.com/Visithrand/infant-jesus-dvk/external/smtp"
	"github.com/Visithrand/infant-jesus-dvk/internal/config"
	"github.com/Visithrand/infant-jesus-dvk/internal/db"
	"github.com/Visithrand/infant-jesus-dvk/internal/middleware"
	"github.com/Visithrand/infant-jesus-dvk/internal/repository"
	"github.com/Visithrand/infant-jesus-dvk/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	uploads, err := services.NewUploadStore(cfg.UploadDir)
	if err != nil {
		log.Fatal(err)
	}

	// ======================
	// EXTERNALS
	// ======================
	var sender services.EmailSender
	if cfg.SMTPHost != "" {
		sender, err = smtpmailer.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		sender = services.LogSender{}
	}

	// ======================
	// REPOSITORIES
	// ======================
	adminRepo := repository.NewAdminRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)
	classRepo := repository.NewClassScheduleRepository(pool)
	facilityRepo := repository.NewFacilityRepository(pool)

	// ======================
	// SERVICES
	// ======================
	tokens := middleware.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenTTLHrs)*time.Hour)
	adminSvc := services.NewAdminService(adminRepo)
	userSvc := services.NewUserService(userRepo)
	eventSvc := services.NewEventService(eventRepo, uploads)
	announcementSvc := services.NewAnnouncementService(announcementRepo)
	classSvc := services.NewClassScheduleService(classRepo)
	facilitySvc := services.NewFacilityService(facilityRepo, uploads)
	emailSvc := services.NewEmailService(sender, cfg.DestinationEmail)

	// ======================
	// BOOTSTRAP
	// ======================
	if cfg.SuperAdminEmail != "" && cfg.SuperAdminPassword != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		admin, err := adminSvc.BootstrapSuperAdmin(ctx, cfg.SuperAdminUsername, cfg.SuperAdminEmail, cfg.SuperAdminPassword)
		if err != nil {
			cancel()
			log.Fatalf("super admin bootstrap failed: %v", err)
		}
		removed, err := adminSvc.Reconcile(ctx)
		cancel()
		if err != nil {
			log.Fatalf("admin reconciliation failed: %v", err)
		}
		log.Printf("super admin ready (id=%d); reconciliation removed %d duplicate(s)", admin.AdminID, removed)
	} else {
		log.Println("SUPER_ADMIN_EMAIL/PASSWORD not set; skipping bootstrap")
	}

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(tokens.AuthContext())

	// stored image URLs are rooted at /uploads, outside the /api prefix
	e.Static("/uploads", uploads.Dir())

	api := e.Group("/api")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAdminRoutes(api, adminSvc, tokens, bootstrapCredentials{
		Username: cfg.SuperAdminUsername,
		Email:    cfg.SuperAdminEmail,
		Password: cfg.SuperAdminPassword,
	})
	registerUserRoutes(api, userSvc)
	registerEventRoutes(api, eventSvc)
	registerAnnouncementRoutes(api, announcementSvc)
	registerClassRoutes(api, classSvc)
	registerFacilityRoutes(api, facilitySvc)
	registerEmailRoutes(api, emailSvc)

	// ======================
	// SERVER
	// ======================
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
