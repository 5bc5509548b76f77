package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"absence-tracker/internal/config"
	"absence-tracker/internal/handler"
	"absence-tracker/internal/repository"
	"absence-tracker/internal/service"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetServerConfig()

	// Foreign key constraints stay off: deleting a user must leave their
	// absence records in place with a dangling reporter reference.
	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	userRepo, err := repository.NewGormUserRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create user repository")
	}

	absenceRepo, err := repository.NewGormAbsenceRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create absence repository")
	}

	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), cfg.JWTTTL)
	userService := service.NewUserService(userRepo)
	absenceService := service.NewAbsenceService(absenceRepo)

	if cfg.AdminUsername != "" && cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := authService.EnsureAdmin(cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			logrus.Infof("Warning: Failed to initialize admin: %v", err)
		} else {
			logrus.Infof("Admin initialized: %s", cfg.AdminUsername)
		}
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())

	handler.SetupRoutes(
		app,
		handler.AuthMiddleware(authService),
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewAbsenceHandler(absenceService),
	)

	go func() {
		logrus.Infof("Server listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logrus.Fatal("Server stopped unexpectedly:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	if err := app.Shutdown(); err != nil {
		logrus.Infof("Error shutting down server: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Server stopped gracefully")
}
