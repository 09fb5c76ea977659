package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "hostelfood/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"hostelfood/internal/auth"
	"hostelfood/internal/cache"
	"hostelfood/internal/config"
	"hostelfood/internal/db"
	"hostelfood/internal/handler"
	"hostelfood/internal/logging"
	"hostelfood/internal/repository"
	"hostelfood/internal/router"
	"hostelfood/internal/service"
	"hostelfood/internal/window"
)

const shutdownTimeout = 10 * time.Second

// @title Hostel Food Management System API
// @version 1.0.0
// @description Menu publishing, meal selection, booking history and support tickets for hostel residents.
// @host localhost:8000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	store, err := db.Open(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("database init")
	}
	logrus.WithField("driver", store.Driver).Info("database connected")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(ctx); err != nil {
		logrus.WithError(err).Warn("redis unreachable, user cache disabled until it recovers")
	}

	// Initialize repositories
	repos := repository.New(store, cfg.DBTimeout)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	policy := window.New(cfg.SelectionPolicy, nil)

	// Initialize services
	authService := service.NewAuthService(repos.Users, jwtService, hasher)
	userService := service.NewUserService(repos.Users, cacheClient, cfg.UserCacheTTL)
	menuService := service.NewMenuService(repos.MenuItems, repos.Menus, repos.Selections, policy)
	studentService := service.NewStudentService(repos.MenuItems, repos.Menus, repos.Selections, policy, nil)
	ticketService := service.NewTicketService(repos.Tickets, repos.Users)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, cfg, router.Handlers{
		Health:  handler.NewHealthHandler(store, cfg.DBTimeout),
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(userService),
		Admin:   handler.NewAdminHandler(menuService),
		Student: handler.NewStudentHandler(studentService),
		Ticket:  handler.NewTicketHandler(ticketService),
	}, jwtService, userService)

	addr := ":" + cfg.ServerPort
	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":    addr,
			"policy":  cfg.SelectionPolicy,
			"swagger": "http://localhost" + addr + "/swagger/index.html",
		}).Info("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("server shutdown")
	}
	if err := cacheClient.Close(); err != nil {
		logrus.WithError(err).Warn("close redis")
	}
	if err := store.Close(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("close database")
	}
}
