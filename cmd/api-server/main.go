package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"bookstore/database"
	"bookstore/internal/config"
	"bookstore/internal/http-api/handler"
	"bookstore/internal/http-api/middleware"
	"bookstore/internal/http-api/repository"
	"bookstore/internal/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)
	borrowingRepo := repository.NewBorrowingRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg)
	userService := service.NewUserService(userRepo)
	bookService := service.NewBookService(bookRepo)
	borrowingService := service.NewBorrowingService(borrowingRepo, bookRepo, cfg.LoanPeriodDays)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	bookHandler := handler.NewBookHandler(bookService)
	borrowingHandler := handler.NewBorrowingHandler(borrowingService)
	polyHandler := handler.NewPolyBookHandler(bookService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	authHandler.RegisterRoutes(api.Group("/auth"))

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(authService))
	{
		bookHandler.RegisterRoutes(authed.Group("/books"))
		borrowingHandler.RegisterRoutes(authed.Group("/borrowings"))
		polyHandler.RegisterRoutes(authed.Group("/poly"))
		userHandler.RegisterProfileRoutes(authed.Group("/user"))

		admin := authed.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		userHandler.RegisterAdminRoutes(admin)
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
