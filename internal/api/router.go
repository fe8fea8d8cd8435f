// Package api wires the HTTP surface: routes, middleware, and error mapping.
package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/farmaplus/pharmacy-api/internal/api/handler"
	"github.com/farmaplus/pharmacy-api/internal/api/middleware"
	"github.com/farmaplus/pharmacy-api/internal/core/domain"
	"github.com/farmaplus/pharmacy-api/internal/core/service"
	"github.com/farmaplus/pharmacy-api/internal/infrastructure/db/postgres"
	"github.com/farmaplus/pharmacy-api/internal/infrastructure/db/redis"
)

// Config carries the router's runtime knobs.
type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
//
// Role policy: inventory and sales are open to any authenticated role;
// account administration is admin-only.
func NewRouter(db *postgres.DB, rdb *goredis.Client, cfg Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("pharmacy"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	productRepo := postgres.NewProductRepository(db)
	saleRepo := postgres.NewSaleRepository(db)
	limiter := redis.NewLoginLimiter(rdb)

	authService := service.NewAuthService(userRepo, limiter, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, log)
	productService := service.NewProductService(productRepo, log)
	saleService := service.NewSaleService(saleRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	saleHandler := handler.NewSaleHandler(saleService)

	authRequired := middleware.Auth(cfg.JWTSecret)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleUser)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth ---
	e.POST("/auth/login", authHandler.Login)

	// --- Inventory (any authenticated role) ---
	inventory := e.Group("/inventory", authRequired, anyRole)
	inventory.GET("", productHandler.List)
	inventory.POST("", productHandler.Create)
	inventory.PUT("/:id", productHandler.Update)
	inventory.DELETE("/:id", productHandler.Delete)

	// --- Sales (any authenticated role) ---
	sales := e.Group("/sales", authRequired, anyRole)
	sales.GET("", saleHandler.List)
	sales.POST("", saleHandler.Record)

	// --- Users (admin only) ---
	users := e.Group("/users", authRequired, adminOnly)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
