package api

import (
	"fmt"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tidystash/inventory-system/internal/api/handler"
	"github.com/tidystash/inventory-system/internal/api/middleware"
	"github.com/tidystash/inventory-system/internal/core/domain"
	"github.com/tidystash/inventory-system/internal/core/service"
	"github.com/tidystash/inventory-system/internal/infrastructure/config"
	mongodb "github.com/tidystash/inventory-system/internal/infrastructure/db/mongo"
	redisdb "github.com/tidystash/inventory-system/internal/infrastructure/db/redis"
	"github.com/tidystash/inventory-system/internal/infrastructure/imaging"
)

const tokenTTL = 24 * time.Hour

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("inventory"))
	e.Use(echomiddleware.BodyLimit(fmt.Sprintf("%dM", cfg.UploadMaxSizeMB)))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	itemRepo := mongodb.NewItemRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	confirmStore := redisdb.NewConfirmStore(rdb)
	normalizer := imaging.NewNormalizer(cfg.Image.MaxDimension, cfg.Image.JPEGQuality)

	authService := service.NewAuthService(accountRepo, cfg.JWTSecret, cfg.InviteCode, cfg.AdminUsername, tokenTTL)
	itemService := service.NewItemService(itemRepo, normalizer, log)
	categoryService := service.NewCategoryService(categoryRepo, log)
	accountService := service.NewAccountService(accountRepo, itemRepo, categoryRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	itemHandler := handler.NewItemHandler(itemService, confirmStore)
	categoryHandler := handler.NewCategoryHandler(categoryService, confirmStore)
	accountHandler := handler.NewAccountHandler(accountService, confirmStore)
	healthHandler := handler.NewHealthHandler(db, rdb)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/reset-password", authHandler.ResetPassword)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret))

	v1.GET("/categories", categoryHandler.List)
	v1.POST("/categories", categoryHandler.Add)
	v1.DELETE("/categories/:child", categoryHandler.Remove)

	v1.POST("/items", itemHandler.Create)
	v1.GET("/items", itemHandler.List)
	v1.GET("/items/export", itemHandler.Export)
	v1.GET("/items/:id", itemHandler.Get)
	v1.PUT("/items/:id", itemHandler.Update)
	v1.DELETE("/items/:id", itemHandler.Delete)
	v1.GET("/items/:id/image", itemHandler.Image)

	// --- Admin routes ---
	admin := v1.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/accounts", accountHandler.List)
	admin.DELETE("/accounts/:username", accountHandler.Delete)

	return e
}
