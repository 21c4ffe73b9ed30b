package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bakehouse/storefront/internal/api/handler"
	"github.com/bakehouse/storefront/internal/api/middleware"
	"github.com/bakehouse/storefront/internal/core/domain"
	"github.com/bakehouse/storefront/internal/core/service"
	mongorepo "github.com/bakehouse/storefront/internal/infrastructure/db/mongo"
	redisrepo "github.com/bakehouse/storefront/internal/infrastructure/db/redis"
	"github.com/bakehouse/storefront/internal/realtime"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The registry is owned by the caller so it can drain connections on shutdown.
func NewRouter(db *mongo.Database, rdb *redis.Client, registry *realtime.Registry, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Dependencies ---
	hub := realtime.NewHub(registry, log)

	userRepo := mongorepo.NewUserRepository(db)
	productRepo := mongorepo.NewProductRepository(db)
	orderRepo := mongorepo.NewOrderRepository(db)
	cartRepo := redisrepo.NewCartRepository(rdb)

	authService := service.NewAuthService(userRepo, jwtSecret, 7*24*time.Hour)
	productService := service.NewProductService(productRepo, hub, log)
	orderService := service.NewOrderService(orderRepo, cartRepo, hub, log)
	cartService := service.NewCartService(cartRepo, productRepo, log)
	customerService := service.NewCustomerService(userRepo, orderRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)
	cartHandler := handler.NewCartHandler(cartService)
	customerHandler := handler.NewCustomerHandler(customerService)
	wsHandler := realtime.NewHandler(registry, log)

	authRequired := middleware.Auth(jwtSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	customerOnly := middleware.RBAC(domain.RoleCustomer)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Catalog ---
	e.GET("/products", productHandler.List)
	e.GET("/products/:id", productHandler.Get)
	e.POST("/products", productHandler.Create, authRequired, adminOnly)
	e.PUT("/products/:id", productHandler.Update, authRequired, adminOnly)
	e.DELETE("/products/:id", productHandler.Delete, authRequired, adminOnly)

	// --- Cart ---
	cart := e.Group("/cart", authRequired, customerOnly)
	cart.GET("", cartHandler.Get)
	cart.POST("/items", cartHandler.AddItem)
	cart.PATCH("/items/:productId", cartHandler.UpdateItem)
	cart.DELETE("/items/:productId", cartHandler.RemoveItem)
	cart.DELETE("", cartHandler.Clear)

	// --- Orders ---
	e.POST("/orders", orderHandler.Create, authRequired, customerOnly)
	e.GET("/orders/mine", orderHandler.ListMine, authRequired, customerOnly)
	e.GET("/orders", orderHandler.ListAll, authRequired, adminOnly)
	e.GET("/orders/:id", orderHandler.Get, authRequired)
	e.PATCH("/orders/:id/status", orderHandler.UpdateStatus, authRequired, adminOnly)

	// --- Admin customer views ---
	customers := e.Group("/customers", authRequired, adminOnly)
	customers.GET("", customerHandler.List)
	customers.GET("/:id", customerHandler.Get)

	// --- Realtime ---
	e.GET("/ws", wsHandler.Serve)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
