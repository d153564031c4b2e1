package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/retailcore/pos-gateway/internal/api/handlers"
	"github.com/retailcore/pos-gateway/internal/api/middleware"
	"github.com/retailcore/pos-gateway/internal/cache"
	"github.com/retailcore/pos-gateway/internal/catalog"
	"github.com/retailcore/pos-gateway/internal/config"
	"github.com/retailcore/pos-gateway/internal/health"
	"github.com/retailcore/pos-gateway/internal/metrics"
	"github.com/retailcore/pos-gateway/internal/repositories"
	redisrepo "github.com/retailcore/pos-gateway/internal/repositories/redis"
	service "github.com/retailcore/pos-gateway/internal/services"
	"github.com/retailcore/pos-gateway/internal/session"
	"github.com/retailcore/pos-gateway/pkg/martapi"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing (optional, enabled when an exporter endpoint is configured)
	shutdownTracer, err := initTracer(cfg)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := newRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	jwtKey := []byte(cfg.Security.JWTKey)
	martClient := martapi.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	rateLimiter := redisrepo.NewRateLimiter(redisClient, &cfg.RateConfig)

	cartStore := repositories.NewCartStore()
	draftStore := repositories.NewDraftStore()

	catalogService := service.NewCatalogService(catalog.NewLoader(martClient), redisCache, cfg.Cache.CatalogTTL, logger)
	userService := service.NewUserService(martClient, rateLimiter, jwtKey, time.Duration(cfg.Security.JWTExpiryHours)*time.Hour)
	productService := service.NewProductService(martClient, catalogService)
	saleService := service.NewSaleService(cartStore, catalogService, martClient, logger)
	purchaseService := service.NewPurchaseService(draftStore, catalogService, martClient, logger)
	notificationService := service.NewNotificationService(martClient)

	userHandler := handlers.NewUserHandler(userService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, productService)
	cartHandler := handlers.NewCartHandler(saleService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{MartClient: martClient})
	if err != nil {
		slog.Error("❌ Error creating health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("gateway initialized", slog.String("env", cfg.Env), slog.String("upstream", cfg.Upstream.BaseURL))

	// role gates
	sales := func(h http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.Authenticate(middleware.RequireRole(session.Session.CanRecordSale, h))
	}
	purchasing := func(h http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.Authenticate(middleware.RequireRole(session.Session.CanManagePurchasing, h))
	}
	stock := func(h http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.Authenticate(middleware.RequireRole(session.Session.CanAdjustStock, h))
	}

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/auth/login", userHandler.Login())

	routerMux.HandleFunc("GET /api/v1/catalog", authMiddleware.Authenticate(catalogHandler.GetSnapshot()))
	routerMux.HandleFunc("POST /api/v1/catalog/refresh", authMiddleware.Authenticate(catalogHandler.Refresh()))
	routerMux.HandleFunc("GET /api/v1/catalog/products", authMiddleware.Authenticate(catalogHandler.BrowseProducts()))
	routerMux.HandleFunc("PUT /api/v1/products/{id}/stock", stock(catalogHandler.UpdateStock()))
	routerMux.HandleFunc("GET /api/v1/dashboard/stats", authMiddleware.Authenticate(catalogHandler.DashboardStats()))

	routerMux.HandleFunc("POST /api/v1/carts", sales(cartHandler.CreateCart()))
	routerMux.HandleFunc("GET /api/v1/carts/{id}", sales(cartHandler.GetCart()))
	routerMux.HandleFunc("DELETE /api/v1/carts/{id}", sales(cartHandler.CancelCart()))
	routerMux.HandleFunc("POST /api/v1/carts/{id}/items", sales(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/carts/{id}/items", sales(cartHandler.SetQuantity()))
	routerMux.HandleFunc("GET /api/v1/carts/{id}/quote", sales(cartHandler.Quote()))
	routerMux.HandleFunc("POST /api/v1/carts/{id}/checkout", sales(cartHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/sales", sales(cartHandler.ListSales()))
	routerMux.HandleFunc("GET /api/v1/sales/{id}", sales(cartHandler.SaleDetails()))

	routerMux.HandleFunc("POST /api/v1/purchase-orders/drafts", purchasing(purchaseHandler.CreateDraft()))
	routerMux.HandleFunc("GET /api/v1/purchase-orders/drafts/{id}", purchasing(purchaseHandler.GetDraft()))
	routerMux.HandleFunc("DELETE /api/v1/purchase-orders/drafts/{id}", purchasing(purchaseHandler.DiscardDraft()))
	routerMux.HandleFunc("POST /api/v1/purchase-orders/drafts/{id}/lines", purchasing(purchaseHandler.AddLine()))
	routerMux.HandleFunc("PUT /api/v1/purchase-orders/drafts/{id}/lines/{index}", purchasing(purchaseHandler.UpdateLine()))
	routerMux.HandleFunc("DELETE /api/v1/purchase-orders/drafts/{id}/lines/{index}", purchasing(purchaseHandler.RemoveLine()))
	routerMux.HandleFunc("PUT /api/v1/purchase-orders/drafts/{id}/supplier", purchasing(purchaseHandler.ChangeSupplier()))
	routerMux.HandleFunc("GET /api/v1/purchase-orders/drafts/{id}/eligible-products", purchasing(purchaseHandler.EligibleProducts()))
	routerMux.HandleFunc("POST /api/v1/purchase-orders/drafts/{id}/submit", purchasing(purchaseHandler.Submit()))
	routerMux.HandleFunc("GET /api/v1/purchase-orders", purchasing(purchaseHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/purchase-orders/{id}", purchasing(purchaseHandler.OrderDetails()))
	routerMux.HandleFunc("PUT /api/v1/purchase-orders/{id}/receive", purchasing(purchaseHandler.Receive()))

	routerMux.HandleFunc("GET /api/v1/notifications", authMiddleware.Authenticate(notificationHandler.List()))
	routerMux.HandleFunc("PUT /api/v1/notifications/{id}", authMiddleware.Authenticate(notificationHandler.Update()))

	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Warn("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}
}

func newRedisClient(cfg *config.Config) (*redis.Client, error) {

	opt, err := redis.ParseURL(cfg.RedisConnect.GetDSN())
	if err != nil {
		return nil, err
	}

	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

// initTracer wires the OTLP HTTP exporter when an endpoint is configured and
// returns the provider's shutdown func. Without an endpoint it is a no-op.
func initTracer(cfg *config.Config) (func(context.Context) error, error) {

	if cfg.Otel.ExporterEndpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(cfg.Otel.ExporterEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL,
			semconv.ServiceName(cfg.Otel.ServiceName),
		))
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.Otel.SamplerRatio)),
	)

	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}
