package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/roomhub/billing/internal/auth"
	"github.com/roomhub/billing/internal/cache"
	"github.com/roomhub/billing/internal/config"
	"github.com/roomhub/billing/internal/http/handlers"
	"github.com/roomhub/billing/internal/http/middlewares"
	"github.com/roomhub/billing/internal/observability"
	"github.com/roomhub/billing/internal/receipt"
	"github.com/roomhub/billing/internal/repo/postgres"
	"github.com/roomhub/billing/internal/storage"
)

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config, roomsCache *cache.Rooms) (*gin.Engine, error) {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware([]string{"http://localhost:3000"}))
	r.Use(otelgin.Middleware("billing-api"))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	prom := observability.NewProm(reg)
	r.Use(prom.GinHandleMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	// wire up repositories and collaborators
	usersRepo := postgres.NewUsersRepo(pool, prom)
	invoicesRepo := postgres.NewInvoicesRepo(pool, prom)
	roomsRepo := postgres.NewRoomsRepo(pool, prom)

	slips, err := storage.NewSlipStore(cfg.UploadDir)

	if err != nil {
		return nil, err
	}

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	renderer := receipt.NewRenderer(invoicesRepo, roomsRepo, cfg.PayerName, cfg.PayerEmail)

	// handlers
	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, jwtManager)
	invoicesHandler := handlers.NewInvoicesHandler(invoicesRepo, roomsCache)
	roomsHandler := handlers.NewRoomsHandler(roomsRepo, invoicesRepo, roomsCache)
	receiptHandler := handlers.NewReceiptHandler(renderer, prom)
	uploadsHandler := handlers.NewUploadsHandler(invoicesRepo, slips, roomsCache)

	authMW := middlewares.NewAuthMiddleware(jwtManager)
	loginLimiter := middlewares.NewRateLimiter(10, time.Minute)

	// uploaded slips are publicly readable
	r.Static("/public", slips.Dir())

	api := r.Group("/api")

	api.POST("/register", loginLimiter.Middleware(middlewares.KeyByIP), middlewares.RequireJSON(), authHandler.Register)
	api.POST("/login", loginLimiter.Middleware(middlewares.KeyByIP), middlewares.RequireJSON(), authHandler.Login)

	protected := api.Group("")
	protected.Use(authMW.RequireToken())

	protected.POST("/logout", authHandler.Logout)

	protected.POST("/invoices", middlewares.RequireJSON(), invoicesHandler.Create)
	protected.PUT("/invoices/:invoice_id", middlewares.RequireJSON(), invoicesHandler.Update)
	protected.DELETE("/invoices/:invoice_id", invoicesHandler.Delete)
	protected.GET("/invoices/:invoice_id/receipt", receiptHandler.Get)
	protected.POST("/invoices/:invoice_id/payment-proof", middlewares.MaxBodyBytes(cfg.MaxUploadBytes), uploadsHandler.Attach)

	protected.GET("/rooms", roomsHandler.ListRooms)
	protected.GET("/rooms/:room_id", roomsHandler.ListInvoices)
	protected.GET("/rooms/:room_id/invoices", roomsHandler.GetBills)

	return r, nil
}
